package cmd

import (
	"strings"

	"github.com/gosuri/uitable"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/bodrovis/taxjar/client"
)

func (a *app) categoriesCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List product tax categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			cats, err := invoke(cmd.Context(), a, c.Categories, c.CategoriesAsync)
			if err != nil {
				return err
			}
			if search != "" {
				cats = searchCategories(cats, search)
			}
			return a.printer.Print(cats, func(t *uitable.Table) {
				t.AddRow("CODE", "NAME", "DESCRIPTION")
				for _, cat := range cats {
					t.AddRow(cat.ProductTaxCode, cat.Name, cat.Description)
				}
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "fuzzy filter on category name and description")
	return cmd
}

type categorySource []client.Category

func (s categorySource) String(i int) string {
	return strings.ToLower(s[i].Name + " " + s[i].Description)
}

func (s categorySource) Len() int { return len(s) }

// searchCategories returns the fuzzy matches for query, best first.
func searchCategories(cats []client.Category, query string) []client.Category {
	matches := fuzzy.FindFrom(strings.ToLower(query), categorySource(cats))
	out := make([]client.Category, 0, len(matches))
	for _, m := range matches {
		out = append(out, cats[m.Index])
	}
	return out
}
