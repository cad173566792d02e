package cmd

import (
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/bodrovis/taxjar/client"
)

func (a *app) taxCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Calculate sales tax for an order",
		Long:  "Calculate sales tax for an order described by a JSON file with the tax parameters (from_*/to_* addresses, amount, shipping, line_items).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var params client.TaxParams
			if err := a.readParams(file, &params); err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			tax, err := invoke1(cmd.Context(), a, params, c.TaxForOrder, c.TaxForOrderAsync)
			if err != nil {
				return err
			}
			return a.printer.Print(tax, func(t *uitable.Table) {
				t.AddRow("ORDER TOTAL", "TAXABLE", "TO COLLECT", "RATE", "HAS NEXUS", "SOURCE")
				t.AddRow(tax.OrderTotalAmount, tax.TaxableAmount, tax.AmountToCollect, tax.Rate, tax.HasNexus, tax.TaxSource)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the order (- for stdin)")
	return cmd
}
