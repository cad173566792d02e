package cmd

import (
	"context"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/bodrovis/taxjar/client"
)

func (a *app) customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Manage exempt customers",
	}
	var file string

	printCustomer := func(cu *client.Customer) error {
		return a.printer.Print(cu, func(t *uitable.Table) {
			regions := make([]string, 0, len(cu.ExemptRegions))
			for _, r := range cu.ExemptRegions {
				regions = append(regions, r.Country+"-"+r.State)
			}
			t.AddRow("CUSTOMER ID", "NAME", "EXEMPTION", "REGIONS")
			t.AddRow(cu.CustomerID, cu.Name, cu.ExemptionType, strings.Join(regions, ","))
		})
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List customer ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ids, err := invoke1(cmd.Context(), a, client.Params(nil), c.ListCustomers, c.ListCustomersAsync)
			if err != nil {
				return err
			}
			return a.printer.Print(ids, func(t *uitable.Table) {
				t.AddRow("CUSTOMER ID")
				for _, id := range ids {
					t.AddRow(id)
				}
			})
		},
	}

	byID := func(use, short string, pick func(*client.Client) (func(context.Context, string) (*client.Customer, error), func(context.Context, string) *client.Future[*client.Customer])) *cobra.Command {
		return &cobra.Command{
			Use:   use + " CUSTOMER_ID",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.client()
				if err != nil {
					return err
				}
				sync, async := pick(c)
				cu, err := invoke1(cmd.Context(), a, args[0], sync, async)
				if err != nil {
					return err
				}
				return printCustomer(cu)
			},
		}
	}

	withBody := func(use, short string, pick func(*client.Client) (func(context.Context, client.CustomerParams) (*client.Customer, error), func(context.Context, client.CustomerParams) *client.Future[*client.Customer])) *cobra.Command {
		sub := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var params client.CustomerParams
				if err := a.readParams(file, &params); err != nil {
					return err
				}
				c, err := a.client()
				if err != nil {
					return err
				}
				sync, async := pick(c)
				cu, err := invoke1(cmd.Context(), a, params, sync, async)
				if err != nil {
					return err
				}
				return printCustomer(cu)
			},
		}
		sub.Flags().StringVarP(&file, "file", "f", "", "JSON file with the customer (- for stdin)")
		return sub
	}

	cmd.AddCommand(
		list,
		byID("show", "Show one customer", func(c *client.Client) (func(context.Context, string) (*client.Customer, error), func(context.Context, string) *client.Future[*client.Customer]) {
			return c.ShowCustomer, c.ShowCustomerAsync
		}),
		withBody("create", "Create a customer", func(c *client.Client) (func(context.Context, client.CustomerParams) (*client.Customer, error), func(context.Context, client.CustomerParams) *client.Future[*client.Customer]) {
			return c.CreateCustomer, c.CreateCustomerAsync
		}),
		withBody("update", "Update a customer; customer_id in the file selects it", func(c *client.Client) (func(context.Context, client.CustomerParams) (*client.Customer, error), func(context.Context, client.CustomerParams) *client.Future[*client.Customer]) {
			return c.UpdateCustomer, c.UpdateCustomerAsync
		}),
		byID("delete", "Delete a customer", func(c *client.Client) (func(context.Context, string) (*client.Customer, error), func(context.Context, string) *client.Future[*client.Customer]) {
			return c.DeleteCustomer, c.DeleteCustomerAsync
		}),
	)
	return cmd
}
