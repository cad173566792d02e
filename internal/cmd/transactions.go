package cmd

import (
	"context"
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/bodrovis/taxjar/client"
)

// transactionOps binds the order or refund methods of a client so both
// command trees share one implementation.
type transactionOps[P, T any] struct {
	name string
	noun string

	list   func(c *client.Client) (func(context.Context, *client.ListTransactionsParams) ([]string, error), func(context.Context, *client.ListTransactionsParams) *client.Future[[]string])
	show   func(c *client.Client) (func(context.Context, string, *client.TransactionParams) (T, error), func(context.Context, string, *client.TransactionParams) *client.Future[T])
	del    func(c *client.Client) (func(context.Context, string, *client.TransactionParams) (T, error), func(context.Context, string, *client.TransactionParams) *client.Future[T])
	create func(c *client.Client) (func(context.Context, P) (T, error), func(context.Context, P) *client.Future[T])
	update func(c *client.Client) (func(context.Context, P) (T, error), func(context.Context, P) *client.Future[T])
	row    func(T) []any
}

var transactionHeader = []any{"TRANSACTION ID", "DATE", "TO", "AMOUNT", "SHIPPING", "SALES TAX"}

var ordersResource = transactionOps[client.OrderParams, *client.Order]{
	name: "orders",
	noun: "order",
	list: func(c *client.Client) (func(context.Context, *client.ListTransactionsParams) ([]string, error), func(context.Context, *client.ListTransactionsParams) *client.Future[[]string]) {
		return c.ListOrders, c.ListOrdersAsync
	},
	show: func(c *client.Client) (func(context.Context, string, *client.TransactionParams) (*client.Order, error), func(context.Context, string, *client.TransactionParams) *client.Future[*client.Order]) {
		return c.ShowOrder, c.ShowOrderAsync
	},
	del: func(c *client.Client) (func(context.Context, string, *client.TransactionParams) (*client.Order, error), func(context.Context, string, *client.TransactionParams) *client.Future[*client.Order]) {
		return c.DeleteOrder, c.DeleteOrderAsync
	},
	create: func(c *client.Client) (func(context.Context, client.OrderParams) (*client.Order, error), func(context.Context, client.OrderParams) *client.Future[*client.Order]) {
		return c.CreateOrder, c.CreateOrderAsync
	},
	update: func(c *client.Client) (func(context.Context, client.OrderParams) (*client.Order, error), func(context.Context, client.OrderParams) *client.Future[*client.Order]) {
		return c.UpdateOrder, c.UpdateOrderAsync
	},
	row: func(o *client.Order) []any {
		return []any{o.TransactionID, o.TransactionDate, o.ToZip, o.Amount, o.Shipping, o.SalesTax}
	},
}

var refundsResource = transactionOps[client.RefundParams, *client.Refund]{
	name: "refunds",
	noun: "refund",
	list: func(c *client.Client) (func(context.Context, *client.ListTransactionsParams) ([]string, error), func(context.Context, *client.ListTransactionsParams) *client.Future[[]string]) {
		return c.ListRefunds, c.ListRefundsAsync
	},
	show: func(c *client.Client) (func(context.Context, string, *client.TransactionParams) (*client.Refund, error), func(context.Context, string, *client.TransactionParams) *client.Future[*client.Refund]) {
		return c.ShowRefund, c.ShowRefundAsync
	},
	del: func(c *client.Client) (func(context.Context, string, *client.TransactionParams) (*client.Refund, error), func(context.Context, string, *client.TransactionParams) *client.Future[*client.Refund]) {
		return c.DeleteRefund, c.DeleteRefundAsync
	},
	create: func(c *client.Client) (func(context.Context, client.RefundParams) (*client.Refund, error), func(context.Context, client.RefundParams) *client.Future[*client.Refund]) {
		return c.CreateRefund, c.CreateRefundAsync
	},
	update: func(c *client.Client) (func(context.Context, client.RefundParams) (*client.Refund, error), func(context.Context, client.RefundParams) *client.Future[*client.Refund]) {
		return c.UpdateRefund, c.UpdateRefundAsync
	},
	row: func(r *client.Refund) []any {
		return []any{r.TransactionID, r.TransactionDate, r.ToZip, r.Amount, r.Shipping, r.SalesTax}
	},
}

func transactionsCmd[P, T any](a *app, ops transactionOps[P, T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   ops.name,
		Short: fmt.Sprintf("Manage %s transactions", ops.noun),
	}

	var (
		listParams client.ListTransactionsParams
		provider   string
		file       string
	)

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s transaction ids", ops.noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			sync, async := ops.list(c)
			ids, err := invoke1(cmd.Context(), a, &listParams, sync, async)
			if err != nil {
				return err
			}
			return a.printer.Print(ids, func(t *uitable.Table) {
				t.AddRow("TRANSACTION ID")
				for _, id := range ids {
					t.AddRow(id)
				}
			})
		},
	}
	lf := list.Flags()
	lf.StringVar(&listParams.TransactionDate, "date", "", "transaction date (YYYY/MM/DD)")
	lf.StringVar(&listParams.FromTransactionDate, "from", "", "start of a date range (YYYY/MM/DD)")
	lf.StringVar(&listParams.ToTransactionDate, "to", "", "end of a date range (YYYY/MM/DD)")
	lf.StringVar(&listParams.Provider, "provider", "", "transaction provider, e.g. api")

	byID := func(use, short string, pick func(*client.Client) (func(context.Context, string, *client.TransactionParams) (T, error), func(context.Context, string, *client.TransactionParams) *client.Future[T])) *cobra.Command {
		sub := &cobra.Command{
			Use:   use + " TRANSACTION_ID",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.client()
				if err != nil {
					return err
				}
				var p *client.TransactionParams
				if provider != "" {
					p = &client.TransactionParams{Provider: provider}
				}
				sync, async := pick(c)
				res, err := invoke2(cmd.Context(), a, args[0], p, sync, async)
				if err != nil {
					return err
				}
				return printTransaction(a, ops, res)
			},
		}
		sub.Flags().StringVar(&provider, "provider", "", "transaction provider, e.g. api")
		return sub
	}

	withBody := func(use, short string, pick func(*client.Client) (func(context.Context, P) (T, error), func(context.Context, P) *client.Future[T])) *cobra.Command {
		sub := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var params P
				if err := a.readParams(file, &params); err != nil {
					return err
				}
				c, err := a.client()
				if err != nil {
					return err
				}
				sync, async := pick(c)
				res, err := invoke1(cmd.Context(), a, params, sync, async)
				if err != nil {
					return err
				}
				return printTransaction(a, ops, res)
			},
		}
		sub.Flags().StringVarP(&file, "file", "f", "", "JSON file with the "+ops.noun+" (- for stdin)")
		return sub
	}

	cmd.AddCommand(
		list,
		byID("show", "Show one "+ops.noun, ops.show),
		withBody("create", "Create a "+ops.noun, ops.create),
		withBody("update", "Update a "+ops.noun+"; transaction_id in the file selects it", ops.update),
		byID("delete", "Delete a "+ops.noun, ops.del),
	)
	return cmd
}

func printTransaction[P, T any](a *app, ops transactionOps[P, T], res T) error {
	return a.printer.Print(res, func(t *uitable.Table) {
		t.AddRow(transactionHeader...)
		t.AddRow(ops.row(res)...)
	})
}
