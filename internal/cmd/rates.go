package cmd

import (
	"context"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bodrovis/taxjar/client"
)

func (a *app) ratesCmd() *cobra.Command {
	var (
		params      client.RateParams
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "rates ZIP [ZIP...]",
		Short: "Show tax rates for one or more postal codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, zips []string) error {
			if concurrency < 1 {
				return usageErrorf("--concurrency must be at least 1")
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			var p *client.RateParams
			if params != (client.RateParams{}) {
				p = &params
			}
			rates, err := a.lookupRates(cmd.Context(), c, zips, p, concurrency)
			if err != nil {
				return err
			}

			var out any = rates
			if len(rates) == 1 {
				out = rates[0]
			}
			return a.printer.Print(out, func(t *uitable.Table) {
				t.AddRow("ZIP", "COUNTRY", "STATE", "CITY", "COMBINED RATE", "FREIGHT TAXABLE")
				for _, r := range rates {
					t.AddRow(r.Zip, r.Country, r.State, r.City, r.CombinedRate, r.FreightTaxable)
				}
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&params.Country, "country", "", "two-letter country code")
	f.StringVar(&params.State, "state", "", "state code")
	f.StringVar(&params.City, "city", "", "city")
	f.StringVar(&params.Street, "street", "", "street address")
	f.IntVar(&concurrency, "concurrency", 4, "lookups in flight at once")
	return cmd
}

// lookupRates fetches all zips concurrently, keeping input order. The first
// failure cancels the remaining lookups.
func (a *app) lookupRates(ctx context.Context, c *client.Client, zips []string, params *client.RateParams, limit int) ([]*client.Rate, error) {
	rates := make([]*client.Rate, len(zips))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, zip := range zips {
		g.Go(func() error {
			r, err := invoke2(ctx, a, zip, params, c.RatesForLocation, c.RatesForLocationAsync)
			if err != nil {
				return err
			}
			rates[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rates, nil
}
