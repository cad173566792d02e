package cmd

import (
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func (a *app) nexusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nexus",
		Short: "List the regions where the account has nexus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			regions, err := invoke(cmd.Context(), a, c.NexusRegions, c.NexusRegionsAsync)
			if err != nil {
				return err
			}
			return a.printer.Print(regions, func(t *uitable.Table) {
				t.AddRow("COUNTRY", "REGION CODE", "REGION")
				for _, r := range regions {
					t.AddRow(r.CountryCode, r.RegionCode, r.Region)
				}
			})
		},
	}
}

func (a *app) summaryRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary-rates",
		Short: "List minimum and average rates per region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			rates, err := invoke(cmd.Context(), a, c.SummaryRates, c.SummaryRatesAsync)
			if err != nil {
				return err
			}
			return a.printer.Print(rates, func(t *uitable.Table) {
				t.AddRow("COUNTRY", "REGION", "MINIMUM", "AVERAGE")
				for _, r := range rates {
					t.AddRow(r.CountryCode, r.RegionCode, r.MinimumRate.Rate, r.AverageRate.Rate)
				}
			})
		},
	}
}
