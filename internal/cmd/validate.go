package cmd

import (
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/bodrovis/taxjar/client"
)

func (a *app) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate addresses and VAT numbers",
	}

	var addr client.AddressParams
	address := &cobra.Command{
		Use:   "address",
		Short: "Validate a US address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			addrs, err := invoke1(cmd.Context(), a, addr, c.ValidateAddress, c.ValidateAddressAsync)
			if err != nil {
				return err
			}
			return a.printer.Print(addrs, func(t *uitable.Table) {
				t.AddRow("STREET", "CITY", "STATE", "ZIP", "COUNTRY")
				for _, ad := range addrs {
					t.AddRow(ad.Street, ad.City, ad.State, ad.Zip, ad.Country)
				}
			})
		},
	}
	f := address.Flags()
	f.StringVar(&addr.Country, "country", "US", "country code")
	f.StringVar(&addr.State, "state", "", "state code")
	f.StringVar(&addr.Zip, "zip", "", "postal code")
	f.StringVar(&addr.City, "city", "", "city")
	f.StringVar(&addr.Street, "street", "", "street address")

	vat := &cobra.Command{
		Use:   "vat NUMBER",
		Short: "Validate a VAT identification number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			v, err := invoke1(cmd.Context(), a, client.VATParams{VAT: args[0]}, c.ValidateVAT, c.ValidateVATAsync)
			if err != nil {
				return err
			}
			return a.printer.Print(v, func(t *uitable.Table) {
				name := ""
				if v.VIESResponse != nil {
					name = v.VIESResponse.Name
				}
				t.AddRow("VALID", "EXISTS", "VIES AVAILABLE", "NAME")
				t.AddRow(v.Valid, v.Exists, v.VIESAvailable, name)
			})
		},
	}

	cmd.AddCommand(address, vat)
	return cmd
}
