package client

import (
	"context"
	"net/http"
)

// AddressParams is the address to validate. Only US addresses are supported by the service.
type AddressParams struct {
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	City    string `json:"city,omitempty"`
	Street  string `json:"street,omitempty"`
}

// Address is one candidate returned by address validation.
type Address struct {
	Zip     string `json:"zip"`
	Street  string `json:"street"`
	State   string `json:"state"`
	Country string `json:"country"`
	City    string `json:"city"`
}

type addressesEnvelope struct {
	Addresses []Address `json:"addresses"`
}

type VATParams struct {
	VAT string `json:"vat"`
}

type VIESResponse struct {
	CountryCode string `json:"country_code"`
	VATNumber   string `json:"vat_number"`
	RequestDate string `json:"request_date"`
	Valid       bool   `json:"valid"`
	Name        string `json:"name"`
	Address     string `json:"address"`
}

// Validation is the outcome of a VAT number check.
type Validation struct {
	Valid         bool          `json:"valid"`
	Exists        bool          `json:"exists"`
	VIESAvailable bool          `json:"vies_available"`
	VIESResponse  *VIESResponse `json:"vies_response,omitempty"`
}

type validationEnvelope struct {
	Validation *Validation `json:"validation"`
}

func (c *Client) ValidateAddress(ctx context.Context, params AddressParams) ([]Address, error) {
	return validateAddress(ctx, c.sync, params)
}

func (c *Client) ValidateAddressAsync(ctx context.Context, params AddressParams) *Future[[]Address] {
	return runAsync(func() ([]Address, error) { return validateAddress(ctx, c.async, params) })
}

func validateAddress(ctx context.Context, ex Executor, params AddressParams) ([]Address, error) {
	const op = "validate address"
	req, err := request(op, http.MethodPost, "addresses/validate", params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, func(e *addressesEnvelope) []Address { return e.Addresses })
}

// ValidateVAT checks a VAT identification number. The number travels in the query string.
func (c *Client) ValidateVAT(ctx context.Context, params VATParams) (*Validation, error) {
	return validateVAT(ctx, c.sync, params)
}

func (c *Client) ValidateVATAsync(ctx context.Context, params VATParams) *Future[*Validation] {
	return runAsync(func() (*Validation, error) { return validateVAT(ctx, c.async, params) })
}

func validateVAT(ctx context.Context, ex Executor, params VATParams) (*Validation, error) {
	const op = "validate vat"
	req, err := request(op, http.MethodGet, "validation", params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, func(e *validationEnvelope) *Validation { return e.Validation })
}
