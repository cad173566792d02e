package client

import (
	"context"
	"net/http"
)

// NexusAddress is a location where the seller has nexus, sent with a tax calculation.
type NexusAddress struct {
	ID      string `json:"id,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
	Street  string `json:"street,omitempty"`
}

// TaxParams describes an order to calculate sales tax for.
type TaxParams struct {
	FromCountry    string         `json:"from_country,omitempty"`
	FromZip        string         `json:"from_zip,omitempty"`
	FromState      string         `json:"from_state,omitempty"`
	FromCity       string         `json:"from_city,omitempty"`
	FromStreet     string         `json:"from_street,omitempty"`
	ToCountry      string         `json:"to_country,omitempty"`
	ToZip          string         `json:"to_zip,omitempty"`
	ToState        string         `json:"to_state,omitempty"`
	ToCity         string         `json:"to_city,omitempty"`
	ToStreet       string         `json:"to_street,omitempty"`
	Amount         *float64       `json:"amount,omitempty"`
	Shipping       float64        `json:"shipping"`
	CustomerID     string         `json:"customer_id,omitempty"`
	ExemptionType  string         `json:"exemption_type,omitempty"`
	NexusAddresses []NexusAddress `json:"nexus_addresses,omitempty"`
	LineItems      []LineItem     `json:"line_items,omitempty"`
}

type Jurisdictions struct {
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	County  string `json:"county,omitempty"`
	City    string `json:"city,omitempty"`
}

type BreakdownLineItem struct {
	ID                     string  `json:"id"`
	TaxableAmount          float64 `json:"taxable_amount"`
	TaxCollectable         float64 `json:"tax_collectable"`
	CombinedTaxRate        float64 `json:"combined_tax_rate"`
	StateTaxableAmount     float64 `json:"state_taxable_amount"`
	StateSalesTaxRate      float64 `json:"state_sales_tax_rate"`
	StateAmount            float64 `json:"state_amount"`
	CountyTaxableAmount    float64 `json:"county_taxable_amount"`
	CountyTaxRate          float64 `json:"county_tax_rate"`
	CountyAmount           float64 `json:"county_amount"`
	CityTaxableAmount      float64 `json:"city_taxable_amount"`
	CityTaxRate            float64 `json:"city_tax_rate"`
	CityAmount             float64 `json:"city_amount"`
	SpecialDistrictTaxable float64 `json:"special_district_taxable_amount"`
	SpecialTaxRate         float64 `json:"special_tax_rate"`
	SpecialDistrictAmount  float64 `json:"special_district_amount"`
	CountryTaxableAmount   float64 `json:"country_taxable_amount,omitempty"`
	CountryTaxRate         float64 `json:"country_tax_rate,omitempty"`
	CountryTaxCollectable  float64 `json:"country_tax_collectable,omitempty"`
	GSTTaxableAmount       float64 `json:"gst_taxable_amount,omitempty"`
	GSTTaxRate             float64 `json:"gst_tax_rate,omitempty"`
	GST                    float64 `json:"gst,omitempty"`
	PSTTaxableAmount       float64 `json:"pst_taxable_amount,omitempty"`
	PSTTaxRate             float64 `json:"pst_tax_rate,omitempty"`
	PST                    float64 `json:"pst,omitempty"`
	QSTTaxableAmount       float64 `json:"qst_taxable_amount,omitempty"`
	QSTTaxRate             float64 `json:"qst_tax_rate,omitempty"`
	QST                    float64 `json:"qst,omitempty"`
}

// Breakdown splits the collectable tax by jurisdiction and line item.
type Breakdown struct {
	TaxableAmount                 float64             `json:"taxable_amount"`
	TaxCollectable                float64             `json:"tax_collectable"`
	CombinedTaxRate               float64             `json:"combined_tax_rate"`
	StateTaxableAmount            float64             `json:"state_taxable_amount"`
	StateTaxRate                  float64             `json:"state_tax_rate"`
	StateTaxCollectable           float64             `json:"state_tax_collectable"`
	CountyTaxableAmount           float64             `json:"county_taxable_amount"`
	CountyTaxRate                 float64             `json:"county_tax_rate"`
	CountyTaxCollectable          float64             `json:"county_tax_collectable"`
	CityTaxableAmount             float64             `json:"city_taxable_amount"`
	CityTaxRate                   float64             `json:"city_tax_rate"`
	CityTaxCollectable            float64             `json:"city_tax_collectable"`
	SpecialDistrictTaxableAmount  float64             `json:"special_district_taxable_amount"`
	SpecialTaxRate                float64             `json:"special_tax_rate"`
	SpecialDistrictTaxCollectable float64             `json:"special_district_tax_collectable"`
	Shipping                      *BreakdownLineItem  `json:"shipping,omitempty"`
	LineItems                     []BreakdownLineItem `json:"line_items,omitempty"`
}

// Tax is the result of a tax calculation.
type Tax struct {
	OrderTotalAmount float64        `json:"order_total_amount"`
	Shipping         float64        `json:"shipping"`
	TaxableAmount    float64        `json:"taxable_amount"`
	AmountToCollect  float64        `json:"amount_to_collect"`
	Rate             float64        `json:"rate"`
	HasNexus         bool           `json:"has_nexus"`
	FreightTaxable   bool           `json:"freight_taxable"`
	TaxSource        string         `json:"tax_source,omitempty"`
	ExemptionType    string         `json:"exemption_type,omitempty"`
	Jurisdictions    *Jurisdictions `json:"jurisdictions,omitempty"`
	Breakdown        *Breakdown     `json:"breakdown,omitempty"`
}

type taxEnvelope struct {
	Tax *Tax `json:"tax"`
}

func (c *Client) TaxForOrder(ctx context.Context, params TaxParams) (*Tax, error) {
	return taxForOrder(ctx, c.sync, params)
}

func (c *Client) TaxForOrderAsync(ctx context.Context, params TaxParams) *Future[*Tax] {
	return runAsync(func() (*Tax, error) { return taxForOrder(ctx, c.async, params) })
}

func taxForOrder(ctx context.Context, ex Executor, params TaxParams) (*Tax, error) {
	const op = "tax for order"
	req, err := request(op, http.MethodPost, "taxes", params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, func(e *taxEnvelope) *Tax { return e.Tax })
}
