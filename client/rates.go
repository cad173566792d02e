package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bodrovis/taxjar/apierr"
)

// RateParams narrows a rate lookup beyond the postal code.
type RateParams struct {
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
	Street  string `json:"street,omitempty"`
}

// Rate holds the rates for a location. US rates arrive as strings and
// international ones as numbers, so they are kept as json.Number.
type Rate struct {
	Zip                   string      `json:"zip,omitempty"`
	Country               string      `json:"country,omitempty"`
	CountryRate           json.Number `json:"country_rate,omitempty"`
	State                 string      `json:"state,omitempty"`
	StateRate             json.Number `json:"state_rate,omitempty"`
	County                string      `json:"county,omitempty"`
	CountyRate            json.Number `json:"county_rate,omitempty"`
	City                  string      `json:"city,omitempty"`
	CityRate              json.Number `json:"city_rate,omitempty"`
	CombinedDistrictRate  json.Number `json:"combined_district_rate,omitempty"`
	CombinedRate          json.Number `json:"combined_rate,omitempty"`
	FreightTaxable        bool        `json:"freight_taxable"`
	Name                  string      `json:"name,omitempty"`
	StandardRate          json.Number `json:"standard_rate,omitempty"`
	ReducedRate           json.Number `json:"reduced_rate,omitempty"`
	SuperReducedRate      json.Number `json:"super_reduced_rate,omitempty"`
	ParkingRate           json.Number `json:"parking_rate,omitempty"`
	DistanceSaleThreshold json.Number `json:"distance_sale_threshold,omitempty"`
}

type rateEnvelope struct {
	Rate *Rate `json:"rate"`
}

// RatesForLocation looks up rates for a postal code. params may be nil.
func (c *Client) RatesForLocation(ctx context.Context, zip string, params *RateParams) (*Rate, error) {
	return ratesForLocation(ctx, c.sync, zip, params)
}

func (c *Client) RatesForLocationAsync(ctx context.Context, zip string, params *RateParams) *Future[*Rate] {
	return runAsync(func() (*Rate, error) { return ratesForLocation(ctx, c.async, zip, params) })
}

func ratesForLocation(ctx context.Context, ex Executor, zip string, params *RateParams) (*Rate, error) {
	const op = "rates for location"
	path, err := idPath(op, "rates", zip, apierr.ErrMissingZip)
	if err != nil {
		return nil, err
	}
	req, err := request(op, http.MethodGet, path, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, func(e *rateEnvelope) *Rate { return e.Rate })
}
