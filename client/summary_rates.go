package client

import (
	"context"
	"encoding/json"
	"net/http"
)

type SummaryRateValue struct {
	Label string      `json:"label"`
	Rate  json.Number `json:"rate"`
}

// SummaryRate is the minimum and average rate for a region.
type SummaryRate struct {
	CountryCode string           `json:"country_code"`
	Country     string           `json:"country"`
	RegionCode  string           `json:"region_code"`
	Region      string           `json:"region"`
	MinimumRate SummaryRateValue `json:"minimum_rate"`
	AverageRate SummaryRateValue `json:"average_rate"`
}

type summaryRatesEnvelope struct {
	SummaryRates []SummaryRate `json:"summary_rates"`
}

func (c *Client) SummaryRates(ctx context.Context) ([]SummaryRate, error) {
	return summaryRates(ctx, c.sync)
}

func (c *Client) SummaryRatesAsync(ctx context.Context) *Future[[]SummaryRate] {
	return runAsync(func() ([]SummaryRate, error) { return summaryRates(ctx, c.async) })
}

func summaryRates(ctx context.Context, ex Executor) ([]SummaryRate, error) {
	req := &Request{Endpoint: "summary_rates", Method: http.MethodGet}
	return call(ctx, ex, "summary rates", req, func(e *summaryRatesEnvelope) []SummaryRate { return e.SummaryRates })
}
