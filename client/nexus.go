package client

import (
	"context"
	"net/http"
)

// NexusRegion is a region where the account has nexus.
type NexusRegion struct {
	CountryCode string `json:"country_code"`
	Country     string `json:"country"`
	RegionCode  string `json:"region_code"`
	Region      string `json:"region"`
}

type nexusRegionsEnvelope struct {
	Regions []NexusRegion `json:"regions"`
}

func (c *Client) NexusRegions(ctx context.Context) ([]NexusRegion, error) {
	return nexusRegions(ctx, c.sync)
}

func (c *Client) NexusRegionsAsync(ctx context.Context) *Future[[]NexusRegion] {
	return runAsync(func() ([]NexusRegion, error) { return nexusRegions(ctx, c.async) })
}

func nexusRegions(ctx context.Context, ex Executor) ([]NexusRegion, error) {
	req := &Request{Endpoint: "nexus/regions", Method: http.MethodGet}
	return call(ctx, ex, "nexus regions", req, func(e *nexusRegionsEnvelope) []NexusRegion { return e.Regions })
}
