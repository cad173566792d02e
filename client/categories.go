package client

import (
	"context"
	"net/http"
)

// Category is a product tax code category.
type Category struct {
	Name           string `json:"name"`
	ProductTaxCode string `json:"product_tax_code"`
	Description    string `json:"description"`
}

type categoriesEnvelope struct {
	Categories []Category `json:"categories"`
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	return categories(ctx, c.sync)
}

func (c *Client) CategoriesAsync(ctx context.Context) *Future[[]Category] {
	return runAsync(func() ([]Category, error) { return categories(ctx, c.async) })
}

func categories(ctx context.Context, ex Executor) ([]Category, error) {
	req := &Request{Endpoint: "categories", Method: http.MethodGet}
	return call(ctx, ex, "categories", req, func(e *categoriesEnvelope) []Category { return e.Categories })
}
