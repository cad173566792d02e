package client

import (
	"context"
	"net/http"

	"github.com/bodrovis/taxjar/apierr"
)

type ExemptRegion struct {
	Country string `json:"country"`
	State   string `json:"state"`
}

// CustomerParams creates or updates an exempt customer. CustomerID is required for both.
type CustomerParams struct {
	CustomerID    string         `json:"customer_id"`
	ExemptionType string         `json:"exemption_type,omitempty"`
	Name          string         `json:"name,omitempty"`
	ExemptRegions []ExemptRegion `json:"exempt_regions,omitempty"`
	Country       string         `json:"country,omitempty"`
	State         string         `json:"state,omitempty"`
	Zip           string         `json:"zip,omitempty"`
	City          string         `json:"city,omitempty"`
	Street        string         `json:"street,omitempty"`
}

type Customer struct {
	CustomerID    string         `json:"customer_id"`
	ExemptionType string         `json:"exemption_type,omitempty"`
	Name          string         `json:"name,omitempty"`
	ExemptRegions []ExemptRegion `json:"exempt_regions,omitempty"`
	Country       string         `json:"country,omitempty"`
	State         string         `json:"state,omitempty"`
	Zip           string         `json:"zip,omitempty"`
	City          string         `json:"city,omitempty"`
	Street        string         `json:"street,omitempty"`
}

type customersEnvelope struct {
	Customers []string `json:"customers"`
}

type customerEnvelope struct {
	Customer *Customer `json:"customer"`
}

const customersPath = "customers"

func unwrapCustomer(e *customerEnvelope) *Customer { return e.Customer }

// ListCustomers returns customer ids. params may be nil.
func (c *Client) ListCustomers(ctx context.Context, params Params) ([]string, error) {
	return listCustomers(ctx, c.sync, params)
}

func (c *Client) ListCustomersAsync(ctx context.Context, params Params) *Future[[]string] {
	return runAsync(func() ([]string, error) { return listCustomers(ctx, c.async, params) })
}

func listCustomers(ctx context.Context, ex Executor, params Params) ([]string, error) {
	req := &Request{Endpoint: customersPath, Method: http.MethodGet, Params: params}
	return call(ctx, ex, "list customers", req, func(e *customersEnvelope) []string { return e.Customers })
}

func (c *Client) ShowCustomer(ctx context.Context, customerID string) (*Customer, error) {
	return customerByID(ctx, c.sync, "show customer", http.MethodGet, customerID)
}

func (c *Client) ShowCustomerAsync(ctx context.Context, customerID string) *Future[*Customer] {
	return runAsync(func() (*Customer, error) {
		return customerByID(ctx, c.async, "show customer", http.MethodGet, customerID)
	})
}

func (c *Client) CreateCustomer(ctx context.Context, params CustomerParams) (*Customer, error) {
	return createCustomer(ctx, c.sync, params)
}

func (c *Client) CreateCustomerAsync(ctx context.Context, params CustomerParams) *Future[*Customer] {
	return runAsync(func() (*Customer, error) { return createCustomer(ctx, c.async, params) })
}

func createCustomer(ctx context.Context, ex Executor, params CustomerParams) (*Customer, error) {
	const op = "create customer"
	req, err := request(op, http.MethodPost, customersPath, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, unwrapCustomer)
}

// UpdateCustomer fails with apierr.ErrMissingCustomerID, without a network
// call, when params.CustomerID is blank.
func (c *Client) UpdateCustomer(ctx context.Context, params CustomerParams) (*Customer, error) {
	return updateCustomer(ctx, c.sync, params)
}

func (c *Client) UpdateCustomerAsync(ctx context.Context, params CustomerParams) *Future[*Customer] {
	return runAsync(func() (*Customer, error) { return updateCustomer(ctx, c.async, params) })
}

func updateCustomer(ctx context.Context, ex Executor, params CustomerParams) (*Customer, error) {
	const op = "update customer"
	path, err := idPath(op, customersPath, params.CustomerID, apierr.ErrMissingCustomerID)
	if err != nil {
		return nil, err
	}
	req, err := request(op, http.MethodPut, path, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, unwrapCustomer)
}

func (c *Client) DeleteCustomer(ctx context.Context, customerID string) (*Customer, error) {
	return customerByID(ctx, c.sync, "delete customer", http.MethodDelete, customerID)
}

func (c *Client) DeleteCustomerAsync(ctx context.Context, customerID string) *Future[*Customer] {
	return runAsync(func() (*Customer, error) {
		return customerByID(ctx, c.async, "delete customer", http.MethodDelete, customerID)
	})
}

func customerByID(ctx context.Context, ex Executor, op, method, customerID string) (*Customer, error) {
	path, err := idPath(op, customersPath, customerID, apierr.ErrMissingCustomerID)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, &Request{Endpoint: path, Method: method}, unwrapCustomer)
}
