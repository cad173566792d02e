package client

import (
	"context"
	"net/http"

	"github.com/bodrovis/taxjar/apierr"
)

// OrderParams creates or updates an order transaction. TransactionID is
// required for both.
type OrderParams struct {
	TransactionID   string     `json:"transaction_id"`
	TransactionDate string     `json:"transaction_date,omitempty"`
	Provider        string     `json:"provider,omitempty"`
	ExemptionType   string     `json:"exemption_type,omitempty"`
	CustomerID      string     `json:"customer_id,omitempty"`
	FromCountry     string     `json:"from_country,omitempty"`
	FromZip         string     `json:"from_zip,omitempty"`
	FromState       string     `json:"from_state,omitempty"`
	FromCity        string     `json:"from_city,omitempty"`
	FromStreet      string     `json:"from_street,omitempty"`
	ToCountry       string     `json:"to_country,omitempty"`
	ToZip           string     `json:"to_zip,omitempty"`
	ToState         string     `json:"to_state,omitempty"`
	ToCity          string     `json:"to_city,omitempty"`
	ToStreet        string     `json:"to_street,omitempty"`
	Amount          *float64   `json:"amount,omitempty"`
	Shipping        *float64   `json:"shipping,omitempty"`
	SalesTax        *float64   `json:"sales_tax,omitempty"`
	LineItems       []LineItem `json:"line_items,omitempty"`
}

// Order is an order transaction as stored by TaxJar.
type Order struct {
	TransactionID   string     `json:"transaction_id"`
	UserID          int        `json:"user_id"`
	TransactionDate string     `json:"transaction_date,omitempty"`
	Provider        string     `json:"provider,omitempty"`
	ExemptionType   string     `json:"exemption_type,omitempty"`
	FromCountry     string     `json:"from_country,omitempty"`
	FromZip         string     `json:"from_zip,omitempty"`
	FromState       string     `json:"from_state,omitempty"`
	FromCity        string     `json:"from_city,omitempty"`
	FromStreet      string     `json:"from_street,omitempty"`
	ToCountry       string     `json:"to_country,omitempty"`
	ToZip           string     `json:"to_zip,omitempty"`
	ToState         string     `json:"to_state,omitempty"`
	ToCity          string     `json:"to_city,omitempty"`
	ToStreet        string     `json:"to_street,omitempty"`
	Amount          float64    `json:"amount"`
	Shipping        float64    `json:"shipping"`
	SalesTax        float64    `json:"sales_tax"`
	LineItems       []LineItem `json:"line_items,omitempty"`
}

type ordersEnvelope struct {
	Orders []string `json:"orders"`
}

type orderEnvelope struct {
	Order *Order `json:"order"`
}

const ordersPath = "transactions/orders"

func unwrapOrder(e *orderEnvelope) *Order { return e.Order }

// ListOrders returns order transaction ids. params may be nil.
func (c *Client) ListOrders(ctx context.Context, params *ListTransactionsParams) ([]string, error) {
	return listOrders(ctx, c.sync, params)
}

func (c *Client) ListOrdersAsync(ctx context.Context, params *ListTransactionsParams) *Future[[]string] {
	return runAsync(func() ([]string, error) { return listOrders(ctx, c.async, params) })
}

func listOrders(ctx context.Context, ex Executor, params *ListTransactionsParams) ([]string, error) {
	const op = "list orders"
	req, err := request(op, http.MethodGet, ordersPath, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, func(e *ordersEnvelope) []string { return e.Orders })
}

func (c *Client) ShowOrder(ctx context.Context, transactionID string, params *TransactionParams) (*Order, error) {
	return orderByID(ctx, c.sync, "show order", http.MethodGet, transactionID, params)
}

func (c *Client) ShowOrderAsync(ctx context.Context, transactionID string, params *TransactionParams) *Future[*Order] {
	return runAsync(func() (*Order, error) {
		return orderByID(ctx, c.async, "show order", http.MethodGet, transactionID, params)
	})
}

func (c *Client) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	return createOrder(ctx, c.sync, params)
}

func (c *Client) CreateOrderAsync(ctx context.Context, params OrderParams) *Future[*Order] {
	return runAsync(func() (*Order, error) { return createOrder(ctx, c.async, params) })
}

func createOrder(ctx context.Context, ex Executor, params OrderParams) (*Order, error) {
	const op = "create order"
	req, err := request(op, http.MethodPost, ordersPath, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, unwrapOrder)
}

// UpdateOrder fails with apierr.ErrMissingTransactionID, without a network
// call, when params.TransactionID is blank.
func (c *Client) UpdateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	return updateOrder(ctx, c.sync, params)
}

func (c *Client) UpdateOrderAsync(ctx context.Context, params OrderParams) *Future[*Order] {
	return runAsync(func() (*Order, error) { return updateOrder(ctx, c.async, params) })
}

func updateOrder(ctx context.Context, ex Executor, params OrderParams) (*Order, error) {
	const op = "update order"
	path, err := idPath(op, ordersPath, params.TransactionID, apierr.ErrMissingTransactionID)
	if err != nil {
		return nil, err
	}
	req, err := request(op, http.MethodPut, path, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, unwrapOrder)
}

func (c *Client) DeleteOrder(ctx context.Context, transactionID string, params *TransactionParams) (*Order, error) {
	return orderByID(ctx, c.sync, "delete order", http.MethodDelete, transactionID, params)
}

func (c *Client) DeleteOrderAsync(ctx context.Context, transactionID string, params *TransactionParams) *Future[*Order] {
	return runAsync(func() (*Order, error) {
		return orderByID(ctx, c.async, "delete order", http.MethodDelete, transactionID, params)
	})
}

func orderByID(ctx context.Context, ex Executor, op, method, transactionID string, params *TransactionParams) (*Order, error) {
	path, err := idPath(op, ordersPath, transactionID, apierr.ErrMissingTransactionID)
	if err != nil {
		return nil, err
	}
	req, err := request(op, method, path, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, unwrapOrder)
}
