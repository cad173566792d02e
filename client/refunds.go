package client

import (
	"context"
	"net/http"

	"github.com/bodrovis/taxjar/apierr"
)

// RefundParams creates or updates a refund transaction. TransactionID is
// required for both; TransactionReferenceID names the refunded order.
type RefundParams struct {
	TransactionID          string     `json:"transaction_id"`
	TransactionReferenceID string     `json:"transaction_reference_id,omitempty"`
	TransactionDate        string     `json:"transaction_date,omitempty"`
	Provider               string     `json:"provider,omitempty"`
	ExemptionType          string     `json:"exemption_type,omitempty"`
	CustomerID             string     `json:"customer_id,omitempty"`
	FromCountry            string     `json:"from_country,omitempty"`
	FromZip                string     `json:"from_zip,omitempty"`
	FromState              string     `json:"from_state,omitempty"`
	FromCity               string     `json:"from_city,omitempty"`
	FromStreet             string     `json:"from_street,omitempty"`
	ToCountry              string     `json:"to_country,omitempty"`
	ToZip                  string     `json:"to_zip,omitempty"`
	ToState                string     `json:"to_state,omitempty"`
	ToCity                 string     `json:"to_city,omitempty"`
	ToStreet               string     `json:"to_street,omitempty"`
	Amount                 *float64   `json:"amount,omitempty"`
	Shipping               *float64   `json:"shipping,omitempty"`
	SalesTax               *float64   `json:"sales_tax,omitempty"`
	LineItems              []LineItem `json:"line_items,omitempty"`
}

// Refund is a refund transaction as stored by TaxJar.
type Refund struct {
	TransactionID          string     `json:"transaction_id"`
	TransactionReferenceID string     `json:"transaction_reference_id,omitempty"`
	UserID                 int        `json:"user_id"`
	TransactionDate        string     `json:"transaction_date,omitempty"`
	Provider               string     `json:"provider,omitempty"`
	ExemptionType          string     `json:"exemption_type,omitempty"`
	FromCountry            string     `json:"from_country,omitempty"`
	FromZip                string     `json:"from_zip,omitempty"`
	FromState              string     `json:"from_state,omitempty"`
	FromCity               string     `json:"from_city,omitempty"`
	FromStreet             string     `json:"from_street,omitempty"`
	ToCountry              string     `json:"to_country,omitempty"`
	ToZip                  string     `json:"to_zip,omitempty"`
	ToState                string     `json:"to_state,omitempty"`
	ToCity                 string     `json:"to_city,omitempty"`
	ToStreet               string     `json:"to_street,omitempty"`
	Amount                 float64    `json:"amount"`
	Shipping               float64    `json:"shipping"`
	SalesTax               float64    `json:"sales_tax"`
	LineItems              []LineItem `json:"line_items,omitempty"`
}

type refundsEnvelope struct {
	Refunds []string `json:"refunds"`
}

type refundEnvelope struct {
	Refund *Refund `json:"refund"`
}

const refundsPath = "transactions/refunds"

func unwrapRefund(e *refundEnvelope) *Refund { return e.Refund }

// ListRefunds returns refund transaction ids. params may be nil.
func (c *Client) ListRefunds(ctx context.Context, params *ListTransactionsParams) ([]string, error) {
	return listRefunds(ctx, c.sync, params)
}

func (c *Client) ListRefundsAsync(ctx context.Context, params *ListTransactionsParams) *Future[[]string] {
	return runAsync(func() ([]string, error) { return listRefunds(ctx, c.async, params) })
}

func listRefunds(ctx context.Context, ex Executor, params *ListTransactionsParams) ([]string, error) {
	const op = "list refunds"
	req, err := request(op, http.MethodGet, refundsPath, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, func(e *refundsEnvelope) []string { return e.Refunds })
}

func (c *Client) ShowRefund(ctx context.Context, transactionID string, params *TransactionParams) (*Refund, error) {
	return refundByID(ctx, c.sync, "show refund", http.MethodGet, transactionID, params)
}

func (c *Client) ShowRefundAsync(ctx context.Context, transactionID string, params *TransactionParams) *Future[*Refund] {
	return runAsync(func() (*Refund, error) {
		return refundByID(ctx, c.async, "show refund", http.MethodGet, transactionID, params)
	})
}

func (c *Client) CreateRefund(ctx context.Context, params RefundParams) (*Refund, error) {
	return createRefund(ctx, c.sync, params)
}

func (c *Client) CreateRefundAsync(ctx context.Context, params RefundParams) *Future[*Refund] {
	return runAsync(func() (*Refund, error) { return createRefund(ctx, c.async, params) })
}

func createRefund(ctx context.Context, ex Executor, params RefundParams) (*Refund, error) {
	const op = "create refund"
	req, err := request(op, http.MethodPost, refundsPath, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, unwrapRefund)
}

// UpdateRefund fails with apierr.ErrMissingTransactionID, without a network
// call, when params.TransactionID is blank.
func (c *Client) UpdateRefund(ctx context.Context, params RefundParams) (*Refund, error) {
	return updateRefund(ctx, c.sync, params)
}

func (c *Client) UpdateRefundAsync(ctx context.Context, params RefundParams) *Future[*Refund] {
	return runAsync(func() (*Refund, error) { return updateRefund(ctx, c.async, params) })
}

func updateRefund(ctx context.Context, ex Executor, params RefundParams) (*Refund, error) {
	const op = "update refund"
	path, err := idPath(op, refundsPath, params.TransactionID, apierr.ErrMissingTransactionID)
	if err != nil {
		return nil, err
	}
	req, err := request(op, http.MethodPut, path, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, unwrapRefund)
}

func (c *Client) DeleteRefund(ctx context.Context, transactionID string, params *TransactionParams) (*Refund, error) {
	return refundByID(ctx, c.sync, "delete refund", http.MethodDelete, transactionID, params)
}

func (c *Client) DeleteRefundAsync(ctx context.Context, transactionID string, params *TransactionParams) *Future[*Refund] {
	return runAsync(func() (*Refund, error) {
		return refundByID(ctx, c.async, "delete refund", http.MethodDelete, transactionID, params)
	})
}

func refundByID(ctx context.Context, ex Executor, op, method, transactionID string, params *TransactionParams) (*Refund, error) {
	path, err := idPath(op, refundsPath, transactionID, apierr.ErrMissingTransactionID)
	if err != nil {
		return nil, err
	}
	req, err := request(op, method, path, params)
	if err != nil {
		return nil, err
	}
	return call(ctx, ex, op, req, unwrapRefund)
}
