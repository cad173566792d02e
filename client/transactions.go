package client

// LineItem is one line of an order, refund or tax calculation.
type LineItem struct {
	ID                string   `json:"id,omitempty"`
	Quantity          int      `json:"quantity,omitempty"`
	ProductIdentifier string   `json:"product_identifier,omitempty"`
	Description       string   `json:"description,omitempty"`
	ProductTaxCode    string   `json:"product_tax_code,omitempty"`
	UnitPrice         *float64 `json:"unit_price,omitempty"`
	Discount          *float64 `json:"discount,omitempty"`
	SalesTax          *float64 `json:"sales_tax,omitempty"`
}

// ListTransactionsParams filters order and refund listings.
type ListTransactionsParams struct {
	TransactionDate     string `json:"transaction_date,omitempty"`
	FromTransactionDate string `json:"from_transaction_date,omitempty"`
	ToTransactionDate   string `json:"to_transaction_date,omitempty"`
	Provider            string `json:"provider,omitempty"`
}

// TransactionParams carries the optional provider for show and delete calls.
type TransactionParams struct {
	Provider string `json:"provider,omitempty"`
}

// Float returns a pointer to v, for the optional amount fields.
func Float(v float64) *float64 { return &v }
