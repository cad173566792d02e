package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/bodrovis/taxjar/apierr"
	"github.com/bodrovis/taxjar/client"
)

// captureJSON registers a responder that stores the decoded request body.
func captureJSON(t *testing.T, method, url string, status int, reply string) *map[string]any {
	t.Helper()
	got := new(map[string]any)
	httpmock.RegisterResponder(method, url, func(req *http.Request) (*http.Response, error) {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, got); err != nil {
				t.Errorf("request body is not JSON: %v", err)
			}
		}
		return httpmock.NewStringResponse(status, reply), nil
	})
	return got
}

func TestCategories(t *testing.T) {
	c, _ := newMockedClient(t)
	httpmock.RegisterResponder("GET", apiBase+"categories", httpmock.NewStringResponder(200, categoriesBody))

	cats, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	want := []client.Category{{Name: "Clothing", ProductTaxCode: "20010", Description: "All human wearing apparel"}}
	if !reflect.DeepEqual(cats, want) {
		t.Fatalf("categories = %+v", cats)
	}
}

func TestRatesForLocation_MissingZip(t *testing.T) {
	c, _ := newMockedClient(t)
	if _, err := c.RatesForLocation(context.Background(), " ", nil); !errors.Is(err, apierr.ErrMissingZip) {
		t.Fatalf("want ErrMissingZip, got %v", err)
	}
	if httpmock.GetTotalCallCount() != 0 {
		t.Fatalf("no request expected")
	}
}

func TestRatesForLocation_International(t *testing.T) {
	c, _ := newMockedClient(t)
	httpmock.RegisterResponder("GET", apiBase+"rates/00150",
		httpmock.NewStringResponder(200, `{"rate":{"country":"FI","name":"Finland","standard_rate":0.24,"reduced_rate":0.14,"freight_taxable":true}}`))

	r, err := c.RatesForLocation(context.Background(), "00150", nil)
	if err != nil {
		t.Fatalf("RatesForLocation: %v", err)
	}
	if r.StandardRate.String() != "0.24" || !r.FreightTaxable || r.Name != "Finland" {
		t.Fatalf("rate = %+v", r)
	}
}

func TestTaxForOrder(t *testing.T) {
	c, _ := newMockedClient(t)
	body := captureJSON(t, "POST", apiBase+"taxes", 200, `{"tax":{
		"order_total_amount":16.5,"shipping":1.5,"taxable_amount":15,"amount_to_collect":1.35,
		"rate":0.09,"has_nexus":true,"freight_taxable":false,"tax_source":"destination",
		"jurisdictions":{"country":"US","state":"CA","county":"LOS ANGELES","city":"LOS ANGELES"},
		"breakdown":{"taxable_amount":15,"tax_collectable":1.35,"combined_tax_rate":0.09,
			"line_items":[{"id":"1","taxable_amount":15,"tax_collectable":1.35,"combined_tax_rate":0.09}]}}}`)

	tax, err := c.TaxForOrder(context.Background(), client.TaxParams{
		FromCountry: "US",
		FromZip:     "92093",
		ToCountry:   "US",
		ToZip:       "90002",
		Amount:      client.Float(15),
		Shipping:    1.5,
		LineItems: []client.LineItem{
			{ID: "1", Quantity: 1, ProductTaxCode: "20010", UnitPrice: client.Float(15), Discount: client.Float(0)},
		},
	})
	if err != nil {
		t.Fatalf("TaxForOrder: %v", err)
	}
	if tax.AmountToCollect != 1.35 || !tax.HasNexus || tax.Jurisdictions.City != "LOS ANGELES" {
		t.Fatalf("tax = %+v", tax)
	}
	if len(tax.Breakdown.LineItems) != 1 || tax.Breakdown.LineItems[0].TaxCollectable != 1.35 {
		t.Fatalf("breakdown = %+v", tax.Breakdown)
	}

	sent := *body
	if sent["to_zip"] != "90002" || sent["amount"] != 15.0 || sent["shipping"] != 1.5 {
		t.Fatalf("sent body = %v", sent)
	}
	items := sent["line_items"].([]any)
	if item := items[0].(map[string]any); item["discount"] != 0.0 || item["product_tax_code"] != "20010" {
		t.Fatalf("line item = %v", item)
	}
}

func TestOrders_CRUD(t *testing.T) {
	c, _ := newMockedClient(t)
	orderJSON := `{"order":{"transaction_id":"123","user_id":10649,"transaction_date":"2015-05-14T00:00:00Z","to_zip":"90002","amount":17.95,"shipping":2,"sales_tax":0.95,
		"line_items":[{"id":"1","quantity":1,"product_identifier":"12-34243-9","description":"Fuzzy Widget","unit_price":15,"discount":0,"sales_tax":0.95}]}}`

	httpmock.RegisterResponderWithQuery("GET", apiBase+"transactions/orders",
		"from_transaction_date=2015/05/01&to_transaction_date=2015/05/31",
		httpmock.NewStringResponder(200, `{"orders":["123","456"]}`))
	httpmock.RegisterResponder("GET", apiBase+"transactions/orders/123", httpmock.NewStringResponder(200, orderJSON))
	created := captureJSON(t, "POST", apiBase+"transactions/orders", 201, orderJSON)
	updated := captureJSON(t, "PUT", apiBase+"transactions/orders/123", 200, orderJSON)
	httpmock.RegisterResponderWithQuery("DELETE", apiBase+"transactions/orders/123", "provider=api",
		httpmock.NewStringResponder(200, `{"order":{"transaction_id":"123","user_id":10649}}`))

	ctx := context.Background()
	ids, err := c.ListOrders(ctx, &client.ListTransactionsParams{FromTransactionDate: "2015/05/01", ToTransactionDate: "2015/05/31"})
	if err != nil || !reflect.DeepEqual(ids, []string{"123", "456"}) {
		t.Fatalf("ListOrders = %v, %v", ids, err)
	}

	o, err := c.ShowOrder(ctx, "123", nil)
	if err != nil {
		t.Fatalf("ShowOrder: %v", err)
	}
	if o.Amount != 17.95 || len(o.LineItems) != 1 || *o.LineItems[0].UnitPrice != 15 {
		t.Fatalf("order = %+v", o)
	}

	params := client.OrderParams{
		TransactionID:   "123",
		TransactionDate: "2015/05/14",
		ToZip:           "90002",
		Amount:          client.Float(17.95),
		Shipping:        client.Float(2),
		SalesTax:        client.Float(0.95),
	}
	if _, err := c.CreateOrder(ctx, params); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if (*created)["transaction_id"] != "123" || (*created)["sales_tax"] != 0.95 {
		t.Fatalf("create body = %v", *created)
	}

	params.Amount = client.Float(20)
	if _, err := c.UpdateOrder(ctx, params); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if (*updated)["amount"] != 20.0 {
		t.Fatalf("update body = %v", *updated)
	}

	d, err := c.DeleteOrder(ctx, "123", &client.TransactionParams{Provider: "api"})
	if err != nil || d.TransactionID != "123" {
		t.Fatalf("DeleteOrder = %+v, %v", d, err)
	}
	if n := httpmock.GetTotalCallCount(); n != 5 {
		t.Fatalf("calls = %d, want 5", n)
	}
}

func TestRefunds_CRUD(t *testing.T) {
	c, _ := newMockedClient(t)
	refundJSON := `{"refund":{"transaction_id":"321","transaction_reference_id":"123","user_id":10649,"amount":-17.95,"shipping":-2,"sales_tax":-0.95}}`

	httpmock.RegisterResponder("GET", apiBase+"transactions/refunds", httpmock.NewStringResponder(200, `{"refunds":["321"]}`))
	httpmock.RegisterResponder("GET", apiBase+"transactions/refunds/321", httpmock.NewStringResponder(200, refundJSON))
	created := captureJSON(t, "POST", apiBase+"transactions/refunds", 201, refundJSON)
	httpmock.RegisterResponder("PUT", apiBase+"transactions/refunds/321", httpmock.NewStringResponder(200, refundJSON))
	httpmock.RegisterResponder("DELETE", apiBase+"transactions/refunds/321", httpmock.NewStringResponder(200, refundJSON))

	ctx := context.Background()
	ids, err := c.ListRefunds(ctx, nil)
	if err != nil || !reflect.DeepEqual(ids, []string{"321"}) {
		t.Fatalf("ListRefunds = %v, %v", ids, err)
	}
	r, err := c.ShowRefund(ctx, "321", nil)
	if err != nil || r.TransactionReferenceID != "123" || r.Amount != -17.95 {
		t.Fatalf("ShowRefund = %+v, %v", r, err)
	}

	params := client.RefundParams{TransactionID: "321", TransactionReferenceID: "123", Amount: client.Float(-17.95), Shipping: client.Float(-2)}
	if _, err := c.CreateRefund(ctx, params); err != nil {
		t.Fatalf("CreateRefund: %v", err)
	}
	if (*created)["transaction_reference_id"] != "123" {
		t.Fatalf("create body = %v", *created)
	}
	if _, err := c.UpdateRefund(ctx, params); err != nil {
		t.Fatalf("UpdateRefund: %v", err)
	}
	if _, err := c.DeleteRefund(ctx, "321", nil); err != nil {
		t.Fatalf("DeleteRefund: %v", err)
	}
}

func TestCustomers_CRUD(t *testing.T) {
	c, _ := newMockedClient(t)
	customerJSON := `{"customer":{"customer_id":"cust-1","exemption_type":"wholesale","name":"Dunder Mifflin Paper Company",
		"exempt_regions":[{"country":"US","state":"FL"},{"country":"US","state":"PA"}],"country":"US","state":"PA","zip":"18504"}}`

	httpmock.RegisterResponder("GET", apiBase+"customers", httpmock.NewStringResponder(200, `{"customers":["cust-1","123"]}`))
	httpmock.RegisterResponder("GET", apiBase+"customers/cust-1", httpmock.NewStringResponder(200, customerJSON))
	created := captureJSON(t, "POST", apiBase+"customers", 201, customerJSON)
	httpmock.RegisterResponder("PUT", apiBase+"customers/cust-1", httpmock.NewStringResponder(200, customerJSON))
	httpmock.RegisterResponder("DELETE", apiBase+"customers/cust-1", httpmock.NewStringResponder(200, customerJSON))

	ctx := context.Background()
	ids, err := c.ListCustomers(ctx, nil)
	if err != nil || len(ids) != 2 {
		t.Fatalf("ListCustomers = %v, %v", ids, err)
	}

	cu, err := c.ShowCustomer(ctx, "cust-1")
	if err != nil {
		t.Fatalf("ShowCustomer: %v", err)
	}
	if len(cu.ExemptRegions) != 2 || cu.ExemptRegions[1].State != "PA" {
		t.Fatalf("customer = %+v", cu)
	}

	params := client.CustomerParams{
		CustomerID:    "cust-1",
		ExemptionType: "wholesale",
		ExemptRegions: []client.ExemptRegion{{Country: "US", State: "FL"}},
	}
	if _, err := c.CreateCustomer(ctx, params); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	regions := (*created)["exempt_regions"].([]any)
	if len(regions) != 1 || (*created)["customer_id"] != "cust-1" {
		t.Fatalf("create body = %v", *created)
	}
	if _, err := c.UpdateCustomer(ctx, params); err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if _, err := c.DeleteCustomer(ctx, "cust-1"); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
}

func TestMissingIdentifiers_NoNetwork(t *testing.T) {
	c, _ := newMockedClient(t)
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
		want error
	}{
		{"update order", func() error { _, err := c.UpdateOrder(ctx, client.OrderParams{}); return err }, apierr.ErrMissingTransactionID},
		{"show order", func() error { _, err := c.ShowOrder(ctx, "", nil); return err }, apierr.ErrMissingTransactionID},
		{"delete order", func() error { _, err := c.DeleteOrder(ctx, "  ", nil); return err }, apierr.ErrMissingTransactionID},
		{"update refund", func() error { _, err := c.UpdateRefund(ctx, client.RefundParams{TransactionID: "\t"}); return err }, apierr.ErrMissingTransactionID},
		{"show refund", func() error { _, err := c.ShowRefund(ctx, "", nil); return err }, apierr.ErrMissingTransactionID},
		{"delete refund", func() error { _, err := c.DeleteRefund(ctx, "", nil); return err }, apierr.ErrMissingTransactionID},
		{"update customer", func() error { _, err := c.UpdateCustomer(ctx, client.CustomerParams{}); return err }, apierr.ErrMissingCustomerID},
		{"show customer", func() error { _, err := c.ShowCustomer(ctx, ""); return err }, apierr.ErrMissingCustomerID},
		{"delete customer", func() error { _, err := c.DeleteCustomer(ctx, " "); return err }, apierr.ErrMissingCustomerID},
	}
	for _, tc := range checks {
		if err := tc.call(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, err)
		}
	}
	if n := httpmock.GetTotalCallCount(); n != 0 {
		t.Fatalf("calls = %d, want 0", n)
	}
}

func TestNexusRegions(t *testing.T) {
	c, _ := newMockedClient(t)
	httpmock.RegisterResponder("GET", apiBase+"nexus/regions", httpmock.NewStringResponder(200,
		`{"regions":[{"country_code":"US","country":"United States","region_code":"CA","region":"California"}]}`))

	regions, err := c.NexusRegions(context.Background())
	if err != nil {
		t.Fatalf("NexusRegions: %v", err)
	}
	want := []client.NexusRegion{{CountryCode: "US", Country: "United States", RegionCode: "CA", Region: "California"}}
	if !reflect.DeepEqual(regions, want) {
		t.Fatalf("regions = %+v", regions)
	}
}

func TestSummaryRatesAsync(t *testing.T) {
	c, _ := newMockedClient(t)
	httpmock.RegisterResponder("GET", apiBase+"summary_rates", httpmock.NewStringResponder(200,
		`{"summary_rates":[{"country_code":"US","country":"United States","region_code":"CA","region":"California",`+
			`"minimum_rate":{"label":"State Tax","rate":0.065},"average_rate":{"label":"Tax","rate":0.0827}}]}`))

	rates, err := c.SummaryRatesAsync(context.Background()).Wait()
	if err != nil {
		t.Fatalf("SummaryRatesAsync: %v", err)
	}
	if len(rates) != 1 || rates[0].RegionCode != "CA" {
		t.Fatalf("rates = %+v", rates)
	}
	if rates[0].MinimumRate.Rate.String() != "0.065" || rates[0].AverageRate.Label != "Tax" {
		t.Fatalf("rate values = %+v / %+v", rates[0].MinimumRate, rates[0].AverageRate)
	}
}

func TestValidateAddress(t *testing.T) {
	c, _ := newMockedClient(t)
	body := captureJSON(t, "POST", apiBase+"addresses/validate", 200,
		`{"addresses":[{"zip":"85297-2176","street":"3301 S Greenfield Rd","state":"AZ","country":"US","city":"Gilbert"}]}`)

	addrs, err := c.ValidateAddress(context.Background(), client.AddressParams{Country: "US", State: "AZ", Zip: "85297", City: "Gilbert", Street: "3301 South Greenfield Rd"})
	if err != nil {
		t.Fatalf("ValidateAddress: %v", err)
	}
	if len(addrs) != 1 || addrs[0].Zip != "85297-2176" {
		t.Fatalf("addresses = %+v", addrs)
	}
	if (*body)["street"] != "3301 South Greenfield Rd" {
		t.Fatalf("sent body = %v", *body)
	}
}

func TestValidateVAT(t *testing.T) {
	c, _ := newMockedClient(t)
	httpmock.RegisterResponderWithQuery("GET", apiBase+"validation", "vat=FR40303265045",
		httpmock.NewStringResponder(200, `{"validation":{"valid":true,"exists":true,"vies_available":true,
			"vies_response":{"country_code":"FR","vat_number":"40303265045","request_date":"2016-02-10","valid":true,"name":"SA SODIMAS","address":"11 RUE AMPERE 26600 PONT DE L ISERE"}}}`))

	v, err := c.ValidateVAT(context.Background(), client.VATParams{VAT: "FR40303265045"})
	if err != nil {
		t.Fatalf("ValidateVAT: %v", err)
	}
	if !v.Valid || v.VIESResponse == nil || v.VIESResponse.Name != "SA SODIMAS" {
		t.Fatalf("validation = %+v", v)
	}
}

// The decoded result re-encodes to the same JSON the service sent.
func TestDecodeRoundTrip(t *testing.T) {
	c, _ := newMockedClient(t)
	raw := `{"customer_id":"123","exemption_type":"non_exempt","name":"Initech","exempt_regions":[{"country":"US","state":"TX"}],"country":"US","state":"TX","zip":"78744","city":"Austin","street":"4120 Freidrich Lane"}`
	httpmock.RegisterResponder("GET", apiBase+"customers/123", httpmock.NewStringResponder(200, `{"customer":`+raw+`}`))

	cu, err := c.ShowCustomer(context.Background(), "123")
	if err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(cu)
	if err != nil {
		t.Fatal(err)
	}
	var want, got map[string]any
	if err := json.Unmarshal([]byte(raw), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch:\nwant %v\n got %v", want, got)
	}
}
