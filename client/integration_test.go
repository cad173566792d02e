package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/bodrovis/taxjar/client"
	"github.com/bodrovis/taxjar/testutils"
)

func TestIntegration_Sandbox(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	token := testutils.LiveToken()
	if token == "" {
		t.Skip("no TAXJAR_API_TOKEN; skipping integration test")
	}

	cli, err := client.NewClient(token, client.WithSandbox())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cats, err := cli.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatalf("expected categories from sandbox")
	}

	rate, err := cli.RatesForLocationAsync(ctx, "90002", nil).Await(ctx)
	if err != nil {
		t.Fatalf("RatesForLocationAsync: %v", err)
	}
	if rate.Zip == "" {
		t.Fatalf("expected a zip in the rate response")
	}
}
