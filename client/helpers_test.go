package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/bodrovis/taxjar/client"
)

const apiBase = "https://api.taxjar.com/v2/"

// newMockedClient activates httpmock for the test and swaps the backoff
// sleeper for a recorder so retry tests finish instantly.
func newMockedClient(t *testing.T, opts ...client.Option) (*client.Client, *client.SleepRecorder) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	rec := client.RecordSleeps(t.Cleanup)
	c, err := client.NewClient("test-token", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, rec
}

// sequence replies with each responder in turn and repeats the last one.
func sequence(rs ...httpmock.Responder) httpmock.Responder {
	i := 0
	return func(req *http.Request) (*http.Response, error) {
		r := rs[min(i, len(rs)-1)]
		i++
		return r(req)
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// recordingExecutor captures the requests a resource method hands over.
type recordingExecutor struct {
	reqs []*client.Request
	body string
	err  error
}

func (e *recordingExecutor) Execute(_ context.Context, req *client.Request, out any) error {
	e.reqs = append(e.reqs, req)
	if e.err != nil {
		return e.err
	}
	if e.body == "" || out == nil {
		return nil
	}
	return json.Unmarshal([]byte(e.body), out)
}
