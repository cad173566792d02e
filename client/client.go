package client

import (
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"runtime"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bodrovis/taxjar/apierr"
)

const (
	DefaultAPIURL = "https://api.taxjar.com"
	SandboxAPIURL = "https://api.sandbox.taxjar.com"
	APIVersion    = "v2"

	// Version is reported in the User-Agent header.
	Version = "1.0.0"

	DefaultTimeout = 10 * time.Second
)

// Doer sends a fully built request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the TaxJar API. Configuration is fixed at construction, so a
// Client is safe for concurrent use.
type Client struct {
	baseURL         string
	token           string
	headers         map[string]string
	timeout         time.Duration
	userAgent       string
	requestIDHeader string

	httpClient Doer
	logger     *slog.Logger
	limiter    *rate.Limiter
	retry      RetryPolicy

	sync  Executor
	async Executor
}

// NewClient builds a client for the given API token. A blank token is rejected
// before anything touches the network.
func NewClient(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("new client: %w", apierr.ErrMissingToken)
	}

	c := &Client{
		baseURL:    apiBase(DefaultAPIURL),
		token:      token,
		headers:    map[string]string{},
		timeout:    DefaultTimeout,
		userAgent:  defaultUserAgent(),
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
		retry:      DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("new client: %w", err)
		}
	}

	if c.sync == nil {
		c.sync = &syncExecutor{c: c}
	}
	if c.async == nil {
		c.async = &asyncExecutor{c: c}
	}
	return c, nil
}

// BaseURL is the API root including the version segment, e.g. https://api.taxjar.com/v2/.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Timeout() time.Duration { return c.timeout }

func (c *Client) UserAgent() string { return c.userAgent }

func (c *Client) RetryPolicy() RetryPolicy { return c.retry }

// Headers returns a copy of the extra headers sent with every request.
func (c *Client) Headers() map[string]string { return maps.Clone(c.headers) }

func apiBase(root string) string {
	return strings.TrimRight(root, "/") + "/" + APIVersion + "/"
}

func defaultUserAgent() string {
	return fmt.Sprintf("TaxJar/Go (%s; %s; %s) taxjar-go/%s", runtime.GOOS, runtime.GOARCH, runtime.Version(), Version)
}
