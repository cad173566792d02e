package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client at construction time.
type Option func(*Client) error

// WithAPIURL overrides the API root; the version segment is appended.
func WithAPIURL(root string) Option {
	return func(c *Client) error {
		u, err := url.Parse(strings.TrimSpace(root))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid api url %q", root)
		}
		c.baseURL = apiBase(u.String())
		return nil
	}
}

// WithSandbox points the client at the sandbox environment.
func WithSandbox() Option {
	return WithAPIURL(SandboxAPIURL)
}

// WithHeader adds one extra header sent on every request.
func WithHeader(name, value string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(name) == "" {
			return errors.New("header name is empty")
		}
		c.headers[name] = value
		return nil
	}
}

// WithHeaders adds extra headers sent on every request. The map is copied.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) error {
		for k, v := range h {
			if strings.TrimSpace(k) == "" {
				return errors.New("header name is empty")
			}
			c.headers[k] = v
		}
		return nil
	}
}

// WithTimeout bounds each individual attempt, not the whole retry sequence.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return fmt.Errorf("negative timeout %v", d)
		}
		c.timeout = d
		return nil
	}
}

func WithHTTPClient(hc Doer) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		if h, ok := hc.(*http.Client); ok && h == nil {
			return errors.New("http client is nil")
		}
		c.httpClient = hc
		return nil
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(ua) == "" {
			return errors.New("user agent is empty")
		}
		c.userAgent = ua
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) error {
		if err := p.validate(); err != nil {
			return err
		}
		c.retry = p
		return nil
	}
}

// WithRateLimiter throttles every attempt (retries included) through l.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) error {
		c.limiter = l
		return nil
	}
}

// WithRequestIDHeader sends a fresh UUID under name on each logical call.
// Retries of the same call reuse the id.
func WithRequestIDHeader(name string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(name) == "" {
			return errors.New("request id header name is empty")
		}
		c.requestIDHeader = name
		return nil
	}
}

// WithExecutor replaces the executor behind the synchronous resource methods.
func WithExecutor(e Executor) Option {
	return func(c *Client) error {
		if e == nil {
			return errors.New("executor is nil")
		}
		c.sync = e
		return nil
	}
}

// WithAsyncExecutor replaces the executor behind the ...Async resource methods.
func WithAsyncExecutor(e Executor) Option {
	return func(c *Client) error {
		if e == nil {
			return errors.New("executor is nil")
		}
		c.async = e
		return nil
	}
}
