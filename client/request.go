package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/bodrovis/taxjar/utils"
)

// Params is a pre-normalized parameter payload: top-level field name to value.
type Params map[string]any

// Request is one logical API call.
type Request struct {
	Endpoint string // relative to the versioned base URL, e.g. "transactions/orders"
	Method   string // defaults to POST
	Params   Params
}

// ParamsFrom normalizes a typed parameter struct into Params through its JSON
// form. nil (including a typed nil pointer) yields nil Params.
func ParamsFrom(v any) (Params, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case Params:
		return p, nil
	case map[string]any:
		return Params(p), nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize params: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out Params
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("normalize params: %T does not encode to a JSON object: %w", v, err)
	}
	return out, nil
}

// hasBody reports whether method carries params as a JSON body rather than a query string.
func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// encodedRequest is a Request with its URL, body and headers resolved. It is
// built once per logical call and turned into a fresh *http.Request per attempt.
type encodedRequest struct {
	method   string
	endpoint string
	url      string
	body     []byte
	header   http.Header
}

func (c *Client) encode(req *Request) (*encodedRequest, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodPost
	}

	u, err := url.Parse(c.baseURL + strings.TrimLeft(req.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	enc := &encodedRequest{
		method:   method,
		endpoint: req.Endpoint,
		header:   make(http.Header, len(c.headers)+5),
	}

	if len(req.Params) > 0 {
		if hasBody(method) {
			buf, err := utils.EncodeJSONBody(req.Params)
			if err != nil {
				return nil, err
			}
			enc.body = buf.Bytes()
		} else {
			extra, err := utils.EncodeQuery(req.Params)
			if err != nil {
				return nil, err
			}
			q := u.Query()
			for k, vs := range extra {
				q[k] = vs
			}
			u.RawQuery = q.Encode()
		}
	}
	enc.url = u.String()

	for k, v := range c.headers {
		enc.header.Set(k, v)
	}
	enc.header.Set("Authorization", "Bearer "+c.token)
	enc.header.Set("User-Agent", c.userAgent)
	enc.header.Set("Accept", "application/json")
	if enc.body != nil {
		enc.header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		enc.header.Set(c.requestIDHeader, uuid.NewString())
	}
	return enc, nil
}

func (e *encodedRequest) httpRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if e.body != nil {
		body = bytes.NewReader(e.body)
	}

	req, err := http.NewRequestWithContext(ctx, e.method, e.url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = e.header.Clone()
	return req, nil
}

// BuildRequest produces the transport-ready request for req without sending it.
func (c *Client) BuildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	enc, err := c.encode(req)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return enc.httpRequest(ctx)
}
