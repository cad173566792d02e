package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// call executes req on ex, decodes the envelope E and unwraps the field the
// caller wants.
func call[E any, T any](ctx context.Context, ex Executor, op string, req *Request, unwrap func(*E) T) (T, error) {
	var env E
	if err := ex.Execute(ctx, req, &env); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	return unwrap(&env), nil
}

// request normalizes params and assembles a Request.
func request(op, method, endpoint string, params any) (*Request, error) {
	p, err := ParamsFrom(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Request{Endpoint: endpoint, Method: method, Params: p}, nil
}

// idPath joins a collection path and a required identifier, failing with
// missing when the identifier is blank.
func idPath(op, collection, id string, missing error) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%s: %w", op, missing)
	}
	return collection + "/" + url.PathEscape(id), nil
}
