package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// EncodeJSONBody encodes body as a JSON request payload without HTML escaping.
func EncodeJSONBody(body any) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return &buf, nil
}

// EncodeQuery flattens the top-level entries of params into query values.
func EncodeQuery(params map[string]any) (url.Values, error) {
	q := make(url.Values, len(params))
	for k, v := range params {
		s, err := QueryValue(v)
		if err != nil {
			return nil, fmt.Errorf("encode query %q: %w", k, err)
		}
		q.Set(k, s)
	}
	return q, nil
}

// QueryValue coerces a decoded JSON value to its string form: strings as-is,
// numbers in JSON notation, nil as "", objects and arrays as compact JSON.
func QueryValue(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case fmt.Stringer:
		return t.String(), nil
	}

	buf, err := EncodeJSONBody(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
