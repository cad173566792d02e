// Package outfmt renders command results as JSON, jq-filtered JSON or tables.
package outfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/itchyny/gojq"
)

// Mode is the output format.
type Mode int

const (
	JSON Mode = iota
	Table
)

// Parse parses an --output value.
func Parse(s string) (Mode, error) {
	switch s {
	case "json", "":
		return JSON, nil
	case "table", "text":
		return Table, nil
	default:
		return JSON, fmt.Errorf("invalid output format: %q (use 'json' or 'table')", s)
	}
}

func (m Mode) String() string {
	if m == Table {
		return "table"
	}
	return "json"
}

// Printer writes results in the configured mode. A non-empty Query forces JSON output.
type Printer struct {
	Out   io.Writer
	Mode  Mode
	Query string
}

// Print writes v. rows renders the table form and may be nil, in which case
// JSON is written regardless of Mode.
func (p *Printer) Print(v any, rows func(t *uitable.Table)) error {
	if p.Query != "" {
		out, err := ApplyQuery(v, p.Query)
		if err != nil {
			return err
		}
		return WriteJSON(p.Out, out)
	}
	if p.Mode == Table && rows != nil {
		t := uitable.New()
		t.MaxColWidth = 60
		t.Wrap = true
		rows(t)
		_, err := fmt.Fprintln(p.Out, t.String())
		return err
	}
	return WriteJSON(p.Out, v)
}

// WriteJSON writes v as pretty-printed JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ApplyQuery runs a jq expression over the JSON form of v. A single result
// is returned as is, several as a slice.
func ApplyQuery(v any, expression string) (any, error) {
	if expression == "" {
		return v, nil
	}
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query expression: %w", err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	var results []any
	iter := query.Run(data)
	for {
		r, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := r.(error); ok {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, r)
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}
