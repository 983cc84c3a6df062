package format

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Write writes CLI output in the requested format.
//
// Supported formats:
// - json (default)
// - table
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		return WriteTable(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: Output stays strict JSON only, one value per invocation, so it is
// safe to pipe into jq or scripts.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Table is the shape commands hand to WriteTable: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// WriteTable renders v as an aligned text table. v must be a Table (or
// *Table); anything else falls back to JSON so callers never lose output to
// a formatting mismatch.
func WriteTable(w io.Writer, v any) error {
	var t Table
	switch x := v.(type) {
	case Table:
		t = x
	case *Table:
		if x != nil {
			t = *x
		}
	default:
		return WriteJSON(w, v, true)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(t.Header) > 0 {
		fmt.Fprintln(tw, joinTab(t.Header))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, joinTab(row))
	}
	return tw.Flush()
}

func joinTab(cells []string) string {
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += "\t"
		}
		out += c
	}
	return out
}
