package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrite_JSONDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]string{"id": "contact-abc"}, "", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"id":"contact-abc"}` {
		t.Fatalf("unexpected json output: %q", got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, nil, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteTable_AlignsColumns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tbl := Table{
		Header: []string{"ID", "NAME"},
		Rows: [][]string{
			{"contact-abc", "Jane Doe"},
			{"contact-de", "Omar Haddad"},
		},
	}
	if err := Write(&buf, tbl, "table", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines; got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "NAME") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	// Same column start for all rows.
	col := strings.Index(lines[1], "Jane")
	if col < 0 || strings.Index(lines[2], "Omar") != col {
		t.Fatalf("expected aligned name column: %q vs %q", lines[1], lines[2])
	}
}

func TestWriteTable_NonTableFallsBackToJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteTable(&buf, map[string]int{"n": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"n": 1`) {
		t.Fatalf("expected json fallback; got %q", buf.String())
	}
}
