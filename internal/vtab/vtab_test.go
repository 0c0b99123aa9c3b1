package vtab

import (
	"testing"

	"github.com/devolutions-sync/cirup/internal/vfile"
)

func TestParseParameter(t *testing.T) {
	cases := []struct {
		raw       string
		wantKey   string
		wantValue string
	}{
		{`filename="a.json"`, "filename", "a.json"},
		{" filename = 'b.resx' ", "filename", "b.resx"},
		{"filename=plain.json", "filename", "plain.json"},
	}

	for _, c := range cases {
		key, value, err := parseParameter(c.raw)
		if err != nil {
			t.Fatalf("parseParameter(%q) error = %v", c.raw, err)
		}
		if key != c.wantKey || value != c.wantValue {
			t.Fatalf("parseParameter(%q) = %q, %q, want %q, %q", c.raw, key, value, c.wantKey, c.wantValue)
		}
	}
}

func TestParseParameterRejectsMalformed(t *testing.T) {
	if _, _, err := parseParameter("no-equals-sign"); err == nil {
		t.Fatalf("expected error for malformed argument")
	}
}

func TestQueryRowsFlattensResources(t *testing.T) {
	vfile.Set("vtab-test.json", `{"a": "1", "b": "2"}`)

	rows, err := queryRows("vtab-test.json")
	if err != nil {
		t.Fatalf("queryRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("queryRows() returned %d rows, want 2", len(rows))
	}
	if rows[0] != ([2]string{"a", "1"}) {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1] != ([2]string{"b", "2"}) {
		t.Fatalf("rows[1] = %+v", rows[1])
	}
}

func TestCursorWalksRows(t *testing.T) {
	c := &Cursor{rows: [][2]string{{"a", "1"}, {"b", "2"}}}

	if err := c.Filter(0, "", nil); err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if c.EOF() {
		t.Fatalf("expected cursor not at EOF after Filter")
	}
	if rowid, _ := c.Rowid(); rowid != 0 {
		t.Fatalf("Rowid() = %d, want 0", rowid)
	}

	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if rowid, _ := c.Rowid(); rowid != 1 {
		t.Fatalf("Rowid() = %d, want 1", rowid)
	}

	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !c.EOF() {
		t.Fatalf("expected cursor at EOF after exhausting rows")
	}
}
