// Package vtab registers a read-only SQLite virtual table module backed
// by a resource file: each row is a (key, val) pair drawn from a parsed
// Resource. This is the Go counterpart of cirup_core's vtab.rs, which
// implements the same module against rusqlite's vtab API; here it is
// built on mattn/go-sqlite3's sqlite3.Module/VTab/VTabCursor interfaces,
// the real Go equivalent of the CGo-backed SQLite C API rusqlite wraps.
package vtab

import (
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/devolutions-sync/cirup/internal/format"
)

// ModuleName is the name used in "CREATE VIRTUAL TABLE ... USING cirup(...)".
const ModuleName = "cirup"

// Register installs the cirup virtual table module on conn, mirroring
// vtab.rs's load_module.
func Register(conn *sqlite3.SQLiteConn) error {
	return conn.CreateModule(ModuleName, &Module{})
}

// Module implements sqlite3.Module. It carries no state of its own; each
// connected table tracks its own source filename.
type Module struct{}

func (Module) Create(conn *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	return connect(conn, args)
}

func (Module) Connect(conn *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	return connect(conn, args)
}

func (Module) DestroyModule() {}

// connect parses the "filename=..." argument list passed to CREATE
// VIRTUAL TABLE, declares the fixed two-column (key, val) schema, and
// returns the connected table.
func connect(conn *sqlite3.SQLiteConn, args []string) (*Tab, error) {
	// args[0:3] are module name, database name, table name per the
	// SQLite vtab contract; any remaining entries are the declared
	// CREATE VIRTUAL TABLE parameters.
	if len(args) < 4 {
		return nil, fmt.Errorf("cirup vtab: no filename parameter specified")
	}

	var filename string
	for _, raw := range args[3:] {
		key, value, err := parseParameter(raw)
		if err != nil {
			return nil, err
		}
		switch key {
		case "filename":
			filename = value
		default:
			return nil, fmt.Errorf("cirup vtab: unrecognized parameter %q", key)
		}
	}

	if filename == "" {
		return nil, fmt.Errorf("cirup vtab: filename parameter is required")
	}

	if err := conn.DeclareVTab(Schema); err != nil {
		return nil, err
	}

	return &Tab{filename: filename}, nil
}

func parseParameter(raw string) (key, value string, err error) {
	arg := strings.TrimSpace(raw)
	idx := strings.Index(arg, "=")
	if idx < 0 {
		return "", "", fmt.Errorf("cirup vtab: illegal argument %q", arg)
	}
	key = strings.TrimSpace(arg[:idx])
	value = dequote(strings.TrimSpace(arg[idx+1:]))
	return key, value, nil
}

// dequote strips a single layer of matching single or double quotes, the
// same convention rusqlite::vtab::dequote applies to module arguments.
func dequote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Tab is the connected virtual table: it knows its source filename and
// the fixed two-column schema every cirup table shares.
type Tab struct {
	filename string
}

func (t *Tab) BestIndex(cst []sqlite3.InfoConstraint, ob []sqlite3.InfoOrderBy) (*sqlite3.IndexResult, error) {
	return &sqlite3.IndexResult{
		Used:           make([]bool, len(cst)),
		EstimatedCost:  1_000_000,
		EstimatedRows:  1_000_000,
	}, nil
}

func (t *Tab) Open() (sqlite3.VTabCursor, error) {
	rows, err := queryRows(t.filename)
	if err != nil {
		return nil, err
	}
	return &Cursor{rows: rows}, nil
}

func (t *Tab) Disconnect() error { return nil }
func (t *Tab) Destroy() error    { return nil }

// queryRows loads the resource file and flattens it into (key, val)
// rows, the shape vtab.rs's query_table builds before filter().
func queryRows(filename string) ([][2]string, error) {
	resources, err := format.LoadFile(filename)
	if err != nil {
		return nil, err
	}
	rows := make([][2]string, len(resources))
	for i, r := range resources {
		rows[i] = [2]string{r.Name, r.Value}
	}
	return rows, nil
}

// Cursor walks the in-memory row slice built once on Open/Filter, same
// as CirupTabCursor's table_in_memory cache.
type Cursor struct {
	rows   [][2]string
	rowID  int64
	cursor int
}

func (c *Cursor) Filter(idxNum int, idxStr string, vals []interface{}) error {
	c.cursor = 0
	c.rowID = 0
	return nil
}

func (c *Cursor) Next() error {
	c.cursor++
	c.rowID++
	return nil
}

func (c *Cursor) EOF() bool {
	return c.cursor >= len(c.rows)
}

func (c *Cursor) Column(ctx *sqlite3.SQLiteContext, col int) error {
	if col < 0 || col > 1 || c.cursor >= len(c.rows) {
		return fmt.Errorf("cirup vtab: column index out of bounds: %d", col)
	}
	ctx.ResultText(c.rows[c.cursor][col])
	return nil
}

func (c *Cursor) Rowid() (int64, error) {
	return c.rowID, nil
}

func (c *Cursor) Close() error {
	return nil
}

// Schema is the fixed CREATE TABLE declaration every connected cirup
// table reports back to SQLite, matching get_schema's ("key", "val")
// pair.
const Schema = `CREATE TABLE x("key" TEXT, "val" TEXT)`
