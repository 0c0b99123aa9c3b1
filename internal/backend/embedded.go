package backend

import (
	"database/sql"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/devolutions-sync/cirup/internal/cirerr"
	"github.com/devolutions-sync/cirup/internal/resource"
	"github.com/devolutions-sync/cirup/internal/vfile"
	"github.com/devolutions-sync/cirup/internal/vtab"
)

var embeddedDriverOnce = registerEmbeddedDriver()

const embeddedDriverName = "sqlite3_cirup"

// registerEmbeddedDriver installs the cirup virtual-table module on every
// connection the "sqlite3_cirup" driver opens. sql.Register panics if
// called twice with the same name, so this runs exactly once per process
// via the package-level var initializer.
func registerEmbeddedDriver() bool {
	sql.Register(embeddedDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return vtab.Register(conn)
		},
	})
	return true
}

// Embedded is the CGo SQLite backend: every registered table is a real
// virtual table backed by the cirup module (§4.4), so registration is
// just "CREATE VIRTUAL TABLE t USING cirup(filename=\"p\")" and queries
// run directly against SQLite with no fast path. Grounded on
// query_backend.rs's RusqliteBackend.
type Embedded struct {
	db *sql.DB
}

// NewEmbedded opens a fresh in-memory embedded engine.
func NewEmbedded() (*Embedded, error) {
	_ = embeddedDriverOnce
	db, err := sql.Open(embeddedDriverName, ":memory:")
	if err != nil {
		return nil, &cirerr.BackendError{Backend: "embedded", Op: "open", Underlying: err}
	}
	// the vtab module keeps its table's rows in the go-sqlite3 driver
	// process, so a single shared connection is required.
	db.SetMaxOpenConns(1)
	return &Embedded{db: db}, nil
}

func (e *Embedded) RegisterTableFromFile(table, path string) error {
	return e.registerTable(table, path)
}

func (e *Embedded) RegisterTableFromString(table, nominalFilename, data string) error {
	vfile.Set(nominalFilename, data)
	return e.registerTable(table, nominalFilename)
}

func (e *Embedded) registerTable(table, filename string) error {
	if err := requireValidTableName(table); err != nil {
		return err
	}

	// Table replacement (§8): DROP before CREATE so that reusing a name
	// observes only the new content.
	if _, err := e.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return &cirerr.BackendError{Backend: "embedded", Op: "drop table", Underlying: err}
	}

	stmt := fmt.Sprintf("CREATE VIRTUAL TABLE %s USING %s(filename=%s)", table, vtab.ModuleName, quoteLiteral(filename))
	if _, err := e.db.Exec(stmt); err != nil {
		return &cirerr.BackendError{Backend: "embedded", Op: "register table", Underlying: err}
	}
	return nil
}

func (e *Embedded) QueryResource(query string) ([]resource.Resource, error) {
	rows, err := e.db.Query(query)
	if err != nil {
		return nil, &cirerr.BackendError{Backend: "embedded", Op: "query", Underlying: err}
	}
	defer rows.Close()

	var out []resource.Resource
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, &cirerr.BackendError{Backend: "embedded", Op: "scan", Underlying: err}
		}
		out = append(out, resource.New(name, value))
	}
	return out, rows.Err()
}

func (e *Embedded) QueryTriple(query string) ([]resource.Triple, error) {
	rows, err := e.db.Query(query)
	if err != nil {
		return nil, &cirerr.BackendError{Backend: "embedded", Op: "query", Underlying: err}
	}
	defer rows.Close()

	var out []resource.Triple
	for rows.Next() {
		var name, value, base string
		if err := rows.Scan(&name, &value, &base); err != nil {
			return nil, &cirerr.BackendError{Backend: "embedded", Op: "scan", Underlying: err}
		}
		out = append(out, resource.NewTriple(name, value, base))
	}
	return out, rows.Err()
}

func (e *Embedded) Close() error {
	return e.db.Close()
}
