package backend

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/devolutions-sync/cirup/internal/cirerr"
	"github.com/devolutions-sync/cirup/internal/resource"
	"github.com/devolutions-sync/cirup/internal/vfile"
)

// Local is the pure-Go in-memory SQL backend. Registration only caches
// the resources keyed by table name; materialization into the real
// engine is deferred until the first query the fast path can't serve,
// per spec §4.5. Grounded on query_backend.rs's TursoLocalBackend,
// adapted from libsql/Turso's async runtime to modernc.org/sqlite's
// plain database/sql driver.
type Local struct {
	db *sql.DB

	mu           sync.Mutex
	tables       map[string][]resource.Resource
	loadedTables map[string]bool
}

// NewLocal opens a fresh in-memory local-managed engine.
func NewLocal() (*Local, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, &cirerr.BackendError{Backend: "local", Op: "open", Underlying: err}
	}
	db.SetMaxOpenConns(1)
	return &Local{
		db:           db,
		tables:       make(map[string][]resource.Resource),
		loadedTables: make(map[string]bool),
	}, nil
}

func (l *Local) RegisterTableFromFile(table, path string) error {
	return l.registerTableWithResources(table, loadResourcesLogged("local", path))
}

func (l *Local) RegisterTableFromString(table, nominalFilename, data string) error {
	vfile.Set(nominalFilename, data)
	return l.RegisterTableFromFile(table, nominalFilename)
}

func (l *Local) registerTableWithResources(table string, resources []resource.Resource) error {
	if err := requireValidTableName(table); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.tables[table] = resources
	delete(l.loadedTables, table)
	return nil
}

// materializeTable drops and recreates table in the real engine, bulk
// inserting resources in chunks of at most tursoInsertChunkSize rows.
func (l *Local) materializeTable(table string, resources []resource.Resource) error {
	ddl := fmt.Sprintf("DROP TABLE IF EXISTS %s; CREATE TABLE %s (key TEXT, val TEXT);", table, table)
	if _, err := l.db.Exec(ddl); err != nil {
		return &cirerr.BackendError{Backend: "local", Op: "materialize ddl", Underlying: err}
	}
	if len(resources) == 0 {
		return nil
	}

	tx, err := l.db.Begin()
	if err != nil {
		return &cirerr.BackendError{Backend: "local", Op: "begin", Underlying: err}
	}

	for _, chunk := range chunks(resources, tursoInsertChunkSize) {
		if _, err := tx.Exec(buildMultiInsertSQL(table, chunk)); err != nil {
			_ = tx.Rollback()
			return &cirerr.BackendError{Backend: "local", Op: "insert", Underlying: err}
		}
	}

	if _, err := tx.Exec(buildKeyIndexSQL(table)); err != nil {
		_ = tx.Rollback()
		return &cirerr.BackendError{Backend: "local", Op: "index", Underlying: err}
	}

	if err := tx.Commit(); err != nil {
		return &cirerr.BackendError{Backend: "local", Op: "commit", Underlying: err}
	}
	return nil
}

// materializeCachedTables brings every registered-but-not-yet-materialized
// table into the real engine. Called whenever a query misses the fast
// path.
func (l *Local) materializeCachedTables() error {
	l.mu.Lock()
	pending := make(map[string][]resource.Resource)
	for table, resources := range l.tables {
		if !l.loadedTables[table] {
			pending[table] = resources
		}
	}
	l.mu.Unlock()

	for table, resources := range pending {
		if err := l.materializeTable(table, resources); err != nil {
			return err
		}
		l.mu.Lock()
		l.loadedTables[table] = true
		l.mu.Unlock()
	}
	return nil
}

func (l *Local) cachedTables() fastPathTables {
	l.mu.Lock()
	defer l.mu.Unlock()
	return newFastPathTables(l.tables)
}

func (l *Local) QueryResource(query string) ([]resource.Resource, error) {
	if resources, ok := queryResourceFast(canonicalSQL(query), l.cachedTables()); ok {
		return resources, nil
	}

	if err := l.materializeCachedTables(); err != nil {
		return nil, err
	}

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, &cirerr.BackendError{Backend: "local", Op: "query", Underlying: err}
	}
	defer rows.Close()

	var out []resource.Resource
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, &cirerr.BackendError{Backend: "local", Op: "scan", Underlying: err}
		}
		out = append(out, resource.New(name, value))
	}
	return out, rows.Err()
}

func (l *Local) QueryTriple(query string) ([]resource.Triple, error) {
	if triples, ok := queryTripleFast(canonicalSQL(query), l.cachedTables()); ok {
		return triples, nil
	}

	if err := l.materializeCachedTables(); err != nil {
		return nil, err
	}

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, &cirerr.BackendError{Backend: "local", Op: "query", Underlying: err}
	}
	defer rows.Close()

	var out []resource.Triple
	for rows.Next() {
		var name, value, base string
		if err := rows.Scan(&name, &value, &base); err != nil {
			return nil, &cirerr.BackendError{Backend: "local", Op: "scan", Underlying: err}
		}
		out = append(out, resource.NewTriple(name, value, base))
	}
	return out, rows.Err()
}

func (l *Local) Close() error {
	return l.db.Close()
}
