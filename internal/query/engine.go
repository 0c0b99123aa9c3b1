// Package query implements the canonical query corpus and the
// CirupEngine/CirupQuery builder API that drives it (spec §4.6),
// against any backend.QueryBackend. Grounded on cirup_core's query.rs,
// adapted so the engine owns an injected backend instead of a single
// hard-coded rusqlite connection — the embedded/local/remote choice
// lives in internal/config and internal/backend, not here.
package query

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/devolutions-sync/cirup/internal/backend"
	"github.com/devolutions-sync/cirup/internal/format"
	"github.com/devolutions-sync/cirup/internal/resource"
)

// Engine owns one backend instance and the lifetime of its registered
// tables; a new Engine is created per CirupQuery by default, and
// re-registering a table name drops prior rows (backend.QueryBackend's
// contract).
type Engine struct {
	Backend backend.QueryBackend
}

func NewEngine(b backend.QueryBackend) *Engine {
	return &Engine{Backend: b}
}

func (e *Engine) RegisterTableFromFile(table, filename string) error {
	return e.Backend.RegisterTableFromFile(table, filename)
}

func (e *Engine) RegisterTableFromString(table, filename, data string) error {
	return e.Backend.RegisterTableFromString(table, filename, data)
}

func (e *Engine) QueryResource(query string) ([]resource.Resource, error) {
	return e.Backend.QueryResource(query)
}

func (e *Engine) QueryTriple(query string) ([]resource.Triple, error) {
	return e.Backend.QueryTriple(query)
}

// Query is a memoized canonical query bound to 1-3 registered file
// tables (A, B, C in that order).
type Query struct {
	engine *Engine
	sql    string
}

// newQuery registers up to three files as A, B, C and memoizes sql,
// mirroring CirupQuery::new.
func newQuery(b backend.QueryBackend, sql, fileOne string, fileTwo, fileThree *string) (*Query, error) {
	engine := NewEngine(b)

	if err := engine.RegisterTableFromFile("A", fileOne); err != nil {
		return nil, err
	}
	if fileTwo != nil {
		if err := engine.RegisterTableFromFile("B", *fileTwo); err != nil {
			return nil, err
		}
	}
	if fileThree != nil {
		if err := engine.RegisterTableFromFile("C", *fileThree); err != nil {
			return nil, err
		}
	}

	return &Query{engine: engine, sql: sql}, nil
}

func ptr(s string) *string { return &s }

// Print returns "SELECT * FROM A" over file.
func Print(b backend.QueryBackend, file string) (*Query, error) {
	return newQuery(b, backend.QuerySelectA, file, nil, nil)
}

// Convert is semantically identical to Print: it exists as a distinct
// constructor because the CLI verb differs (file-convert writes through
// a different codec), even though the canonical SQL is the same.
func Convert(b backend.QueryBackend, file string) (*Query, error) {
	return newQuery(b, backend.QuerySelectA, file, nil, nil)
}

// Sort returns A's rows ordered by name.
func Sort(b backend.QueryBackend, file string) (*Query, error) {
	return newQuery(b, backend.QuerySortA, file, nil, nil)
}

func Diff(b backend.QueryBackend, fileOne, fileTwo string) (*Query, error) {
	return newQuery(b, backend.QueryDiff, fileOne, ptr(fileTwo), nil)
}

func Change(b backend.QueryBackend, fileOne, fileTwo string) (*Query, error) {
	return newQuery(b, backend.QueryChange, fileOne, ptr(fileTwo), nil)
}

func Merge(b backend.QueryBackend, fileOne, fileTwo string) (*Query, error) {
	return newQuery(b, backend.QueryMerge, fileOne, ptr(fileTwo), nil)
}

func Intersect(b backend.QueryBackend, fileOne, fileTwo string) (*Query, error) {
	return newQuery(b, backend.QueryIntersect, fileOne, ptr(fileTwo), nil)
}

func Subtract(b backend.QueryBackend, fileOne, fileTwo string) (*Query, error) {
	return newQuery(b, backend.QuerySubtract, fileOne, ptr(fileTwo), nil)
}

// DiffWithBase registers old as A, new as B, base as C, matching
// query_diff_with_base's argument order.
func DiffWithBase(b backend.QueryBackend, old, new, base string) (*Query, error) {
	return newQuery(b, backend.QueryDiffWithBase, old, ptr(new), ptr(base))
}

// PullLeftJoin and PushChangedValues have no standalone constructor in
// the original (they're composed inline by the sync pipeline) but are
// exposed here as named queries so internal/sync doesn't hand-build SQL.
func PullLeftJoin(b backend.QueryBackend, fileOne, fileTwo string) (*Query, error) {
	return newQuery(b, backend.QueryPullLeftJoin, fileOne, ptr(fileTwo), nil)
}

func PushChangedValues(b backend.QueryBackend, fileOne, fileTwo string) (*Query, error) {
	return newQuery(b, backend.QueryPushChangedVals, fileOne, ptr(fileTwo), nil)
}

func (q *Query) Run() ([]resource.Resource, error) {
	return q.engine.QueryResource(q.sql)
}

func (q *Query) RunTriple() ([]resource.Triple, error) {
	return q.engine.QueryTriple(q.sql)
}

// RunInteractive writes the resources through the format codec to
// outFile when given, otherwise prints a two-column table to stdout.
func (q *Query) RunInteractive(outFile string) error {
	resources, err := q.Run()
	if err != nil {
		return err
	}
	if outFile != "" {
		return format.SaveFile(outFile, resources)
	}
	printResourcesPretty(os.Stdout, resources)
	return nil
}

// RunTripleInteractive prints triples as a line-per-field block: name,
// base, value, blank line between triples (query.rs's
// print_triples_pretty).
func (q *Query) RunTripleInteractive() error {
	triples, err := q.RunTriple()
	if err != nil {
		return err
	}
	printTriplesPretty(os.Stdout, triples)
	return nil
}

func printResourcesPretty(w io.Writer, resources []resource.Resource) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tvalue")
	for _, r := range resources {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Value)
	}
	tw.Flush()
}

func printTriplesPretty(w io.Writer, triples []resource.Triple) {
	for _, t := range triples {
		fmt.Fprintf(w, "name: %s\n", t.Name)
		fmt.Fprintf(w, "base: %s\n", t.Base)
		fmt.Fprintf(w, "value: %s\n", t.Value)
		fmt.Fprintln(w)
	}
}
