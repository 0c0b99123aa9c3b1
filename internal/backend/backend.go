// Package backend implements the three query backend variants (embedded,
// local-managed, remote-managed) behind a single interface, plus the
// canonical SQL corpus and fast-path evaluator they share. Grounded on
// cirup_core's query_backend.rs: RusqliteBackend becomes Embedded,
// TursoLocalBackend becomes Local, TursoRemoteBackend becomes Remote.
package backend

import (
	"strings"

	"github.com/devolutions-sync/cirup/internal/cirerr"
	"github.com/devolutions-sync/cirup/internal/format"
	"github.com/devolutions-sync/cirup/internal/logger"
	"github.com/devolutions-sync/cirup/internal/resource"
)

// loadResourcesLogged loads a resource file for registration into a
// managed-table backend. A load failure is logged and treated as an
// empty table rather than aborting registration, matching
// query_backend.rs's load_resources, which never lets a bad file stop
// a sync run over the rest of the table set.
func loadResourcesLogged(backendName, filename string) []resource.Resource {
	resources, err := format.LoadFile(filename)
	if err != nil {
		logger.Error("%s backend: failed to load %s: %v", backendName, filename, err)
		return nil
	}
	return resources
}

// QueryBackend is the uniform capability set every backend variant
// exposes, mirroring spec §4.5.
type QueryBackend interface {
	RegisterTableFromFile(table, path string) error
	RegisterTableFromString(table, nominalFilename, data string) error
	QueryResource(sql string) ([]resource.Resource, error)
	QueryTriple(sql string) ([]resource.Triple, error)
	Close() error
}

// The canonical SQL corpus. Strings are lowercase and single-spaced,
// matching canonicalSQL's output, so a fast path lookup is a plain map
// hit after canonicalization.
const (
	QuerySelectA         = "select * from a"
	QuerySortA           = "select * from a order by a.key"
	QueryDiff            = "select a.key, a.val, b.val from a left outer join b on a.key = b.key where (b.val is null)"
	QueryDiffWithBase    = "select b.key, b.val, c.val from b left outer join a on b.key = a.key inner join c on b.key = c.key where (a.val is null)"
	QueryChange          = "select a.key, a.val, b.val from a left outer join b on a.key = b.key where (b.val is null) or (a.val <> b.val)"
	QueryMerge           = "select a.key, case when b.val is not null then b.val else a.val end from a left outer join b on a.key = b.key union select b.key, b.val from b left outer join a on a.key = b.key where (a.key is null)"
	QueryIntersect       = "select * from a intersect select * from b"
	QuerySubtract        = "select * from a where a.key not in (select b.key from b)"
	QueryPullLeftJoin    = "select a.key, a.val from a left outer join b on a.key = b.key"
	QueryPushChangedVals = "select b.key, b.val from b inner join a on (a.key = b.key) and (a.val <> b.val)"
)

const tursoInsertChunkSize = 2000

// canonicalSQL lowercases and collapses whitespace, the normalization
// the fast-path evaluator applies before comparing against the corpus.
func canonicalSQL(input string) string {
	fields := strings.Fields(input)
	return strings.ToLower(strings.Join(fields, " "))
}

// validTableName enforces the embedded vtab module's identifier rule:
// first character alphabetic or underscore, remainder alphanumeric or
// underscore. It guards every backend before SQL interpolation.
func validTableName(table string) bool {
	if table == "" {
		return false
	}
	for i, r := range table {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func requireValidTableName(table string) error {
	if !validTableName(table) {
		return &cirerr.ValidationError{Subject: "table name", Reason: "invalid identifier: " + table}
	}
	return nil
}

// quoteLiteral single-quote-escapes value by doubling embedded quotes,
// for backends that must interpolate literals rather than bind
// parameters (the remote path's multi-VALUES inserts).
func quoteLiteral(value string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range value {
		if r == '\'' {
			b.WriteString("''")
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// buildMultiInsertSQL renders a single "INSERT INTO t (key, val) VALUES
// (...), (...)" statement for one chunk of resources.
func buildMultiInsertSQL(table string, resources []resource.Resource) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (key, val) VALUES ")
	for i, r := range resources {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		b.WriteString(quoteLiteral(r.Name))
		b.WriteByte(',')
		b.WriteString(quoteLiteral(r.Value))
		b.WriteByte(')')
	}
	b.WriteByte(';')
	return b.String()
}

func buildKeyIndexSQL(table string) string {
	return "CREATE INDEX IF NOT EXISTS idx_" + table + "_key ON " + table + " (key);"
}

// chunks splits resources into groups of at most tursoInsertChunkSize,
// bounding statement size and round-trips per §4.4.
func chunks(resources []resource.Resource, size int) [][]resource.Resource {
	if len(resources) == 0 {
		return nil
	}
	var out [][]resource.Resource
	for start := 0; start < len(resources); start += size {
		end := start + size
		if end > len(resources) {
			end = len(resources)
		}
		out = append(out, resources[start:end])
	}
	return out
}
