package backend

import (
	"sort"

	"github.com/devolutions-sync/cirup/internal/resource"
)

// fastPathTables is the minimal view the evaluator needs: the cached
// resources registered under each of the fixed identifiers A, B, C.
type fastPathTables struct {
	a, b, c []resource.Resource
	hasA, hasB, hasC bool
}

func newFastPathTables(tables map[string][]resource.Resource) fastPathTables {
	a, hasA := tables["A"]
	b, hasB := tables["B"]
	c, hasC := tables["C"]
	return fastPathTables{a: a, b: b, c: c, hasA: hasA, hasB: hasB, hasC: hasC}
}

// queryResourceFast evaluates a canonicalized SQL string directly on
// cached resources, per spec §4.5's fast-path table. ok is false when
// sql isn't one of the resource-shaped canonical queries or a required
// table hasn't been registered yet, signalling the caller to fall back
// to the SQL engine.
func queryResourceFast(sql string, tables fastPathTables) (resources []resource.Resource, ok bool) {
	switch sql {
	case QuerySelectA:
		if !tables.hasA {
			return nil, false
		}
		return append([]resource.Resource(nil), tables.a...), true

	case QuerySortA:
		if !tables.hasA {
			return nil, false
		}
		sorted := append([]resource.Resource(nil), tables.a...)
		sortResourcesByName(sorted)
		return sorted, true

	case QueryDiff, QuerySubtract:
		if !tables.hasA || !tables.hasB {
			return nil, false
		}
		bKeys := namesOf(tables.b)
		var out []resource.Resource
		for _, r := range tables.a {
			if !bKeys[r.Name] {
				out = append(out, r)
			}
		}
		return out, true

	case QueryChange:
		if !tables.hasA || !tables.hasB {
			return nil, false
		}
		bValues := valuesByName(tables.b)
		var out []resource.Resource
		for _, r := range tables.a {
			other, present := bValues[r.Name]
			if !present || other != r.Value {
				out = append(out, r)
			}
		}
		return out, true

	case QueryMerge:
		if !tables.hasA || !tables.hasB {
			return nil, false
		}
		aValues := valuesByName(tables.a)
		bValues := valuesByName(tables.b)
		seen := make(map[[2]string]bool, len(tables.a)+len(tables.b))
		out := make([]resource.Resource, 0, len(tables.a)+len(tables.b))

		for _, r := range tables.a {
			value := r.Value
			if bv, present := bValues[r.Name]; present {
				value = bv
			}
			pair := [2]string{r.Name, value}
			if !seen[pair] {
				seen[pair] = true
				out = append(out, resource.New(r.Name, value))
			}
		}
		for _, r := range tables.b {
			if _, present := aValues[r.Name]; present {
				continue
			}
			pair := [2]string{r.Name, r.Value}
			if !seen[pair] {
				seen[pair] = true
				out = append(out, r)
			}
		}
		return out, true

	case QueryIntersect:
		if !tables.hasA || !tables.hasB {
			return nil, false
		}
		bPairs := pairsOf(tables.b)
		seen := make(map[[2]string]bool)
		var out []resource.Resource
		for _, r := range tables.a {
			pair := [2]string{r.Name, r.Value}
			if bPairs[pair] && !seen[pair] {
				seen[pair] = true
				out = append(out, r)
			}
		}
		return out, true

	case QueryPullLeftJoin:
		if !tables.hasA || !tables.hasB {
			return nil, false
		}
		matchCount := make(map[string]int, len(tables.b))
		for _, r := range tables.b {
			matchCount[r.Name]++
		}
		var out []resource.Resource
		for _, r := range tables.a {
			repeat := matchCount[r.Name]
			if repeat == 0 {
				repeat = 1
			}
			for i := 0; i < repeat; i++ {
				out = append(out, r)
			}
		}
		return out, true

	case QueryPushChangedVals:
		if !tables.hasA || !tables.hasB {
			return nil, false
		}
		aValues := make(map[string][]string, len(tables.a))
		for _, r := range tables.a {
			aValues[r.Name] = append(aValues[r.Name], r.Value)
		}
		var out []resource.Resource
		for _, r := range tables.b {
			for _, leftValue := range aValues[r.Name] {
				if leftValue != r.Value {
					out = append(out, r)
				}
			}
		}
		return out, true
	}

	return nil, false
}

// queryTripleFast evaluates the single triple-shaped canonical query,
// diff-with-base, directly on cached resources.
func queryTripleFast(sql string, tables fastPathTables) (triples []resource.Triple, ok bool) {
	if sql != QueryDiffWithBase {
		return nil, false
	}
	if !tables.hasA || !tables.hasB || !tables.hasC {
		return nil, false
	}

	aKeys := namesOf(tables.a)
	cValues := valuesByName(tables.c)

	var out []resource.Triple
	for _, r := range tables.b {
		if aKeys[r.Name] {
			continue
		}
		if base, present := cValues[r.Name]; present {
			out = append(out, resource.NewTriple(r.Name, r.Value, base))
		}
	}
	return out, true
}

func namesOf(resources []resource.Resource) map[string]bool {
	set := make(map[string]bool, len(resources))
	for _, r := range resources {
		set[r.Name] = true
	}
	return set
}

func valuesByName(resources []resource.Resource) map[string]string {
	m := make(map[string]string, len(resources))
	for _, r := range resources {
		m[r.Name] = r.Value
	}
	return m
}

func pairsOf(resources []resource.Resource) map[[2]string]bool {
	set := make(map[[2]string]bool, len(resources))
	for _, r := range resources {
		set[[2]string{r.Name, r.Value}] = true
	}
	return set
}

func sortResourcesByName(resources []resource.Resource) {
	sort.SliceStable(resources, func(i, j int) bool {
		return resources[i].Name < resources[j].Name
	})
}
