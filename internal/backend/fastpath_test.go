package backend

import (
	"reflect"
	"testing"

	"github.com/devolutions-sync/cirup/internal/resource"
)

func fixtureAB() fastPathTables {
	a := []resource.Resource{
		resource.New("k1", "v1"),
		resource.New("k2", "v2"),
		resource.New("k3", "v3"),
	}
	b := []resource.Resource{
		resource.New("k1", "v1"),
		resource.New("k2", "vX"),
	}
	return newFastPathTables(map[string][]resource.Resource{"A": a, "B": b})
}

func TestFastPathDiff(t *testing.T) {
	got, ok := queryResourceFast(QueryDiff, fixtureAB())
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	want := []resource.Resource{resource.New("k3", "v3")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("diff() = %+v, want %+v", got, want)
	}
}

func TestFastPathChange(t *testing.T) {
	got, ok := queryResourceFast(QueryChange, fixtureAB())
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	want := []resource.Resource{resource.New("k2", "v2"), resource.New("k3", "v3")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("change() = %+v, want %+v", got, want)
	}
}

func TestFastPathMerge(t *testing.T) {
	got, ok := queryResourceFast(QueryMerge, fixtureAB())
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	want := []resource.Resource{
		resource.New("k1", "v1"),
		resource.New("k2", "vX"),
		resource.New("k3", "v3"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge() = %+v, want %+v", got, want)
	}
}

func TestFastPathSubtract(t *testing.T) {
	got, ok := queryResourceFast(QuerySubtract, fixtureAB())
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	want := []resource.Resource{resource.New("k3", "v3")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("subtract() = %+v, want %+v", got, want)
	}
}

func TestFastPathIntersect(t *testing.T) {
	got, ok := queryResourceFast(QueryIntersect, fixtureAB())
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	want := []resource.Resource{resource.New("k1", "v1")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("intersect() = %+v, want %+v", got, want)
	}
}

func TestFastPathDiffWithBase(t *testing.T) {
	a := []resource.Resource{resource.New("x", "1")}
	b := []resource.Resource{resource.New("x", "1"), resource.New("y", "2")}
	c := []resource.Resource{resource.New("x", "X"), resource.New("y", "Y")}
	tables := newFastPathTables(map[string][]resource.Resource{"A": a, "B": b, "C": c})

	got, ok := queryTripleFast(QueryDiffWithBase, tables)
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	want := []resource.Triple{resource.NewTriple("y", "2", "Y")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("diffWithBase() = %+v, want %+v", got, want)
	}
}

func TestFastPathSortA(t *testing.T) {
	tables := newFastPathTables(map[string][]resource.Resource{
		"A": {resource.New("b", "2"), resource.New("a", "1")},
	})
	got, ok := queryResourceFast(QuerySortA, tables)
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	want := []resource.Resource{resource.New("a", "1"), resource.New("b", "2")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sort() = %+v, want %+v", got, want)
	}
}

func TestFastPathPullLeftJoinDuplicatesOnMultiMatch(t *testing.T) {
	a := []resource.Resource{resource.New("k", "v")}
	b := []resource.Resource{resource.New("k", "x"), resource.New("k", "y")}
	tables := newFastPathTables(map[string][]resource.Resource{"A": a, "B": b})

	got, ok := queryResourceFast(QueryPullLeftJoin, tables)
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	if len(got) != 2 {
		t.Fatalf("pullLeftJoin() = %+v, want 2 duplicated rows", got)
	}
}

func TestFastPathPushChangedValues(t *testing.T) {
	a := []resource.Resource{resource.New("k", "old")}
	b := []resource.Resource{resource.New("k", "new"), resource.New("other", "v")}
	tables := newFastPathTables(map[string][]resource.Resource{"A": a, "B": b})

	got, ok := queryResourceFast(QueryPushChangedVals, tables)
	if !ok {
		t.Fatalf("expected fast-path hit")
	}
	want := []resource.Resource{resource.New("k", "new")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pushChangedValues() = %+v, want %+v", got, want)
	}
}

func TestFastPathMissTableNotRegistered(t *testing.T) {
	tables := newFastPathTables(map[string][]resource.Resource{"A": {resource.New("k", "v")}})
	if _, ok := queryResourceFast(QueryDiff, tables); ok {
		t.Fatalf("expected miss when B is unregistered")
	}
}

func TestFastPathMissUnknownQuery(t *testing.T) {
	tables := fixtureAB()
	if _, ok := queryResourceFast("select 1", tables); ok {
		t.Fatalf("expected miss for a non-canonical query")
	}
}
