package backend

import (
	"testing"

	"github.com/devolutions-sync/cirup/internal/resource"
)

func TestValidTableName(t *testing.T) {
	valid := []string{"A", "b", "_tmp", "table_1", "T2"}
	invalid := []string{"", "1table", "-nope", "has space", "semi;colon"}

	for _, name := range valid {
		if !validTableName(name) {
			t.Errorf("validTableName(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if validTableName(name) {
			t.Errorf("validTableName(%q) = true, want false", name)
		}
	}
}

func TestCanonicalSQL(t *testing.T) {
	got := canonicalSQL("  SELECT  *\nFROM   A ")
	want := "select * from a"
	if got != want {
		t.Fatalf("canonicalSQL() = %q, want %q", got, want)
	}
}

func TestQuoteLiteral(t *testing.T) {
	got := quoteLiteral("it's a test")
	want := "'it''s a test'"
	if got != want {
		t.Fatalf("quoteLiteral() = %q, want %q", got, want)
	}
}

func TestChunks(t *testing.T) {
	resources := make([]resource.Resource, 5)
	for i := range resources {
		resources[i] = resource.New("k", "v")
	}

	got := chunks(resources, 2)
	if len(got) != 3 || len(got[0]) != 2 || len(got[1]) != 2 || len(got[2]) != 1 {
		t.Fatalf("chunks() = %+v", got)
	}
}

func TestBuildMultiInsertSQL(t *testing.T) {
	resources := []resource.Resource{resource.New("k1", "v1"), resource.New("k2", "v2")}
	got := buildMultiInsertSQL("t", resources)
	want := "INSERT INTO t (key, val) VALUES ('k1','v1'),('k2','v2');"
	if got != want {
		t.Fatalf("buildMultiInsertSQL() = %q, want %q", got, want)
	}
}
