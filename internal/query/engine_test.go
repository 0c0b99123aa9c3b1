package query

import (
	"testing"

	"github.com/devolutions-sync/cirup/internal/backend"
)

func newTestBackend(t *testing.T) backend.QueryBackend {
	t.Helper()
	b, err := backend.NewLocal()
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestQueryDiff(t *testing.T) {
	b := newTestBackend(t)
	if err := b.RegisterTableFromString("A", "a.restext", "k1=v1\r\nk2=v2\r\nk3=v3\r\n"); err != nil {
		t.Fatalf("register A: %v", err)
	}
	if err := b.RegisterTableFromString("B", "b.restext", "k1=v1\r\nk2=vX\r\n"); err != nil {
		t.Fatalf("register B: %v", err)
	}

	q, err := Diff(b, "a.restext", "b.restext")
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}

	got, err := q.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "k3" || got[0].Value != "v3" {
		t.Fatalf("Run() = %+v, want [{k3 v3}]", got)
	}
}

func TestQueryDiffWithBase(t *testing.T) {
	b := newTestBackend(t)
	b.RegisterTableFromString("A", "old.restext", "x=1\r\n")
	b.RegisterTableFromString("B", "new.restext", "x=1\r\ny=2\r\n")
	b.RegisterTableFromString("C", "base.restext", "x=X\r\ny=Y\r\n")

	q, err := DiffWithBase(b, "old.restext", "new.restext", "base.restext")
	if err != nil {
		t.Fatalf("DiffWithBase() error = %v", err)
	}

	got, err := q.RunTriple()
	if err != nil {
		t.Fatalf("RunTriple() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "y" || got[0].Value != "2" || got[0].Base != "Y" {
		t.Fatalf("RunTriple() = %+v", got)
	}
}

func TestQuerySort(t *testing.T) {
	b := newTestBackend(t)
	b.RegisterTableFromString("A", "a.restext", "b=2\r\na=1\r\n")

	q, err := Sort(b, "a.restext")
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	got, err := q.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Fatalf("Run() = %+v, want sorted by name", got)
	}
}
