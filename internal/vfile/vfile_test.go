package vfile

import "testing"

func TestSetGet(t *testing.T) {
	Set("59398a3e-757b-4844-b103-047d32324a4e", "foo")
	Set("48acadf4-4821-49df-a318-537db5000d2b", "bar")

	if got, ok := Get("59398a3e-757b-4844-b103-047d32324a4e"); !ok || got != "foo" {
		t.Fatalf("Get() = %q, %v, want %q, true", got, ok, "foo")
	}
	if got, ok := Get("48acadf4-4821-49df-a318-537db5000d2b"); !ok || got != "bar" {
		t.Fatalf("Get() = %q, %v, want %q, true", got, ok, "bar")
	}
}

func TestGetMissing(t *testing.T) {
	if _, ok := Get("does-not-exist"); ok {
		t.Fatalf("expected Get() to report absence for an unknown id")
	}
}

func TestSetOverwrites(t *testing.T) {
	Set("table.json", "first")
	Set("table.json", "second")

	if got, _ := Get("table.json"); got != "second" {
		t.Fatalf("Get() = %q, want %q", got, "second")
	}
}
