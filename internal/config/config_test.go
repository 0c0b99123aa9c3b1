package config

import "testing"

func TestParseBackendKindAliases(t *testing.T) {
	cases := map[string]BackendKind{
		"embedded":      BackendEmbedded,
		"rusqlite":      BackendEmbedded,
		"turso":         BackendLocal,
		"turso-local":   BackendLocal,
		"turso_local":   BackendLocal,
		"local-managed": BackendLocal,
		"turso-remote":  BackendRemote,
		"LIBSQL_REMOTE": BackendRemote,
		" turso_remote ": BackendRemote,
	}

	for tag, want := range cases {
		got, err := ParseBackendKind(tag)
		if err != nil {
			t.Fatalf("ParseBackendKind(%q) error = %v", tag, err)
		}
		if got != want {
			t.Errorf("ParseBackendKind(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestParseBackendKindUnknown(t *testing.T) {
	if _, err := ParseBackendKind("made-up"); err == nil {
		t.Fatalf("expected error for unknown backend tag")
	}
}

func TestParseRequiresSourceLanguage(t *testing.T) {
	doc := `
[vcs]
plugin = "git"
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatalf("expected error for missing sync.source_language")
	}
}

func TestParseSyncSection(t *testing.T) {
	doc := `
[vcs]
plugin = "git"
local_path = "/tmp/repo"
remote_path = "https://example.com/repo.git"

[sync]
source_language = "en"
target_languages = ["fr", "de"]
working_dir = "/tmp/work"
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Sync.SourceLanguage != "en" {
		t.Fatalf("SourceLanguage = %q", cfg.Sync.SourceLanguage)
	}
	if len(cfg.Sync.TargetLanguages) != 2 {
		t.Fatalf("TargetLanguages = %+v", cfg.Sync.TargetLanguages)
	}
	if cfg.Backend != BackendLocal {
		t.Fatalf("Backend = %q, want default local-managed", cfg.Backend)
	}
}

func TestParseJobAliasAndExportDir(t *testing.T) {
	doc := `
[job]
source_language = "en"
export_dir = "/tmp/legacy-export"
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Sync.SourceLanguage != "en" {
		t.Fatalf("SourceLanguage = %q, want en", cfg.Sync.SourceLanguage)
	}
	if cfg.Sync.WorkingDir != "/tmp/legacy-export" {
		t.Fatalf("WorkingDir = %q, want export_dir fallback", cfg.Sync.WorkingDir)
	}
}

func TestRequireTursoURL(t *testing.T) {
	cfg := &Config{Backend: BackendRemote}
	if err := cfg.RequireTursoURL(); err == nil {
		t.Fatalf("expected ConfigError for missing turso url")
	}

	cfg.Query.Turso.URL = "libsql://example.turso.io"
	if err := cfg.RequireTursoURL(); err != nil {
		t.Fatalf("RequireTursoURL() error = %v", err)
	}
}

func TestParseQueryBackendFromEnv(t *testing.T) {
	t.Setenv("CIRUP_QUERY_BACKEND", "embedded")

	doc := `
[sync]
source_language = "en"
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Backend != BackendEmbedded {
		t.Fatalf("Backend = %q, want embedded from env", cfg.Backend)
	}
}
