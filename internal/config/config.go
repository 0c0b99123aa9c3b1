// Package config loads and validates cirup's TOML configuration
// document (spec §4.8, §6): [vcs], [sync] (alias [job]), [query], and
// [query.turso]. Grounded on the teacher's internal/config (struct-tag
// decode, fmt.Errorf("…: %w", err) wrapping) and on standardbeagle-lci's
// confirmed use of pelletier/go-toml/v2 for a real section-headers
// document.
package config

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/devolutions-sync/cirup/internal/cirerr"
)

// BackendKind is the resolved, alias-free query backend selection.
type BackendKind string

const (
	BackendEmbedded BackendKind = "embedded"
	BackendLocal    BackendKind = "local-managed"
	BackendRemote   BackendKind = "remote-managed"
)

// ParseBackendKind resolves a user-supplied backend tag (case
// insensitive, whitespace trimmed) through the alias table in spec §6.
func ParseBackendKind(value string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "embedded", "rusqlite":
		return BackendEmbedded, nil
	case "local-managed", "turso-local", "turso_local", "turso":
		return BackendLocal, nil
	case "remote-managed", "turso-remote", "turso_remote", "libsql-remote", "libsql_remote":
		return BackendRemote, nil
	default:
		return "", &cirerr.ConfigError{Field: "query.backend", Underlying: errUnsupportedBackend(value)}
	}
}

type errUnsupportedBackend string

func (e errUnsupportedBackend) Error() string {
	return "unsupported query backend '" + string(e) + "': expected one of embedded, local-managed, remote-managed"
}

// VCSConfig is the [vcs] section.
type VCSConfig struct {
	Plugin     string `toml:"plugin"`
	LocalPath  string `toml:"local_path"`
	RemotePath string `toml:"remote_path"`
}

// SyncConfig is the [sync] section, also accepted under the legacy
// [job] alias (resolved by Load, not by the TOML tag, since go-toml/v2
// has no native "rename group" mechanism).
type SyncConfig struct {
	SourceLanguage    string   `toml:"source_language"`
	TargetLanguages   []string `toml:"target_languages"`
	MatchLanguageFile string   `toml:"match_language_file"`
	MatchLanguageName string   `toml:"match_language_name"`
	SourceDir         string   `toml:"source_dir"`
	WorkingDir        string   `toml:"working_dir"`
	ExportDir         string   `toml:"export_dir"` // legacy alias for working_dir
}

// TursoConfig is the [query.turso] section.
type TursoConfig struct {
	URL       string `toml:"url"`
	AuthToken string `toml:"auth_token"`
}

// QueryConfig is the [query] section.
type QueryConfig struct {
	Backend string      `toml:"backend"`
	Turso   TursoConfig `toml:"turso"`
}

// document is the raw shape decoded from TOML, including both the
// canonical [sync] section and its legacy [job] alias.
type document struct {
	VCS   VCSConfig   `toml:"vcs"`
	Sync  SyncConfig  `toml:"sync"`
	Job   SyncConfig  `toml:"job"`
	Query QueryConfig `toml:"query"`
}

// Config is the validated, alias-resolved configuration the rest of
// cirup consumes.
type Config struct {
	VCS     VCSConfig
	Sync    SyncConfig
	Query   QueryConfig
	Backend BackendKind
}

// Load reads and validates path as a cirup TOML configuration document.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &cirerr.IOError{Op: "read", Path: path, Underlying: err}
	}
	return Parse(data)
}

// Parse validates raw TOML bytes, the form Load and tests both use.
func Parse(data []byte) (*Config, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &cirerr.ConfigError{Field: "(document)", Underlying: err}
	}

	sync := resolveSyncAlias(doc.Sync, doc.Job)

	if sync.SourceLanguage == "" {
		return nil, &cirerr.ConfigError{Field: "sync.source_language"}
	}

	backendTag := doc.Query.Backend
	if backendTag == "" {
		if envTag := os.Getenv("CIRUP_QUERY_BACKEND"); envTag != "" {
			backendTag = envTag
		} else {
			backendTag = string(BackendLocal)
		}
	}
	backendKind, err := ParseBackendKind(backendTag)
	if err != nil {
		return nil, err
	}

	turso := resolveTursoConfig(doc.Query.Turso)

	return &Config{
		VCS:     doc.VCS,
		Sync:    sync,
		Query:   QueryConfig{Backend: string(backendKind), Turso: turso},
		Backend: backendKind,
	}, nil
}

// resolveSyncAlias merges the legacy [job] section into [sync]: an
// explicit [sync] field wins over its [job] counterpart, and export_dir
// stands in for working_dir when the latter is unset.
func resolveSyncAlias(sync, job SyncConfig) SyncConfig {
	merged := sync
	if merged.SourceLanguage == "" {
		merged.SourceLanguage = job.SourceLanguage
	}
	if len(merged.TargetLanguages) == 0 {
		merged.TargetLanguages = job.TargetLanguages
	}
	if merged.MatchLanguageFile == "" {
		merged.MatchLanguageFile = job.MatchLanguageFile
	}
	if merged.MatchLanguageName == "" {
		merged.MatchLanguageName = job.MatchLanguageName
	}
	if merged.SourceDir == "" {
		merged.SourceDir = job.SourceDir
	}
	if merged.WorkingDir == "" {
		merged.WorkingDir = job.WorkingDir
	}
	if merged.WorkingDir == "" {
		merged.WorkingDir = merged.ExportDir
	}
	if merged.WorkingDir == "" {
		merged.WorkingDir = job.ExportDir
	}
	return merged
}

// resolveTursoConfig resolves the remote backend's URL and auth token:
// config first, then for the URL CIRUP_TURSO_URL, LIBSQL_URL,
// LIBSQL_HRANA_URL, and for the token CIRUP_TURSO_AUTH_TOKEN,
// LIBSQL_AUTH_TOKEN, TURSO_AUTH_TOKEN, each in that order.
func resolveTursoConfig(t TursoConfig) TursoConfig {
	if t.URL == "" {
		t.URL = firstNonEmptyEnv("CIRUP_TURSO_URL", "LIBSQL_URL", "LIBSQL_HRANA_URL")
	}
	if t.AuthToken == "" {
		t.AuthToken = firstNonEmptyEnv("CIRUP_TURSO_AUTH_TOKEN", "LIBSQL_AUTH_TOKEN", "TURSO_AUTH_TOKEN")
	}
	return t
}

func firstNonEmptyEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// RequireTursoURL validates that a remote-managed backend has a URL to
// connect to, surfaced as a ConfigError by the backend builder per §7.
func (c *Config) RequireTursoURL() error {
	if c.Backend == BackendRemote && c.Query.Turso.URL == "" {
		return &cirerr.ConfigError{Field: "query.turso.url"}
	}
	return nil
}
