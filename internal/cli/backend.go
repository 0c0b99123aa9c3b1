// Package cli is cirup's command-line dispatcher: it parses argv,
// builds the collaborators each verb needs (backend, VCS, config), and
// delegates to internal/query and internal/sync. Grounded on the
// teacher's apps/cli/internal/cli package: a flat Run(args) switch
// delegating to one function per verb, each owning a stdlib flag.FlagSet.
package cli

import (
	"github.com/devolutions-sync/cirup/internal/backend"
	"github.com/devolutions-sync/cirup/internal/config"
	"github.com/devolutions-sync/cirup/internal/logger"
)

// buildBackend constructs the query backend cfg.Backend names. A remote
// backend that fails to construct falls back to the embedded backend
// with a logged warning; every other construction failure is fatal.
func buildBackend(cfg *config.Config) (backend.QueryBackend, error) {
	switch cfg.Backend {
	case config.BackendEmbedded:
		return backend.NewEmbedded()
	case config.BackendRemote:
		if err := cfg.RequireTursoURL(); err != nil {
			return nil, err
		}
		b, err := backend.NewRemote(cfg.Query.Turso.URL, cfg.Query.Turso.AuthToken)
		if err != nil {
			logger.Warn("remote backend construction failed (%v), falling back to embedded", err)
			return backend.NewEmbedded()
		}
		return b, nil
	default:
		return backend.NewLocal()
	}
}

// defaultConfig is used by the standalone file-* commands when no
// --config was given: a minimal document selecting the local-managed
// backend, matching config.Parse's own default.
func defaultConfig() *config.Config {
	return &config.Config{Backend: config.BackendLocal}
}
