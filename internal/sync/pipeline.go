package sync

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/devolutions-sync/cirup/internal/backend"
	"github.com/devolutions-sync/cirup/internal/cirerr"
	"github.com/devolutions-sync/cirup/internal/config"
	"github.com/devolutions-sync/cirup/internal/revision"
	"github.com/devolutions-sync/cirup/internal/vcs"
)

// Pipeline owns the collaborators a Pull or Push needs: the validated
// config, a VCS collaborator, and the query backend the canonical
// queries run against.
type Pipeline struct {
	Cfg     *config.Config
	VCS     vcs.Collaborator
	Backend backend.QueryBackend
}

// New builds a Pipeline from its three collaborators.
func New(cfg *config.Config, v vcs.Collaborator, b backend.QueryBackend) *Pipeline {
	return &Pipeline{Cfg: cfg, VCS: v, Backend: b}
}

// discover runs Discover+FilterToSet against the repository's source
// directory, as both Pull and Push need the same language set.
func (p *Pipeline) discover() (map[string]LanguageFile, error) {
	sourceDir := filepath.Join(p.Cfg.VCS.LocalPath, p.Cfg.Sync.SourceDir)
	languages, err := Discover(sourceDir, p.Cfg.Sync.MatchLanguageFile, p.Cfg.Sync.MatchLanguageName)
	if err != nil {
		return nil, err
	}
	return FilterToSet(languages, p.Cfg.Sync.SourceLanguage, p.Cfg.Sync.TargetLanguages)
}

// effectiveRange resolves the (old, new) pair a Pull or Push runs
// against: new defaults to the VCS's current revision.
func (p *Pipeline) effectiveRange(old, new string) (revision.Range, error) {
	if new == "" {
		rev, err := p.VCS.CurrentRevision()
		if err != nil {
			return revision.Range{}, err
		}
		new = rev
	}
	return revision.Range{Old: old, New: new}, nil
}

// repoFilespec renders path (an absolute path under the repository
// checkout) as the repo-relative filespec VCS commands expect.
func (p *Pipeline) repoFilespec(path string) (string, error) {
	rel, err := filepath.Rel(p.Cfg.VCS.LocalPath, path)
	if err != nil {
		return "", &cirerr.ValidationError{Subject: "repository path", Reason: err.Error()}
	}
	return filepath.ToSlash(rel), nil
}

// newRunID tags one Pull or Push invocation for log correlation, the way
// the teacher's scan package stamps each run with a fresh uuid.
func newRunID() string {
	return uuid.NewString()
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return &cirerr.IOError{Op: "mkdir", Path: path, Underlying: err}
	}
	return nil
}
