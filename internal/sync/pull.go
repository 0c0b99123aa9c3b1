package sync

import (
	"os"
	"path/filepath"

	"github.com/devolutions-sync/cirup/internal/logger"
	"github.com/devolutions-sync/cirup/internal/query"
	"github.com/devolutions-sync/cirup/internal/revision"
)

// Pull materialises the source language and every target language at the
// given range into the working directory, tagging each output file name
// with the "~old-new~" marker (spec §4.7).
func (p *Pipeline) Pull(old, new string, showChanges bool) error {
	runID := newRunID()
	logger.Info("pull %s: starting (old=%q new=%q)", runID, old, new)

	if err := p.VCS.Pull(); err != nil {
		return err
	}

	rng, err := p.effectiveRange(old, new)
	if err != nil {
		return err
	}

	languages, err := p.discover()
	if err != nil {
		return err
	}

	if err := ensureDir(p.Cfg.Sync.WorkingDir); err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "cirup-pull-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempDir)

	sourceFile := languages[p.Cfg.Sync.SourceLanguage]
	sourceFilename := filepath.Base(sourceFile.Path)
	sourceFilespec, err := p.repoFilespec(sourceFile.Path)
	if err != nil {
		return err
	}

	workingSourcePath := revision.AppendToFileName(filepath.Join(p.Cfg.Sync.WorkingDir, sourceFilename), rng)

	if !rng.HasOld() {
		if err := p.VCS.Show(sourceFilespec, rng.New, workingSourcePath); err != nil {
			return err
		}
	} else {
		oldPath := filepath.Join(tempDir, "old-"+sourceFilename)
		newPath := filepath.Join(tempDir, "new-"+sourceFilename)
		if err := p.VCS.Show(sourceFilespec, rng.Old, oldPath); err != nil {
			return err
		}
		if err := p.VCS.Show(sourceFilespec, rng.New, newPath); err != nil {
			return err
		}

		var q *query.Query
		if showChanges {
			q, err = query.Change(p.Backend, oldPath, newPath)
		} else {
			q, err = query.Diff(p.Backend, oldPath, newPath)
		}
		if err != nil {
			return err
		}
		if err := q.RunInteractive(workingSourcePath); err != nil {
			return err
		}
	}

	for lang, file := range languages {
		if lang == p.Cfg.Sync.SourceLanguage {
			continue
		}

		targetFilename := filepath.Base(file.Path)
		targetFilespec, err := p.repoFilespec(file.Path)
		if err != nil {
			return err
		}

		targetAtNew := filepath.Join(tempDir, "new-"+targetFilename)
		if err := p.VCS.Show(targetFilespec, rng.New, targetAtNew); err != nil {
			return err
		}

		var q *query.Query
		if !rng.HasOld() {
			q, err = query.Diff(p.Backend, workingSourcePath, targetAtNew)
		} else {
			q, err = query.PullLeftJoin(p.Backend, workingSourcePath, targetAtNew)
		}
		if err != nil {
			return err
		}

		targetOutPath := revision.AppendToFileName(filepath.Join(p.Cfg.Sync.WorkingDir, targetFilename), rng)
		if err := q.RunInteractive(targetOutPath); err != nil {
			return err
		}
	}

	logger.Info("pull %s: finished, range %s", runID, rng.Marker())
	return nil
}
