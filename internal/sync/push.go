package sync

import (
	"os"
	"path/filepath"

	"github.com/devolutions-sync/cirup/internal/format"
	"github.com/devolutions-sync/cirup/internal/logger"
	"github.com/devolutions-sync/cirup/internal/query"
	"github.com/devolutions-sync/cirup/internal/revision"
)

// Push merges human-edited translations sitting in the working
// directory, tagged with the exact "~old-new~" marker, back into the
// repository's language files (spec §4.7).
func (p *Pipeline) Push(old, new string) error {
	runID := newRunID()
	logger.Info("push %s: starting (old=%q new=%q)", runID, old, new)

	rng, err := p.effectiveRange(old, new)
	if err != nil {
		return err
	}

	languages, err := p.discover()
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "cirup-push-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempDir)

	referenceSourcePath, err := p.materializeReferenceSource(languages, rng, tempDir)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(p.Cfg.Sync.WorkingDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		marker, strippedName := revision.ExtractFromFileName(entry.Name())
		if marker != rng {
			continue
		}

		lang, ok := languageForFile(languages, strippedName)
		if !ok || lang == p.Cfg.Sync.SourceLanguage {
			continue
		}

		translationPath := filepath.Join(p.Cfg.Sync.WorkingDir, entry.Name())
		if err := p.pushOne(languages[lang].Path, translationPath, referenceSourcePath, tempDir); err != nil {
			return err
		}
	}

	logger.Info("push %s: finished, range %s", runID, rng.Marker())
	return nil
}

// materializeReferenceSource builds the source file a translation's
// changes are measured against: the source at new, composed with the
// change between old and new when old is present.
func (p *Pipeline) materializeReferenceSource(languages map[string]LanguageFile, rng revision.Range, tempDir string) (string, error) {
	sourceFile := languages[p.Cfg.Sync.SourceLanguage]
	sourceFilename := filepath.Base(sourceFile.Path)
	sourceFilespec, err := p.repoFilespec(sourceFile.Path)
	if err != nil {
		return "", err
	}

	referencePath := filepath.Join(tempDir, "reference-"+sourceFilename)

	if !rng.HasOld() {
		if err := p.VCS.Show(sourceFilespec, rng.New, referencePath); err != nil {
			return "", err
		}
		return referencePath, nil
	}

	oldPath := filepath.Join(tempDir, "old-"+sourceFilename)
	newPath := filepath.Join(tempDir, "new-"+sourceFilename)
	if err := p.VCS.Show(sourceFilespec, rng.Old, oldPath); err != nil {
		return "", err
	}
	if err := p.VCS.Show(sourceFilespec, rng.New, newPath); err != nil {
		return "", err
	}

	q, err := query.Change(p.Backend, oldPath, newPath)
	if err != nil {
		return "", err
	}
	if err := q.RunInteractive(referencePath); err != nil {
		return "", err
	}
	return referencePath, nil
}

// pushOne extracts the translator's changed values out of translationPath
// and merges them into the repository's copy of that language file.
func (p *Pipeline) pushOne(repoLanguagePath, translationPath, referenceSourcePath, tempDir string) error {
	changedQuery, err := query.PushChangedValues(p.Backend, referenceSourcePath, translationPath)
	if err != nil {
		return err
	}
	changed, err := changedQuery.Run()
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}

	changedPath := filepath.Join(tempDir, "changed-"+filepath.Base(repoLanguagePath))
	if err := format.SaveFile(changedPath, changed); err != nil {
		return err
	}

	mergeQuery, err := query.Merge(p.Backend, repoLanguagePath, changedPath)
	if err != nil {
		return err
	}
	merged, err := mergeQuery.Run()
	if err != nil {
		return err
	}

	return format.SaveFile(repoLanguagePath, merged)
}

func languageForFile(languages map[string]LanguageFile, strippedName string) (string, bool) {
	for lang, file := range languages {
		if filepath.Base(file.Path) == strippedName {
			return lang, true
		}
	}
	return "", false
}
