// Package sync implements the revision-tagged discovery/pull/push
// pipeline (spec §4.7), composing internal/vcs and internal/query over a
// source tree of resource files. Grounded on cirup_core's sync.rs
// find_languages/pull, extended with the old/new range and push paths
// the distillation's Non-goals left for this expansion to fill in.
package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/devolutions-sync/cirup/internal/cirerr"
	"github.com/devolutions-sync/cirup/internal/revision"
)

// LanguageFile is one discovered resource file: its language code, its
// path on disk (marker stripped), and the revision range the marker
// carried, if any.
type LanguageFile struct {
	Language string
	Path     string
	Range    revision.Range
}

// Discover scans sourceDir for files matching matchFile, capturing the
// language code from the first submatch of matchName applied to the
// marker-stripped file name. Files that fail to match either regex are
// ignored.
func Discover(sourceDir, matchFile, matchName string) (map[string]LanguageFile, error) {
	matchFileRe, err := regexp.Compile(matchFile)
	if err != nil {
		return nil, &cirerr.ConfigError{Field: "sync.match_language_file", Underlying: err}
	}
	matchNameRe, err := regexp.Compile(matchName)
	if err != nil {
		return nil, &cirerr.ConfigError{Field: "sync.match_language_name", Underlying: err}
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, &cirerr.IOError{Op: "read dir", Path: sourceDir, Underlying: err}
	}

	languages := make(map[string]LanguageFile)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		rng, strippedName := revision.ExtractFromFileName(entry.Name())
		if !matchFileRe.MatchString(strippedName) {
			continue
		}

		match := matchNameRe.FindStringSubmatch(strippedName)
		if match == nil || len(match) < 2 {
			continue
		}

		languages[match[1]] = LanguageFile{
			Language: match[1],
			Path:     filepath.Join(sourceDir, strippedName),
			Range:    rng,
		}
	}

	return languages, nil
}

// FilterToSet restricts languages to {sourceLanguage} ∪ targetLanguages,
// failing if the source language is missing.
func FilterToSet(languages map[string]LanguageFile, sourceLanguage string, targetLanguages []string) (map[string]LanguageFile, error) {
	if _, ok := languages[sourceLanguage]; !ok {
		return nil, &cirerr.ConfigError{
			Field:      "sync.source_language",
			Underlying: fmt.Errorf("source language %q not found among discovered files", sourceLanguage),
		}
	}

	wanted := make(map[string]bool, len(targetLanguages)+1)
	wanted[sourceLanguage] = true
	for _, lang := range targetLanguages {
		wanted[lang] = true
	}

	filtered := make(map[string]LanguageFile, len(wanted))
	for lang, file := range languages {
		if wanted[lang] {
			filtered[lang] = file
		}
	}
	return filtered, nil
}
