package sync

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
}

func TestDiscoverMatchesAndCapturesLanguage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "strings.en.restext", "k=v\r\n")
	writeFile(t, dir, "strings.fr.restext", "k=v\r\n")
	writeFile(t, dir, "README.md", "not a resource")

	languages, err := Discover(dir, `^strings\..+\.restext$`, `^strings\.([^.]+)\.restext$`)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(languages) != 2 {
		t.Fatalf("Discover() = %+v, want 2 entries", languages)
	}
	if _, ok := languages["en"]; !ok {
		t.Errorf("missing en")
	}
	if _, ok := languages["fr"]; !ok {
		t.Errorf("missing fr")
	}
}

func TestDiscoverStripsRevisionMarker(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "strings.en.~abc-def~.restext", "k=v\r\n")

	languages, err := Discover(dir, `^strings\..+\.restext$`, `^strings\.([^.]+)\.restext$`)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	file, ok := languages["en"]
	if !ok {
		t.Fatalf("expected en to be discovered, got %+v", languages)
	}
	if filepath.Base(file.Path) != "strings.en.restext" {
		t.Errorf("Path = %q, want marker stripped", file.Path)
	}
	if file.Range.Old != "abc" || file.Range.New != "def" {
		t.Errorf("Range = %+v, want {abc def}", file.Range)
	}
}

func TestFilterToSetRequiresSourceLanguage(t *testing.T) {
	languages := map[string]LanguageFile{
		"fr": {Language: "fr", Path: "strings.fr.restext"},
	}
	if _, err := FilterToSet(languages, "en", nil); err == nil {
		t.Fatalf("expected error for missing source language")
	}
}

func TestFilterToSetRestrictsToWantedLanguages(t *testing.T) {
	languages := map[string]LanguageFile{
		"en": {Language: "en", Path: "strings.en.restext"},
		"fr": {Language: "fr", Path: "strings.fr.restext"},
		"de": {Language: "de", Path: "strings.de.restext"},
	}
	filtered, err := FilterToSet(languages, "en", []string{"fr"})
	if err != nil {
		t.Fatalf("FilterToSet() error = %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered = %+v, want en+fr only", filtered)
	}
	if _, ok := filtered["de"]; ok {
		t.Errorf("de should have been filtered out")
	}
}
