// Package revision implements the optional (old, new) revision pair that
// tags a resource filename with the range it was pulled at, and its
// filename encoding/decoding (spec §3, §6). Grounded on cirup_core's
// revision.rs, translated into the string/path idioms used throughout the
// teacher's fsutil-adjacent helpers.
package revision

import (
	"path/filepath"
	"strings"
)

// Range is an optional (Old, New) revision pair. New alone is allowed; Old
// alone is represented as (Old, "") but user-facing flows always pair it
// with New.
type Range struct {
	Old string
	New string
}

// HasOld reports whether Old was set.
func (r Range) HasOld() bool { return r.Old != "" }

// HasNew reports whether New was set.
func (r Range) HasNew() bool { return r.New != "" }

// IsZero reports whether neither bound was set.
func (r Range) IsZero() bool { return r.Old == "" && r.New == "" }

// Marker renders the range as it appears inside the "~…~" filename tag:
// "OLD-NEW", "NEW", "OLD-", or "" when both are empty.
func (r Range) Marker() string {
	switch {
	case r.HasOld() && r.HasNew():
		return r.Old + "-" + r.New
	case r.HasNew():
		return r.New
	case r.HasOld():
		return r.Old + "-"
	default:
		return ""
	}
}

// parseMarker is the left-inverse of Marker, splitting on the first "-".
func parseMarker(marker string) Range {
	if marker == "" {
		return Range{}
	}

	idx := strings.Index(marker, "-")
	if idx < 0 {
		return Range{New: marker}
	}

	old := marker[:idx]
	new := marker[idx+1:]

	switch {
	case old != "" && new != "":
		return Range{Old: old, New: new}
	case new != "":
		return Range{New: new}
	case old != "":
		return Range{Old: old}
	default:
		return Range{}
	}
}

// AppendToFileName rewrites path's stem as "stem.~marker~.ext". If the
// range is zero, path is returned unchanged (no "~~" tag is ever emitted
// for an empty range).
func AppendToFileName(path string, r Range) string {
	marker := r.Marker()
	if marker == "" {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	name := stem + ".~" + marker + "~" + ext
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}

// ExtractFromFileName is the inverse of AppendToFileName: it looks at the
// last "."-separated segment of path's stem, and if that segment matches
// "~…~" it is parsed as a range marker and stripped, yielding the
// underlying path. Any other filename (no marker, or a marker-shaped
// segment that isn't the last dot-segment) returns a zero Range and the
// path unchanged.
func ExtractFromFileName(path string) (Range, string) {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	segments := splitNonEmpty(stem, ".")
	if len(segments) <= 1 {
		return Range{}, path
	}

	last := segments[len(segments)-1]
	if !strings.HasPrefix(last, "~") || !strings.HasSuffix(last, "~") || len(last) < 2 {
		return Range{}, path
	}

	marker := strings.Trim(last, "~")
	r := parseMarker(marker)

	rest := strings.Join(segments[:len(segments)-1], ".")
	name := rest + ext
	if dir == "." {
		return r, name
	}
	return r, filepath.Join(dir, name)
}

func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
