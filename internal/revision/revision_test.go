package revision

import "testing"

func TestMarker(t *testing.T) {
	cases := []struct {
		r    Range
		want string
	}{
		{Range{Old: "r123", New: "r456"}, "r123-r456"},
		{Range{Old: "r123"}, "r123-"},
		{Range{New: "r456"}, "r456"},
		{Range{}, ""},
	}

	for _, c := range cases {
		if got := c.r.Marker(); got != c.want {
			t.Errorf("Range%+v.Marker() = %q, want %q", c.r, got, c.want)
		}
	}
}

func TestParseMarker(t *testing.T) {
	cases := []struct {
		marker string
		want   Range
	}{
		{"r123-r456", Range{Old: "r123", New: "r456"}},
		{"r123", Range{New: "r123"}},
		{"", Range{}},
		{"-", Range{}},
	}

	for _, c := range cases {
		if got := parseMarker(c.marker); got != c.want {
			t.Errorf("parseMarker(%q) = %+v, want %+v", c.marker, got, c.want)
		}
	}
}

func TestAppendToFileName(t *testing.T) {
	r := Range{Old: "r123", New: "r456"}
	got := AppendToFileName("/test/path/myfile.resx", r)
	want := "/test/path/myfile.~r123-r456~.resx"
	if got != want {
		t.Fatalf("AppendToFileName() = %q, want %q", got, want)
	}
}

func TestExtractFromFileName(t *testing.T) {
	r, path := ExtractFromFileName("/test/path/myfile.~r123-r456~.resx")
	if r.Old != "r123" || r.New != "r456" {
		t.Fatalf("ExtractFromFileName() range = %+v", r)
	}
	if want := "/test/path/myfile.resx"; path != want {
		t.Fatalf("ExtractFromFileName() path = %q, want %q", path, want)
	}
}

func TestExtractFromFileNameNoMarker(t *testing.T) {
	input := "/test/path/myfile.not.a.revision.resx"
	r, path := ExtractFromFileName(input)
	if !r.IsZero() {
		t.Fatalf("expected zero range, got %+v", r)
	}
	if path != input {
		t.Fatalf("ExtractFromFileName() path = %q, want %q", path, input)
	}
}

func TestRevisionRoundTrip(t *testing.T) {
	combos := []Range{
		{Old: "abc123", New: "def456"},
		{New: "onlyNew"},
		{Old: "onlyOld"},
	}

	for _, r := range combos {
		encoded := AppendToFileName("stem.json", r)
		got, path := ExtractFromFileName(encoded)
		if got != r {
			t.Errorf("round trip of %+v gave %+v", r, got)
		}
		if path != "stem.json" {
			t.Errorf("round trip of %+v gave path %q, want stem.json", r, path)
		}
	}
}
