package format

import (
	"regexp"
	"strings"

	"github.com/devolutions-sync/cirup/internal/resource"
)

const restextExtension = "restext"

var restextLine = regexp.MustCompile(`^\s*(\w+)=(.*)$`)

// Restext implements Codec for .restext, the flat NAME=value format
// documented by resgen.exe. Grounded on cirup_core's restext.rs: lines
// not matching the name=value regex are skipped rather than rejected,
// values are written with backslash/CR/LF escaped, and the on-disk form
// is prefixed with a UTF-8 BOM that the in-memory string form omits, so
// Restext additionally implements rawWriter to produce that exact byte
// stream.
type Restext struct{}

func (Restext) Extension() string { return restextExtension }

func (Restext) Parse(text string) ([]resource.Resource, error) {
	var resources []resource.Resource
	for _, line := range splitLines(stripBOM(text)) {
		m := restextLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		resources = append(resources, resource.New(m[1], m[2]))
	}
	return resources, nil
}

func (Restext) Write(resources []resource.Resource) (string, error) {
	var b strings.Builder
	for _, r := range resources {
		b.WriteString(r.Name)
		b.WriteByte('=')
		b.WriteString(escapeNewlines(r.Value))
		b.WriteString("\r\n")
	}
	return b.String(), nil
}

// WriteBytes renders the same text as Write, prefixed with the UTF-8
// byte-order mark that resgen.exe expects on disk.
func (r Restext) WriteBytes(resources []resource.Resource) ([]byte, error) {
	text, err := r.Write(resources)
	if err != nil {
		return nil, err
	}
	bom := []byte{0xEF, 0xBB, 0xBF}
	return append(bom, []byte(text)...), nil
}

func escapeNewlines(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// splitLines mirrors Rust's str::lines(): splits on "\n", trimming a
// trailing "\r" from each line, and yields no trailing empty element for
// a final line terminator.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}
