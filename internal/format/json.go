package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/devolutions-sync/cirup/internal/resource"
)

const jsonExtension = "json"

// JSON implements Codec for the .json resource format: a nested JSON
// object is walked recursively, and one Resource is emitted per leaf
// whose value is a string, named by its dot path from the root. Sibling
// order follows the order keys appear in the source document.
//
// Go's encoding/json unmarshals objects into an unordered map, so order
// preservation (required by spec §8's worked example) is implemented by
// hand with a streaming token reader rather than json.Unmarshal — this is
// the standard technique for order-sensitive JSON in Go and needs no
// third-party library; nothing in the example pack parses JSON
// order-sensitively with one, either.
type JSON struct{}

func (JSON) Extension() string { return jsonExtension }

func (JSON) Parse(text string) ([]resource.Resource, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("json resource document must be an object, got %v", tok)
	}

	var resources []resource.Resource
	if err := parseObjectBody(dec, "", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// parseObjectBody consumes key/value pairs up to the closing '}', which
// has already been matched as entered by the caller (the leading '{' was
// already read by the caller via dec.Token()).
func parseObjectBody(dec *json.Decoder, prefix string, out *[]resource.Resource) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		if err := parseValue(dec, name, out); err != nil {
			return err
		}
	}

	// consume the closing delimiter ('}')
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func parseValue(dec *json.Decoder, name string, out *[]resource.Resource) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObjectBody(dec, name, out)
		case '[':
			// Array values are undefined behavior per spec §4.2: treated
			// as not-a-leaf, so they are skipped entirely (no output).
			return skipArray(dec)
		default:
			return fmt.Errorf("unexpected delimiter %v", v)
		}
	case string:
		*out = append(*out, resource.New(name, v))
		return nil
	default:
		// Non-string leaves (numbers, bools, null) are skipped.
		return nil
	}
}

func skipArray(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("unterminated array")
		}
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
	}
	return nil
}

// Write reconstructs a nested object by splitting each resource name on
// the first '.' recursively, with sibling ordering following first
// appearance in the input sequence, and pretty-prints it with 4-space
// indentation and no trailing newline.
func (JSON) Write(resources []resource.Resource) (string, error) {
	root := newOrderedObject()
	for _, r := range resources {
		if err := root.insert(r.Name, r.Value); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	root.writePretty(&buf, 0)
	return buf.String(), nil
}

// orderedObject is a minimal insertion-ordered JSON object, just capable
// enough to round-trip cirup's dotted-key resource tree.
type orderedObject struct {
	keys     []string
	index    map[string]int
	children map[string]*orderedObject
	leaves   map[string]string
}

func newOrderedObject() *orderedObject {
	return &orderedObject{
		index:    make(map[string]int),
		children: make(map[string]*orderedObject),
		leaves:   make(map[string]string),
	}
}

func (o *orderedObject) ensureKey(key string) {
	if _, ok := o.index[key]; !ok {
		o.index[key] = len(o.keys)
		o.keys = append(o.keys, key)
	}
}

// insert places value at the dotted path name, creating intermediate
// objects as needed. A name that collides with an existing nested object,
// or whose prefix collides with an existing leaf (a non-dotted key
// colliding with an inner object in another resource — spec §9's open
// question), is rejected explicitly. A repeated name whose existing entry
// is a leaf overwrites that leaf's value.
func (o *orderedObject) insert(name, value string) error {
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		if _, isObject := o.children[name]; isObject {
			return fmt.Errorf("resource name %q collides with a nested object at the same path", name)
		}
		o.ensureKey(name)
		o.leaves[name] = value
		return nil
	}

	head, rest := name[:dot], name[dot+1:]
	if _, isLeaf := o.leaves[head]; isLeaf {
		return fmt.Errorf("resource name %q collides with a leaf value at %q", name, head)
	}

	child, ok := o.children[head]
	if !ok {
		child = newOrderedObject()
		o.children[head] = child
		o.ensureKey(head)
	}
	return child.insert(rest, value)
}

func (o *orderedObject) writePretty(buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("    ", depth)
	innerIndent := strings.Repeat("    ", depth+1)

	if len(o.keys) == 0 {
		buf.WriteString("{}")
		return
	}

	buf.WriteString("{\n")
	for i, key := range o.keys {
		buf.WriteString(innerIndent)
		writeJSONString(buf, key)
		buf.WriteString(": ")
		if child, ok := o.children[key]; ok {
			child.writePretty(buf, depth+1)
		} else {
			writeJSONString(buf, o.leaves[key])
		}
		if i < len(o.keys)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString(indent + "}")
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
