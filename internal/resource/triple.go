package resource

import "fmt"

// Triple is the row shape produced by the three-way diff-with-base query:
// a name, its value in the "new" file, and its value in the "base" file.
// Equality compares Name and Value only, matching the original diff
// contract — Base is carried for display but ignored by comparisons.
type Triple struct {
	Name  string
	Value string
	Base  string
}

// NewTriple builds a Triple from its three fields.
func NewTriple(name, value, base string) Triple {
	return Triple{Name: name, Value: value, Base: base}
}

// Equal compares Name and Value only, not Base.
func (t Triple) Equal(other Triple) bool {
	return t.Name == other.Name && t.Value == other.Value
}

// String renders the triple as "name,value,base".
func (t Triple) String() string {
	return fmt.Sprintf("%s,%s,%s", t.Name, t.Value, t.Base)
}
