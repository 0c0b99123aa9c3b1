// Package resource holds the two record types that flow through every
// cirup query: Resource (a localized string) and Triple (a three-way diff
// row). Both are immutable once constructed and compare by value.
package resource

import "fmt"

// Resource is a single localizable string: an opaque key and its value.
type Resource struct {
	Name  string
	Value string
}

// New builds a Resource from a name/value pair.
func New(name, value string) Resource {
	return Resource{Name: name, Value: value}
}

// Equal compares two resources componentwise.
func (r Resource) Equal(other Resource) bool {
	return r.Name == other.Name && r.Value == other.Value
}

// String renders the resource as "name=value".
func (r Resource) String() string {
	return fmt.Sprintf("%s=%s", r.Name, r.Value)
}
