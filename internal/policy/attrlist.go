// Package policy defines the element/attribute allow-list interfaces
// that sit at the boundary between the event source and the rest of
// the pipeline, plus concrete default presets.
package policy

// Attr is a single (name, value) pair as it appears in a start tag.
// HasValue distinguishes a valueless boolean attribute (`checked`)
// from one with an explicit empty value (`checked=""`); both carry
// Value == "", but only the latter should render the `=""` suffix.
type Attr struct {
	Name     string
	Value    string
	HasValue bool
}

// AttrList is the ordered, mutable sequence of attributes a policy
// inspects and rewrites. Order is preserved except where a policy
// explicitly deletes an entry.
type AttrList struct {
	items []Attr
}

// NewAttrList builds an AttrList from items, in order.
func NewAttrList(items ...Attr) *AttrList {
	return &AttrList{items: items}
}

// Len returns the number of attributes currently in the list.
func (l *AttrList) Len() int { return len(l.items) }

// At returns the attribute at index i.
func (l *AttrList) At(i int) Attr { return l.items[i] }

// Set replaces the attribute at index i.
func (l *AttrList) Set(i int, a Attr) { l.items[i] = a }

// Append adds a to the end of the list.
func (l *AttrList) Append(a Attr) { l.items = append(l.items, a) }

// Delete removes the attribute at index i, preserving order.
func (l *AttrList) Delete(i int) {
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// Get returns the first value for name, case-sensitively (the caller
// is expected to have already canonicalized name to lowercase).
func (l *AttrList) Get(name string) (string, bool) {
	for _, a := range l.items {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Items returns a copy of the underlying attribute slice for
// iteration; mutating the returned slice does not affect the list.
func (l *AttrList) Items() []Attr {
	out := make([]Attr, len(l.items))
	copy(out, l.items)
	return out
}
