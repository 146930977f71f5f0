package elements

// Escaping is the text-escaping mode an escape-exempt element's
// content is lexed under.
type Escaping int

const (
	PCData Escaping = iota
	CData
	CDataSometimes
	RCData
	PlainText
	Void
)

// Descriptor is the immutable per-element record of content-model,
// scope, and escaping facts. It is addressed by canonical name through the package-level Table, and
// the cyclic block_container_child references — e.g. <dl> wanting to
// imply a <dd>, whose own descriptor may in turn reference groups
// <dl> supplies — are stored as element names and resolved by a Table
// lookup when they are used, rather than as a pointer cycle.
type Descriptor struct {
	Name string

	Types    Group
	Contents Group
	// TransparentTo is the set of groups for which this element
	// inherits its permitted-content decision from an ancestor
	// instead of deciding locally.
	TransparentTo Group

	// Resumable marks a formatting element eligible for adoption
	// agency resumption via the resume queue.
	Resumable bool

	// BlockContainerChild, when non-empty, names the element this
	// one implies as a child when it would otherwise reject content
	// (e.g. "ul" implying "li").
	BlockContainerChild string

	// InScopes is the set of close-tag scopes this element blocks
	// searches for when it appears as an intervening element: an
	// ancestor open element whose target's BlockedByScopes overlaps
	// this bit traps the search here.
	InScopes Scope
	// BlockedByScopes is the set of scopes that, when found on an
	// intervening element, stop a search for this element's own close
	// tag before it reaches this element.
	BlockedByScopes Scope

	IsVoid bool

	// EscapeExempt, when non-empty, marks this element as entering
	// an escape-exempt block on open, under the given mode.
	EscapeExempt Escaping
}

// admits reports whether d's content model, ignoring transparency,
// accepts a child whose Types include any bit in g.
func (d *Descriptor) admits(g Group) bool {
	return d.Contents&g != 0
}

// transparentFor reports whether d defers the admission decision for
// g to an ancestor.
func (d *Descriptor) transparentFor(g Group) bool {
	return d.TransparentTo&g != 0
}
