package elements

import (
	"golang.org/x/net/html/atom"

	"github.com/gosanitize/htmlsanitizer/internal/strs"
)

// Table is an immutable, shared lookup from canonical element name to
// its Descriptor. It is safe for concurrent use once built.
type Table struct {
	byName map[string]*Descriptor
}

// Lookup returns the descriptor for name (already canonicalized by
// the caller — see strs.ASCIILower) and whether one exists. Elements
// absent from the table are treated as unknown.
func (t *Table) Lookup(name string) (*Descriptor, bool) {
	// A name that golang.org/x/net/html/atom recognizes is first
	// looked up in the map under the atom's own string; names outside
	// that fixed set (or any name we have not added a Descriptor for)
	// fall through to a direct map lookup of name.
	if a := atom.Lookup([]byte(name)); a != 0 {
		if d, ok := t.byName[a.String()]; ok {
			return d, true
		}
	}
	d, ok := t.byName[name]
	return d, ok
}

func reg(t *Table, d Descriptor) {
	cp := d
	t.byName[d.Name] = &cp
}

// blockContent is the set of groups a generic block-level container
// accepts: block or inline content, tables, form-related children.
const blockContent = Mixed | Block | Inline | Form

// buildDefaultTable builds the shared descriptor table. It is built once (see
// DefaultTable) and never mutated.
func buildDefaultTable() *Table {
	t := &Table{byName: make(map[string]*Descriptor, 128)}

	// Root / metadata — permitted by policy rarely, listed for
	// completeness of the content model.
	reg(t, Descriptor{Name: "html", Contents: TopContent, InScopes: ScopeAll})
	reg(t, Descriptor{Name: "head", Types: HeadContent, Contents: HeadContent})
	reg(t, Descriptor{Name: "body", Contents: Mixed | Block | Inline | Form | TableGroup})
	reg(t, Descriptor{Name: "title", Types: HeadContent, Contents: CharacterData, EscapeExempt: RCData})
	reg(t, Descriptor{Name: "base", Types: HeadContent, IsVoid: true})
	reg(t, Descriptor{Name: "link", Types: HeadContent, IsVoid: true})
	reg(t, Descriptor{Name: "meta", Types: HeadContent, IsVoid: true})
	reg(t, Descriptor{Name: "style", Types: HeadContent | Block, Contents: CharacterData, EscapeExempt: CData})
	reg(t, Descriptor{Name: "script", Types: HeadContent | Block | Inline, Contents: CharacterData, EscapeExempt: CDataSometimes})
	reg(t, Descriptor{Name: "noscript", Types: HeadContent | Block, Contents: blockContent})

	// Headings and sectioning.
	for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		reg(t, Descriptor{Name: h, Types: Block, Contents: Inline, BlockedByScopes: ScopeCommon})
	}
	for _, s := range []string{"div", "section", "article", "aside", "header", "footer", "nav", "main", "address"} {
		reg(t, Descriptor{Name: s, Types: Block, Contents: blockContent, BlockedByScopes: ScopeCommon})
	}

	// Paragraph / formatting — the resumable inline set.
	reg(t, Descriptor{Name: "p", Types: Block | P, Contents: Inline, BlockedByScopes: ScopeCommon | ScopeButton})
	for _, f := range []string{"b", "i", "em", "strong", "u", "s", "strike", "small", "mark", "font", "big", "tt"} {
		reg(t, Descriptor{Name: f, Types: Inline | InlineMinusA, Contents: Inline, Resumable: true, BlockedByScopes: ScopeCommon})
	}
	reg(t, Descriptor{Name: "a", Types: Inline, Contents: InlineMinusA, TransparentTo: Mixed | Block, Resumable: true, BlockedByScopes: ScopeCommon})
	for _, s := range []string{"ins", "del"} {
		reg(t, Descriptor{Name: s, Types: Inline, Contents: Inline, TransparentTo: Mixed | Block, BlockedByScopes: ScopeCommon})
	}
	for _, s := range []string{"span", "sub", "sup", "bdi", "bdo", "abbr", "acronym", "cite", "q", "var", "kbd", "samp", "code", "data", "time", "output"} {
		reg(t, Descriptor{Name: s, Types: Inline, Contents: Inline, BlockedByScopes: ScopeCommon})
	}
	reg(t, Descriptor{Name: "pre", Types: Block, Contents: Inline, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "blockquote", Types: Block, Contents: blockContent, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "br", Types: Inline, IsVoid: true})
	reg(t, Descriptor{Name: "wbr", Types: Inline, IsVoid: true})
	reg(t, Descriptor{Name: "hr", Types: Block, IsVoid: true})

	// Lists. ul/ol establish LIST_ITEM scope for their own li children;
	// they carry no COMMON-scope blocking power of their own.
	reg(t, Descriptor{Name: "ul", Types: Block, Contents: LI, BlockContainerChild: "li", InScopes: ScopeListItem, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "ol", Types: Block, Contents: LI, BlockContainerChild: "li", InScopes: ScopeListItem, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "li", Types: LI, Contents: blockContent, BlockedByScopes: ScopeCommon | ScopeListItem})
	reg(t, Descriptor{Name: "dl", Types: Block, Contents: DLPart, BlockContainerChild: "dd", BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "dt", Types: DLPart, Contents: Inline, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "dd", Types: DLPart, Contents: blockContent, BlockedByScopes: ScopeCommon})

	// Tables. table/caption/td/th are hard scope boundaries: opening one
	// blocks close-tag searches for nearly everything outside it.
	reg(t, Descriptor{Name: "table", Types: Block | TableGroup, Contents: TableContent, BlockContainerChild: "tbody", InScopes: ScopeAll})
	reg(t, Descriptor{Name: "caption", Types: TableContent, Contents: blockContent, InScopes: ScopeAll})
	reg(t, Descriptor{Name: "colgroup", Types: TableContent, Contents: Col})
	reg(t, Descriptor{Name: "col", Types: Col, IsVoid: true})
	for _, s := range []string{"thead", "tbody", "tfoot"} {
		reg(t, Descriptor{Name: s, Types: TableContent, Contents: TR, BlockContainerChild: "tr"})
	}
	reg(t, Descriptor{Name: "tr", Types: TR | TableContent, Contents: TD, BlockContainerChild: "td", BlockedByScopes: ScopeCommon})
	for _, s := range []string{"td", "th"} {
		reg(t, Descriptor{Name: s, Types: TD, Contents: blockContent, InScopes: ScopeAll})
	}

	// Forms.
	reg(t, Descriptor{Name: "form", Types: Form | Block, Contents: blockContent &^ Form, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "input", Types: Inline | Area, IsVoid: true})
	// button establishes BUTTON scope: it blocks a <p> close search
	// reaching past it, but is not itself a general boundary.
	reg(t, Descriptor{Name: "button", Types: Inline, Contents: Inline, InScopes: ScopeButton, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "select", Types: Inline, Contents: Options})
	reg(t, Descriptor{Name: "option", Types: Option, Contents: CharacterData, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "optgroup", Types: Options, Contents: Option, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "textarea", Types: Inline, Contents: CharacterData, EscapeExempt: RCData})
	reg(t, Descriptor{Name: "label", Types: Inline, Contents: Inline, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "fieldset", Types: Block, Contents: blockContent, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "legend", Types: Legend, Contents: Inline})
	reg(t, Descriptor{Name: "progress", Types: Inline, Contents: Inline})
	reg(t, Descriptor{Name: "meter", Types: Inline, Contents: Inline})

	// Embedded / media.
	reg(t, Descriptor{Name: "img", Types: Inline | Area, IsVoid: true})
	reg(t, Descriptor{Name: "area", Types: Area, IsVoid: true})
	reg(t, Descriptor{Name: "map", Types: Inline, Contents: blockContent | Area})
	reg(t, Descriptor{Name: "figure", Types: Block, Contents: blockContent, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "figcaption", Types: Block, Contents: Inline})
	reg(t, Descriptor{Name: "details", Types: Block, Contents: blockContent, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "summary", Types: Block, Contents: Inline})
	reg(t, Descriptor{Name: "dialog", Types: Block, Contents: blockContent})
	reg(t, Descriptor{Name: "canvas", Types: Inline, Contents: Inline})
	reg(t, Descriptor{Name: "audio", Types: Inline, Contents: Inline})
	reg(t, Descriptor{Name: "video", Types: Inline, Contents: Inline})
	reg(t, Descriptor{Name: "source", Types: Inline, IsVoid: true})
	reg(t, Descriptor{Name: "track", Types: Inline, IsVoid: true})
	reg(t, Descriptor{Name: "picture", Types: Inline, Contents: Inline})
	reg(t, Descriptor{Name: "object", Types: Inline, Contents: blockContent | Param})
	reg(t, Descriptor{Name: "param", Types: Param, IsVoid: true})
	reg(t, Descriptor{Name: "embed", Types: Inline, IsVoid: true})
	reg(t, Descriptor{Name: "iframe", Types: Inline, Contents: CharacterData, EscapeExempt: RawText})
	reg(t, Descriptor{Name: "svg", Types: Inline, Contents: Inline})

	// Escape-exempt-only legacy elements.
	reg(t, Descriptor{Name: "xmp", Types: Block, Contents: CharacterData, EscapeExempt: RawText, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "listing", Types: Block, Contents: CharacterData, EscapeExempt: RawText, BlockedByScopes: ScopeCommon})
	reg(t, Descriptor{Name: "plaintext", Types: Block, Contents: CharacterData, EscapeExempt: PlainText})

	// Ruby.
	reg(t, Descriptor{Name: "ruby", Types: Inline, Contents: Inline})
	reg(t, Descriptor{Name: "rt", Types: Inline, Contents: Inline})
	reg(t, Descriptor{Name: "rp", Types: Inline, Contents: Inline})

	reg(t, Descriptor{Name: "template", Types: HeadContent | Block, Contents: blockContent})
	reg(t, Descriptor{Name: "slot", Types: Inline, Contents: Inline})

	return t
}

// RawText is an alias kept for readability where the descriptor table
// uses "raw text" escaping (CDATA mode, no entity decoding) for
// legacy elements that are not <script>/<style>.
const RawText = CData

var defaultTable = buildDefaultTable()

// DefaultTable returns the shared, immutable element descriptor table.
func DefaultTable() *Table { return defaultTable }

// Canonicalize lowercases name, except that a namespaced name
// (containing ':') is preserved as-is.
func Canonicalize(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name
		}
	}
	return strs.ASCIILower(name)
}
