// Package elements holds the static HTML element descriptor table
// that drives the tag balancer's content-model, scope, and
// adoption-agency decisions.
package elements

// Group is a bitfield over element content categories: the set of
// categories an element's type falls into, and the set of categories
// it may contain.
type Group uint32

const (
	Block Group = 1 << iota
	Inline
	InlineMinusA // inline, but not <a> — used by <a>'s own content model
	Mixed        // block or inline
	TableContent
	HeadContent
	TopContent
	Area
	Form
	Legend
	LI
	DLPart
	P
	Options
	Option
	Param
	TableGroup
	TR
	TD
	Col
	CharacterData
)

// Scope is a bitfield over the close-tag scope classes: COMMON,
// BUTTON, LIST_ITEM, TABLE.
type Scope uint8

const (
	ScopeCommon Scope = 1 << iota
	ScopeButton
	ScopeListItem
	ScopeTable
)

// ScopeAll is the union of every scope.
const ScopeAll Scope = ScopeCommon | ScopeButton | ScopeListItem | ScopeTable
