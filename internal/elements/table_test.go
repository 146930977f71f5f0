package elements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnown(t *testing.T) {
	tbl := DefaultTable()
	d, ok := tbl.Lookup("ul")
	assert.True(t, ok)
	assert.Equal(t, "li", d.BlockContainerChild)
}

func TestLookupUnknown(t *testing.T) {
	tbl := DefaultTable()
	_, ok := tbl.Lookup("custom-widget")
	assert.False(t, ok)
}

func TestCanonicalizeLowercasesExceptNamespaced(t *testing.T) {
	assert.Equal(t, "div", Canonicalize("DIV"))
	assert.Equal(t, "svg:Rect", Canonicalize("svg:Rect"))
}

func TestParagraphBlockedByCommonAndButtonScopes(t *testing.T) {
	tbl := DefaultTable()
	d, ok := tbl.Lookup("p")
	assert.True(t, ok)
	assert.Equal(t, ScopeCommon|ScopeButton, d.BlockedByScopes)
}

func TestTableEntersEveryScopeAsAHardBoundary(t *testing.T) {
	tbl := DefaultTable()
	d, ok := tbl.Lookup("table")
	assert.True(t, ok)
	assert.Equal(t, ScopeAll, d.InScopes)
}

func TestAnchorIsResumableAndTransparent(t *testing.T) {
	tbl := DefaultTable()
	d, ok := tbl.Lookup("a")
	assert.True(t, ok)
	assert.True(t, d.Resumable)
	assert.True(t, d.transparentFor(Block))
}

func TestEscapeExemptElementsMarked(t *testing.T) {
	tbl := DefaultTable()
	for tag, mode := range EscapeExemptTags {
		d, ok := tbl.Lookup(tag)
		if !ok {
			continue // "title" etc. may be head-only and still present
		}
		assert.Equal(t, mode, d.EscapeExempt, "tag %s", tag)
	}
}
