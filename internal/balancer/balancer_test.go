package balancer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gosanitize/htmlsanitizer/internal/policy"
)

// runWithTimeout runs fn on its own goroutine and fails the test
// instead of hanging forever if fn doesn't return within d. A
// transparent-but-non-containing formatting element sandwiched
// between a rejecting ancestor and the child being placed used to
// make placeChild/drainResume oscillate forever.
func runWithTimeout(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("did not return within %s: likely an infinite loop", d)
	}
}

type recorder struct{ lines []string }

func (r *recorder) OpenDocument()  { r.lines = append(r.lines, "open-doc") }
func (r *recorder) CloseDocument() { r.lines = append(r.lines, "close-doc") }
func (r *recorder) Text(chars string) {
	r.lines = append(r.lines, fmt.Sprintf("text(%s)", chars))
}
func (r *recorder) CloseTag(name string) { r.lines = append(r.lines, fmt.Sprintf("close(%s)", name)) }
func (r *recorder) OpenTag(name string, _ *policy.AttrList) {
	r.lines = append(r.lines, fmt.Sprintf("open(%s)", name))
}

func TestBalancerPassesThroughWellNestedInput(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenDocument()
	b.OpenTag("p", policy.NewAttrList())
	b.Text("hi")
	b.CloseTag("p")
	b.CloseDocument()
	assert.Equal(t, []string{"open-doc", "open(p)", "text(hi)", "close(p)", "close-doc"}, rec.lines)
}

func TestBalancerVoidElementNeedsNoClose(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenDocument()
	b.OpenTag("br", policy.NewAttrList())
	b.CloseDocument()
	assert.Equal(t, []string{"open-doc", "open(br)", "close-doc"}, rec.lines)
}

func TestBalancerUnknownElementForwardedWithoutStackEntry(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenDocument()
	b.OpenTag("x-widget", policy.NewAttrList())
	b.Text("hi")
	b.CloseTag("x-widget")
	b.CloseDocument()
	assert.Equal(t, []string{"open-doc", "open(x-widget)", "text(hi)", "close(x-widget)", "close-doc"}, rec.lines)
}

func TestBalancerImpliesListItemForDirectParagraphChild(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenDocument()
	b.OpenTag("ul", policy.NewAttrList())
	b.OpenTag("p", policy.NewAttrList())
	b.Text("hi")
	b.CloseTag("p")
	b.CloseTag("ul")
	b.CloseDocument()
	assert.Equal(t, []string{
		"open-doc", "open(ul)", "open(li)", "open(p)", "text(hi)", "close(p)", "close(li)", "close(ul)", "close-doc",
	}, rec.lines)
}

func TestBalancerClosesInterveningElementOnContentModelMismatch(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenDocument()
	b.OpenTag("p", policy.NewAttrList())
	b.OpenTag("div", policy.NewAttrList()) // div not admitted inside p's Inline-only content
	b.Text("hi")
	b.CloseTag("div")
	b.CloseDocument()
	assert.Equal(t, []string{"open-doc", "open(p)", "close(p)", "open(div)", "text(hi)", "close(div)", "close-doc"}, rec.lines)
}

func TestBalancerHeaderEquivalenceClosesAnyLevel(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenDocument()
	b.OpenTag("h3", policy.NewAttrList())
	b.Text("title")
	b.CloseTag("h1") // closes the open h3, not an h1
	b.CloseDocument()
	assert.Equal(t, []string{"open-doc", "open(h3)", "text(title)", "close(h3)", "close-doc"}, rec.lines)
}

func TestBalancerTableScopeBlocksExternalClose(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenDocument()
	b.OpenTag("div", policy.NewAttrList())
	b.OpenTag("table", policy.NewAttrList())
	b.CloseTag("div") // div is outside table scope; the close is dropped
	b.CloseTag("table")
	b.CloseTag("div")
	b.CloseDocument()
	assert.Equal(t, []string{"open-doc", "open(div)", "open(table)", "close(table)", "close(div)", "close-doc"}, rec.lines)
}

func TestBalancerResumesFormattingElementAcrossImplicitClose(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenDocument()
	b.OpenTag("b", policy.NewAttrList())
	b.OpenTag("p", policy.NewAttrList()) // p is not in b's Inline-only content model; forces a retry
	b.Text("hi")
	b.CloseTag("p")
	b.CloseDocument()
	// b closes implicitly to admit p, then resumes inside p.
	assert.Equal(t, []string{
		"open-doc", "open(b)", "close(b)", "open(p)", "open(b)", "text(hi)", "close(b)", "close(p)", "close-doc",
	}, rec.lines)
}

// A transparent-but-non-containing resumable element (<a>) wedged
// between a rejecting ancestor and a Block child it doesn't itself
// accept used to loop forever: drainResume would resume it on the
// strength of its own transparency bit alone, placeChild would find
// the ancestor still rejects the child and pop it straight back off,
// over and over. These terminate now that drainResume only resumes a
// transparent candidate once the stack beneath it would actually
// admit the child too.
func TestBalancerTransparentFormattingElementDoesNotLoopOnRejectingAncestor(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	runWithTimeout(t, time.Second, func() {
		b.OpenDocument()
		b.OpenTag("span", policy.NewAttrList())
		b.OpenTag("a", policy.NewAttrList())
		b.OpenTag("p", policy.NewAttrList())
		b.Text("x")
		b.CloseDocument()
	})
}

func TestBalancerTransparentFormattingElementDoesNotLoopWithResumableAncestor(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	runWithTimeout(t, time.Second, func() {
		b.OpenDocument()
		b.OpenTag("b", policy.NewAttrList())
		b.OpenTag("a", policy.NewAttrList())
		b.OpenTag("div", policy.NewAttrList())
		b.CloseDocument()
	})
}

func TestBalancerTransparentFormattingElementDoesNotLoopOnInlineAncestor(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	runWithTimeout(t, time.Second, func() {
		b.OpenDocument()
		b.OpenTag("i", policy.NewAttrList())
		b.OpenTag("a", policy.NewAttrList())
		b.OpenTag("p", policy.NewAttrList())
		b.CloseDocument()
	})
}

func TestBalancerNestingLimitSuppressesOutputButKeepsText(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 1)
	b.OpenDocument()
	b.OpenTag("div", policy.NewAttrList())
	b.OpenTag("span", policy.NewAttrList())
	b.Text("hi")
	b.CloseTag("span")
	b.CloseTag("div")
	b.CloseDocument()
	assert.Equal(t, []string{"open-doc", "open(div)", "text(hi)", "close(div)", "close-doc"}, rec.lines)
}

func TestBalancerSetNestingLimitRejectsBelowCurrentDepth(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenTag("div", policy.NewAttrList())
	b.OpenTag("span", policy.NewAttrList())
	err := b.SetNestingLimit(1)
	assert.Error(t, err)
}

func TestBalancerSetNestingLimitAcceptsAtOrAboveCurrentDepth(t *testing.T) {
	rec := &recorder{}
	b := New(rec, 512)
	b.OpenTag("div", policy.NewAttrList())
	err := b.SetNestingLimit(1)
	assert.NoError(t, err)
}
