// Package balancer implements the TagBalancer: a pass-through filter
// sitting between an event source and the final output receiver that
// turns a possibly ill-nested stream of open/close/text events into a
// balanced one honoring the HTML element descriptor table's
// content-model, scope, and adoption-agency rules.
package balancer

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gosanitize/htmlsanitizer/internal/elements"
	"github.com/gosanitize/htmlsanitizer/internal/events"
	"github.com/gosanitize/htmlsanitizer/internal/policy"
	"github.com/gosanitize/htmlsanitizer/internal/strs"
)

// stackElem is one entry of the open-element stack. emitted is false
// for an element whose open tag was suppressed by the nesting limit
// (I1): it still participates in content-model decisions but never
// reaches the output.
type stackElem struct {
	name    string
	desc    *elements.Descriptor
	emitted bool
}

// Balancer implements events.Receiver as a sink, and drives another
// events.Receiver as its own output, so it chains directly after an
// events.Source.
type Balancer struct {
	table *elements.Table
	out   events.Receiver
	limit int

	stack        []stackElem
	resumeQueue  []stackElem
	emittedDepth int
}

// New constructs a Balancer that forwards balanced events to out,
// enforcing limit as the maximum output nesting depth (I1).
func New(out events.Receiver, limit int) *Balancer {
	return &Balancer{table: elements.DefaultTable(), out: out, limit: limit}
}

// SetNestingLimit changes the enforced nesting depth. It fails
// synchronously if the stack is already deeper than n, since shrinking
// the limit retroactively would leave already-open elements in an
// inconsistent state.
func (b *Balancer) SetNestingLimit(n int) error {
	if n < len(b.stack) {
		return errors.Errorf("balancer: cannot lower nesting limit to %d: %d elements already open", n, len(b.stack))
	}
	b.limit = n
	return nil
}

func (b *Balancer) OpenDocument() { b.out.OpenDocument() }

func (b *Balancer) CloseDocument() {
	for len(b.stack) > 0 {
		b.popTop(false)
	}
	b.out.CloseDocument()
}

// Text implements the text-event rule of §"Text events": pure
// inter-element whitespace flows through unconditionally; any other
// text first goes through the same placement algorithm as an
// implied character-data child.
func (b *Balancer) Text(chars string) {
	if chars == "" {
		return
	}
	if !isAllWhitespace(chars) {
		// Text is admissible wherever ordinary inline content is
		// (including <a>'s inline-but-not-<a> content), and also
		// inside the raw character-data-only elements (title, style,
		// script, textarea, option) that carry no Inline bit of their
		// own.
		b.placeChild(elements.Inline | elements.InlineMinusA | elements.CharacterData)
	}
	b.out.Text(chars)
}

// OpenTag implements I3-I6 placement for a new child, then the
// nesting-limit (I1) gate before handing it to out.
func (b *Balancer) OpenTag(name string, attrs *policy.AttrList) {
	canonical := elements.Canonicalize(name)
	desc, known := b.table.Lookup(canonical)
	if !known {
		// Unknown elements are emitted if the policy let them through
		// this far, and treated as void: no stack entry, so a later
		// close for the same name has nothing to match and is
		// forwarded verbatim instead.
		b.out.OpenTag(canonical, attrs)
		return
	}

	b.placeChild(desc.Types)

	if desc.IsVoid {
		if b.hasRoom() {
			b.out.OpenTag(canonical, attrs)
		}
		return
	}
	b.pushAndEmit(canonical, desc, attrs)
}

// CloseTag implements close-tag scopes and header equivalence.
func (b *Balancer) CloseTag(name string) {
	canonical := elements.Canonicalize(name)
	if _, known := b.table.Lookup(canonical); !known {
		b.out.CloseTag(canonical)
		return
	}

	header := isHeaderName(canonical)
	target := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		el := b.stack[i]
		if el.name == canonical || (header && isHeaderName(el.name)) {
			target = i
			break
		}
	}
	if target < 0 {
		return // I2: no matching open element, drop the orphan close
	}

	blockedBy := b.stack[target].desc.BlockedByScopes
	for i := len(b.stack) - 1; i > target; i-- {
		el := b.stack[i]
		if el.desc != nil && el.desc.InScopes&blockedBy != 0 {
			logrus.WithFields(logrus.Fields{"close": canonical, "blocked_by": el.name}).Debug("close tag not in scope, dropped")
			return
		}
	}

	for len(b.stack) > target {
		// Only elements above the literal target are "intervening"
		// implicit closes eligible for resumption; the target itself
		// is being deliberately closed by the caller and should not
		// be queued to reopen later.
		b.popTop(len(b.stack) > target+1)
	}
}

// placeChild runs I4-I6 until the stack's top admits a child whose
// content category is g, popping, implying, or resuming elements as
// needed.
func (b *Balancer) placeChild(g elements.Group) {
	for {
		b.drainResume(g)
		if b.admits(g) {
			return
		}
		if b.tryImpliedOpen(g) {
			continue
		}
		if len(b.stack) == 0 {
			return // top-level context accepts anything (transparency base case)
		}
		logrus.WithFields(logrus.Fields{"top": b.stack[len(b.stack)-1].name}).Debug("implicit close for content model")
		b.popTop(true)
	}
}

// admits walks up the stack from the top applying the transparency
// rule: a container admits g directly, or defers to its ancestor when
// g is in its transparent_to_contents set.
func (b *Balancer) admits(g elements.Group) bool {
	for i := len(b.stack) - 1; i >= 0; i-- {
		d := b.stack[i].desc
		if d.Contents&g != 0 {
			return true
		}
		if d.TransparentTo&g == 0 {
			return false
		}
	}
	return true
}

// admitsDirect reports whether desc itself (ignoring transparency
// chains further up) accepts g, used for the single-step checks I4
// and I6 describe.
func admitsDirect(desc *elements.Descriptor, g elements.Group) bool {
	return desc != nil && (desc.Contents&g != 0 || desc.TransparentTo&g != 0)
}

// admitsThroughCandidate reports whether g would actually be
// admissible if candidate were pushed on top of the real stack right
// now: candidate admits g directly, or is transparent to g and the
// real stack underneath it (as admits walks today) in turn admits g.
// Unlike admitsDirect, this follows the full transparency chain past
// candidate instead of stopping at its own bit, so a transparent
// element is never resumed into a context that will immediately
// reject it and pop it straight back onto the resume queue.
func (b *Balancer) admitsThroughCandidate(candidate *elements.Descriptor, g elements.Group) bool {
	if candidate.Contents&g != 0 {
		return true
	}
	if candidate.TransparentTo&g == 0 {
		return false
	}
	return b.admits(g)
}

// tryImpliedOpen implements I4: if the literal top names a
// block_container_child that would accept g, open it and report true.
func (b *Balancer) tryImpliedOpen(g elements.Group) bool {
	if len(b.stack) == 0 {
		return false
	}
	top := b.stack[len(b.stack)-1].desc
	if top.BlockContainerChild == "" {
		return false
	}
	childDesc, ok := b.table.Lookup(top.BlockContainerChild)
	if !ok || !admitsDirect(childDesc, g) {
		return false
	}
	logrus.WithFields(logrus.Fields{"parent": top.Name, "implied": top.BlockContainerChild}).Debug("implied open")
	b.pushAndEmit(top.BlockContainerChild, childDesc, nil)
	return true
}

// drainResume implements I6: reopen queued resumable elements, front
// to back, while the current top can contain them and reopening them
// would actually let g through (admitsThroughCandidate, not just the
// candidate's own bit), stopping at the first that fails either test.
// The second test matters: a formatting element that is merely
// transparent to g, not a direct container of it, only helps if the
// stack beneath it already admits g, otherwise reopening it just
// recreates the exact content-model rejection that got it popped,
// and popTop would requeue it again on the very next iteration.
func (b *Balancer) drainResume(g elements.Group) {
	for len(b.resumeQueue) > 0 {
		r := b.resumeQueue[0]
		var top *elements.Descriptor
		if len(b.stack) > 0 {
			top = b.stack[len(b.stack)-1].desc
		}
		topCanContain := top == nil || admitsDirect(top, r.desc.Types)
		if !topCanContain || !b.admitsThroughCandidate(r.desc, g) {
			return
		}
		b.resumeQueue = b.resumeQueue[1:]
		logrus.WithFields(logrus.Fields{"resumed": r.name}).Debug("resuming formatting element")
		b.pushAndEmit(r.name, r.desc, nil)
	}
}

// pushAndEmit opens name subject to the nesting limit and pushes it
// onto the stack regardless, so close matching stays correct even
// while suppressed.
func (b *Balancer) pushAndEmit(name string, desc *elements.Descriptor, attrs *policy.AttrList) {
	emit := b.hasRoom()
	if emit {
		b.out.OpenTag(name, attrs)
		b.emittedDepth++
	}
	b.stack = append(b.stack, stackElem{name: name, desc: desc, emitted: emit})
}

func (b *Balancer) hasRoom() bool {
	return b.limit <= 0 || b.emittedDepth < b.limit
}

// popTop pops the stack's top element, emitting its close if it was
// itself emitted, and queueing it for resumption when queueResumable
// is set and the element is resumable.
func (b *Balancer) popTop(queueResumable bool) {
	n := len(b.stack)
	el := b.stack[n-1]
	b.stack = b.stack[:n-1]
	if el.emitted {
		b.out.CloseTag(el.name)
		b.emittedDepth--
	}
	if queueResumable && el.desc != nil && el.desc.Resumable {
		b.resumeQueue = append(b.resumeQueue, el)
	}
}

func isHeaderName(name string) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}

func isAllWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		if !strs.IsHTMLSpace(s[i]) {
			return false
		}
	}
	return true
}
