// Package events converts the Lexer's refined token stream into the
// openDocument/openTag/text/closeTag/closeDocument vocabulary that
// sits at the policy boundary: it assembles attributes, decodes
// entities, consults the Policy for each element and attribute, and
// routes style attribute values through the CSS property filter
// before handing events to a Receiver.
package events

import (
	"github.com/gosanitize/htmlsanitizer/internal/css"
	"github.com/gosanitize/htmlsanitizer/internal/elements"
	"github.com/gosanitize/htmlsanitizer/internal/entities"
	"github.com/gosanitize/htmlsanitizer/internal/lexer"
	"github.com/gosanitize/htmlsanitizer/internal/policy"
	"github.com/gosanitize/htmlsanitizer/internal/token"
)

// Receiver is the sink-side interface a Source drives. The
// TagBalancer implements Receiver and is itself a Receiver so it can
// be chained directly after a Source.
type Receiver interface {
	OpenDocument()
	OpenTag(name string, attrs *policy.AttrList)
	Text(chars string)
	CloseTag(name string)
	CloseDocument()
}

// Source walks a Lexer's refined token stream and drives a Receiver
// with policy-filtered events.
type Source struct {
	lx     *lexer.Lexer
	policy *policy.Policy
	table  *elements.Table
	schema *css.Schema
}

// New constructs a Source over input, applying p's element and
// attribute decisions as events are produced.
func New(input string, p *policy.Policy) *Source {
	return &Source{
		lx:     lexer.New(input),
		policy: p,
		table:  elements.DefaultTable(),
		schema: css.DefaultSchema(),
	}
}

// frame tracks, for one raw open tag on the events-layer stack, its
// canonical source name, whether its open tag was actually emitted
// (so the matching close can mirror that decision) and whether it
// started a span whose descendants are all suppressed regardless of
// their own policy decisions. A close is matched to the nearest open
// frame of the same name (any h1-h6 frame for a header close) and
// only that frame is removed, so a misnested close still reaches the
// balancer downstream, which owns real scope-based close matching;
// this stack only exists to couple a dropped or renamed open with
// its raw close.
type frame struct {
	name           string
	emitted        bool
	emittedName    string
	suppressesKids bool
}

// Run drives r through the full event sequence for the Source's
// input, from openDocument to closeDocument.
func (src *Source) Run(r Receiver) {
	r.OpenDocument()
	var stack []frame
	suppressed := 0

	for {
		tok, ok := src.lx.Next()
		if !ok {
			break
		}
		switch tok.Type {
		case token.Text, token.Unescaped:
			if suppressed > 0 {
				continue
			}
			chars := src.lx.Text(tok)
			if tok.Type == token.Text {
				chars = entities.Decode(chars)
			}
			if chars != "" {
				r.Text(chars)
			}

		case token.TagBegin:
			raw := src.lx.Text(tok)
			name, isClose := lexer.TagNameAndKind(raw)
			name = elements.Canonicalize(name)

			if isClose {
				src.consumeTagEnd()
				isHeader := func(n string) bool { return len(n) == 2 && n[0] == 'h' && n[1] >= '1' && n[1] <= '6' }
				k := len(stack) - 1
				for k >= 0 && stack[k].name != name && !(isHeader(name) && isHeader(stack[k].name)) {
					k--
				}
				if k < 0 {
					continue // stray close, no matching open
				}
				fr := stack[k]
				stack = append(stack[:k], stack[k+1:]...)
				if fr.suppressesKids {
					suppressed--
				}
				if fr.emitted {
					r.CloseTag(fr.emittedName)
				}
				continue
			}

			attrs := src.readAttrs()
			void := false
			if d, ok := src.table.Lookup(name); ok {
				void = d.IsVoid
			}

			if suppressed > 0 {
				if !void {
					stack = append(stack, frame{name: name})
				}
				continue
			}

			decision := src.policy.Elements(name, attrs)
			emit := !decision.Drop
			emittedName := decision.Name
			if emit {
				src.filterAttrs(emittedName, attrs)
				r.OpenTag(emittedName, attrs)
			}

			if void {
				continue
			}

			causesSuppress := decision.Drop && decision.DropChildren
			stack = append(stack, frame{name: name, emitted: emit, emittedName: emittedName, suppressesKids: causesSuppress})
			if causesSuppress {
				suppressed++
			}

		case token.Comment, token.Directive, token.QMarkMeta, token.ServerCode:
			// Not part of the sanitized output vocabulary; dropped.
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].emitted {
			r.CloseTag(stack[i].emittedName)
		}
	}
	r.CloseDocument()
}

// consumeTagEnd discards lexer tokens up to and including the TagEnd
// of a close tag, which carries no attributes.
func (src *Source) consumeTagEnd() {
	for {
		tok, ok := src.lx.Next()
		if !ok || tok.Type == token.TagEnd {
			return
		}
	}
}

// readAttrs consumes ATTRNAME/ATTRVALUE pairs up to and including the
// TagEnd of an open tag, building the ordered AttrList the policy
// inspects. The surrounding quotes of a quoted value are stripped and
// attribute values are entity-decoded here, before the policy ever
// sees them.
func (src *Source) readAttrs() *policy.AttrList {
	attrs := policy.NewAttrList()
	var pendingName string
	haveName := false

	for {
		tok, ok := src.lx.Next()
		if !ok {
			return attrs
		}
		switch tok.Type {
		case token.AttrName:
			if haveName {
				// A name with no value arrived back to back with
				// another name; record the first as valueless.
				attrs.Append(policy.Attr{Name: pendingName})
			}
			pendingName = elements.Canonicalize(src.lx.Text(tok))
			haveName = true
		case token.AttrValue:
			raw := src.lx.Text(tok)
			if len(raw) > 0 && (raw[0] == '"' || raw[0] == '\'') {
				q := raw[0]
				raw = raw[1:]
				if len(raw) > 0 && raw[len(raw)-1] == q {
					raw = raw[:len(raw)-1]
				}
			}
			value := entities.Decode(raw)
			if haveName {
				attrs.Append(policy.Attr{Name: pendingName, Value: value, HasValue: true})
				haveName = false
			}
		case token.TagEnd:
			if haveName {
				attrs.Append(policy.Attr{Name: pendingName})
			}
			return attrs
		default:
			// QSTRING/COMMENT etc. appearing where a name or value was
			// expected: ignore and keep scanning for the TagEnd.
		}
	}
}

// filterAttrs applies the attribute policy to every entry of attrs in
// place, deleting rejected entries and running style values through
// the CSS property filter first.
func (src *Source) filterAttrs(elementName string, attrs *policy.AttrList) {
	for i := 0; i < attrs.Len(); {
		a := attrs.At(i)
		value := a.Value
		if a.Name == "style" {
			value = css.FilterDeclarations(css.Tokenize(value), src.schema)
		}
		newValue, keep := src.policy.Attributes(elementName, a.Name, value)
		if !keep {
			attrs.Delete(i)
			continue
		}
		if newValue != a.Value {
			attrs.Set(i, policy.Attr{Name: a.Name, Value: newValue, HasValue: true})
		}
		i++
	}
}
