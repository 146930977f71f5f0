// Package lexer implements the attribute-aware lexer that wraps the
// InputSplitter with a bounded lookahead, drops IGNORABLE tokens,
// reclassifies bare TEXT inside tags as attribute name/value, and
// collapses adjacent text runs outside tags.
package lexer

import (
	"github.com/sirupsen/logrus"

	"github.com/gosanitize/htmlsanitizer/internal/elements"
	"github.com/gosanitize/htmlsanitizer/internal/splitter"
	"github.com/gosanitize/htmlsanitizer/internal/token"
)

// attrState is the attribute state machine tracking whether the
// lexer is outside a tag, inside a tag awaiting a name, just past a
// name, or just past an '='.
type attrState int

const (
	outsideTag attrState = iota
	inTag
	sawName
	sawEq
)

// maxPeek is the tight lookahead bound the lexer keeps: enough to
// decide an unquoted attribute value's extent without unbounded
// buffering.
const maxPeek = 4

// Lexer wraps a splitter.Splitter with a pull-based, bounded peek
// ring over its raw token stream.
type Lexer struct {
	input string
	sp    *splitter.Splitter
	queue []token.Token // raw tokens pulled from the splitter, not yet consumed
	state attrState

	// pendingExemptName holds the canonical tag name of a start tag
	// currently being scanned, so that once its TAGEND arrives we can
	// decide whether it entered an escape-exempt block. This is
	// resolved once the full tag is known rather than at TAGBEGIN
	// time, since attributes must still be lexed normally even for
	// elements like <script> that end up escape-exempt.
	pendingExemptName string
	exemptTable       map[string]elements.Escaping

	eof bool
}

// New constructs a Lexer over input.
func New(input string) *Lexer {
	return &Lexer{
		input:       input,
		sp:          splitter.New(input),
		exemptTable: elements.EscapeExemptTags,
	}
}

// fill ensures at least n raw tokens are buffered in the queue (or
// end of stream is reached), never pulling more than maxPeek ahead.
func (l *Lexer) fill(n int) {
	if n > maxPeek {
		n = maxPeek
	}
	for len(l.queue) < n {
		t, ok := l.sp.Next()
		if !ok {
			l.eof = true
			return
		}
		l.queue = append(l.queue, t)
	}
}

func (l *Lexer) peekRaw(i int) (token.Token, bool) {
	l.fill(i + 1)
	if i < len(l.queue) {
		return l.queue[i], true
	}
	return token.Token{}, false
}

func (l *Lexer) popRaw() (token.Token, bool) {
	l.fill(1)
	if len(l.queue) == 0 {
		return token.Token{}, false
	}
	t := l.queue[0]
	l.queue = l.queue[1:]
	return t, true
}

func (l *Lexer) text(t token.Token) string { return t.Text(l.input) }

// Text materializes t's span against the input this Lexer was built
// over. Exported for consumers downstream of Next that need to read
// a token's bytes without keeping their own copy of the input.
func (l *Lexer) Text(t token.Token) string { return l.text(t) }

// Next produces the next refined token, or ok=false at end of stream.
func (l *Lexer) Next() (token.Token, bool) {
	for {
		t, ok := l.popRaw()
		if !ok {
			return token.Token{}, false
		}

		if t.Type == token.Ignorable {
			// Whitespace between tokens is dropped here, except while
			// scanning an unquoted attribute value, where the caller
			// (attrValueUnquoted) consumes IGNORABLE itself.
			continue
		}

		switch l.state {
		case outsideTag:
			if t.Type == token.TagBegin {
				l.state = inTag
				if name, isClose := TagNameAndKind(l.text(t)); !isClose {
					l.pendingExemptName = elements.Canonicalize(name)
				}
			}
			return l.collapseText(t)
		case inTag:
			return l.inTagToken(t)
		case sawName:
			return l.sawNameToken(t)
		case sawEq:
			return l.sawEqToken(t)
		}
	}
}

// collapseText merges immediately-adjacent TEXT/UNESCAPED tokens
// outside a tag into one token.
func (l *Lexer) collapseText(t token.Token) (token.Token, bool) {
	if l.state != outsideTag || (t.Type != token.Text && t.Type != token.Unescaped) {
		return t, true
	}
	for {
		nxt, ok := l.peekRaw(0)
		if !ok || nxt.Type != t.Type || nxt.Start != t.End {
			break
		}
		l.popRaw()
		t.End = nxt.End
	}
	return t, true
}

func (l *Lexer) inTagToken(t token.Token) (token.Token, bool) {
	if t.Type == token.TagEnd {
		l.onTagClosed()
		l.state = outsideTag
		return t, true
	}
	if t.Type == token.Text {
		l.state = sawName
		return t.Reclassify(token.AttrName), true
	}
	// QSTRING, COMMENT, etc. appearing where a name was expected:
	// pass through unchanged; malformed input recovers locally.
	return t, true
}

// onTagClosed resolves whether the tag that just closed entered an
// escape-exempt block.
func (l *Lexer) onTagClosed() {
	name := l.pendingExemptName
	l.pendingExemptName = ""
	if name == "" {
		return
	}
	if mode, ok := l.exemptTable[name]; ok {
		logrus.WithField("tag", name).Debug("entering escape-exempt block")
		l.sp.EnterExempt(name, mode)
	}
}

func (l *Lexer) sawNameToken(t token.Token) (token.Token, bool) {
	if t.Type == token.Text && l.text(t) == "=" {
		l.state = sawEq
		return l.Next()
	}
	// An attribute name followed directly by something other than
	// '=' has no value; fall back to treating that token as if it
	// were seen fresh inside the tag.
	l.state = inTag
	return l.inTagToken(t)
}

func (l *Lexer) sawEqToken(t token.Token) (token.Token, bool) {
	switch t.Type {
	case token.QString:
		l.state = inTag
		return t.Reclassify(token.AttrValue), true
	case token.TagEnd:
		// Synthesize an empty ATTRVALUE and push back the TAGEND by
		// re-queueing it at the front, e.g. for "checked=>".
		l.queue = append([]token.Token{t}, l.queue...)
		l.state = inTag
		return token.Token{Type: token.AttrValue, Start: t.Start, End: t.Start}, true
	case token.Text:
		return l.attrValueUnquoted(t)
	}
	l.state = inTag
	return t, true
}

// attrValueUnquoted implements the "possibly extend" rule for
// unquoted attribute values: merge subsequent TEXT tokens into the
// value unless the upcoming word is itself a recognized valueless
// attribute name, or is followed by '=' (i.e. is unambiguously the
// start of a new attribute), or the tag ends first.
func (l *Lexer) attrValueUnquoted(first token.Token) (token.Token, bool) {
	val := first
	for {
		nxt, ok := l.peekRaw(0)
		if !ok || nxt.Type == token.TagEnd {
			break
		}
		if nxt.Type == token.Ignorable {
			after, ok := l.peekRaw(1)
			if !ok || after.Type == token.TagEnd {
				break
			}
			if after.Type != token.Text {
				break
			}
			word := l.text(after)
			if isValuelessAttr(elements.Canonicalize(word)) || followedByEquals(l, 2) {
				break
			}
			l.popRaw() // drop the IGNORABLE
			val.End = after.End
			l.popRaw() // consume the word into the value
			continue
		}
		break
	}
	l.state = inTag
	return val.Reclassify(token.AttrValue), true
}

// followedByEquals reports whether, after skipping any IGNORABLE, the
// raw token at position start in the peek queue is a bare '=' token.
func followedByEquals(l *Lexer, start int) bool {
	i := start
	for {
		t, ok := l.peekRaw(i)
		if !ok {
			return false
		}
		if t.Type == token.Ignorable {
			i++
			continue
		}
		return t.Type == token.Text && t.End-t.Start == 1 && l.text(t) == "="
	}
}
