// Package splitter implements the first of the two lexer stages,
// converting raw characters into coarse tokens.
package splitter

import (
	"github.com/tdewolff/parse/v2/buffer"

	"github.com/gosanitize/htmlsanitizer/internal/elements"
	"github.com/gosanitize/htmlsanitizer/internal/strs"
	"github.com/gosanitize/htmlsanitizer/internal/token"
)

// exemptState records the escape-exempt context: the canonical tag
// name that must appear as a close tag to exit, and the
// text-escaping mode governing how content is retokenized while
// active.
type exemptState struct {
	tag      string
	escaping elements.Escaping
}

// Splitter is the coarse tokenizer. It exposes a single pull
// operation, Next, and never revises a token once produced.
type Splitter struct {
	lex    *buffer.Lexer
	pos    int // absolute offset of the lexeme currently under construction
	inTag  bool
	exempt *exemptState
}

// New constructs a Splitter over input. The full input is held in
// memory for the duration of one sanitization call, which owns its
// token streams exclusively.
func New(input string) *Splitter {
	return &Splitter{lex: buffer.NewLexer(buffer.NewReader([]byte(input)))}
}

func (s *Splitter) peek(i int) byte { return s.lex.Peek(i) }

func (s *Splitter) atEOF() bool {
	return s.lex.Peek(0) == 0 && s.lex.Err() != nil
}

// shift finalizes the token currently under construction: the bytes
// consumed since the last shift become a token of type typ spanning
// [pos, pos+n).
func (s *Splitter) shift(typ token.Type) token.Token {
	n := s.lex.Pos()
	start := s.pos
	end := start + n
	s.lex.Shift()
	s.pos = end
	return token.Token{Type: typ, Start: start, End: end}
}

// Next produces the next coarse token, or ok=false at end of stream.
func (s *Splitter) Next() (token.Token, bool) {
	if s.atEOF() {
		return token.Token{}, false
	}
	if s.exempt != nil {
		return s.nextExempt(), true
	}
	if s.inTag {
		return s.nextInTag(), true
	}
	return s.nextOutsideTag(), true
}

// InExemptBlock reports whether the splitter is currently inside an
// escape-exempt block, and if so its tag and escaping mode.
func (s *Splitter) InExemptBlock() (tag string, escaping elements.Escaping, ok bool) {
	if s.exempt == nil {
		return "", 0, false
	}
	return s.exempt.tag, s.exempt.escaping, true
}

// EnterExempt is called by the lexer once it has decided (from a
// TAGBEGIN/TAGEND pair forming a complete open tag) that the tag
// entered an escape-exempt block, overriding the default of resuming
// attribute scanning after the tag closes.
func (s *Splitter) EnterExempt(tag string, escaping elements.Escaping) {
	s.exempt = &exemptState{tag: tag, escaping: escaping}
}

func (s *Splitter) nextOutsideTag() token.Token {
	c := s.peek(0)
	switch {
	case c == '<':
		return s.lessThan()
	default:
		return s.text()
	}
}

// lessThan handles every "<…" production at the top level, outside
// a tag.
func (s *Splitter) lessThan() token.Token {
	switch s.peek(1) {
	case '/':
		if isAlpha(s.peek(2)) {
			s.lex.Move(2)
			return s.tagName(token.TagBegin)
		}
		return s.bogusComment()
	case '!':
		return s.markupDeclaration()
	case '?':
		return s.bogusQMark()
	case '%':
		return s.serverCode()
	}
	if isAlpha(s.peek(1)) {
		s.lex.Move(1)
		return s.tagName(token.TagBegin)
	}
	// A "<" that doesn't begin any recognized construct (whitespace, a
	// digit, punctuation, "=", a quote, another "<", or EOF follows)
	// is a literal character, not the start of a tag: consume it and
	// keep coalescing into TEXT like any other non-"<" run. Without
	// the Move, text() breaks immediately on this same "<" and shift
	// produces a zero-length token, leaving pos unadvanced forever.
	s.lex.Move(1)
	for {
		c := s.peek(0)
		if c == 0 || c == '<' {
			break
		}
		s.lex.Move(1)
	}
	return s.shift(token.Text)
}

// tagName consumes an identifier run after "<" or "</", terminating
// on whitespace, '>', '/', or another '<'. The caller (the lexer) is
// responsible for materializing the name from the returned token's
// span and deciding escape-exemption once the full tag has been
// scanned.
func (s *Splitter) tagName(typ token.Type) token.Token {
	for {
		c := s.peek(0)
		if c == 0 || strs.IsHTMLSpace(c) || c == '>' || c == '/' || c == '<' {
			break
		}
		s.lex.Move(1)
	}
	s.inTag = true
	return s.shift(typ)
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// markupDeclaration handles "<!" productions outside an escape-exempt
// block: comments and directives. Escaping text spans inside an
// escape-exempt block are handled by nextExempt.
func (s *Splitter) markupDeclaration() token.Token {
	if s.peek(2) == '-' && s.peek(3) == '-' {
		return s.comment()
	}
	return s.directive()
}

func (s *Splitter) comment() token.Token {
	s.lex.Move(4) // "<!--"
	for {
		c := s.peek(0)
		if c == 0 {
			break
		}
		if c == '-' && s.peek(1) == '-' && s.peek(2) == '>' {
			s.lex.Move(3)
			break
		}
		s.lex.Move(1)
	}
	return s.shift(token.Comment)
}

func (s *Splitter) directive() token.Token {
	s.lex.Move(2) // "<!"
	for {
		c := s.peek(0)
		if c == 0 || c == '>' {
			break
		}
		s.lex.Move(1)
	}
	if s.peek(0) == '>' {
		s.lex.Move(1)
	}
	return s.shift(token.Directive)
}

func (s *Splitter) bogusComment() token.Token {
	s.lex.Move(2) // "</"
	for {
		c := s.peek(0)
		if c == 0 || c == '>' {
			break
		}
		s.lex.Move(1)
	}
	if s.peek(0) == '>' {
		s.lex.Move(1)
	}
	return s.shift(token.Comment)
}

func (s *Splitter) bogusQMark() token.Token {
	s.lex.Move(2) // "<?"
	for {
		c := s.peek(0)
		if c == 0 || c == '>' {
			break
		}
		s.lex.Move(1)
	}
	if s.peek(0) == '>' {
		s.lex.Move(1)
	}
	return s.shift(token.QMarkMeta)
}

func (s *Splitter) serverCode() token.Token {
	s.lex.Move(2) // "<%"
	for {
		c := s.peek(0)
		if c == 0 {
			break
		}
		if c == '%' && s.peek(1) == '>' {
			s.lex.Move(2)
			break
		}
		s.lex.Move(1)
	}
	return s.shift(token.ServerCode)
}

// text coalesces a run of non-'<' characters into TEXT until the
// next '<'.
func (s *Splitter) text() token.Token {
	for {
		c := s.peek(0)
		if c == 0 || c == '<' {
			break
		}
		s.lex.Move(1)
	}
	return s.shift(token.Text)
}

func (s *Splitter) nextInTag() token.Token {
	c := s.peek(0)
	switch {
	case c == '>':
		s.lex.Move(1)
		s.inTag = false
		return s.shift(token.TagEnd)
	case c == '/' && s.peek(1) == '>':
		s.lex.Move(2)
		s.inTag = false
		return s.shift(token.TagEnd)
	case c == '"' || c == '\'':
		return s.qstring(c)
	case strs.IsHTMLSpace(c):
		for strs.IsHTMLSpace(s.peek(0)) {
			s.lex.Move(1)
		}
		return s.shift(token.Ignorable)
	case c == '=':
		s.lex.Move(1)
		return s.shift(token.Text)
	default:
		return s.unquotedToken()
	}
}

func (s *Splitter) qstring(q byte) token.Token {
	s.lex.Move(1)
	for {
		c := s.peek(0)
		if c == 0 {
			break
		}
		if c == q {
			s.lex.Move(1)
			break
		}
		s.lex.Move(1)
	}
	return s.shift(token.QString)
}

// unquotedToken consumes a run of non-whitespace, non-'>', non-'='
// characters, stopping before "/>" and absorbing an embedded quote
// that is itself followed by whitespace, '>' or '/'.
func (s *Splitter) unquotedToken() token.Token {
	for {
		c := s.peek(0)
		if c == 0 || strs.IsHTMLSpace(c) || c == '>' || c == '=' {
			break
		}
		if c == '/' && s.peek(1) == '>' {
			break
		}
		if c == '"' || c == '\'' {
			nxt := s.peek(1)
			if nxt == 0 || strs.IsHTMLSpace(nxt) || nxt == '>' || nxt == '/' {
				s.lex.Move(1) // consume the trailing quote as part of the value
				break
			}
		}
		s.lex.Move(1)
	}
	return s.shift(token.Text)
}

// nextExempt scans content while an escape-exempt block is active,
// reclassifying tokens per the active escaping mode and watching for
// the matching close tag or (where allowed) an escaping text span.
func (s *Splitter) nextExempt() token.Token {
	ex := s.exempt
	if ex.escaping == elements.PlainText {
		// PLAIN_TEXT never exits; consume the remainder of input.
		for s.peek(0) != 0 {
			s.lex.Move(1)
		}
		return s.reclassifyExempt(s.shift(token.Text))
	}

	// Look for the close tag at the current position.
	if s.matchesCloseTag(ex.tag) {
		s.exempt = nil
		s.lex.Move(2) // "</"
		return s.tagName(token.TagBegin)
	}

	if elements.AllowsEscapingTextSpan(ex.tag) && s.peek(0) == '<' && s.peek(1) == '!' && s.peek(2) == '-' && s.peek(3) == '-' {
		return s.comment()
	}

	for {
		c := s.peek(0)
		if c == 0 {
			break
		}
		if c == '<' && (s.matchesCloseTagAt(0, ex.tag) || (elements.AllowsEscapingTextSpan(ex.tag) && s.peek(1) == '!')) {
			break
		}
		s.lex.Move(1)
	}
	return s.reclassifyExempt(s.shift(token.Text))
}

// reclassifyExempt applies escape-exempt handling to a token produced
// while inside an active exempt block: RCDATA stays TEXT (entities
// meaningful), CDATA/PLAIN_TEXT become UNESCAPED.
func (s *Splitter) reclassifyExempt(t token.Token) token.Token {
	switch s.exempt.escaping {
	case elements.CData, elements.CDataSometimes, elements.PlainText:
		return t.Reclassify(token.Unescaped)
	}
	return t
}

func (s *Splitter) matchesCloseTag(tag string) bool {
	return s.matchesCloseTagAt(0, tag)
}

// matchesCloseTagAt reports whether "</tag" (case-insensitively,
// followed by whitespace, '>', or '/') begins at offset off.
func (s *Splitter) matchesCloseTagAt(off int, tag string) bool {
	if s.peek(off) != '<' || s.peek(off+1) != '/' {
		return false
	}
	i := 0
	for ; i < len(tag); i++ {
		c := s.peek(off + 2 + i)
		if c == 0 {
			return false
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != tag[i] { // tag is already canonical (lowercase)
			return false
		}
	}
	term := s.peek(off + 2 + i)
	return term == 0 || strs.IsHTMLSpace(term) || term == '>' || term == '/'
}
