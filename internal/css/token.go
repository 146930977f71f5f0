// Package css implements a normalizing CSS tokenizer and a
// schema-driven property filter for the contents of a style
// attribute.
package css

// TokenType is the normalized CSS token vocabulary.
type TokenType int

const (
	Ident TokenType = iota
	DotIdent
	Function
	At
	HashID
	HashUnrestricted
	String
	URL
	Delim
	Number
	Percentage
	Dimension
	BadDimension
	UnicodeRange
	Match
	Column
	Whitespace
	Colon
	Semicolon
	Comma
	LeftSquare
	RightSquare
	LeftParen
	RightParen
	LeftCurly
	RightCurly
)

// Stream is the normalized output of Tokenize: a rewritten text
// buffer plus parallel arrays locating each token within it and
// mapping bracket tokens to their partner.
type Stream struct {
	Buf    string
	Starts []int // len() == Len()+1; Starts[Len()] is a sentinel == len(Buf)
	Types  []TokenType

	// Partner maps a bracket token's index to the index of its
	// matching close/open, or -1 for every non-bracket token.
	// Unpartnered opens are rewritten to a synthetic close appended
	// to the stream during finalization, so by the time Tokenize
	// returns every bracket token has a non-negative partner.
	Partner []int
}

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int { return len(s.Types) }

// Text returns the normalized text of token i.
func (s *Stream) Text(i int) string { return s.Buf[s.Starts[i]:s.Starts[i+1]] }

func isOpenBracket(t TokenType) bool {
	return t == LeftParen || t == LeftSquare || t == LeftCurly
}

func isCloseBracket(t TokenType) bool {
	return t == RightParen || t == RightSquare || t == RightCurly
}

func closeFor(open TokenType) TokenType {
	switch open {
	case LeftParen:
		return RightParen
	case LeftSquare:
		return RightSquare
	case LeftCurly:
		return RightCurly
	}
	return open
}

func closeText(t TokenType) string {
	switch t {
	case RightParen:
		return ")"
	case RightSquare:
		return "]"
	case RightCurly:
		return "}"
	}
	return ""
}
