package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosanitize/htmlsanitizer/internal/token"
)

// collect drains a Splitter, failing the test instead of hanging if
// Next stops making progress.
func collect(t *testing.T, input string) []token.Token {
	t.Helper()
	s := New(input)
	var out []token.Token
	for i := 0; i < 1000; i++ {
		tok, ok := s.Next()
		if !ok {
			return out
		}
		if tok.Len() == 0 {
			t.Fatalf("splitter produced a zero-length token at offset %d on %q: no progress", tok.Start, input)
		}
		out = append(out, tok)
	}
	t.Fatalf("splitter did not reach EOF within 1000 tokens on %q", input)
	return nil
}

func texts(input string, toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text(input)
	}
	return out
}

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

// A "<" not followed by a letter, "/", "!", "?", or "%" doesn't begin
// any recognized construct and must still be consumed as a literal
// character, one byte at a time, rather than stalling Next at the
// same offset forever.

func TestStrayLessThanFollowedByDigitMakesProgress(t *testing.T) {
	input := "3 < 4"
	toks := collect(t, input)
	assert.Equal(t, []token.Type{token.Text, token.Text}, typesOf(toks))
	assert.Equal(t, []string{"3 ", "< 4"}, texts(input, toks))
}

func TestStrayLessThanFollowedBySpaceMakesProgress(t *testing.T) {
	input := "a < b"
	toks := collect(t, input)
	assert.Equal(t, []token.Type{token.Text, token.Text}, typesOf(toks))
	assert.Equal(t, []string{"a ", "< b"}, texts(input, toks))
}

func TestTrailingLessThanAtEOFMakesProgress(t *testing.T) {
	input := "foo<"
	toks := collect(t, input)
	assert.Equal(t, []token.Type{token.Text, token.Text}, typesOf(toks))
	assert.Equal(t, []string{"foo", "<"}, texts(input, toks))
}

func TestDoubleLessThanConsumesOneByteAtATime(t *testing.T) {
	input := "<<"
	toks := collect(t, input)
	assert.Equal(t, []token.Type{token.Text, token.Text}, typesOf(toks))
	assert.Equal(t, []string{"<", "<"}, texts(input, toks))
}

func TestLessThanFollowedByTagStillSplits(t *testing.T) {
	input := "a < b<p>c"
	toks := collect(t, input)
	assert.Equal(t, []token.Type{token.Text, token.Text, token.TagBegin, token.TagEnd, token.Text}, typesOf(toks))
	assert.Equal(t, []string{"a ", "< b", "<p", ">", "c"}, texts(input, toks))
}
