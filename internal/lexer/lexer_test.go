package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosanitize/htmlsanitizer/internal/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var out []token.Token
	for {
		t, ok := l.Next()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out
}

func texts(input string, toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text(input)
	}
	return out
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestSimpleOpenCloseTag(t *testing.T) {
	input := "<p>hi</p>"
	toks := collect(input)
	gotTypes := types(toks)
	assert.Equal(t, []token.Type{token.TagBegin, token.TagEnd, token.Text, token.TagBegin, token.TagEnd}, gotTypes)
	assert.Equal(t, []string{"<p", ">", "hi", "</p", ">"}, texts(input, toks))

	name, isClose := TagNameAndKind(toks[0].Text(input))
	assert.Equal(t, "p", name)
	assert.False(t, isClose)
	name, isClose = TagNameAndKind(toks[3].Text(input))
	assert.Equal(t, "p", name)
	assert.True(t, isClose)
}

func TestValuelessAttributeChecked(t *testing.T) {
	input := `<input type=checkbox checked>`
	toks := collect(input)
	gotTypes := types(toks)
	gotTexts := texts(input, toks)
	assert.Equal(t, []token.Type{
		token.TagBegin, token.AttrName, token.AttrValue, token.AttrName, token.TagEnd,
	}, gotTypes)
	assert.Equal(t, []string{"<input", "type", "checkbox", "checked", ">"}, gotTexts)
}

func TestValuelessAttributeWithEmptyValue(t *testing.T) {
	input := `<input type=checkbox checked=>`
	toks := collect(input)
	gotTypes := types(toks)
	assert.Equal(t, []token.Type{
		token.TagBegin, token.AttrName, token.AttrValue, token.AttrName, token.AttrValue, token.TagEnd,
	}, gotTypes)
	// the synthesized empty ATTRVALUE has zero length
	assert.Equal(t, 0, toks[4].Len())
}

func TestUnquotedValueAbsorbsSpace(t *testing.T) {
	input := `<a title=foo bar>x</a>`
	toks := collect(input)
	gotTypes := types(toks)
	gotTexts := texts(input, toks)
	assert.Equal(t, []token.Type{
		token.TagBegin, token.AttrName, token.AttrValue, token.TagEnd, token.Text, token.TagBegin, token.TagEnd,
	}, gotTypes)
	assert.Equal(t, "foo bar", gotTexts[2])
}

func TestQuotedAttributeValue(t *testing.T) {
	input := `<a href="http://example.com">x</a>`
	toks := collect(input)
	var val string
	for _, tk := range toks {
		if tk.Type == token.AttrValue {
			val = tk.Text(input)
		}
	}
	assert.Equal(t, `"http://example.com"`, val)
}

func TestEscapeExemptScriptContentNotTokenizedAsTags(t *testing.T) {
	input := `<script>if (1<2) alert(1)</script>`
	toks := collect(input)
	var kinds []token.Type
	var txts []string
	for _, tk := range toks {
		txts = append(txts, tk.Text(input))
		kinds = append(kinds, tk.Type)
	}
	assert.Contains(t, kinds, token.Unescaped)
	found := false
	for i, k := range kinds {
		if k == token.Unescaped && txts[i] == "if (1<2) alert(1)" {
			found = true
		}
	}
	assert.True(t, found, "script body should be a single UNESCAPED token, got %v / %v", kinds, txts)

	// the trailing close tag must still be recognized as a close of "script"
	last := toks[len(toks)-1]
	assert.Equal(t, token.TagEnd, last.Type)
	closeNameTok := toks[len(toks)-2]
	name, isClose := TagNameAndKind(closeNameTok.Text(input))
	assert.True(t, isClose)
	assert.Equal(t, "script", name)
	assert.False(t, strings.Contains(txts[1], "</script"), "script body must not contain a literal close tag once exempt")
}

func TestCollapsesAdjacentText(t *testing.T) {
	input := "hello world"
	toks := collect(input)
	assert.Len(t, toks, 1)
	assert.Equal(t, token.Text, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Text(input))
}

func TestStrayLessThanNotFollowedByATagIsCoalescedIntoText(t *testing.T) {
	for _, input := range []string{"3 < 4", "a < b", "foo<", "<<"} {
		toks := collect(input)
		assert.Len(t, toks, 1, "input %q", input)
		assert.Equal(t, token.Text, toks[0].Type, "input %q", input)
		assert.Equal(t, input, toks[0].Text(input), "input %q", input)
	}
}
