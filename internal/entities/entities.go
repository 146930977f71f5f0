// Package entities decodes named and numeric HTML character
// references using a compact trie. The named-reference table is a
// representative subset of the HTML5 named character reference set
// rather than the full ~2231-row table; see DESIGN.md for the
// reasoning.
package entities

import (
	"strconv"
	"strings"

	"github.com/gosanitize/htmlsanitizer/internal/strs"
)

// namedTrie maps each supported name (without the leading '&' or
// trailing ';') to the Unicode code point it decodes to. Names in
// legacySemicolonOptional may also match without a trailing ';',
// taking the longest match, exactly as HTML5's legacy named character
// reference list requires.
var namedTrie = strs.NewTrie(namedReferences)

// legacySemicolonOptional is the subset of namedReferences that HTML5
// recognizes even without a trailing ';' for backward compatibility
// with pre-HTML5 content (e.g. "&amp" in "&amp;copy" is ambiguous but
// browsers still decode "&amp" on its own).
var legacySemicolonOptional = map[string]bool{
	"amp": true, "lt": true, "gt": true, "quot": true, "nbsp": true,
	"copy": true, "reg": true, "AMP": true, "LT": true, "GT": true,
	"QUOT": true,
}

// c1ControlRemap implements the HTML5 "numeric character reference
// end state" table: certain numeric references in the Windows-1252
// control-code range are remapped to their Unicode equivalents
// instead of being passed through or replaced, matching real browser
// behavior for legacy content.
var c1ControlRemap = map[int]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E, 0x85: 0x2026,
	0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6, 0x89: 0x2030, 0x8A: 0x0160,
	0x8B: 0x2039, 0x8C: 0x0152, 0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019,
	0x93: 0x201C, 0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A, 0x9C: 0x0153,
	0x9E: 0x017E, 0x9F: 0x0178,
}

// Decode replaces entity references in s with their decoded
// characters and returns the result. Malformed references (an '&'
// not followed by a recognizable name or digit sequence) are passed
// through unchanged.
func Decode(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			i++
			continue
		}
		decoded, consumed := decodeOne(s[i:])
		if consumed == 0 {
			b.WriteByte('&')
			i++
			continue
		}
		b.WriteString(decoded)
		i += consumed
	}
	return b.String()
}

// decodeOne decodes a single reference at the start of s (which
// begins with '&'). It returns the decoded text and the number of
// bytes of s consumed; consumed == 0 means no reference was
// recognized.
func decodeOne(s string) (string, int) {
	if len(s) < 2 {
		return "", 0
	}
	if s[1] == '#' {
		return decodeNumeric(s)
	}
	return decodeNamed(s)
}

func decodeNumeric(s string) (string, int) {
	// s starts with "&#"
	rest := s[2:]
	hex := false
	if len(rest) > 0 && (rest[0] == 'x' || rest[0] == 'X') {
		hex = true
		rest = rest[1:]
	}
	digits := 0
	for digits < len(rest) && isDigitFor(rest[digits], hex) {
		digits++
	}
	if digits == 0 {
		return "", 0
	}
	numStr := rest[:digits]
	consumed := len("&#") + digits
	if hex {
		consumed++ // the 'x'
	}
	if digits < len(rest) && rest[digits] == ';' {
		consumed++
	}
	base := 10
	if hex {
		base = 16
	}
	n, err := strconv.ParseUint(numStr, base, 32)
	if err != nil {
		return "", 0
	}
	return string(remapCodePoint(int(n))), consumed
}

func isDigitFor(c byte, hex bool) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if !hex {
		return false
	}
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func remapCodePoint(n int) rune {
	if r, ok := c1ControlRemap[n]; ok {
		return r
	}
	if n == 0 || n > 0x10FFFF || (n >= 0xD800 && n <= 0xDFFF) {
		return '�'
	}
	return rune(n)
}

func decodeNamed(s string) (string, int) {
	// s starts with '&'; try the longest named reference that is a
	// prefix of s[1:].
	body := s[1:]
	val, n, ok := namedTrie.LongestPrefix(body)
	if !ok {
		return "", 0
	}
	name := body[:n]
	hasSemicolon := n < len(body) && body[n] == ';'
	if !hasSemicolon && !legacySemicolonOptional[name] {
		return "", 0
	}
	consumed := 1 + n
	if hasSemicolon {
		consumed++
	}
	return string(rune(val)), consumed
}
