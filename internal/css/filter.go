package css

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// FilterDeclarations walks a tokenized style attribute and re-renders
// only the declarations whose property is recognized by schema and
// whose value contains at least one token the property's schema
// entry accepts. A declaration with zero surviving value tokens is
// dropped entirely, including its property name.
func FilterDeclarations(s *Stream, schema *Schema) string {
	if schema == nil {
		schema = DefaultSchema()
	}
	var out strings.Builder
	wrote := false
	i, n := 0, s.Len()

	for i < n {
		for i < n && (s.Types[i] == Whitespace || s.Types[i] == Semicolon) {
			i++
		}
		if i >= n {
			break
		}
		if s.Types[i] != Ident {
			i = skipDeclaration(s, i)
			continue
		}
		propName := s.Text(i)
		i++
		for i < n && s.Types[i] == Whitespace {
			i++
		}
		if i >= n || s.Types[i] != Colon {
			i = skipDeclaration(s, i)
			continue
		}
		i++

		entry, ok := schema.Lookup(propName)
		var pieces []string
		count := 0
		if ok {
			i, pieces, count = filterTokens(s, i, n, entry, schema)
		} else {
			i = skipDeclaration(s, i)
		}
		if i < n && s.Types[i] == Semicolon {
			i++
		}

		if ok && count > 0 {
			if wrote {
				out.WriteString("; ")
			}
			out.WriteString(propName)
			out.WriteString(": ")
			out.WriteString(joinValuePieces(pieces))
			wrote = true
		} else {
			logrus.WithFields(logrus.Fields{"property": propName, "known": ok}).Debug("css declaration dropped")
		}
	}
	return out.String()
}

// joinValuePieces renders a sequence of value fragments, where a
// literal "," fragment attaches directly to the fragment before it
// (no space) while every other adjacent pair gets a single space.
func joinValuePieces(pieces []string) string {
	var b strings.Builder
	for i, p := range pieces {
		if i > 0 && p != "," {
			b.WriteString(" ")
		}
		b.WriteString(p)
	}
	return b.String()
}

// skipDeclaration advances past a malformed or unrecognized
// declaration up to (but not past) its terminating ';', treating any
// bracketed run as opaque so a stray ';' inside it doesn't end the
// skip early.
func skipDeclaration(s *Stream, i int) int {
	n := s.Len()
	for i < n && s.Types[i] != Semicolon {
		if isOpenBracket(s.Types[i]) {
			i = s.Partner[i] + 1
			continue
		}
		i++
	}
	return i
}

// filterTokens collects the accepted subset of tokens in [i, end) per
// schema, stopping early at a Semicolon even if end is further away
// (only relevant at the top level of a declaration's value; function
// arguments never contain one once properly nested). Whitespace
// tokens are dropped; joinValuePieces reintroduces spacing. Returns
// the index just past the consumed run, the surviving fragments, and
// the count of actual value tokens among them (excluding commas).
func filterTokens(s *Stream, i, end int, schema *PropertySchema, root *Schema) (int, []string, int) {
	var pieces []string
	count := 0
	for i < end && s.Types[i] != Semicolon {
		switch t := s.Types[i]; t {
		case Whitespace:
			i++
		case Comma:
			pieces = append(pieces, ",")
			i++
		case Ident:
			text := s.Text(i)
			switch {
			case schema.literal(text):
				pieces = append(pieces, text)
				count++
				i++
			case schema.has(UnreservedWord) && schema.has(StringValue):
				var run string
				i, run = quotedIdentRun(s, i, end)
				pieces = append(pieces, run)
				count++
			default:
				i++
			}
		case Number, Percentage, Dimension:
			text := s.Text(i)
			if schema.has(Quantity) && (schema.has(Negative) || !strings.HasPrefix(text, "-")) {
				pieces = append(pieces, text)
				count++
			}
			i++
		case BadDimension:
			i++
		case HashID, HashUnrestricted:
			text := s.Text(i)
			if schema.has(HashValue) && (len(text)-1 == 3 || len(text)-1 == 6) {
				pieces = append(pieces, text)
				count++
			}
			i++
		case String:
			if schema.has(StringValue) {
				pieces = append(pieces, s.Text(i))
				count++
			}
			i++
		case URL:
			if schema.has(URLValue) {
				pieces = append(pieces, s.Text(i))
				count++
			}
			i++
		case UnicodeRange:
			if schema.has(UnicodeRangeValue) {
				pieces = append(pieces, s.Text(i))
				count++
			}
			i++
		case Function:
			name := s.Text(i)
			open := i + 1
			closeIdx := s.Partner[open]
			if key, ok := schema.FnKeys[name]; ok {
				if argSchema, found := root.Lookup(key); found {
					_, argPieces, argCount := filterTokens(s, open+1, closeIdx, argSchema, root)
					if argCount > 0 {
						pieces = append(pieces, name+"("+joinValuePieces(argPieces)+")")
						count++
					}
				}
			}
			i = closeIdx + 1
		case LeftParen, LeftSquare, LeftCurly:
			i = s.Partner[i] + 1
		case RightParen, RightSquare, RightCurly:
			i++
		default:
			// Colon, Match, Column, At, DotIdent and bare Delim never
			// survive into a filtered value.
			i++
		}
	}
	return i, pieces, count
}

// quotedIdentRun consumes a run of space-separated Ident tokens
// starting at i (an Ident itself, the caller's already checked
// bits call for a quoted run rather than a bare identifier) and
// returns the index just past it along with the run rendered as a
// single quoted fragment, e.g. idents "times", "new", "roman"
// become 'times new roman'. The run ends at the first token that
// isn't an Ident directly following the previous one (at most one
// intervening Whitespace token is absorbed as the separator).
func quotedIdentRun(s *Stream, i, end int) (int, string) {
	var words []string
	for i < end && s.Types[i] == Ident {
		words = append(words, s.Text(i))
		i++
		if i < end && s.Types[i] == Whitespace {
			if i+1 < end && s.Types[i+1] == Ident {
				i++
				continue
			}
			break
		}
		break
	}
	return i, "'" + strings.Join(words, " ") + "'"
}
