package elements

// EscapeExemptTags is the fixed set of tags whose content switches
// the splitter into an escape-exempt block, keyed by the text-escaping
// mode that content is lexed under.
var EscapeExemptTags = map[string]Escaping{
	"script":    CDataSometimes,
	"style":     CData,
	"xmp":       CData,
	"iframe":    CData,
	"listing":   CData,
	"plaintext": PlainText,
	"textarea":  RCData,
	"title":     RCData,
}

// AllowsEscapingTextSpan reports whether an escape-exempt block for
// tag may contain a "<!--…-->" escaping text span that temporarily
// suppresses the close-tag search (HTML5 §8.1.2.6). Only
// CDATA/RCDATA-escaped legacy elements allow it; PLAIN_TEXT never
// exits at all, and <script> is not listed, so inside a script block
// "<!--" gets no special treatment and the close-tag search is never
// suppressed.
func AllowsEscapingTextSpan(tag string) bool {
	switch tag {
	case "xmp", "textarea", "title", "iframe", "noembed", "noframes", "style":
		return true
	}
	return false
}
