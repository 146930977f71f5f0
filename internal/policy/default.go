package policy

// DefaultPolicy allows a common safe subset of content HTML —
// headings, paragraphs, formatting, lists, tables, links, images,
// code, blockquotes — while rejecting script, style, iframes, and
// other dangerous elements. Disallowed elements are dropped but their
// children are kept and rebalanced under the parent. Links and image
// sources are restricted to http, https, and mailto.
func DefaultPolicy() *Policy {
	return &Policy{
		Elements:     newElementPolicy(defaultAllowedTags, false, rawTextTags),
		Attributes:   newAttributePolicy(defaultAllowedAttributes, defaultAllowedSchemes),
		NestingLimit: 512,
	}
}

var defaultAllowedTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "br", "hr",
	"b", "i", "em", "strong", "u", "s", "strike", "del", "ins", "mark", "small",
	"a", "img",
	"ul", "ol", "li", "dl", "dt", "dd",
	"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption", "colgroup", "col",
	"code", "pre", "kbd", "samp", "var",
	"blockquote", "cite", "q",
	"figure", "figcaption",
	"div", "span", "section", "article", "header", "footer", "nav", "main", "aside",
	"details", "summary",
	"abbr", "acronym", "address",
	"sup", "sub", "bdi", "bdo", "time", "data",
}

var defaultAllowedAttributes = map[string][]string{
	"a":          {"href", "title", "target", "rel"},
	"img":        {"src", "alt", "title", "width", "height", "loading"},
	"td":         {"colspan", "rowspan", "align", "valign"},
	"th":         {"colspan", "rowspan", "align", "valign", "scope"},
	"blockquote": {"cite"},
	"q":          {"cite"},
	"abbr":       {"title"},
	"acronym":    {"title"},
	"time":       {"datetime"},
	"*":          {"id", "class", "lang", "dir", "style"},
}

var defaultAllowedSchemes = []string{"http", "https", "mailto"}

// rawTextTags are CDATA-bodied elements (script, style, and friends)
// whose content must never surface as text even though most
// disallowed elements keep their children by default.
var rawTextTags = map[string]bool{
	"script":  true,
	"style":   true,
	"xmp":     true,
	"iframe":  true,
	"listing": true,
}
