package policy

// StrictPolicy allows only basic formatting, paragraph, list and link
// tags, with lang/dir on any element, href (https or mailto) on <a>,
// and the CSS-filtered style attribute, which every compiled
// attribute policy passes through; suitable for comment sections and
// other user-generated content where markup should stay minimal.
// Disallowed elements and their children are dropped outright.
func StrictPolicy() *Policy {
	return &Policy{
		Elements:     newElementPolicy(strictAllowedTags, true, nil),
		Attributes:   newAttributePolicy(strictAllowedAttributes, strictAllowedSchemes),
		NestingLimit: 64,
	}
}

var strictAllowedTags = []string{
	"b", "i", "em", "strong", "br", "p", "ul", "ol", "li", "a", "code",
}

var strictAllowedAttributes = map[string][]string{
	"a": {"href"},
	"*": {"lang", "dir"},
}

var strictAllowedSchemes = []string{"https", "mailto"}
