package policy

import "strings"

// newElementPolicy compiles a flat allow-list of tag names into an
// ElementPolicy. Tags outside the list are dropped; dropChildren
// controls whether their content is discarded along with them or
// kept and rebalanced under the parent. rawTextTags names elements
// whose content is never ordinary markup (script, style, and other
// CDATA-bodied elements) and whose children are dropped regardless of
// dropChildren, since that content was never meant to surface as
// visible text either.
func newElementPolicy(allowedTags []string, dropChildren bool, rawTextTags map[string]bool) ElementPolicy {
	allowed := make(map[string]bool, len(allowedTags))
	for _, t := range allowedTags {
		allowed[t] = true
	}
	return func(name string, _ *AttrList) ElementDecision {
		if !allowed[name] {
			return ElementDecision{Drop: true, DropChildren: dropChildren || rawTextTags[name]}
		}
		return ElementDecision{Name: name}
	}
}

// newAttributePolicy compiles a per-tag attribute allow-list plus a
// URL scheme allow-list (checked on href/src/cite) into an
// AttributePolicy. The "*" tag key allows an attribute on every
// element. style attributes are passed through unchanged — they have
// already been run through the CSS property filter upstream.
func newAttributePolicy(allowedAttrs map[string][]string, allowedSchemes []string) AttributePolicy {
	perTag := make(map[string]map[string]bool, len(allowedAttrs))
	for tag, names := range allowedAttrs {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}
		perTag[tag] = set
	}
	schemes := make(map[string]bool, len(allowedSchemes))
	for _, s := range allowedSchemes {
		schemes[s] = true
	}

	return func(elementName, attrName, value string) (string, bool) {
		if attrName == "style" {
			return value, true
		}
		if !perTag[elementName][attrName] && !perTag["*"][attrName] {
			return "", false
		}
		if isURLAttr(attrName) && !schemeAllowed(value, schemes) {
			return "", false
		}
		return value, true
	}
}

func isURLAttr(name string) bool {
	return name == "href" || name == "src" || name == "cite"
}

// schemeAllowed reports whether value either has no URL scheme
// (relative, fragment, or path-only) or has one present in schemes.
// Control characters are stripped first so a scheme cannot be
// disguised as "java\tscript:" past a naive colon scan.
func schemeAllowed(value string, schemes map[string]bool) bool {
	v := strings.Map(func(r rune) rune {
		if r <= 0x20 {
			return -1
		}
		return r
	}, value)
	colon := strings.IndexByte(v, ':')
	if colon < 0 {
		return true
	}
	if slash := strings.IndexByte(v, '/'); slash >= 0 && slash < colon {
		return true
	}
	scheme := strings.ToLower(v[:colon])
	return schemes[scheme]
}
