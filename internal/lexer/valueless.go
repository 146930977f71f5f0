package lexer

// valuelessAttrs is the fixed set of boolean attributes that may
// appear without "=value". Compared case-insensitively against the
// canonical (already-lowercased) attribute name.
var valuelessAttrs = map[string]bool{
	"checked": true, "compact": true, "declare": true, "defer": true,
	"disabled": true, "ismap": true, "multiple": true, "nohref": true,
	"noresize": true, "noshade": true, "nowrap": true, "readonly": true,
	"selected": true,
}

func isValuelessAttr(canonicalName string) bool {
	return valuelessAttrs[canonicalName]
}
