package entities

// namedReferences is a representative subset of the HTML5 named
// character reference table: the XML-inherited core, the Latin-1
// aliases, common typographic punctuation, and the Greek alphabet.
// Values are Unicode code points.
var namedReferences = map[string]int{
	// XML-inherited core.
	"amp": '&', "AMP": '&',
	"lt": '<', "LT": '<',
	"gt": '>', "GT": '>',
	"quot": '"', "QUOT": '"',
	"apos": '\'',

	// Latin-1 supplement aliases.
	"nbsp": ' ', "NonBreakingSpace": ' ',
	"iexcl": '¡', "cent": '¢', "pound": '£',
	"curren": '¤', "yen": '¥', "brvbar": '¦',
	"sect": '§', "uml": '¨', "copy": '©', "COPY": '©',
	"ordf": 'ª', "laquo": '«', "not": '¬', "shy": '­',
	"reg": '®', "REG": '®', "macr": '¯', "deg": '°',
	"plusmn": '±', "sup2": '²', "sup3": '³', "acute": '´',
	"micro": 'µ', "para": '¶', "middot": '·', "cedil": '¸',
	"sup1": '¹', "ordm": 'º', "raquo": '»', "frac14": '¼',
	"frac12": '½', "frac34": '¾', "iquest": '¿',
	"times": '×', "divide": '÷',

	// Typographic punctuation.
	"mdash": '—', "ndash": '–', "hellip": '…',
	"lsquo": '‘', "rsquo": '’', "sbquo": '‚',
	"ldquo": '“', "rdquo": '”', "bdquo": '„',
	"dagger": '†', "Dagger": '‡', "bull": '•',
	"permil": '‰', "prime": '′', "Prime": '″',
	"trade": '™', "euro": '€',
	"larr": '←', "uarr": '↑', "rarr": '→', "darr": '↓',
	"harr": '↔',

	// Greek alphabet (lowercase and uppercase).
	"Alpha": 'Α', "Beta": 'Β', "Gamma": 'Γ', "Delta": 'Δ',
	"Epsilon": 'Ε', "Zeta": 'Ζ', "Eta": 'Η', "Theta": 'Θ',
	"Iota": 'Ι', "Kappa": 'Κ', "Lambda": 'Λ', "Mu": 'Μ',
	"Nu": 'Ν', "Xi": 'Ξ', "Omicron": 'Ο', "Pi": 'Π',
	"Rho": 'Ρ', "Sigma": 'Σ', "Tau": 'Τ', "Upsilon": 'Υ',
	"Phi": 'Φ', "Chi": 'Χ', "Psi": 'Ψ', "Omega": 'Ω',
	"alpha": 'α', "beta": 'β', "gamma": 'γ', "delta": 'δ',
	"epsilon": 'ε', "zeta": 'ζ', "eta": 'η', "theta": 'θ',
	"iota": 'ι', "kappa": 'κ', "lambda": 'λ', "mu": 'μ',
	"nu": 'ν', "xi": 'ξ', "omicron": 'ο', "pi": 'π',
	"rho": 'ρ', "sigmaf": 'ς', "sigma": 'σ', "tau": 'τ',
	"upsilon": 'υ', "phi": 'φ', "chi": 'χ', "psi": 'ψ',
	"omega": 'ω',
}
