package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filter(input string) string {
	return FilterDeclarations(Tokenize(input), DefaultSchema())
}

func TestFilterKeepsAllowedDeclaration(t *testing.T) {
	assert.Equal(t, "color: red", filter("color: red"))
}

func TestFilterDropsUnknownProperty(t *testing.T) {
	assert.Equal(t, "", filter("behavior: url(evil.htc)"))
}

func TestFilterDropsDeclarationWithNoSurvivingValueTokens(t *testing.T) {
	assert.Equal(t, "", filter("color: url(x.png)"))
}

func TestFilterJoinsMultipleDeclarationsWithSemicolon(t *testing.T) {
	assert.Equal(t, "color: red; font-weight: bold", filter("color: red; font-weight: bold;"))
}

func TestFilterKeepsQuantityForLength(t *testing.T) {
	assert.Equal(t, "width: 10px", filter("width: 10px"))
}

func TestFilterDropsNegativeLengthWhenNotAllowed(t *testing.T) {
	assert.Equal(t, "", filter("font-size: -10px"))
}

func TestFilterAllowsNegativeMargin(t *testing.T) {
	assert.Equal(t, "margin: -10px", filter("margin: -10px"))
}

func TestFilterDropsBadDimension(t *testing.T) {
	assert.Equal(t, "", filter("width: 10foo"))
}

func TestFilterKeepsHashColor(t *testing.T) {
	assert.Equal(t, "color: #ff0000", filter("color: #ff0000"))
}

func TestFilterKeepsShortHashColor(t *testing.T) {
	assert.Equal(t, "color: #f00", filter("color: #f00"))
}

func TestFilterDropsHashColorOfWrongLength(t *testing.T) {
	assert.Equal(t, "", filter("color: #f"))
	assert.Equal(t, "", filter("color: #ffff"))
}

func TestFilterKeepsRgbFunctionArguments(t *testing.T) {
	assert.Equal(t, "color: rgb(255, 0, 0)", filter("color: rgb(255, 0, 0)"))
}

func TestFilterDropsUnrecognizedFunction(t *testing.T) {
	assert.Equal(t, "", filter("background: expression(alert(1))"))
}

func TestFilterVendorPrefixFallsBackToBaseProperty(t *testing.T) {
	assert.Equal(t, "-webkit-border-style: solid", filter("-webkit-border-style: solid"))
}

func TestFilterSkipsMalformedDeclarationButKeepsNextOne(t *testing.T) {
	assert.Equal(t, "color: red", filter("1px solid red; color: red"))
}

func TestFilterQuotesUnquotedFontFamilyIdentRun(t *testing.T) {
	assert.Equal(t, "font-family: 'times new roman'", filter("font-family: Times New Roman"))
}

func TestFilterKeepsLiteralFontFamilyBare(t *testing.T) {
	assert.Equal(t, "font-family: serif", filter("font-family: serif"))
}

func TestFilterQuotesFontFamilyRunAheadOfLiteralFallback(t *testing.T) {
	assert.Equal(t, "font-family: 'comic sans', serif", filter("font-family: Comic Sans, serif"))
}

func TestFilterDropsUnknownKeyword(t *testing.T) {
	assert.Equal(t, "", filter("text-align: sideways"))
}
