// Package htmlsanitizer sanitizes untrusted HTML: it lexes, applies a
// Policy's element and attribute decisions, rebalances the result into
// well-nested markup, and serializes it back to a safe HTML fragment.
package htmlsanitizer

import (
	"html"
	"strings"

	"github.com/pkg/errors"

	"github.com/gosanitize/htmlsanitizer/internal/balancer"
	"github.com/gosanitize/htmlsanitizer/internal/elements"
	"github.com/gosanitize/htmlsanitizer/internal/events"
	"github.com/gosanitize/htmlsanitizer/internal/policy"
)

// Sanitize filters input through p's element and attribute decisions
// and returns the resulting, well-nested HTML fragment. A nil p uses
// DefaultPolicy. The only error returned is a configuration error:
// p.Elements or p.Attributes left unset.
func Sanitize(input string, p *Policy) (string, error) {
	if p == nil {
		p = DefaultPolicy()
	}
	if p.Elements == nil || p.Attributes == nil {
		return "", errors.New("htmlsanitizer: Policy.Elements and Policy.Attributes must both be set")
	}

	w := &htmlWriter{table: elements.DefaultTable()}
	bal := balancer.New(w, p.NestingLimit)
	events.New(input, p).Run(bal)
	return w.String(), nil
}

// htmlWriter implements events.Receiver by serializing directly to a
// string builder. It is the output encoder the specification leaves
// as an external, out-of-scope collaborator; this is a minimal,
// unopinionated rendering sufficient to make Sanitize usable
// end-to-end.
type htmlWriter struct {
	table *elements.Table
	buf   strings.Builder
}

func (w *htmlWriter) OpenDocument()  {}
func (w *htmlWriter) CloseDocument() {}

func (w *htmlWriter) OpenTag(name string, attrs *policy.AttrList) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	// Resumed or implied-open elements (adoption agency, implied <li>)
	// carry no attributes of their own and reach here with attrs nil.
	if attrs != nil {
		for _, a := range attrs.Items() {
			w.buf.WriteByte(' ')
			w.buf.WriteString(a.Name)
			if a.HasValue {
				w.buf.WriteString(`="`)
				w.buf.WriteString(html.EscapeString(a.Value))
				w.buf.WriteByte('"')
			}
		}
	}
	void := false
	if d, ok := w.table.Lookup(name); ok {
		void = d.IsVoid
	}
	if void {
		w.buf.WriteString(" />")
	} else {
		w.buf.WriteByte('>')
	}
}

func (w *htmlWriter) Text(chars string) {
	w.buf.WriteString(html.EscapeString(chars))
}

func (w *htmlWriter) CloseTag(name string) {
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteByte('>')
}

func (w *htmlWriter) String() string { return w.buf.String() }
