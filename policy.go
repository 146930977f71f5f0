package htmlsanitizer

import "github.com/gosanitize/htmlsanitizer/internal/policy"

// Policy bundles the element and attribute decisions Sanitize
// consults, plus the nesting limit enforced by the tag balancer.
type Policy = policy.Policy

// ElementDecision is what an ElementPolicy returns for one start tag.
type ElementDecision = policy.ElementDecision

// ElementPolicy decides, for one start tag with its attributes
// already assembled, whether and how to emit it.
type ElementPolicy = policy.ElementPolicy

// AttributePolicy decides, for one attribute of one element, the
// value to keep or whether to drop the attribute entirely.
type AttributePolicy = policy.AttributePolicy

// Attr is a single (name, value) pair as it appears in a start tag.
type Attr = policy.Attr

// AttrList is the ordered, mutable sequence of attributes a policy
// inspects and rewrites.
type AttrList = policy.AttrList

// NewAttrList builds an AttrList from items, in order.
func NewAttrList(items ...Attr) *AttrList { return policy.NewAttrList(items...) }

// AcceptAttr keeps every attribute value unchanged.
var AcceptAttr = policy.AcceptAttr

// RejectAttr drops every attribute.
var RejectAttr = policy.RejectAttr

// DefaultPolicy allows a common safe subset of formatting, structural,
// and media elements while stripping script, style, and event-handler
// attributes. Disallowed elements are dropped but their children are
// kept and rebalanced under the parent.
func DefaultPolicy() *Policy { return policy.DefaultPolicy() }

// StrictPolicy allows only a small set of formatting, paragraph, list
// and link elements, with lang/dir, href on <a>, and the CSS-filtered
// style attribute, suitable for comment bodies and other
// minimally-formatted user content.
func StrictPolicy() *Policy { return policy.StrictPolicy() }
