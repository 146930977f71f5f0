// Command-free library entry point. See Sanitize, Policy, DefaultPolicy,
// and StrictPolicy.
//
// htmlsanitizer turns untrusted HTML into a safe fragment suitable for
// embedding in a larger page: disallowed elements and attributes are
// stripped according to a Policy, inline style declarations are
// filtered property by property, and whatever remains is rebalanced
// into well-nested markup regardless of how ill-formed the input was.
package htmlsanitizer
