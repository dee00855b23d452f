// Package fetchxml converts FetchXML text to and from fetch node trees.
//
// PARSING POLICY:
//
// The parser is strict about well-formed XML and lenient about schema
// conformance. Exactly five things are fatal: empty input, malformed
// XML (the decoder diagnostic is surfaced verbatim), a root element
// other than <fetch>, anything but exactly one <entity> child, and an
// <entity> without a non-empty name. Every other deviation - unknown
// attributes or elements, invalid enum values, unparseable numbers,
// missing name-like attributes - produces a Warning and parsing
// proceeds with a sensible default. Hand-edited documents should
// degrade, not disappear.
//
// Element and attribute names match case-insensitively on input and are
// emitted lower-case on output. XML namespaces are not used.
//
// SERIALIZATION POLICY:
//
// Serialize is total and canonical: attributes appear in declaration
// order, absent optionals and false booleans are omitted (visible="false"
// excepted, since its default is true), numbers never use exponent
// notation, and repeated serialization of an unmodified tree is
// byte-identical. parse -> serialize -> parse is stable for any document
// the parser accepts without warnings.
package fetchxml
