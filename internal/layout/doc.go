// Package layout manages the column-list document that accompanies a
// fetch query: the ordered set of displayed columns with widths, stored
// as grid XML.
//
// The layout is derived from, but stored independently of, the query
// tree. Consistency between the two is a reconciliation operation -
// Merge - not an invariant enforced at construction: a layout may
// legally carry columns the query no longer projects until the next
// merge, and may carry manually added columns indefinitely.
//
// All operations are pure functions returning new values; nothing here
// mutates its inputs.
package layout
