// Package fetch provides the node model for FetchXML query trees.
//
// This package contains the tree types, scalar value union, identifier
// sources, the operator catalog, and read-only traversal utilities. All
// other internal packages import fetch; fetch imports nothing internal.
// This keeps the node model the foundational layer with no circular
// dependencies.
//
// TREE SHAPE:
//
// The tree is recursive and self-similar. An Entity owns attributes,
// orders, filters, and link-entities; a Filter owns conditions, nested
// filters, and link-entities; a LinkEntity owns the same children an
// Entity does. Nesting is unbounded:
//
//	Fetch → Entity → Filter → LinkEntity → Filter → Condition
//
// Ownership is strictly tree-shaped: a parent exclusively owns its
// children, and there are no back-references. Ancestor lookups are
// derived on demand by the traversal utilities (scope.go, refs.go).
//
// SEALED INTERFACES:
//
// Node and Scalar are sealed interfaces using the marker method pattern.
// Only types in this package implement them. This enables exhaustive type
// switches in the parser, serializer, and layout reconciliation without
// guarding against external extensions.
//
// IDENTIFIERS:
//
// Every node carries a process-unique identifier assigned once at
// construction and never changed. Identifiers are opaque strings with no
// meaning beyond equality; they are used for selection and lookup by
// editing surfaces. See IDSource for generation.
//
// VALIDATION POLICY:
//
// The model enforces almost nothing structurally. Schema-level rules
// (operator arity, link-type child restrictions, filter cardinality) are
// advisory and surfaced as warnings by the parser or by helpers such as
// LinkChildRestriction - never as construction failures.
package fetch
