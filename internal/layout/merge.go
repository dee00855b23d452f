package layout

import (
	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetch"
)

// Merge reconciles an existing layout against a changed query. Columns
// whose key is still implied by the query keep their existing position
// and width; newly introduced query columns are appended at the end in
// discovery order; columns whose key no longer appears in the query are
// dropped silently. A set-difference plus order-preserving merge, not a
// regeneration, so user-chosen widths and ordering survive incidental
// query edits. Merge is idempotent for an unchanged query.
func Merge(existing Config, tree *fetch.Fetch, types AttrTypes) Config {
	derived := CollectColumns(tree, types)
	derivedKeys := make(map[string]bool, len(derived))
	for _, col := range derived {
		derivedKeys[col.Name] = true
	}
	existingKeys := make(map[string]bool, len(existing.Columns))
	for _, col := range existing.Columns {
		existingKeys[col.Name] = true
	}

	out := existing
	out.Columns = make([]Column, 0, len(derived))
	for _, col := range existing.Columns {
		if derivedKeys[col.Name] {
			out.Columns = append(out.Columns, col)
		}
	}
	for _, col := range derived {
		if !existingKeys[col.Name] {
			out.Columns = append(out.Columns, col)
		}
	}
	return out
}

// IsConsistent reports whether every column implied by the query is
// present by key in the layout. The layout may legally hold a superset
// (manually added columns), so extra layout columns never fail the
// check.
func IsConsistent(cfg Config, tree *fetch.Fetch) bool {
	have := make(map[string]bool, len(cfg.Columns))
	for _, col := range cfg.Columns {
		have[col.Name] = true
	}
	for _, col := range CollectColumns(tree, nil) {
		if !have[col.Name] {
			return false
		}
	}
	return true
}
