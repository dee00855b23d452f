package fetch

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Arity classifies how many literal values a condition operator takes.
type Arity int

const (
	// ArityUnknown means the operator is not in the catalog. Unknown
	// operators are legal - the operator field is an open string and the
	// external system's catalog evolves faster than this table.
	ArityUnknown Arity = iota
	// ArityNone takes no value (null, this-week, eq-userid, ...).
	ArityNone
	// ArityOne takes a single scalar (eq, like, on-or-after, ...).
	ArityOne
	// ArityTwo takes exactly two scalars (between, not-between).
	ArityTwo
	// ArityMany takes an ordered list (in, not-in, contain-values, ...).
	ArityMany
)

// Catalog maps operator names to their value arity. The catalog is a
// lookup aid, not a validity gate: operators missing from the catalog
// resolve to ArityUnknown and parse fine.
type Catalog map[string]Arity

// ArityOf returns the arity for an operator, ArityUnknown when the
// operator is not cataloged.
func (c Catalog) ArityOf(op string) Arity {
	return c[op]
}

// catalogDoc is the YAML shape of an operator catalog.
type catalogDoc struct {
	None []string `yaml:"none"`
	One  []string `yaml:"one"`
	Two  []string `yaml:"two"`
	Many []string `yaml:"many"`
}

// NewCatalog builds a Catalog from YAML grouping operators by arity:
//
//	none: [null, not-null]
//	one:  [eq, ne]
//	two:  [between]
//	many: [in, not-in]
//
// Callers tracking a newer operator set than the embedded default can
// load their own table and swap it in wherever a Catalog is accepted.
func NewCatalog(data []byte) (Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse operator catalog: %w", err)
	}
	c := make(Catalog)
	for _, op := range doc.None {
		c[op] = ArityNone
	}
	for _, op := range doc.One {
		c[op] = ArityOne
	}
	for _, op := range doc.Two {
		c[op] = ArityTwo
	}
	for _, op := range doc.Many {
		c[op] = ArityMany
	}
	return c, nil
}

//go:embed operators.yaml
var defaultCatalogYAML []byte

// DefaultCatalog is the embedded operator table.
var DefaultCatalog = mustCatalog(defaultCatalogYAML)

func mustCatalog(data []byte) Catalog {
	c, err := NewCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}
