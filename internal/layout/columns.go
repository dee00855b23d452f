package layout

import (
	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetch"
)

// AttrTypes supplies attribute type names from the external metadata
// provider, keyed by TypeKey(entity, attribute). It is used only to pick
// default column widths; a nil or incomplete map is always legal.
type AttrTypes map[string]string

// TypeKey builds the lookup key for AttrTypes.
func TypeKey(entity, attribute string) string {
	return entity + "." + attribute
}

// DefaultWidth is the column width used when the attribute type is
// unknown or unmapped.
const DefaultWidth = 100

// TypeWidths maps metadata attribute types to default column widths.
var TypeWidths = map[string]int{
	"boolean":          75,
	"datetime":         125,
	"decimal":          100,
	"double":           100,
	"integer":          100,
	"bigint":           100,
	"money":            100,
	"lookup":           150,
	"customer":         150,
	"owner":            150,
	"memo":             200,
	"string":           150,
	"picklist":         100,
	"state":            100,
	"status":           100,
	"uniqueidentifier": 150,
}

func widthFor(types AttrTypes, entity, attribute string) int {
	if w, ok := TypeWidths[types[TypeKey(entity, attribute)]]; ok {
		return w
	}
	return DefaultWidth
}

// CollectColumns derives the ordered column set implied by a query:
// root-entity attributes first, then every visible link-entity's
// attributes in depth-first order, recursing into nested links.
// Links embedded inside filters are existence joins and contribute no
// columns; links with visible="false" are filter-only and are skipped
// along with their own attributes, though nested visible links still
// contribute. Duplicate keys keep their first occurrence.
func CollectColumns(tree *fetch.Fetch, types AttrTypes) []Column {
	if tree == nil || tree.Entity == nil {
		return nil
	}
	c := collector{types: types, seen: map[string]bool{}}
	e := tree.Entity
	for _, a := range e.Attributes {
		key := a.Name
		if a.Alias != "" {
			key = a.Alias
		}
		c.add(Column{
			Name:        key,
			Width:       widthFor(types, e.Name, a.Name),
			DisplayName: a.Name,
		})
	}
	c.links(e.Links)
	return c.cols
}

type collector struct {
	types AttrTypes
	seen  map[string]bool
	cols  []Column
}

func (c *collector) add(col Column) {
	if c.seen[col.Name] {
		return
	}
	c.seen[col.Name] = true
	c.cols = append(c.cols, col)
}

func (c *collector) links(links []*fetch.LinkEntity) {
	for _, l := range links {
		ident := l.Name
		if l.Alias != "" {
			ident = l.Alias
		}
		if l.Visible {
			for _, a := range l.Attributes {
				key := ident + "." + a.Name
				if a.Alias != "" {
					key = a.Alias
				}
				c.add(Column{
					Name:        key,
					Width:       widthFor(c.types, l.Name, a.Name),
					LinkAlias:   ident,
					DisplayName: a.Name,
				})
			}
		}
		c.links(l.Links)
	}
}

// GenerateDefault builds a fresh layout for a query: the first column
// becomes the navigation target, selection/icon/preview are enabled,
// and the primary id attribute is synthesized as "{entityName}id".
func GenerateDefault(tree *fetch.Fetch, types AttrTypes) Config {
	cfg := Config{
		Name:    "resultset",
		Select:  true,
		Icon:    true,
		Preview: true,
		Columns: CollectColumns(tree, types),
	}
	if tree != nil && tree.Entity != nil {
		cfg.RowID = tree.Entity.Name + "id"
	}
	if len(cfg.Columns) > 0 {
		cfg.Jump = cfg.Columns[0].Name
	}
	return cfg
}
