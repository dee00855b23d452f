package layout

// Column is one displayed column.
//
// Name is the column key: the attribute's explicit alias if present,
// else "{linkIdentifier}.{attribute}" for joined attributes, else the
// bare attribute name. LinkAlias records the owning link identifier for
// joined columns; it is derived state, not serialized. DisplayName is a
// presentation override, also not part of the grid schema.
type Column struct {
	Name           string
	Width          int
	LinkAlias      string
	DisableSorting bool
	ImageProvider  string
	DisplayName    string
}

// Config is the grid-level layout document.
type Config struct {
	Name           string
	ObjectTypeCode int
	// Jump is the navigation attribute: activating a row opens the
	// record through this column.
	Jump    string
	Select  bool
	Icon    bool
	Preview bool
	// RowID is the primary-id attribute carried on the row element.
	RowID   string
	Columns []Column
}

// clone returns a Config whose Columns slice is independent of the
// receiver, so mutator-style operations stay pure.
func (c Config) clone() Config {
	out := c
	out.Columns = make([]Column, len(c.Columns))
	copy(out.Columns, c.Columns)
	return out
}

// UpdateWidth returns a copy of the layout with the named column's width
// changed. Unknown names are a no-op copy.
func UpdateWidth(cfg Config, name string, width int) Config {
	out := cfg.clone()
	for i := range out.Columns {
		if out.Columns[i].Name == name {
			out.Columns[i].Width = width
		}
	}
	return out
}

// Reorder returns a copy of the layout with the named column moved to
// index. Unknown names and out-of-range indexes are a no-op copy.
func Reorder(cfg Config, name string, index int) Config {
	out := cfg.clone()
	from := -1
	for i := range out.Columns {
		if out.Columns[i].Name == name {
			from = i
			break
		}
	}
	if from < 0 || index < 0 || index >= len(out.Columns) || from == index {
		return out
	}
	col := out.Columns[from]
	out.Columns = append(out.Columns[:from], out.Columns[from+1:]...)
	rest := append([]Column{}, out.Columns[index:]...)
	out.Columns = append(append(out.Columns[:index:index], col), rest...)
	return out
}
