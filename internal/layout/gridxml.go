package layout

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetchxml"
	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/xmltree"
)

// GridResult is the outcome of parsing a grid document. Same policy as
// the fetch parser: fatal errors only for empty input, malformed XML,
// or a root element other than <grid>; everything else warns.
type GridResult struct {
	OK       bool               `json:"ok"`
	Config   Config             `json:"-"`
	Errors   []string           `json:"errors,omitempty"`
	Warnings []fetchxml.Warning `json:"warnings,omitempty"`
}

// ParseGrid converts grid XML into a Config.
//
// The schema is flat: a <grid> root with grid-level metadata, a single
// <row> carrying the primary-id attribute, and ordered <cell> children.
// Multiple <row> elements warn; only the first is used.
func ParseGrid(text string) GridResult {
	if strings.TrimSpace(text) == "" {
		return GridResult{Errors: []string{"document is empty"}}
	}
	root, err := xmltree.Decode(text)
	if err != nil {
		return GridResult{Errors: []string{err.Error()}}
	}
	if !strings.EqualFold(root.Name, "grid") {
		return GridResult{Errors: []string{fmt.Sprintf("root element must be <grid>, found <%s>", root.Name)}}
	}

	g := &gridBuilder{warnings: []fetchxml.Warning{}}
	cfg := g.buildGrid(root)
	return GridResult{OK: true, Config: cfg, Warnings: g.warnings}
}

type gridBuilder struct {
	warnings []fetchxml.Warning
}

func (g *gridBuilder) warn(el, attr, format string, args ...any) {
	g.warnings = append(g.warnings, fetchxml.Warning{
		Message:   fmt.Sprintf(format, args...),
		Element:   el,
		Attribute: attr,
	})
}

func (g *gridBuilder) flag(el, attr, raw string) bool {
	switch raw {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	g.warn(el, attr, "invalid flag value %q for %s on <%s>", raw, attr, el)
	return false
}

// dedupAttrs drops duplicate attributes, first occurrence winning,
// matching case-insensitively. Same rule as the fetch codec: Element.Attr
// resolves to the first match, so the builder must too.
func (g *gridBuilder) dedupAttrs(el *xmltree.Element, tag string) []xml.Attr {
	seen := make(map[string]bool, len(el.Attrs))
	var out []xml.Attr
	for _, a := range el.Attrs {
		key := strings.ToLower(a.Name.Local)
		if seen[key] {
			g.warn(tag, a.Name.Local, "duplicate attribute %q on <%s>, keeping the first", a.Name.Local, tag)
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

func (g *gridBuilder) buildGrid(root *xmltree.Element) Config {
	var cfg Config
	for _, a := range g.dedupAttrs(root, "grid") {
		v := a.Value
		switch strings.ToLower(a.Name.Local) {
		case "name":
			cfg.Name = v
		case "object":
			code, err := strconv.Atoi(v)
			if err != nil {
				g.warn("grid", "object", "invalid numeric value %q for object on <grid>", v)
				continue
			}
			cfg.ObjectTypeCode = code
		case "jump":
			cfg.Jump = v
		case "select":
			cfg.Select = g.flag("grid", "select", v)
		case "icon":
			cfg.Icon = g.flag("grid", "icon", v)
		case "preview":
			cfg.Preview = g.flag("grid", "preview", v)
		default:
			g.warn("grid", a.Name.Local, "unknown attribute %q on <grid>", a.Name.Local)
		}
	}

	var row *xmltree.Element
	for _, c := range root.Children {
		if !strings.EqualFold(c.Name, "row") {
			g.warn("grid", "", "unknown element <%s> under <grid>", c.Name)
			continue
		}
		if row != nil {
			g.warn("grid", "", "multiple <row> elements, using the first")
			continue
		}
		row = c
	}
	if row != nil {
		g.buildRow(row, &cfg)
	}
	return cfg
}

func (g *gridBuilder) buildRow(row *xmltree.Element, cfg *Config) {
	for _, a := range g.dedupAttrs(row, "row") {
		switch strings.ToLower(a.Name.Local) {
		case "name":
			// The row name is fixed presentation metadata; nothing
			// consumes it.
		case "id":
			cfg.RowID = a.Value
		default:
			g.warn("row", a.Name.Local, "unknown attribute %q on <row>", a.Name.Local)
		}
	}
	for _, c := range row.Children {
		if !strings.EqualFold(c.Name, "cell") {
			g.warn("row", "", "unknown element <%s> under <row>", c.Name)
			continue
		}
		cfg.Columns = append(cfg.Columns, g.buildCell(c))
	}
}

func (g *gridBuilder) buildCell(cell *xmltree.Element) Column {
	col := Column{Width: DefaultWidth}
	for _, a := range g.dedupAttrs(cell, "cell") {
		v := a.Value
		switch strings.ToLower(a.Name.Local) {
		case "name":
			col.Name = v
		case "width":
			w, err := strconv.Atoi(v)
			if err != nil {
				g.warn("cell", "width", "invalid numeric value %q for width on <cell>", v)
				continue
			}
			col.Width = w
		case "disablesorting":
			col.DisableSorting = g.flag("cell", "disableSorting", v)
		case "imageproviderwebresource":
			col.ImageProvider = v
		default:
			g.warn("cell", a.Name.Local, "unknown attribute %q on <cell>", a.Name.Local)
		}
	}
	if col.Name == "" {
		g.warn("cell", "name", "<cell> is missing the name attribute")
	}
	if dot := strings.IndexByte(col.Name, '.'); dot > 0 {
		col.LinkAlias = col.Name[:dot]
	}
	return col
}

// SerializeGrid renders a Config as canonical grid XML. Total and
// byte-stable, like the fetch serializer. Flags serialize as 1/0 in the
// grid schema's style; false flags are omitted.
func SerializeGrid(cfg Config) string {
	var b strings.Builder
	b.WriteString("<grid")
	writeAttr(&b, "name", cfg.Name)
	if cfg.ObjectTypeCode != 0 {
		writeAttr(&b, "object", strconv.Itoa(cfg.ObjectTypeCode))
	}
	writeAttr(&b, "jump", cfg.Jump)
	writeFlag(&b, "select", cfg.Select)
	writeFlag(&b, "icon", cfg.Icon)
	writeFlag(&b, "preview", cfg.Preview)
	b.WriteString(">\n")

	b.WriteString(`  <row name="result"`)
	writeAttr(&b, "id", cfg.RowID)
	if len(cfg.Columns) == 0 {
		b.WriteString(" />\n</grid>\n")
		return b.String()
	}
	b.WriteString(">\n")
	for _, col := range cfg.Columns {
		b.WriteString("    <cell")
		writeAttr(&b, "name", col.Name)
		writeAttr(&b, "width", strconv.Itoa(col.Width))
		if col.DisableSorting {
			writeAttr(&b, "disableSorting", "1")
		}
		writeAttr(&b, "imageproviderwebresource", col.ImageProvider)
		b.WriteString(" />\n")
	}
	b.WriteString("  </row>\n</grid>\n")
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(fetchxml.EscapeAttr(value))
	b.WriteString(`"`)
}

func writeFlag(b *strings.Builder, name string, v bool) {
	if v {
		writeAttr(b, name, "1")
	}
}
