package fetchxml

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetch"
)

// Serialize renders a fetch tree as canonical FetchXML text. It is
// total: the tree is assumed internally consistent, as produced by the
// parser or by well-behaved editing operations, so there is no error
// channel. Output is byte-stable across repeated calls on an unmodified
// tree.
func Serialize(tree *fetch.Fetch) string {
	w := &writer{}
	w.writeFetch(tree)
	return w.b.String()
}

// writer emits indented XML. Attribute order mirrors field declaration
// order in the node model so output stays canonical.
type writer struct {
	b      strings.Builder
	indent int
}

type attrPair struct {
	name  string
	value string
}

func (w *writer) open(tag string, attrs []attrPair) {
	w.tag(tag, attrs, false)
	w.indent++
}

func (w *writer) close(tag string) {
	w.indent--
	w.pad()
	w.b.WriteString("</")
	w.b.WriteString(tag)
	w.b.WriteString(">\n")
}

func (w *writer) selfClose(tag string, attrs []attrPair) {
	w.tag(tag, attrs, true)
}

func (w *writer) tag(tag string, attrs []attrPair, selfClose bool) {
	w.pad()
	w.b.WriteString("<")
	w.b.WriteString(tag)
	for _, a := range attrs {
		w.b.WriteString(" ")
		w.b.WriteString(a.name)
		w.b.WriteString(`="`)
		w.b.WriteString(EscapeAttr(a.value))
		w.b.WriteString(`"`)
	}
	if selfClose {
		w.b.WriteString(" />\n")
	} else {
		w.b.WriteString(">\n")
	}
}

// textElement emits <tag>text</tag> on one line.
func (w *writer) textElement(tag, text string) {
	w.pad()
	w.b.WriteString("<")
	w.b.WriteString(tag)
	w.b.WriteString(">")
	w.b.WriteString(EscapeAttr(text))
	w.b.WriteString("</")
	w.b.WriteString(tag)
	w.b.WriteString(">\n")
}

func (w *writer) pad() {
	for i := 0; i < w.indent; i++ {
		w.b.WriteString("  ")
	}
}

// EscapeAttr escapes text for use in attribute values or character
// data. Shared with the grid codec.
func EscapeAttr(s string) string {
	var buf bytes.Buffer
	// Buffer writes cannot fail.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// boolAttr appends name="true" only when the flag is set; false booleans
// are omitted to keep output minimal.
func boolAttr(attrs []attrPair, name string, v bool) []attrPair {
	if v {
		attrs = append(attrs, attrPair{name, "true"})
	}
	return attrs
}

func strAttr(attrs []attrPair, name, v string) []attrPair {
	if v != "" {
		attrs = append(attrs, attrPair{name, v})
	}
	return attrs
}

func intAttr(attrs []attrPair, name string, v *int) []attrPair {
	if v != nil {
		attrs = append(attrs, attrPair{name, strconv.Itoa(*v)})
	}
	return attrs
}

func (w *writer) writeFetch(f *fetch.Fetch) {
	var attrs []attrPair
	attrs = boolAttr(attrs, "aggregate", f.Aggregate)
	attrs = boolAttr(attrs, "distinct", f.Distinct)
	attrs = boolAttr(attrs, "returntotalrecordcount", f.ReturnTotalRecordCount)
	attrs = boolAttr(attrs, "no-lock", f.NoLock)
	attrs = boolAttr(attrs, "latematerialize", f.LateMaterialize)
	attrs = intAttr(attrs, "top", f.Top)
	attrs = intAttr(attrs, "count", f.Count)
	attrs = intAttr(attrs, "page", f.Page)
	attrs = intAttr(attrs, "utc-offset", f.UTCOffset)
	attrs = strAttr(attrs, "paging-cookie", f.PagingCookie)
	if f.Entity == nil {
		w.selfClose("fetch", attrs)
		return
	}
	w.open("fetch", attrs)
	w.writeEntity(f.Entity)
	w.close("fetch")
}

func (w *writer) writeEntity(e *fetch.Entity) {
	attrs := []attrPair{{"name", e.Name}}
	attrs = boolAttr(attrs, "enableprefiltering", e.EnablePrefiltering)
	attrs = strAttr(attrs, "prefilterparametername", e.PrefilterParameterName)
	if entityEmpty(e.Attributes, e.AllAttributes, e.Orders, e.Filters, e.Links) {
		w.selfClose("entity", attrs)
		return
	}
	w.open("entity", attrs)
	w.writeEntityChildren(e.Attributes, e.AllAttributes, e.Orders, e.Filters, e.Links)
	w.close("entity")
}

func entityEmpty(attrs []*fetch.Attribute, all *fetch.AllAttributes, orders []*fetch.Order, filters []*fetch.Filter, links []*fetch.LinkEntity) bool {
	return len(attrs) == 0 && all == nil && len(orders) == 0 && len(filters) == 0 && len(links) == 0
}

func (w *writer) writeEntityChildren(attrs []*fetch.Attribute, all *fetch.AllAttributes, orders []*fetch.Order, filters []*fetch.Filter, links []*fetch.LinkEntity) {
	for _, a := range attrs {
		w.writeAttribute(a)
	}
	if all != nil {
		w.selfClose("all-attributes", nil)
	}
	for _, o := range orders {
		w.writeOrder(o)
	}
	for _, f := range filters {
		w.writeFilter(f)
	}
	for _, l := range links {
		w.writeLink(l)
	}
}

func (w *writer) writeAttribute(a *fetch.Attribute) {
	attrs := []attrPair{{"name", a.Name}}
	attrs = strAttr(attrs, "alias", a.Alias)
	attrs = boolAttr(attrs, "groupby", a.GroupBy)
	attrs = strAttr(attrs, "aggregate", a.Aggregate)
	attrs = strAttr(attrs, "dategrouping", a.DateGrouping)
	attrs = boolAttr(attrs, "usertimezone", a.UserTimeZone)
	w.selfClose("attribute", attrs)
}

func (w *writer) writeOrder(o *fetch.Order) {
	attrs := []attrPair{{"attribute", o.Attribute}}
	attrs = boolAttr(attrs, "descending", o.Descending)
	attrs = strAttr(attrs, "entityname", o.EntityName)
	w.selfClose("order", attrs)
}

func (w *writer) writeFilter(f *fetch.Filter) {
	typ := f.Type
	if typ == "" {
		typ = "and"
	}
	attrs := []attrPair{{"type", typ}}
	attrs = strAttr(attrs, "hint", f.Hint)
	if len(f.Conditions) == 0 && len(f.Filters) == 0 && len(f.Links) == 0 {
		w.selfClose("filter", attrs)
		return
	}
	w.open("filter", attrs)
	for _, c := range f.Conditions {
		w.writeCondition(c)
	}
	for _, sub := range f.Filters {
		w.writeFilter(sub)
	}
	for _, l := range f.Links {
		w.writeLink(l)
	}
	w.close("filter")
}

func (w *writer) writeCondition(c *fetch.Condition) {
	attrs := []attrPair{{"attribute", c.Attribute}, {"operator", c.Operator}}
	attrs = strAttr(attrs, "entityname", c.EntityName)
	attrs = strAttr(attrs, "valueof", c.ValueOf)
	attrs = strAttr(attrs, "aggregate", c.Aggregate)
	if c.Value != nil {
		attrs = append(attrs, attrPair{"value", fetch.FormatScalar(c.Value)})
	}
	if len(c.Values) == 0 {
		w.selfClose("condition", attrs)
		return
	}
	w.open("condition", attrs)
	for _, v := range c.Values {
		w.textElement("value", fetch.FormatScalar(v))
	}
	w.close("condition")
}

func (w *writer) writeLink(l *fetch.LinkEntity) {
	linkType := l.LinkType
	if linkType == "" {
		linkType = "inner"
	}
	attrs := []attrPair{
		{"name", l.Name},
		{"from", l.From},
		{"to", l.To},
		{"link-type", linkType},
	}
	attrs = strAttr(attrs, "alias", l.Alias)
	attrs = boolAttr(attrs, "intersect", l.Intersect)
	if !l.Visible {
		// Visible defaults to true, so only the false case is emitted.
		attrs = append(attrs, attrPair{"visible", "false"})
	}
	if entityEmpty(l.Attributes, l.AllAttributes, l.Orders, l.Filters, l.Links) {
		w.selfClose("link-entity", attrs)
		return
	}
	w.open("link-entity", attrs)
	w.writeEntityChildren(l.Attributes, l.AllAttributes, l.Orders, l.Filters, l.Links)
	w.close("link-entity")
}
