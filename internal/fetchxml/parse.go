package fetchxml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetch"
	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/xmltree"
)

// Warning is a recoverable schema deviation. The tree is still produced;
// the caller decides whether to surface warnings.
type Warning struct {
	Message   string `json:"message"`
	Element   string `json:"element,omitempty"`
	Attribute string `json:"attribute,omitempty"`
}

// Result is the outcome of a parse. OK is false only for fatal errors
// (empty input, malformed XML, wrong root structure), in which case Tree
// is nil and Errors is non-empty. Warnings never imply OK == false.
type Result struct {
	OK       bool         `json:"ok"`
	Tree     *fetch.Fetch `json:"-"`
	Errors   []string     `json:"errors,omitempty"`
	Warnings []Warning    `json:"warnings,omitempty"`
}

// Parser converts FetchXML text into fetch trees. The zero value is
// ready to use and draws identifiers from the process-wide default
// source; inject a fresh fetch.Sequence for deterministic fixtures.
type Parser struct {
	IDs fetch.IDSource
}

// Parse converts text using the process-wide identifier source.
func Parse(text string) Result {
	return Parser{}.Parse(text)
}

// Parse converts FetchXML text into a fetch tree. See the package docs
// for which failures are fatal versus warnings.
func (p Parser) Parse(text string) (res Result) {
	root, entity, err := checkStructure(text)
	if err != nil {
		return Result{Errors: []string{err.Error()}}
	}

	ids := p.IDs
	if ids == nil {
		ids = fetch.DefaultIDs()
	}
	b := &builder{ids: ids, warnings: []Warning{}}

	// Schema problems are warnings by design, so a panic below is a
	// defect in this layer, not in the input. Wrap it rather than
	// crashing the host editor.
	defer func() {
		if r := recover(); r != nil {
			res = Result{Errors: []string{fmt.Sprintf("Parsing Error: %v", r)}}
		}
	}()

	tree := b.buildFetch(root, entity)
	return Result{OK: true, Tree: tree, Warnings: b.warnings}
}

// ValidateSyntax performs only the fatal-error checks - well-formedness
// plus root/entity presence - without building a tree. Fast path for
// editor validation. Returns nil when the document would parse.
func ValidateSyntax(text string) error {
	_, _, err := checkStructure(text)
	return err
}

// checkStructure runs the fatal-error checks shared by Parse and
// ValidateSyntax and returns the root and entity elements.
func checkStructure(text string) (*xmltree.Element, *xmltree.Element, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("document is empty")
	}
	root, err := xmltree.Decode(text)
	if err != nil {
		return nil, nil, err
	}
	if !strings.EqualFold(root.Name, "fetch") {
		return nil, nil, fmt.Errorf("root element must be <fetch>, found <%s>", root.Name)
	}
	entities := root.ChildrenNamed("entity")
	if len(entities) != 1 {
		return nil, nil, fmt.Errorf("<fetch> must contain exactly one <entity> element, found %d", len(entities))
	}
	entity := entities[0]
	if name, _ := entity.Attr("name"); strings.TrimSpace(name) == "" {
		return nil, nil, fmt.Errorf("<entity> requires a non-empty name attribute")
	}
	return root, entity, nil
}

// builder walks the element tree and accumulates warnings. Warnings
// never interrupt traversal.
type builder struct {
	ids      fetch.IDSource
	warnings []Warning
}

func (b *builder) warn(el, attr, format string, args ...any) {
	b.warnings = append(b.warnings, Warning{
		Message:   fmt.Sprintf(format, args...),
		Element:   el,
		Attribute: attr,
	})
}

// attrBool parses a boolean attribute, accepting true/false/1/0.
// Invalid values warn and fall back to def.
func (b *builder) attrBool(el, attr, raw string, def bool) bool {
	switch raw {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	b.warn(el, attr, "invalid boolean value %q for %s on <%s>, using %v", raw, attr, el, def)
	return def
}

// attrInt parses a numeric attribute. Invalid values warn and yield nil.
func (b *builder) attrInt(el, attr, raw string) *int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		b.warn(el, attr, "invalid numeric value %q for %s on <%s>", raw, attr, el)
		return nil
	}
	return &n
}

// dedupAttrs returns an element's attributes with duplicates dropped,
// first occurrence winning, matching case-insensitively. encoding/xml
// does not reject duplicate attributes, and Element.Attr already
// resolves to the first match, so the builder must follow the same rule.
// Each duplicate warns once.
func (b *builder) dedupAttrs(el *xmltree.Element, tag string) []xml.Attr {
	seen := make(map[string]bool, len(el.Attrs))
	var out []xml.Attr
	for _, a := range el.Attrs {
		key := strings.ToLower(a.Name.Local)
		if seen[key] {
			b.warn(tag, a.Name.Local, "duplicate attribute %q on <%s>, keeping the first", a.Name.Local, tag)
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

// requireAttr fetches a required name-like attribute, warning (not
// failing) when it is missing or empty.
func (b *builder) requireAttr(el *xmltree.Element, name string) string {
	if v, ok := el.Attr(name); ok && v != "" {
		return v
	}
	b.warn(strings.ToLower(el.Name), name, "<%s> is missing the %s attribute", strings.ToLower(el.Name), name)
	return ""
}

func (b *builder) buildFetch(el, entityEl *xmltree.Element) *fetch.Fetch {
	node := &fetch.Fetch{NodeID: b.ids.Next()}
	for _, a := range b.dedupAttrs(el, "fetch") {
		v := a.Value
		switch strings.ToLower(a.Name.Local) {
		case "aggregate":
			node.Aggregate = b.attrBool("fetch", "aggregate", v, false)
		case "distinct":
			node.Distinct = b.attrBool("fetch", "distinct", v, false)
		case "returntotalrecordcount":
			node.ReturnTotalRecordCount = b.attrBool("fetch", "returntotalrecordcount", v, false)
		case "no-lock":
			node.NoLock = b.attrBool("fetch", "no-lock", v, false)
		case "latematerialize":
			node.LateMaterialize = b.attrBool("fetch", "latematerialize", v, false)
		case "top":
			node.Top = b.attrInt("fetch", "top", v)
		case "count":
			node.Count = b.attrInt("fetch", "count", v)
		case "page":
			node.Page = b.attrInt("fetch", "page", v)
		case "utc-offset":
			node.UTCOffset = b.attrInt("fetch", "utc-offset", v)
		case "paging-cookie":
			node.PagingCookie = v
		default:
			b.warn("fetch", a.Name.Local, "unknown attribute %q on <fetch>", a.Name.Local)
		}
	}
	for _, c := range el.Children {
		if c == entityEl {
			node.Entity = b.buildEntity(c)
		} else {
			b.warn("fetch", "", "unknown element <%s> under <fetch>", c.Name)
		}
	}
	return node
}

func (b *builder) buildEntity(el *xmltree.Element) *fetch.Entity {
	node := &fetch.Entity{NodeID: b.ids.Next()}
	for _, a := range b.dedupAttrs(el, "entity") {
		switch strings.ToLower(a.Name.Local) {
		case "name":
			node.Name = a.Value
		case "enableprefiltering":
			node.EnablePrefiltering = b.attrBool("entity", "enableprefiltering", a.Value, false)
		case "prefilterparametername":
			node.PrefilterParameterName = a.Value
		default:
			b.warn("entity", a.Name.Local, "unknown attribute %q on <entity>", a.Name.Local)
		}
	}
	b.buildEntityChildren(el, "entity",
		&node.Attributes, &node.AllAttributes, &node.Orders, &node.Filters, &node.Links)
	return node
}

// buildEntityChildren handles the child collections shared by <entity>
// and <link-entity>.
func (b *builder) buildEntityChildren(el *xmltree.Element, tag string, attrs *[]*fetch.Attribute, all **fetch.AllAttributes, orders *[]*fetch.Order, filters *[]*fetch.Filter, links *[]*fetch.LinkEntity) {
	for _, c := range el.Children {
		switch strings.ToLower(c.Name) {
		case "attribute":
			*attrs = append(*attrs, b.buildAttribute(c))
		case "all-attributes":
			if *all != nil {
				b.warn(tag, "", "duplicate <all-attributes> under <%s>", tag)
				continue
			}
			*all = &fetch.AllAttributes{NodeID: b.ids.Next()}
		case "order":
			*orders = append(*orders, b.buildOrder(c))
		case "filter":
			*filters = append(*filters, b.buildFilter(c))
		case "link-entity":
			*links = append(*links, b.buildLink(c))
		default:
			b.warn(tag, "", "unknown element <%s> under <%s>", c.Name, tag)
		}
	}
}

func (b *builder) buildAttribute(el *xmltree.Element) *fetch.Attribute {
	node := &fetch.Attribute{NodeID: b.ids.Next()}
	node.Name = b.requireAttr(el, "name")
	for _, a := range b.dedupAttrs(el, "attribute") {
		v := a.Value
		switch strings.ToLower(a.Name.Local) {
		case "name":
			// Handled above.
		case "alias":
			if strings.ContainsAny(v, " \t\r\n") {
				b.warn("attribute", "alias", "alias %q contains whitespace", v)
			}
			node.Alias = v
		case "groupby":
			node.GroupBy = b.attrBool("attribute", "groupby", v, false)
		case "aggregate":
			if !fetch.ValidAggregates[v] {
				b.warn("attribute", "aggregate", "invalid aggregate value %q, ignoring", v)
				continue
			}
			node.Aggregate = v
		case "dategrouping":
			if !fetch.ValidDateGroupings[v] {
				b.warn("attribute", "dategrouping", "invalid dategrouping value %q, ignoring", v)
				continue
			}
			node.DateGrouping = v
		case "usertimezone":
			node.UserTimeZone = b.attrBool("attribute", "usertimezone", v, false)
		default:
			b.warn("attribute", a.Name.Local, "unknown attribute %q on <attribute>", a.Name.Local)
		}
	}
	for _, c := range el.Children {
		b.warn("attribute", "", "unknown element <%s> under <attribute>", c.Name)
	}
	return node
}

func (b *builder) buildOrder(el *xmltree.Element) *fetch.Order {
	node := &fetch.Order{NodeID: b.ids.Next()}
	node.Attribute = b.requireAttr(el, "attribute")
	for _, a := range b.dedupAttrs(el, "order") {
		switch strings.ToLower(a.Name.Local) {
		case "attribute":
		case "descending":
			node.Descending = b.attrBool("order", "descending", a.Value, false)
		case "entityname":
			node.EntityName = a.Value
		default:
			b.warn("order", a.Name.Local, "unknown attribute %q on <order>", a.Name.Local)
		}
	}
	for _, c := range el.Children {
		b.warn("order", "", "unknown element <%s> under <order>", c.Name)
	}
	return node
}

func (b *builder) buildFilter(el *xmltree.Element) *fetch.Filter {
	node := &fetch.Filter{NodeID: b.ids.Next(), Type: "and"}
	for _, a := range b.dedupAttrs(el, "filter") {
		v := a.Value
		switch strings.ToLower(a.Name.Local) {
		case "type":
			if !fetch.ValidFilterTypes[v] {
				b.warn("filter", "type", "invalid filter type %q, using \"and\"", v)
				continue
			}
			node.Type = v
		case "hint":
			if v != fetch.FilterHintUnion {
				b.warn("filter", "hint", "invalid hint value %q, ignoring", v)
				continue
			}
			node.Hint = v
		default:
			b.warn("filter", a.Name.Local, "unknown attribute %q on <filter>", a.Name.Local)
		}
	}
	for _, c := range el.Children {
		switch strings.ToLower(c.Name) {
		case "condition":
			node.Conditions = append(node.Conditions, b.buildCondition(c))
		case "filter":
			node.Filters = append(node.Filters, b.buildFilter(c))
		case "link-entity":
			node.Links = append(node.Links, b.buildLink(c))
		default:
			b.warn("filter", "", "unknown element <%s> under <filter>", c.Name)
		}
	}
	return node
}

func (b *builder) buildCondition(el *xmltree.Element) *fetch.Condition {
	node := &fetch.Condition{NodeID: b.ids.Next()}
	node.Attribute = b.requireAttr(el, "attribute")
	node.Operator = b.requireAttr(el, "operator")
	var valueAttr string
	var hasValueAttr bool
	for _, a := range b.dedupAttrs(el, "condition") {
		v := a.Value
		switch strings.ToLower(a.Name.Local) {
		case "attribute", "operator":
		case "entityname":
			node.EntityName = v
		case "valueof":
			node.ValueOf = v
		case "aggregate":
			if !fetch.ValidConditionAggregates[v] {
				b.warn("condition", "aggregate", "invalid aggregate value %q, ignoring", v)
				continue
			}
			node.Aggregate = v
		case "value":
			valueAttr = v
			hasValueAttr = true
		default:
			b.warn("condition", a.Name.Local, "unknown attribute %q on <condition>", a.Name.Local)
		}
	}
	for _, c := range el.Children {
		if !strings.EqualFold(c.Name, "value") {
			b.warn("condition", "", "unknown element <%s> under <condition>", c.Name)
			continue
		}
		node.Values = append(node.Values, fetch.CoerceText(strings.TrimSpace(c.Text)))
	}
	if hasValueAttr {
		if len(node.Values) > 0 {
			b.warn("condition", "value", "condition has both a value attribute and <value> children; using the children")
		} else {
			node.Value = fetch.CoerceAttribute(valueAttr)
		}
	}
	return node
}

func (b *builder) buildLink(el *xmltree.Element) *fetch.LinkEntity {
	node := &fetch.LinkEntity{NodeID: b.ids.Next(), LinkType: "inner", Visible: true}
	node.Name = b.requireAttr(el, "name")
	node.From = b.requireAttr(el, "from")
	node.To = b.requireAttr(el, "to")
	for _, a := range b.dedupAttrs(el, "link-entity") {
		v := a.Value
		switch strings.ToLower(a.Name.Local) {
		case "name", "from", "to":
		case "link-type":
			if !fetch.ValidLinkTypes[v] {
				b.warn("link-entity", "link-type", "invalid link-type value %q, using \"inner\"", v)
				continue
			}
			node.LinkType = v
		case "alias":
			node.Alias = v
		case "intersect":
			node.Intersect = b.attrBool("link-entity", "intersect", v, false)
		case "visible":
			node.Visible = b.attrBool("link-entity", "visible", v, true)
		default:
			b.warn("link-entity", a.Name.Local, "unknown attribute %q on <link-entity>", a.Name.Local)
		}
	}
	b.buildEntityChildren(el, "link-entity",
		&node.Attributes, &node.AllAttributes, &node.Orders, &node.Filters, &node.Links)
	return node
}
