package fetch

// Node is the sealed interface implemented by every tree node.
//
// Node types:
//   - Fetch: query root, owns exactly one Entity
//   - Entity: primary data source
//   - Attribute: projected column
//   - AllAttributes: "include every attribute" marker
//   - Order: sort directive
//   - Filter: predicate group (and/or)
//   - Condition: single predicate
//   - LinkEntity: joined entity, structurally an Entity plus join metadata
//
// The marker method prevents external implementations and enables
// exhaustive type switches in the parser and serializer.
type Node interface {
	ID() string
	fetchNode() // Marker method - seals interface to this package
}

// Fetch is the query root. It owns exactly one Entity and the
// query-level options. Options are independent booleans/numbers with no
// cross-validation at this layer; combinations that make no sense
// (aggregate with paging-cookie, say) are advisory concerns for callers.
type Fetch struct {
	NodeID string

	Aggregate              bool
	Distinct               bool
	ReturnTotalRecordCount bool
	NoLock                 bool
	LateMaterialize        bool
	Top                    *int
	Count                  *int
	Page                   *int
	UTCOffset              *int
	PagingCookie           string

	Entity *Entity
}

func (f *Fetch) ID() string { return f.NodeID }
func (*Fetch) fetchNode()   {}

// Entity is the primary data source of a query.
//
// Filters is a lenient list: only the first element is meaningful at the
// top level, but documents with multiple top-level filters parse today
// and continue to parse here. See the package docs on validation policy.
type Entity struct {
	NodeID string

	Name                   string
	EnablePrefiltering     bool
	PrefilterParameterName string

	Attributes    []*Attribute
	AllAttributes *AllAttributes
	Orders        []*Order
	Filters       []*Filter
	Links         []*LinkEntity
}

func (e *Entity) ID() string { return e.NodeID }
func (*Entity) fetchNode()   {}

// Attribute is a projected column.
//
// Alias must not contain whitespace (advisory; the parser warns).
// Aggregate is one of ValidAggregates; DateGrouping one of
// ValidDateGroupings. Both are left empty when absent or invalid.
type Attribute struct {
	NodeID string

	Name         string
	Alias        string
	GroupBy      bool
	Aggregate    string
	DateGrouping string
	UserTimeZone bool
}

func (a *Attribute) ID() string { return a.NodeID }
func (*Attribute) fetchNode()   {}

// AllAttributes is the "include every attribute" marker. Presence
// implies enabled; it carries no other state.
type AllAttributes struct {
	NodeID string
}

func (a *AllAttributes) ID() string { return a.NodeID }
func (*AllAttributes) fetchNode()   {}

// Order is a sort directive. EntityName references a link-entity (by
// alias if set, else entity name) when the ordered attribute belongs to
// a joined entity visible from the root filter scope.
type Order struct {
	NodeID string

	Attribute  string
	Descending bool
	EntityName string
}

func (o *Order) ID() string { return o.NodeID }
func (*Order) fetchNode()   {}

// Filter is a predicate group. Type is "and" or "or" (default "and").
// Filters nest without bound, and a filter may embed link-entities
// directly for existence-style joins (any / not any / all semantics).
// Hint's only meaningful value is FilterHintUnion.
type Filter struct {
	NodeID string

	Type string
	Hint string

	Conditions []*Condition
	Filters    []*Filter
	Links      []*LinkEntity
}

func (f *Filter) ID() string { return f.NodeID }
func (*Filter) fetchNode()   {}

// Condition is a single predicate.
//
// Operator is an open string; the set of comparison operators is large
// and evolving, so validity is a lookup concern (see Catalog), not a
// type constraint. EntityName is legal only for conditions directly
// inside the root entity's filter tree (see InRootFilterScope). ValueOf
// compares against another attribute instead of a literal; in practice
// it is mutually exclusive with Value/Values but that is not enforced
// structurally.
//
// Value holds a single scalar (from a value= attribute); Values holds an
// ordered list (from <value> children) for multi-valued operators. At
// most one of the two is set by the parser.
type Condition struct {
	NodeID string

	Attribute  string
	Operator   string
	EntityName string
	ValueOf    string
	Aggregate  string

	Value  Scalar
	Values []Scalar
}

func (c *Condition) ID() string { return c.NodeID }
func (*Condition) fetchNode()   {}

// LinkEntity is a joined entity. From is the join attribute on the
// joined entity, To the attribute on the parent. LinkType defaults to
// "inner". Visible defaults to true and governs whether the link's
// columns appear in the projection or the join is filter-only; the
// parser sets it, so hand-built trees must set it explicitly.
//
// A LinkEntity owns the same children an Entity does, recursively.
type LinkEntity struct {
	NodeID string

	Name      string
	From      string
	To        string
	LinkType  string
	Alias     string
	Intersect bool
	Visible   bool

	Attributes    []*Attribute
	AllAttributes *AllAttributes
	Orders        []*Order
	Filters       []*Filter
	Links         []*LinkEntity
}

func (l *LinkEntity) ID() string { return l.NodeID }
func (*LinkEntity) fetchNode()   {}

// FilterHintUnion is the only meaningful filter hint.
const FilterHintUnion = "union"

// ValidFilterTypes defines the allowed filter conjunctions.
var ValidFilterTypes = map[string]bool{
	"and": true,
	"or":  true,
}

// ValidAggregates defines the allowed attribute aggregate functions.
var ValidAggregates = map[string]bool{
	"sum":          true,
	"count":        true,
	"countcolumn":  true,
	"min":          true,
	"max":          true,
	"avg":          true,
	"rowaggregate": true,
}

// ValidConditionAggregates is the subset of aggregate functions legal on
// a condition (no rowaggregate).
var ValidConditionAggregates = map[string]bool{
	"sum":         true,
	"count":       true,
	"countcolumn": true,
	"min":         true,
	"max":         true,
	"avg":         true,
}

// ValidDateGroupings defines the allowed date-grouping buckets.
var ValidDateGroupings = map[string]bool{
	"day":           true,
	"week":          true,
	"month":         true,
	"quarter":       true,
	"year":          true,
	"fiscal-period": true,
	"fiscal-year":   true,
}

// ValidLinkTypes defines the allowed join semantics.
var ValidLinkTypes = map[string]bool{
	"inner":                        true,
	"outer":                        true,
	"any":                          true,
	"not any":                      true,
	"all":                          true,
	"not all":                      true,
	"exists":                       true,
	"in":                           true,
	"matchfirstrowusingcrossapply": true,
}
