package fetchxml

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetch"
)

// stripIDs zeroes node identifiers so trees from separate parses can be
// compared structurally.
func stripIDs(f *fetch.Fetch) {
	if f == nil {
		return
	}
	f.NodeID = ""
	stripEntityIDs(f.Entity)
}

func stripEntityIDs(e *fetch.Entity) {
	if e == nil {
		return
	}
	e.NodeID = ""
	stripChildIDs(e.Attributes, e.AllAttributes, e.Orders, e.Filters, e.Links)
}

func stripChildIDs(attrs []*fetch.Attribute, all *fetch.AllAttributes, orders []*fetch.Order, filters []*fetch.Filter, links []*fetch.LinkEntity) {
	for _, a := range attrs {
		a.NodeID = ""
	}
	if all != nil {
		all.NodeID = ""
	}
	for _, o := range orders {
		o.NodeID = ""
	}
	for _, f := range filters {
		stripFilterIDs(f)
	}
	for _, l := range links {
		stripLinkIDs(l)
	}
}

func stripFilterIDs(f *fetch.Filter) {
	f.NodeID = ""
	for _, c := range f.Conditions {
		c.NodeID = ""
	}
	for _, sub := range f.Filters {
		stripFilterIDs(sub)
	}
	for _, l := range f.Links {
		stripLinkIDs(l)
	}
}

func stripLinkIDs(l *fetch.LinkEntity) {
	l.NodeID = ""
	stripChildIDs(l.Attributes, l.AllAttributes, l.Orders, l.Filters, l.Links)
}

const complexDoc = `<fetch top="50" distinct="true" aggregate="false">
	<entity name="account">
		<attribute name="name"/>
		<attribute alias="rev" name="revenue"/>
		<order descending="true" attribute="name"/>
		<filter type="or">
			<condition attribute="statecode" operator="eq" value="0"/>
			<filter>
				<condition attribute="revenue" operator="gt" value="100000"/>
				<condition attribute="name" operator="like" value="%inc%"/>
			</filter>
		</filter>
		<link-entity name="contact" from="parentcustomerid" to="accountid" link-type="outer" alias="c" visible="true">
			<attribute name="fullname"/>
			<filter>
				<condition attribute="statuscode" operator="in">
					<value>1</value>
					<value>2</value>
				</condition>
			</filter>
		</link-entity>
	</entity>
</fetch>`

func TestSerialize_Golden(t *testing.T) {
	tree := parseClean(t, complexDoc)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "complex", []byte(Serialize(tree)))
}

func TestSerialize_ByteStable(t *testing.T) {
	tree := parseClean(t, complexDoc)

	first := Serialize(tree)
	assert.Equal(t, first, Serialize(tree), "repeated serialization must not drift")

	// The canonical form is a fixed point: reparsing and reserializing
	// yields identical bytes.
	again := parseClean(t, first)
	assert.Equal(t, first, Serialize(again))
}

func TestSerialize_RoundTripPreservesTree(t *testing.T) {
	tree := parseClean(t, complexDoc)
	again := parseClean(t, Serialize(tree))

	stripIDs(tree)
	stripIDs(again)
	assert.Equal(t, tree, again)
}

func TestSerialize_Minimal(t *testing.T) {
	tree := parseClean(t, `<fetch><entity name="account"/></fetch>`)

	want := "<fetch>\n  <entity name=\"account\" />\n</fetch>\n"
	assert.Equal(t, want, Serialize(tree))
}

func TestSerialize_DefaultsAlwaysExplicit(t *testing.T) {
	// Filters and links written without type information still serialize
	// with their defaults spelled out.
	tree := &fetch.Fetch{
		NodeID: "1",
		Entity: &fetch.Entity{
			NodeID:  "2",
			Name:    "account",
			Filters: []*fetch.Filter{{NodeID: "3"}},
			Links:   []*fetch.LinkEntity{{NodeID: "4", Name: "contact", From: "a", To: "b", Visible: true}},
		},
	}

	out := Serialize(tree)
	assert.Contains(t, out, `<filter type="and" />`)
	assert.Contains(t, out, `link-type="inner"`)
	assert.NotContains(t, out, "visible")
}

func TestSerialize_VisibleFalseEmitted(t *testing.T) {
	tree := parseClean(t, `<fetch><entity name="account"><link-entity name="contact" from="a" to="b" visible="false"/></entity></fetch>`)

	assert.Contains(t, Serialize(tree), `visible="false"`)
}

func TestSerialize_FalseFlagsOmitted(t *testing.T) {
	tree := parseClean(t, `<fetch distinct="false" no-lock="0"><entity name="account"><attribute name="name" groupby="false"/></entity></fetch>`)

	out := Serialize(tree)
	assert.NotContains(t, out, "distinct")
	assert.NotContains(t, out, "no-lock")
	assert.NotContains(t, out, "groupby")
}

func TestSerialize_Escaping(t *testing.T) {
	tree := parseClean(t, `<fetch><entity name="account"><filter><condition attribute="name" operator="like" value="A &amp; B &lt;Ltd&gt;"/></filter></entity></fetch>`)

	out := Serialize(tree)
	assert.Contains(t, out, `value="A &amp; B &lt;Ltd&gt;"`)

	// Escaped text survives a round trip intact.
	again := parseClean(t, out)
	c := again.Entity.Filters[0].Conditions[0]
	assert.Equal(t, fetch.String("A & B <Ltd>"), c.Value)
}

func TestSerialize_NumberFormatting(t *testing.T) {
	tree := &fetch.Fetch{
		NodeID: "1",
		Entity: &fetch.Entity{
			NodeID: "2",
			Name:   "account",
			Filters: []*fetch.Filter{{
				NodeID: "3",
				Type:   "and",
				Conditions: []*fetch.Condition{
					{NodeID: "4", Attribute: "revenue", Operator: "gt", Value: fetch.Number(2500000)},
					{NodeID: "5", Attribute: "ratio", Operator: "lt", Value: fetch.Number(0.25)},
					{NodeID: "6", Attribute: "isprivate", Operator: "eq", Value: fetch.Bool(true)},
				},
			}},
		},
	}

	out := Serialize(tree)
	assert.Contains(t, out, `value="2500000"`)
	assert.Contains(t, out, `value="0.25"`)
	assert.Contains(t, out, `value="true"`)
}

func TestSerialize_ValueChildrenOnOwnLines(t *testing.T) {
	tree := parseClean(t, `<fetch><entity name="account"><filter><condition attribute="statuscode" operator="in"><value>1</value><value>two</value></condition></filter></entity></fetch>`)

	out := Serialize(tree)
	assert.Contains(t, out, "        <value>1</value>\n")
	assert.Contains(t, out, "        <value>two</value>\n")
	assert.Contains(t, out, "      </condition>\n")
}

func TestSerialize_EntityWithoutChildren(t *testing.T) {
	tree := parseClean(t, `<fetch aggregate="true" page="3"><entity name="account" enableprefiltering="true" prefilterparametername="p1"/></fetch>`)

	want := "<fetch aggregate=\"true\" page=\"3\">\n" +
		"  <entity name=\"account\" enableprefiltering=\"true\" prefilterparametername=\"p1\" />\n" +
		"</fetch>\n"
	assert.Equal(t, want, Serialize(tree))
}

func TestSerialize_RequiresEntity(t *testing.T) {
	// Trees under construction may lack an entity; serialization stays
	// total rather than panicking.
	out := Serialize(&fetch.Fetch{NodeID: "1"})
	require.Equal(t, "<fetch />\n", out)
}
