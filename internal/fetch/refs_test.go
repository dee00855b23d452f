package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linkedTree builds:
//
//	fetch > entity "account"
//	  link-entity "contact" alias "c"
//	    link-entity "systemuser" (no alias)
//	  filter
//	    link-entity "opportunity" alias "op"
func linkedTree() *Fetch {
	nested := &LinkEntity{NodeID: "l2", Name: "systemuser", From: "systemuserid", To: "ownerid", LinkType: "outer", Visible: true}
	direct := &LinkEntity{
		NodeID: "l1", Name: "contact", From: "parentcustomerid", To: "accountid",
		LinkType: "inner", Alias: "c", Visible: true,
		Links: []*LinkEntity{nested},
	}
	inFilter := &LinkEntity{NodeID: "l3", Name: "opportunity", From: "customerid", To: "accountid", LinkType: "any", Alias: "op", Visible: true}
	return &Fetch{
		NodeID: "f",
		Entity: &Entity{
			NodeID: "e",
			Name:   "account",
			Links:  []*LinkEntity{direct},
			Filters: []*Filter{{
				NodeID: "flt",
				Type:   "and",
				Links:  []*LinkEntity{inFilter},
			}},
		},
	}
}

func TestCollectLinkRefs_DepthFirst(t *testing.T) {
	refs := CollectLinkRefs(linkedTree())
	require.Len(t, refs, 3)

	assert.Equal(t, "c", refs[0].Identifier)
	assert.Equal(t, "contact", refs[0].EntityName)
	assert.Equal(t, "c (contact)", refs[0].Label)
	assert.Equal(t, "l1", refs[0].NodeID)

	// Unaliased links use the entity name as both identifier and label.
	assert.Equal(t, "systemuser", refs[1].Identifier)
	assert.Equal(t, "systemuser", refs[1].Label)

	// Links embedded in filters are found too.
	assert.Equal(t, "op", refs[2].Identifier)
	assert.Equal(t, "l3", refs[2].NodeID)
}

func TestCollectLinkRefs_TotalOnMissingTree(t *testing.T) {
	assert.Nil(t, CollectLinkRefs(nil))
	assert.Nil(t, CollectLinkRefs(&Fetch{NodeID: "f"}))
	assert.Empty(t, CollectLinkRefs(&Fetch{NodeID: "f", Entity: &Entity{NodeID: "e", Name: "account"}}))
}

func TestLinkChildRestriction(t *testing.T) {
	restricted := &LinkEntity{NodeID: "l", Name: "contact", LinkType: "not any",
		Attributes: []*Attribute{{NodeID: "a", Name: "fullname"}}}
	assert.True(t, LinkChildRestriction(restricted))

	childless := &LinkEntity{NodeID: "l", Name: "contact", LinkType: "not all"}
	assert.False(t, LinkChildRestriction(childless))

	// Regular joins may carry children freely.
	inner := &LinkEntity{NodeID: "l", Name: "contact", LinkType: "inner",
		Filters: []*Filter{{NodeID: "f", Type: "and"}}}
	assert.False(t, LinkChildRestriction(inner))

	assert.False(t, LinkChildRestriction(nil))
}
