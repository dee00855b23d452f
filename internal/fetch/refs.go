package fetch

// LinkRef describes one link-entity found anywhere in a tree.
//
// Identifier is the value legal in entityname= attributes: the link's
// alias if present, else its entity name. Label is a human-readable
// form, "alias (entity)" when aliased, else just the entity name.
type LinkRef struct {
	Identifier string
	EntityName string
	Alias      string
	Label      string
	NodeID     string
}

// CollectLinkRefs returns every link-entity in the tree, depth-first.
// At each level, directly attached links (with their whole subtrees)
// come before links embedded in that level's filters, regardless of how
// the two were interleaved in the source document. Total: returns nil
// for a nil or entity-less tree.
func CollectLinkRefs(root *Fetch) []LinkRef {
	if root == nil || root.Entity == nil {
		return nil
	}
	var refs []LinkRef
	collectEntityLinks(root.Entity.Links, root.Entity.Filters, &refs)
	return refs
}

func collectEntityLinks(links []*LinkEntity, filters []*Filter, refs *[]LinkRef) {
	for _, l := range links {
		*refs = append(*refs, newLinkRef(l))
		collectEntityLinks(l.Links, l.Filters, refs)
	}
	for _, f := range filters {
		collectFilterLinks(f, refs)
	}
}

func collectFilterLinks(f *Filter, refs *[]LinkRef) {
	for _, l := range f.Links {
		*refs = append(*refs, newLinkRef(l))
		collectEntityLinks(l.Links, l.Filters, refs)
	}
	for _, sub := range f.Filters {
		collectFilterLinks(sub, refs)
	}
}

func newLinkRef(l *LinkEntity) LinkRef {
	ref := LinkRef{
		Identifier: l.Name,
		EntityName: l.Name,
		Alias:      l.Alias,
		Label:      l.Name,
		NodeID:     l.NodeID,
	}
	if l.Alias != "" {
		ref.Identifier = l.Alias
		ref.Label = l.Alias + " (" + l.Name + ")"
	}
	return ref
}

// LinkChildRestriction reports whether a link-entity carries children
// that are semantically incompatible with its link type. "not any" and
// "not all" joins must not have attribute, filter, or nested link
// children; this is advisory (a UI confirmation concern), never a parse
// rejection.
func LinkChildRestriction(l *LinkEntity) bool {
	if l == nil {
		return false
	}
	if l.LinkType != "not any" && l.LinkType != "not all" {
		return false
	}
	return len(l.Attributes) > 0 || l.AllAttributes != nil ||
		len(l.Filters) > 0 || len(l.Links) > 0
}
