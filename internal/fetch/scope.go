package fetch

// InRootFilterScope reports whether the condition with the given
// identifier sits inside the root entity's own filter tree, descending
// only through nested sub-filters and never through a link-entity's
// filters. Cross-entity references (entityname= on a condition) are
// legal only in that scope.
//
// Total: returns false for a nil tree, an unknown identifier, or an
// identifier that names something other than a condition in root scope.
func InRootFilterScope(root *Fetch, conditionID string) bool {
	if root == nil || root.Entity == nil || conditionID == "" {
		return false
	}
	for _, f := range root.Entity.Filters {
		if filterHoldsCondition(f, conditionID) {
			return true
		}
	}
	return false
}

// filterHoldsCondition searches a filter's conditions and sub-filters.
// Link-entities embedded in the filter are deliberately not descended:
// their conditions belong to the linked entity's scope.
func filterHoldsCondition(f *Filter, conditionID string) bool {
	for _, c := range f.Conditions {
		if c.NodeID == conditionID {
			return true
		}
	}
	for _, sub := range f.Filters {
		if filterHoldsCondition(sub, conditionID) {
			return true
		}
	}
	return false
}

// OwningEntityName returns the logical name (never the alias) of the
// nearest enclosing entity or link-entity for the node with the given
// identifier. Returns "" when the identifier is root-level (the fetch or
// root entity node itself) or not found.
//
// A link-entity with an empty name is not promoted as the owner of its
// own children: while a link is half-configured during editing, its
// children keep resolving against the populated ancestor instead of an
// empty placeholder.
func OwningEntityName(root *Fetch, nodeID string) string {
	if root == nil || root.Entity == nil || nodeID == "" {
		return ""
	}
	if root.NodeID == nodeID || root.Entity.NodeID == nodeID {
		return ""
	}
	e := root.Entity
	name, ok := ownerInEntity(e.Name, e.Attributes, e.AllAttributes, e.Orders, e.Filters, e.Links, nodeID)
	if !ok {
		return ""
	}
	return name
}

// ownerInEntity searches the child collections shared by Entity and
// LinkEntity. owner is the logical name children of this level resolve
// against.
func ownerInEntity(owner string, attrs []*Attribute, all *AllAttributes, orders []*Order, filters []*Filter, links []*LinkEntity, nodeID string) (string, bool) {
	for _, a := range attrs {
		if a.NodeID == nodeID {
			return owner, true
		}
	}
	if all != nil && all.NodeID == nodeID {
		return owner, true
	}
	for _, o := range orders {
		if o.NodeID == nodeID {
			return owner, true
		}
	}
	for _, f := range filters {
		if name, ok := ownerInFilter(owner, f, nodeID); ok {
			return name, true
		}
	}
	for _, l := range links {
		if l.NodeID == nodeID {
			return owner, true
		}
		if name, ok := ownerInLink(owner, l, nodeID); ok {
			return name, true
		}
	}
	return "", false
}

func ownerInFilter(owner string, f *Filter, nodeID string) (string, bool) {
	if f.NodeID == nodeID {
		return owner, true
	}
	for _, c := range f.Conditions {
		if c.NodeID == nodeID {
			return owner, true
		}
	}
	for _, sub := range f.Filters {
		if name, ok := ownerInFilter(owner, sub, nodeID); ok {
			return name, true
		}
	}
	for _, l := range f.Links {
		if l.NodeID == nodeID {
			return owner, true
		}
		if name, ok := ownerInLink(owner, l, nodeID); ok {
			return name, true
		}
	}
	return "", false
}

func ownerInLink(outer string, l *LinkEntity, nodeID string) (string, bool) {
	owner := l.Name
	if owner == "" {
		owner = outer
	}
	return ownerInEntity(owner, l.Attributes, l.AllAttributes, l.Orders, l.Filters, l.Links, nodeID)
}
