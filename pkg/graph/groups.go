package graph

// GroupRegistry tracks the group names observed on nodes, in first-observed
// order. It is a derived index over the nodes' own Group fields, not a
// second source of truth: membership is always answered by scanning the
// model (see Model.MembersOf).
type GroupRegistry struct {
	order []string
	seen  map[string]struct{}
}

// NewGroupRegistry creates an empty registry.
func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{seen: make(map[string]struct{})}
}

// Add registers a group name. Adding an existing name or the empty name is
// a no-op.
func (r *GroupRegistry) Add(name string) {
	if name == "" {
		return
	}
	if _, ok := r.seen[name]; ok {
		return
	}
	r.seen[name] = struct{}{}
	r.order = append(r.order, name)
}

// Names returns the registered group names in first-observed order.
func (r *GroupRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
