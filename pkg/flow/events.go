package flow

// EventType defines the category of a graph change event.
type EventType string

const (
	EventNodeCreated  EventType = "node_created"
	EventNodeDeleted  EventType = "node_deleted"
	EventNodeRenamed  EventType = "node_renamed"
	EventEdgesChanged EventType = "edges_changed"
)

// NodeEvent describes a structural change to a single node.
type NodeEvent struct {
	Type   EventType `json:"type"`
	NodeID string    `json:"node_id"`
	// OldID is set for rename events.
	OldID string `json:"old_id,omitempty"`
}

// Hooks defines callbacks the host (the rendering layer) can register to
// observe graph mutations. Nil callbacks are skipped.
type Hooks struct {
	OnNodeCreated  func(NodeEvent)
	OnNodeDeleted  func(NodeEvent)
	OnNodeRenamed  func(NodeEvent)
	OnEdgesChanged func(sourceID string)
}
