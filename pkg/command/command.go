// Package command defines the closed set of editing intents and the bus
// that applies them to a graph model. Every mutation of an editing session
// flows through here; handlers run to completion before the next command is
// delivered, so ordering is plain FIFO arrival order.
package command

import "github.com/zapflowhq/zapflow/pkg/flow"

// Command is one discrete editing intent.
type Command interface {
	// Name identifies the command type for logging and metrics.
	Name() string
}

// Create adds a node. An empty ID asks the bus to generate one.
type Create struct {
	Node flow.Node
}

func (Create) Name() string { return "create" }

// CreateConnectedFrom adds a node and a response binding on the source
// pointing at it. An empty ID asks the bus to generate one.
type CreateConnectedFrom struct {
	Source string
	ID     string
}

func (CreateConnectedFrom) Name() string { return "create_connected_from" }

// InsertBetween splits an edge: a new node is created at the edge midpoint,
// the original binding is rewired to it, and the new node routes onward to
// the original target.
type InsertBetween struct {
	Source string
	Target string
	Label  string
	// ID names the inserted node; empty asks the bus to generate one.
	ID string
}

func (InsertBetween) Name() string { return "insert_between" }

// Delete removes a node and its incident edges.
type Delete struct {
	NodeID string
}

func (Delete) Name() string { return "delete" }

// Rename atomically changes a node ID, rewriting every reference.
type Rename struct {
	OldID string
	NewID string
}

func (Rename) Name() string { return "rename" }

// RemoveEdge disconnects one response binding, identified by its key and
// current target. The binding itself survives as display-only.
type RemoveEdge struct {
	Source string
	Target string
	Label  string
}

func (RemoveEdge) Name() string { return "remove_edge" }

// RemoveAutomaticEdge clears the source's automatic-next pointer if it
// currently references the target.
type RemoveAutomaticEdge struct {
	Source string
	Target string
}

func (RemoveAutomaticEdge) Name() string { return "remove_automatic_edge" }

// AssignGroup sets a node's group; an empty group clears membership.
type AssignGroup struct {
	NodeID string
	Group  string
}

func (AssignGroup) Name() string { return "assign_group" }
