package command

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zapflowhq/zapflow/internal/logging"
	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/graph"
	"github.com/zapflowhq/zapflow/pkg/observability"
)

// generatedIDBase is the stem used when a command does not name the node it
// creates.
const generatedIDBase = "etapa"

// Bus applies commands to a model. Dispatch is serialized by a mutex, so
// each handler runs to completion before the next command is delivered.
// Commands that reference a missing node are no-ops; commands that would
// violate identity invariants (duplicate or colliding IDs) return an error
// with no state change.
type Bus struct {
	mu      sync.Mutex
	model   *graph.Model
	hooks   flow.Hooks
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures the Bus.
type Option func(*Bus)

// WithHooks registers mutation callbacks for the host UI.
func WithHooks(hooks flow.Hooks) Option {
	return func(b *Bus) { b.hooks = hooks }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) { b.logger = logger }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Bus) { b.metrics = m }
}

// NewBus creates a bus owning the given model.
func NewBus(model *graph.Model, opts ...Option) *Bus {
	b := &Bus{
		model:  model,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Model returns the model the bus mutates.
func (b *Bus) Model() *graph.Model { return b.model }

// Swap replaces the model (after a document load). The old model is
// discarded.
func (b *Bus) Swap(model *graph.Model) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}

// Dispatch applies one command synchronously.
func (b *Bus) Dispatch(cmd Command) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.handle(cmd)
	b.metrics.ObserveCommand(cmd.Name(), err)
	if err != nil {
		b.logger.Warn("Command rejected", "command", cmd.Name(), "err", err)
	} else {
		b.logger.Debug("Command applied", "command", cmd.Name())
	}
	return err
}

func (b *Bus) handle(cmd Command) error {
	switch c := cmd.(type) {
	case Create:
		return b.create(c)
	case CreateConnectedFrom:
		return b.createConnectedFrom(c)
	case InsertBetween:
		return b.insertBetween(c)
	case Delete:
		return b.delete(c)
	case Rename:
		return b.rename(c)
	case RemoveEdge:
		return b.removeEdge(c)
	case RemoveAutomaticEdge:
		return b.removeAutomaticEdge(c)
	case AssignGroup:
		return b.assignGroup(c)
	default:
		return fmt.Errorf("unknown command: %T", cmd)
	}
}

func (b *Bus) create(c Create) error {
	node := c.Node
	if node.ID == "" {
		node.ID = b.generateID()
	}
	if node.Message == nil {
		node.Message = flow.TextMessage{}
	}
	if err := b.model.AddNode(node); err != nil {
		return err
	}
	b.notifyNode(b.hooks.OnNodeCreated, flow.NodeEvent{Type: flow.EventNodeCreated, NodeID: node.ID})
	return nil
}

func (b *Bus) createConnectedFrom(c CreateConnectedFrom) error {
	source, ok := b.model.Node(c.Source)
	if !ok {
		b.logger.Debug("Source missing, ignoring", "command", c.Name(), "node", c.Source)
		return nil
	}

	id := c.ID
	if id == "" {
		id = b.generateID()
	}
	node := flow.Node{
		ID:      id,
		Label:   id,
		Message: flow.TextMessage{},
		Group:   source.Group,
		Position: flow.Position{
			X: source.Position.X,
			Y: source.Position.Y + 180,
		},
	}
	if err := b.model.AddNode(node); err != nil {
		return err
	}

	key := strconv.Itoa(len(source.Responses) + 1)
	err := b.model.UpdateNode(c.Source, func(n *flow.Node) {
		n.Responses = append(n.Responses, flow.Response{Key: key, Target: id, Value: id})
	})
	if err != nil {
		return err
	}

	b.notifyNode(b.hooks.OnNodeCreated, flow.NodeEvent{Type: flow.EventNodeCreated, NodeID: id})
	b.notifyEdges(c.Source)
	return nil
}

func (b *Bus) insertBetween(c InsertBetween) error {
	source, ok := b.model.Node(c.Source)
	if !ok {
		b.logger.Debug("Source missing, ignoring", "command", c.Name(), "node", c.Source)
		return nil
	}
	target, ok := b.model.Node(c.Target)
	if !ok {
		b.logger.Debug("Target missing, ignoring", "command", c.Name(), "node", c.Target)
		return nil
	}

	id := c.ID
	if id == "" {
		id = b.generateID()
	}
	node := flow.Node{
		ID:      id,
		Label:   id,
		Message: flow.TextMessage{},
		Position: flow.Position{
			X: (source.Position.X + target.Position.X) / 2,
			Y: (source.Position.Y + target.Position.Y) / 2,
		},
		Responses: []flow.Response{{Key: "1", Target: c.Target, Value: c.Target}},
	}
	if err := b.model.AddNode(node); err != nil {
		return err
	}

	err := b.model.UpdateNode(c.Source, func(n *flow.Node) {
		if c.Label == flow.EdgeLabelAutomatic {
			if n.AutoNext == c.Target {
				n.AutoNext = id
			}
			return
		}
		for i := range n.Responses {
			if n.Responses[i].Key == c.Label && n.Responses[i].Target == c.Target {
				n.Responses[i].Target = id
				return
			}
		}
	})
	if err != nil {
		return err
	}

	b.notifyNode(b.hooks.OnNodeCreated, flow.NodeEvent{Type: flow.EventNodeCreated, NodeID: id})
	b.notifyEdges(c.Source)
	b.notifyEdges(id)
	return nil
}

func (b *Bus) delete(c Delete) error {
	if !b.model.RemoveNode(c.NodeID) {
		b.logger.Debug("Node missing, ignoring", "command", c.Name(), "node", c.NodeID)
		return nil
	}
	b.notifyNode(b.hooks.OnNodeDeleted, flow.NodeEvent{Type: flow.EventNodeDeleted, NodeID: c.NodeID})
	return nil
}

func (b *Bus) rename(c Rename) error {
	if err := b.model.Rename(c.OldID, c.NewID); err != nil {
		return err
	}
	b.notifyNode(b.hooks.OnNodeRenamed, flow.NodeEvent{
		Type:   flow.EventNodeRenamed,
		NodeID: c.NewID,
		OldID:  c.OldID,
	})
	return nil
}

func (b *Bus) removeEdge(c RemoveEdge) error {
	if !b.model.Has(c.Source) {
		b.logger.Debug("Source missing, ignoring", "command", c.Name(), "node", c.Source)
		return nil
	}
	err := b.model.UpdateNode(c.Source, func(n *flow.Node) {
		for i := range n.Responses {
			if n.Responses[i].Key == c.Label && n.Responses[i].Target == c.Target {
				n.Responses[i].Target = ""
			}
		}
	})
	if err != nil {
		return err
	}
	b.notifyEdges(c.Source)
	return nil
}

func (b *Bus) removeAutomaticEdge(c RemoveAutomaticEdge) error {
	if !b.model.Has(c.Source) {
		b.logger.Debug("Source missing, ignoring", "command", c.Name(), "node", c.Source)
		return nil
	}
	err := b.model.UpdateNode(c.Source, func(n *flow.Node) {
		if n.AutoNext == c.Target {
			n.AutoNext = ""
		}
	})
	if err != nil {
		return err
	}
	b.notifyEdges(c.Source)
	return nil
}

func (b *Bus) assignGroup(c AssignGroup) error {
	if !b.model.Has(c.NodeID) {
		b.logger.Debug("Node missing, ignoring", "command", c.Name(), "node", c.NodeID)
		return nil
	}
	return b.model.AssignGroup(c.NodeID, c.Group)
}

// generateID returns the first etapa_N not present in the model.
func (b *Bus) generateID() string {
	for i := b.model.Len() + 1; ; i++ {
		id := fmt.Sprintf("%s_%d", generatedIDBase, i)
		if !b.model.Has(id) {
			return id
		}
	}
}

func (b *Bus) notifyNode(fn func(flow.NodeEvent), ev flow.NodeEvent) {
	if fn != nil {
		fn(ev)
	}
}

func (b *Bus) notifyEdges(sourceID string) {
	if b.hooks.OnEdgesChanged != nil {
		b.hooks.OnEdgesChanged(sourceID)
	}
}
