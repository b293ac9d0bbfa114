package dsl

import "github.com/zapflowhq/zapflow/pkg/flow"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    flow.Node
	builder *Builder
}

func newNodeBuilder(id string, b *Builder) *NodeBuilder {
	return &NodeBuilder{
		node: flow.Node{
			ID:      id,
			Label:   id,
			Message: flow.TextMessage{},
		},
		builder: b,
	}
}

// Text sets a plain text message for the step.
func (n *NodeBuilder) Text(body string) *NodeBuilder {
	n.node.Message = flow.TextMessage{Body: body}
	return n
}

// Image sets an image message with a caption for the step.
func (n *NodeBuilder) Image(url, caption string) *NodeBuilder {
	n.node.Message = flow.MediaMessage{URL: url, Caption: caption}
	return n
}

// Respond adds a routed response binding: the key routes to target and
// shows value.
func (n *NodeBuilder) Respond(key, target, value string) *NodeBuilder {
	n.node.Responses = append(n.node.Responses, flow.Response{Key: key, Target: target, Value: value})
	return n
}

// Display adds a display-only response binding (no routing).
func (n *NodeBuilder) Display(key, value string) *NodeBuilder {
	n.node.Responses = append(n.node.Responses, flow.Response{Key: key, Value: value})
	return n
}

// Then sets the automatic-next pointer: the runtime advances to target
// without waiting for input.
func (n *NodeBuilder) Then(target string) *NodeBuilder {
	n.node.AutoNext = target
	return n
}

// Automatic marks the step as pushed right after its predecessor.
func (n *NodeBuilder) Automatic() *NodeBuilder {
	n.node.Dispatch = flow.DispatchAutomatic
	return n
}

// FreeInput marks the step as accepting any reply, routed to target under
// the given label.
func (n *NodeBuilder) FreeInput(label, target string) *NodeBuilder {
	n.node.FreeInput = true
	n.node.ResponseLabel = label
	n.node.Responses = []flow.Response{{Key: label, Target: target, Value: label}}
	return n
}

// Group assigns the step to a layout group.
func (n *NodeBuilder) Group(name string) *NodeBuilder {
	n.node.Group = name
	return n
}

// At places the step on the canvas.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.node.Position = flow.Position{X: x, Y: y}
	return n
}

// NoMatch sets the message sent when no response key matches.
func (n *NodeBuilder) NoMatch(msg string) *NodeBuilder {
	n.node.NoMatchMessage = msg
	return n
}

// Build returns the underlying flow.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() flow.Node {
	return n.node
}
