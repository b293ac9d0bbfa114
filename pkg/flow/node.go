package flow

// DispatchMode constants define how a step is pushed to the contact.
const (
	// DispatchNormal sends the step only when the previous step routes to it.
	DispatchNormal = ""
	// DispatchAutomatic pushes the step right after its predecessor, without
	// an explicit trigger.
	DispatchAutomatic = "automatic"
)

// Position is the canvas placement of a node. It is presentation metadata
// only; graph semantics never depend on it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Response binds one expected user input to the next step and a display
// payload. An empty Target means the binding is display-only (it never
// projects an edge).
type Response struct {
	Key    string `json:"key"`
	Target string `json:"target,omitempty"`
	Value  string `json:"value"`
}

// Node is one conversational step in the flow graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`

	// Message is the content sent when the step activates.
	Message Message `json:"-"`

	// Responses is the ordered response table. Order is meaningful for the
	// editor UI and is preserved across load/serialize.
	Responses []Response `json:"responses"`

	// Group is the name of the layout group this node belongs to.
	// Empty means ungrouped.
	Group string `json:"group,omitempty"`

	// AutoNext advances the runtime to another step without waiting for
	// user input.
	AutoNext string `json:"auto_next,omitempty"`

	// Dispatch is DispatchNormal or DispatchAutomatic.
	Dispatch string `json:"dispatch,omitempty"`

	Position Position `json:"position"`

	// FreeInput marks a step that accepts any reply and routes it through a
	// single continuation binding.
	FreeInput bool `json:"free_input,omitempty"`

	// ResponseLabel names the continuation of a free-input step in the
	// persisted document.
	ResponseLabel string `json:"response_label,omitempty"`

	// NoMatchMessage is sent by the runtime when no response key matches.
	// Carried through load/serialize untouched.
	NoMatchMessage string `json:"no_match_message,omitempty"`
}

// DisplayLabel returns the label shown on the canvas, falling back to the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	c.Responses = make([]Response, len(n.Responses))
	copy(c.Responses, n.Responses)
	return &c
}
