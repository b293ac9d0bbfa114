package document

import (
	"log/slog"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/zapflowhq/zapflow/internal/logging"
	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/graph"
)

// FinalizeStepID is the literal step name of the terminal fan-out step. Its
// response bindings are display-only variants routed to a human sector.
const FinalizeStepID = "finalizar"

// FinalSectorID is the routing identifier attached to reconstructed final
// variants on serialization.
const FinalSectorID = "atendimento"

// Wire kind for image messages.
const messageKindImage = "image"

// Fallback grid used when a node has no persisted position.
const (
	fallbackColumns = 3
	fallbackHGap    = 320
	fallbackVGap    = 180
)

type mediaWire struct {
	Kind     string `mapstructure:"kind"`
	ImageURL string `mapstructure:"imageUrl"`
	Message  string `mapstructure:"message"`
}

type routedWire struct {
	Next  string `mapstructure:"next" json:"next"`
	Valor string `mapstructure:"valor" json:"valor"`
}

// Converter maps between the persisted step script and the graph model.
type Converter struct {
	logger      *slog.Logger
	finalSector string
}

// Option configures the Converter.
type Option func(*Converter)

// WithLogger sets a structured logger for skipped-step diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithFinalSector overrides the sector ID attached to serialized final
// variants.
func WithFinalSector(sectorID string) Option {
	return func(c *Converter) { c.finalSector = sectorID }
}

// NewConverter creates a converter with the default final sector.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		logger:      logging.NewNop(),
		finalSector: FinalSectorID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadBytes parses and loads a document in one shot. It is fail-open: a
// document that cannot be parsed at all yields an empty model, not an
// error, so the editor always starts in a usable state.
func (c *Converter) LoadBytes(data []byte) *graph.Model {
	doc, err := Parse(data)
	if err != nil {
		c.logger.Warn("Document unparseable, starting empty", "err", err)
		return graph.New()
	}
	return c.Load(doc)
}

// Load builds a graph model from a parsed document. Steps are visited in
// sorted ID order so fallback positions and group registration are
// deterministic.
func (c *Converter) Load(doc *Document) *graph.Model {
	m := graph.New()
	if doc == nil {
		return m
	}

	ids := make([]string, 0, len(doc.Steps))
	for id := range doc.Steps {
		if id == MetaStepID || id == "" {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, id := range ids {
		step := doc.Steps[id]
		node := flow.Node{
			ID:             id,
			Label:          id,
			Message:        decodeMessage(step.Message),
			AutoNext:       step.Next,
			Dispatch:       step.DispatchMode,
			NoMatchMessage: step.NoMatchMessage,
			Group:          resolveGroup(doc.Meta, id),
			Position:       resolvePosition(doc.Meta, id, i),
		}

		switch {
		case len(step.FinalVariants) > 0:
			node.Responses = variantResponses(step.FinalVariants)
			// Fan-out steps have no navigable continuation of their own.
			node.AutoNext = ""
		case step.FreeInput:
			label := step.ResponseLabel
			if label == "" {
				label = id
			}
			node.FreeInput = true
			node.ResponseLabel = label
			node.AutoNext = ""
			node.Responses = []flow.Response{{
				Key:    label,
				Target: step.Next,
				Value:  label,
			}}
		default:
			node.Responses = c.decodeResponses(id, step.Responses)
		}

		if err := m.AddNode(node); err != nil {
			c.logger.Warn("Skipping step", "step", id, "err", err)
		}
	}

	return m
}

// Serialize maps the model back to a document, following the model's node
// iteration order. The inverse of Load, with specialized branches for the
// finalizar fan-out step and free-input steps.
func (c *Converter) Serialize(m *graph.Model) *Document {
	doc := &Document{
		Steps: make(map[string]Step, m.Len()),
		Meta: &Meta{
			NodePositions: make(map[string]flow.Position, m.Len()),
			Groups:        make(map[string][]string),
		},
	}

	for _, node := range m.Nodes() {
		doc.Meta.NodePositions[node.ID] = node.Position

		switch {
		case node.ID == FinalizeStepID:
			variants := make(map[string]FinalVariant, len(node.Responses))
			for _, r := range node.Responses {
				variants[r.Key] = FinalVariant{
					Message:  r.Value,
					SectorID: c.finalSector,
				}
			}
			doc.Steps[node.ID] = Step{
				Message:       encodeMessage(node.Message),
				FinalVariants: variants,
			}
		case node.FreeInput:
			step := Step{
				Message:       encodeMessage(node.Message),
				FreeInput:     true,
				ResponseLabel: node.ResponseLabel,
			}
			if step.ResponseLabel == "" {
				step.ResponseLabel = node.ID
			}
			if len(node.Responses) > 0 {
				step.Next = node.Responses[0].Target
			}
			doc.Steps[node.ID] = step
		default:
			responses := make(map[string]any, len(node.Responses))
			for _, r := range node.Responses {
				if r.Target != "" {
					responses[r.Key] = routedWire{Next: r.Target, Valor: r.Value}
				} else {
					responses[r.Key] = r.Value
				}
			}
			doc.Steps[node.ID] = Step{
				Message:        encodeMessage(node.Message),
				Responses:      responses,
				Next:           node.AutoNext,
				DispatchMode:   node.Dispatch,
				NoMatchMessage: node.NoMatchMessage,
			}
		}
	}

	for _, name := range m.GroupNames() {
		if members := m.MembersOf(name); len(members) > 0 {
			doc.Meta.Groups[name] = members
		}
	}

	return doc
}

// decodeResponses translates a wire response map into ordered bindings.
// Keys are sorted so load order is stable across runs.
func (c *Converter) decodeResponses(stepID string, raw map[string]any) []flow.Response {
	if len(raw) == 0 {
		return nil
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]flow.Response, 0, len(keys))
	for _, k := range keys {
		switch v := raw[k].(type) {
		case string:
			out = append(out, flow.Response{Key: k, Value: v})
		default:
			// Routed object: {next, valor}. mapstructure also accepts the
			// typed form Serialize emits, so a document that never went
			// through JSON loads identically.
			var routed routedWire
			if err := mapstructure.Decode(v, &routed); err != nil {
				c.logger.Warn("Skipping malformed response", "step", stepID, "key", k, "err", err)
				continue
			}
			out = append(out, flow.Response{Key: k, Target: routed.Next, Value: routed.Valor})
		}
	}
	return out
}

func variantResponses(variants map[string]FinalVariant) []flow.Response {
	keys := make([]string, 0, len(variants))
	for k := range variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]flow.Response, 0, len(keys))
	for _, k := range keys {
		// Display-only: no target, so no edge is ever projected.
		out = append(out, flow.Response{Key: k, Value: variants[k].Message})
	}
	return out
}

func decodeMessage(raw any) flow.Message {
	switch v := raw.(type) {
	case string:
		return flow.TextMessage{Body: v}
	case map[string]any:
		var media mediaWire
		if err := mapstructure.Decode(v, &media); err == nil && media.Kind == messageKindImage {
			return flow.MediaMessage{URL: media.ImageURL, Caption: media.Message}
		}
	}
	return flow.TextMessage{}
}

func encodeMessage(msg flow.Message) any {
	switch v := msg.(type) {
	case flow.MediaMessage:
		return map[string]any{
			"kind":     messageKindImage,
			"imageUrl": v.URL,
			"message":  v.Caption,
		}
	case flow.TextMessage:
		if v.Body == "" {
			return nil
		}
		return v.Body
	default:
		return nil
	}
}

// resolveGroup returns the first group whose member list contains the step.
// Names are scanned in sorted order so the pick is deterministic even when
// metadata lists a step in two groups.
func resolveGroup(meta *Meta, stepID string) string {
	if meta == nil || len(meta.Groups) == 0 {
		return ""
	}
	names := make([]string, 0, len(meta.Groups))
	for name := range meta.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, member := range meta.Groups[name] {
			if member == stepID {
				return name
			}
		}
	}
	return ""
}

func resolvePosition(meta *Meta, stepID string, index int) flow.Position {
	if meta != nil {
		if pos, ok := meta.NodePositions[stepID]; ok {
			return pos
		}
	}
	return flow.Position{
		X: float64(index%fallbackColumns) * fallbackHGap,
		Y: float64(index/fallbackColumns) * fallbackVGap,
	}
}
