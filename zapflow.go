package zapflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapflowhq/zapflow/internal/logging"
	"github.com/zapflowhq/zapflow/pkg/adapters/memory"
	"github.com/zapflowhq/zapflow/pkg/command"
	"github.com/zapflowhq/zapflow/pkg/document"
	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/graph"
	"github.com/zapflowhq/zapflow/pkg/layout"
	"github.com/zapflowhq/zapflow/pkg/observability"
	"github.com/zapflowhq/zapflow/pkg/ports"
)

// Editor is the high-level entry point for one campaign's editing session.
// It owns the graph model (through the command bus), converts to and from
// the persisted step script, and talks to the document store.
type Editor struct {
	campaignID string
	store      ports.DocumentStore
	converter  *document.Converter
	bus        *command.Bus
	logger     *slog.Logger
	metrics    *observability.Metrics
	hooks      flow.Hooks

	// offHours is a document-level field the graph does not model; it is
	// captured on load and written back on save.
	offHours string
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore injects the persistence backend. Defaults to an in-memory
// store, which suits tests and previews.
func WithStore(store ports.DocumentStore) Option {
	return func(e *Editor) { e.store = store }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) { e.logger = logger }
}

// WithHooks registers graph mutation callbacks for the host UI.
func WithHooks(hooks flow.Hooks) Option {
	return func(e *Editor) { e.hooks = hooks }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Editor) { e.metrics = m }
}

// WithConverter overrides the document converter.
func WithConverter(c *document.Converter) Option {
	return func(e *Editor) { e.converter = c }
}

// New creates an editing session for the given campaign, starting from an
// empty graph. Call Load to populate it from the store.
func New(campaignID string, opts ...Option) (*Editor, error) {
	if campaignID == "" {
		return nil, fmt.Errorf("campaignID is required")
	}

	e := &Editor{campaignID: campaignID}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	e.logger = e.logger.With("campaign", campaignID)

	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.converter == nil {
		e.converter = document.NewConverter(document.WithLogger(e.logger))
	}

	e.bus = command.NewBus(graph.New(),
		command.WithHooks(e.hooks),
		command.WithLogger(e.logger),
		command.WithMetrics(e.metrics),
	)

	return e, nil
}

// CampaignID returns the campaign this session edits.
func (e *Editor) CampaignID() string { return e.campaignID }

// Model returns the live graph model.
func (e *Editor) Model() *graph.Model { return e.bus.Model() }

// Bus returns the command bus for dispatching editing intents.
func (e *Editor) Bus() *command.Bus { return e.bus }

// Dispatch applies one editing command.
func (e *Editor) Dispatch(cmd command.Command) error {
	return e.bus.Dispatch(cmd)
}

// OffHoursMessage returns the document-level off-hours autoreply.
func (e *Editor) OffHoursMessage() string { return e.offHours }

// SetOffHoursMessage sets the document-level off-hours autoreply.
func (e *Editor) SetOffHoursMessage(msg string) { e.offHours = msg }

// Load fetches the campaign's document from the store and replaces the
// model with its graph. A campaign with no stored document starts empty;
// any other store failure is surfaced unchanged.
func (e *Editor) Load(ctx context.Context) error {
	doc, err := e.store.Load(ctx, e.campaignID)
	if err != nil {
		if errors.Is(err, flow.ErrCampaignNotFound) {
			e.logger.Info("No stored flow, starting empty")
			e.bus.Swap(graph.New())
			e.metrics.ObserveLoad(0, nil)
			return nil
		}
		e.metrics.ObserveLoad(0, err)
		return err
	}

	model := e.converter.Load(doc)
	e.offHours = doc.OffHoursMessage
	e.bus.Swap(model)
	e.metrics.ObserveLoad(model.Len(), nil)
	e.logger.Info("Flow loaded", "nodes", model.Len())
	return nil
}

// Save serializes the model and hands it to the store. A single in-flight
// operation: no retry, no partial commit; the model is untouched either
// way and the store's error is surfaced verbatim.
func (e *Editor) Save(ctx context.Context) error {
	doc := e.converter.Serialize(e.Model())
	doc.OffHoursMessage = e.offHours

	start := time.Now()
	err := e.store.Save(ctx, e.campaignID, doc)
	e.metrics.ObserveSave(time.Since(start).Seconds(), err)
	if err != nil {
		return err
	}
	e.logger.Info("Flow saved", "nodes", e.Model().Len())
	return nil
}

// AutoLayout recomputes every node's position on the grouped grid and
// applies the result to the model. Positions are presentation metadata
// only; semantics are untouched.
func (e *Editor) AutoLayout() {
	model := e.Model()
	positions := layout.Arrange(model.Nodes(), model.GroupNames())
	for id, pos := range positions {
		p := pos
		// UpdateNode cannot fail here: ids come from the model itself.
		_ = model.UpdateNode(id, func(n *flow.Node) {
			n.Position = p
		})
	}
}
