package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zapflowhq/zapflow"
	pgraph "github.com/zapflowhq/zapflow/internal/presentation/graph"
	"github.com/zapflowhq/zapflow/pkg/command"
	"github.com/zapflowhq/zapflow/pkg/flow"
	"github.com/zapflowhq/zapflow/pkg/ports"
	"github.com/zapflowhq/zapflow/pkg/session"
)

// Server exposes the editing engine over HTTP to the dashboard frontend.
// It holds one editing session per campaign for the lifetime of the
// process (or until Close), so edits survive between requests until an
// explicit save.
type Server struct {
	sessions *session.Manager
	store    ports.DocumentStore

	mu   sync.Mutex
	held map[string]heldSession
}

type heldSession struct {
	editor  *zapflow.Editor
	release func()
}

// NewServer creates the HTTP server over a session manager and its store.
func NewServer(sessions *session.Manager, store ports.DocumentStore) *Server {
	return &Server{
		sessions: sessions,
		store:    store,
		held:     make(map[string]heldSession),
	}
}

// NewHandler wires the routes. /metrics serves the default Prometheus
// gatherer, so collectors registered elsewhere show up too.
func NewHandler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/campaigns", func(r chi.Router) {
		r.Get("/", s.ListCampaigns)
		r.Route("/{campaignID}", func(r chi.Router) {
			r.Get("/graph", s.GetGraph)
			r.Post("/commands", s.DispatchCommand)
			r.Post("/save", s.SaveFlow)
			r.Post("/layout", s.AutoLayout)
			r.Get("/export/mermaid", s.ExportMermaid)
		})
	})

	return enableCORS(r)
}

// Close releases every held editing session.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, h := range s.held {
		h.release()
		delete(s.held, id)
	}
}

// editor returns the campaign's editor, acquiring and pinning the session
// on first touch.
func (s *Server) editor(ctx context.Context, campaignID string) (*zapflow.Editor, error) {
	s.mu.Lock()
	if h, ok := s.held[campaignID]; ok {
		s.mu.Unlock()
		return h.editor, nil
	}
	s.mu.Unlock()

	editor, release, err := s.sessions.Acquire(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.held[campaignID]; ok {
		release()
		return h.editor, nil
	}
	s.held[campaignID] = heldSession{editor: editor, release: release}
	return editor, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GraphResponse is the snapshot the canvas renders.
type GraphResponse struct {
	Nodes []NodeView  `json:"nodes"`
	Edges []flow.Edge `json:"edges"`
}

// NodeView flattens a node for the frontend; the message union becomes a
// preview string plus a media URL when present.
type NodeView struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Message  string          `json:"message"`
	MediaURL string          `json:"mediaUrl,omitempty"`
	Group    string          `json:"group,omitempty"`
	Dispatch string          `json:"dispatch,omitempty"`
	Position flow.Position   `json:"position"`
	Bindings []flow.Response `json:"bindings"`
}

// CommandRequest is the envelope for editing intents. Type selects the
// command; the remaining fields are read per type.
type CommandRequest struct {
	Type    string  `json:"type"`
	ID      string  `json:"id,omitempty"`
	Source  string  `json:"source,omitempty"`
	Target  string  `json:"target,omitempty"`
	Label   string  `json:"label,omitempty"`
	NodeID  string  `json:"nodeId,omitempty"`
	OldID   string  `json:"oldId,omitempty"`
	NewID   string  `json:"newId,omitempty"`
	Group   string  `json:"group,omitempty"`
	Message string  `json:"message,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "zapflow-http",
		"version": zapflow.Version,
	})
}

// ListCampaigns handles the GET /campaigns request.
func (s *Server) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		slog.Error("List failed", "err", err)
		return
	}
	writeJSON(w, campaigns)
}

// GetGraph handles the GET /campaigns/{campaignID}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	editor, err := s.editor(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		slog.Error("Load failed", "err", err)
		return
	}

	model := editor.Model()
	nodes := model.Nodes()
	resp := GraphResponse{
		Nodes: make([]NodeView, 0, len(nodes)),
		Edges: model.Edges(),
	}
	for _, n := range nodes {
		view := NodeView{
			ID:       n.ID,
			Label:    n.DisplayLabel(),
			Group:    n.Group,
			Dispatch: n.Dispatch,
			Position: n.Position,
			Bindings: n.Responses,
		}
		if n.Message != nil {
			view.Message = n.Message.Preview()
		}
		if media, ok := n.Message.(flow.MediaMessage); ok {
			view.MediaURL = media.URL
		}
		resp.Nodes = append(resp.Nodes, view)
	}
	writeJSON(w, resp)
}

// DispatchCommand handles the POST /campaigns/{campaignID}/commands request.
func (s *Server) DispatchCommand(w http.ResponseWriter, r *http.Request) {
	var body CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("DispatchCommand: Invalid request body", "err", err)
		return
	}

	cmd, err := body.toCommand()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	editor, err := s.editor(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		return
	}

	if err := editor.Dispatch(cmd); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, flow.ErrNodeExists) || errors.Is(err, flow.ErrEmptyID) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, map[string]bool{"success": true})
}

// SaveFlow handles the POST /campaigns/{campaignID}/save request. A store
// failure is surfaced verbatim, matching the UI contract.
func (s *Server) SaveFlow(w http.ResponseWriter, r *http.Request) {
	editor, err := s.editor(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		return
	}

	if err := editor.Save(r.Context()); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, map[string]any{"success": true})
}

// AutoLayout handles the POST /campaigns/{campaignID}/layout request.
func (s *Server) AutoLayout(w http.ResponseWriter, r *http.Request) {
	editor, err := s.editor(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		return
	}
	editor.AutoLayout()
	writeJSON(w, map[string]bool{"success": true})
}

// ExportMermaid handles the GET /campaigns/{campaignID}/export/mermaid
// request.
func (s *Server) ExportMermaid(w http.ResponseWriter, r *http.Request) {
	editor, err := s.editor(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		return
	}
	model := editor.Model()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, pgraph.GenerateMermaid(model.Nodes(), model.Edges()))
}

func (c CommandRequest) toCommand() (command.Command, error) {
	switch c.Type {
	case "create":
		return command.Create{Node: flow.Node{
			ID:       c.ID,
			Message:  flow.TextMessage{Body: c.Message},
			Position: flow.Position{X: c.X, Y: c.Y},
		}}, nil
	case "create_connected_from":
		return command.CreateConnectedFrom{Source: c.Source, ID: c.ID}, nil
	case "insert_between":
		return command.InsertBetween{Source: c.Source, Target: c.Target, Label: c.Label, ID: c.ID}, nil
	case "delete":
		return command.Delete{NodeID: c.NodeID}, nil
	case "rename":
		return command.Rename{OldID: c.OldID, NewID: c.NewID}, nil
	case "remove_edge":
		return command.RemoveEdge{Source: c.Source, Target: c.Target, Label: c.Label}, nil
	case "remove_automatic_edge":
		return command.RemoveAutomaticEdge{Source: c.Source, Target: c.Target}, nil
	case "assign_group":
		return command.AssignGroup{NodeID: c.NodeID, Group: c.Group}, nil
	default:
		return nil, fmt.Errorf("unknown command type: %q", c.Type)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}
