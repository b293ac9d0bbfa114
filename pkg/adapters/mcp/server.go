package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zapflowhq/zapflow"
	pgraph "github.com/zapflowhq/zapflow/internal/presentation/graph"
	"github.com/zapflowhq/zapflow/pkg/command"
	"github.com/zapflowhq/zapflow/pkg/session"
)

// Server exposes flow editing as MCP tools, so agent tooling can inspect
// and adjust campaign flows alongside the dashboard.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("zapflow-mcp", zapflow.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a campaign's flow graph: nodes with response bindings, plus the derived edges."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign whose flow to inspect")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		campaignID, _ := request.GetArguments()["campaign_id"].(string)
		editor, release, err := s.sessions.Acquire(ctx, campaignID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		defer release()

		model := editor.Model()
		payload := map[string]any{
			"nodes": model.Nodes(),
			"edges": model.Edges(),
		}
		jsonBytes, _ := json.Marshal(payload)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: rename_node
	s.mcpServer.AddTool(mcp.NewTool("rename_node",
		mcp.WithDescription("Atomically rename a flow step, rewriting every reference, then save."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign to edit")),
		mcp.WithString("old_id", mcp.Required(), mcp.Description("Current step ID")),
		mcp.WithString("new_id", mcp.Required(), mcp.Description("New step ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		campaignID, _ := args["campaign_id"].(string)
		oldID, _ := args["old_id"].(string)
		newID, _ := args["new_id"].(string)

		editor, release, err := s.sessions.Acquire(ctx, campaignID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		defer release()

		if err := editor.Dispatch(command.Rename{OldID: oldID, NewID: newID}); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("rename failed: %v", err)), nil
		}
		if err := editor.Save(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("save failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("renamed %s to %s", oldID, newID)), nil
	})

	// TOOL: export_mermaid
	s.mcpServer.AddTool(mcp.NewTool("export_mermaid",
		mcp.WithDescription("Render a campaign's flow as a Mermaid flowchart."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("Campaign whose flow to render")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		campaignID, _ := request.GetArguments()["campaign_id"].(string)
		editor, release, err := s.sessions.Acquire(ctx, campaignID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		defer release()

		model := editor.Model()
		return mcp.NewToolResultText(pgraph.GenerateMermaid(model.Nodes(), model.Edges())), nil
	})
}
