/*
Package zapflow implements the conversation-flow graph engine behind a
visual WhatsApp bot builder.

The engine maintains an in-memory graph of conversational steps (nodes with
a message, an ordered response table, and optional automatic routing) and
converts it bidirectionally to the canonical persisted "step script"
document the chatbot runtime consumes. Edges are never stored: they are a
projection derived from each node's responses and automatic-next pointer,
recomputed on every mutation.

Editing happens through a typed command bus (create, delete, rename,
connect, insert-between, grouping); rename is atomic and rewrites every
reference to the old ID across the graph. Persistence goes through the
ports.DocumentStore interface, with memory, file, and Redis adapters.

The root package exposes the Editor facade:

	editor, _ := zapflow.New("campaign-42",
		zapflow.WithStore(file.NewStore("")),
	)
	_ = editor.Load(ctx)
	_ = editor.Dispatch(command.Rename{OldID: "fim", NewID: "despedida"})
	_ = editor.Save(ctx)

Message dispatch to end users, reply matching, and the rendering surface
are external collaborators and out of scope.
*/
package zapflow

// Version is the engine release identifier reported by the CLI and the
// HTTP/MCP adapters.
var Version = "0.4.1"
