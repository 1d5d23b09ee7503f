// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the notes operations as LLM tools via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/penna/internal/collection"
	"github.com/starford/penna/internal/models"
)

// Server wraps the MCP server with penna tools.
type Server struct {
	mcp   *server.MCPServer
	store *collection.Store
}

// New creates a new MCP server with all note tools registered. Tool
// semantics match the interactive client: reads go through a fresh reload of
// the collection store, writes go through the same confirmed-save path.
func New(store *collection.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"penna",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes known to the notes service."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Search notes by a case-insensitive substring of title or content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full title and content of one note."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note identifier")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note. Title is required and at most 120 characters."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Note content (may be empty)")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Replace the title and content of an existing note."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note identifier")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
		mcp.WithString("content", mcp.Description("New content (may be empty)")),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note by identifier."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note identifier")),
	), s.deleteNote)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.store.Reload(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(s.store.Notes(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.Reload(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	matches := collection.Filter(s.store.Notes(), query)
	out, _ := json.MarshalIndent(matches, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.Reload(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, ok := s.store.Find(models.NoteID(id))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(note, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content := req.GetString("content", "")

	saved, err := s.store.Save(ctx, models.Draft{Title: title, Content: content}, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", saved.ID)), nil
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content := req.GetString("content", "")

	noteID := models.NoteID(id)
	saved, err := s.store.Save(ctx, models.Draft{Title: title, Content: content}, &noteID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated: %s", saved.ID)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.Remove(ctx, models.NoteID(id)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}
