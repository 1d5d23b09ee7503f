package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/penna/internal/collection"
	"github.com/starford/penna/internal/testutil"
	"github.com/starford/penna/internal/transport"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	client := transport.New(testutil.TestServer(t), 0)
	return New(collection.NewStore(client))
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error
	switch name {
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "update_note":
		result, err = srv.updateNote(ctx, req)
	case "delete_note":
		result, err = srv.deleteNote(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndListNotes(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"title":   "Groceries",
		"content": "milk",
	})
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}
	if !strings.HasPrefix(resultText(r), "created: ") {
		t.Errorf("create result = %q", resultText(r))
	}

	r = callTool(t, srv, "list_notes", nil)
	if !strings.Contains(resultText(r), "Groceries") {
		t.Errorf("list result = %q", resultText(r))
	}
}

func TestSearchNotes(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "create_note", map[string]interface{}{"title": "Groceries", "content": "milk"})
	_ = callTool(t, srv, "create_note", map[string]interface{}{"title": "Work", "content": "release"})

	r := callTool(t, srv, "search_notes", map[string]interface{}{"query": "MILK"})
	text := resultText(r)
	if !strings.Contains(text, "Groceries") || strings.Contains(text, "Work") {
		t.Errorf("search result = %q", text)
	}
}

func TestCreateNoteEmptyTitle(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "create_note", map[string]interface{}{"title": "   "})
	if !r.IsError {
		t.Error("expected error for empty title")
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"id": "ghost"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestUpdateAndDeleteNote(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{"title": "Old"})
	id := strings.TrimPrefix(resultText(r), "created: ")

	r = callTool(t, srv, "update_note", map[string]interface{}{"id": id, "title": "New"})
	if r.IsError {
		t.Fatalf("update failed: %s", resultText(r))
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{"id": id})
	if !strings.Contains(resultText(r), "New") {
		t.Errorf("read after update = %q", resultText(r))
	}

	r = callTool(t, srv, "delete_note", map[string]interface{}{"id": id})
	if r.IsError {
		t.Fatalf("delete failed: %s", resultText(r))
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{"id": id})
	if !r.IsError {
		t.Error("note still present after delete")
	}
}
