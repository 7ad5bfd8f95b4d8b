// ABOUTME: MCP server for notes integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for note management.

package mcp

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/notes/internal/notes"
)

type Server struct {
	server *mcp.Server
	notes  *notes.Controller

	// createMu serialises create_note calls, which all fill the same form.
	createMu sync.Mutex
}

func NewServer(ctrl *notes.Controller) *Server {
	s := &Server{notes: ctrl}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notes",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
