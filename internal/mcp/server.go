// Package mcp exposes the review queue to agents over the Model Context
// Protocol.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roasbeef/modqueue/internal/review"
	"github.com/roasbeef/modqueue/internal/store"
)

// Server wraps the MCP server with review queue dependencies.
type Server struct {
	server  *mcp.Server
	storage store.Storage
	reviews *review.Service
}

// NewServer creates a new MCP server with all review tools registered.
func NewServer(storage store.Storage, reviews *review.Service) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "modqueue",
		Version: "0.1.0",
	}, nil)

	s := &Server{
		server:  mcpServer,
		storage: storage,
		reviews: reviews,
	}

	s.registerTools()

	return s
}

// Run starts the MCP server on the given transport.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// registerTools registers all review queue tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_reviewables",
		Description: "List the reviewables a reviewer may see",
	}, s.handleListReviewables)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reviewable_actions",
		Description: "List the actions a reviewer may perform on a reviewable",
	}, s.handleReviewableActions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "perform_reviewable",
		Description: "Perform a named action on a reviewable",
	}, s.handlePerformReviewable)
}
