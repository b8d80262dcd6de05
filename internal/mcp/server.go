// Package mcp exposes the glycemic analysis engine to LLM clients as an
// MCP server over stdio.
package mcp

import (
	"context"

	"gluco-mcp/internal/config"
	"gluco-mcp/internal/store"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server holds the state shared by all tool handlers.
type Server struct {
	cfg   *config.AppConfig
	store *store.Store
}

// NewServer creates a new MCP server over the given configuration and
// readings store.
func NewServer(cfg *config.AppConfig, st *store.Store) *Server {
	return &Server{cfg: cfg, store: st}
}

// Run registers the tool set and serves the stdio transport until the
// client disconnects or ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	impl := &sdk.Implementation{
		Name:    "gluco-mcp",
		Title:   "Glycemic analytics for CGM and insulin-pump exports",
		Version: "0.1.0",
	}
	server := sdk.NewServer(impl, nil)
	s.registerTools(server)

	log.Info().Msg("MCP server starting stdio loop")
	return server.Run(ctx, &sdk.StdioTransport{})
}
