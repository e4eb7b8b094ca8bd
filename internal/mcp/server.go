// Package mcp provides an MCP (Model Context Protocol) server for cellwalk.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/cellwalk/internal/config"
	"github.com/nvandessel/cellwalk/internal/logging"
	"github.com/nvandessel/cellwalk/internal/ratelimit"
)

// Server wraps the MCP SDK server and exposes the simulation as tools.
type Server struct {
	server   *sdk.Server
	defaults config.SimulationConfig
	limiters ratelimit.ToolLimiters
	logger   *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "cellwalk")
	Version string // Server version

	// Simulation supplies defaults for tool calls that omit optional fields.
	Simulation config.SimulationConfig

	// Logger receives tool call logs. Nil discards them.
	Logger *slog.Logger
}

// NewServer creates a new MCP server with cellwalk tools.
func NewServer(cfg *Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			logger.Debug("mcp client initialized")
		},
	})

	s := &Server{
		server:   mcpServer,
		defaults: cfg.Simulation,
		limiters: ratelimit.NewToolLimiters(),
		logger:   logger,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &sdk.StdioTransport{})
}
