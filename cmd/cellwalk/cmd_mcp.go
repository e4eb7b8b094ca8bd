package main

import (
	"fmt"

	"github.com/nvandessel/cellwalk/internal/logging"
	"github.com/nvandessel/cellwalk/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve simulations to MCP clients over stdio",
		Long: `Start an MCP (Model Context Protocol) server on stdin/stdout.

Tools:
  cellwalk_simulate   Run a bounded simulation and return its snapshots
  cellwalk_validate   Check parameters without running

Logs go to stderr so they do not corrupt the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:       "cellwalk",
				Version:    version,
				Simulation: cfg.Simulation,
				Logger:     logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			return server.Run(ctx)
		},
	}

	// Run flags set the defaults for tool calls that omit them.
	addRunFlags(cmd)

	return cmd
}
