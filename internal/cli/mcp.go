package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/srcnav/internal/config"
	"github.com/mvp-joe/srcnav/internal/mcp"
)

var (
	mcpTransport string
	mcpAddr      string
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for component source navigation",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
read a component library's source without flooding their context.

The MCP server provides:
- get_component_file_list: a component's files as virtual paths
- get_file_code: a file, with long function bodies collapsed
- get_function_code: one function's complete implementation

Communicates via stdio by default; --transport http serves streamable HTTP.

Example:
  srcnav mcp
  srcnav mcp --transport http --addr :3000`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "", "transport: stdio or http (default from config)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", "", "listen address for the http transport (default from config)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, logger, nav, err := setup()
	if err != nil {
		return err
	}

	if mcpTransport != "" {
		cfg.Server.Transport = mcpTransport
	}
	if mcpAddr != "" {
		cfg.Server.Addr = mcpAddr
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	server, err := mcp.NewMCPServer(cfg.ToServerConfig(Version), nav, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Serve (blocks until shutdown)
	serveErr := server.Serve(ctx)

	for _, stats := range server.Metrics().Snapshot() {
		logger.Info("tool usage",
			"tool", stats.Tool,
			"calls", stats.Calls,
			"failures", stats.Failures,
			"total_time", stats.TotalTime)
	}

	if serveErr != nil {
		return fmt.Errorf("MCP server error: %w", serveErr)
	}
	return nil
}
