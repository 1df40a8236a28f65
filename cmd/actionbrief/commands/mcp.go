// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents summarize text and extract action items via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/actionbrief/internal/logging"
	"github.com/harper/actionbrief/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs actionbrief as an MCP (Model Context Protocol) server over stdio with
two tools: summarize_text and extract_action_items.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  actionbrief mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "actionbrief": {
  #       "command": "actionbrief",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.Default

	svc, err := buildService(cfg, logger)
	if err != nil {
		logger.Warnf("Summarization unavailable: %v", err)
	}

	server := mcpserver.NewMCPServer("actionbrief", versionInfo.Version)
	mcp.RegisterTools(server, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("actionbrief MCP server starting on stdio...")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Infof("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
