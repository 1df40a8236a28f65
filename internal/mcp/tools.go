// ABOUTME: MCP tool definitions and registration for the actionbrief server
// ABOUTME: Exposes summarize_text and extract_action_items over stdio
package mcp

import (
	"github.com/harper/actionbrief/internal/core"
	"github.com/harper/actionbrief/internal/logging"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, svc *core.Service, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.Nop()
	}
	handlers := &Handlers{service: svc, logger: logger}

	// 1. summarize_text - abstractive summary plus date-bearing action items
	server.AddTool(mcp.Tool{
		Name:        "summarize_text",
		Description: "Summarize a document. Long text is split into token windows, each summarized, and the summaries joined. Sentences containing dates are appended as action items.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to summarize",
				},
				"min_length": map[string]interface{}{
					"type":        "number",
					"description": "Minimum summary length in tokens (default: 30)",
					"default":     core.DefaultMinLength,
				},
				"max_length": map[string]interface{}{
					"type":        "number",
					"description": "Maximum summary length in tokens (default: 150)",
					"default":     core.DefaultMaxLength,
				},
			},
			Required: []string{"text"},
		},
	}, handlers.SummarizeText)

	// 2. extract_action_items - sentences that mention a date
	server.AddTool(mcp.Tool{
		Name:        "extract_action_items",
		Description: "Find the sentences in a text that mention a date. Returns a JSON array of sentences.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to scan for dates",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.ExtractActionItems)

	return handlers
}
