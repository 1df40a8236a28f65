// ABOUTME: MCP tool handler implementations for the actionbrief server
// ABOUTME: Tool failures are returned as tool errors, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/actionbrief/internal/core"
	"github.com/harper/actionbrief/internal/logging"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service *core.Service
	logger  logging.Logger
}

// SummarizeText handles the summarize_text tool
func (h *Handlers) SummarizeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	lengths := core.Lengths{
		Min: request.GetInt("min_length", core.DefaultMinLength),
		Max: request.GetInt("max_length", core.DefaultMaxLength),
	}

	brief, err := h.service.Brief(ctx, text, lengths)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrEmptyText):
		return mcp.NewToolResultError("No text was provided."), nil
	case errors.Is(err, core.ErrSummarizerUnavailable):
		return mcp.NewToolResultError("Summarization service is unavailable."), nil
	case errors.Is(err, core.ErrEmptySummary):
		return mcp.NewToolResultError("Summarization failed. The text may be too short."), nil
	case errors.Is(err, core.ErrInvalidLengths):
		return mcp.NewToolResultError(err.Error()), nil
	default:
		h.logger.Errorf("Summarization Error: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("Summarization error: %v", err)), nil
	}

	return mcp.NewToolResultText(brief.Rendered()), nil
}

// ExtractActionItems handles the extract_action_items tool
func (h *Handlers) ExtractActionItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	items := h.service.ActionItems(text)
	if items == nil {
		items = []string{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode action items: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
