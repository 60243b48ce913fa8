// Package gmail_tools registers the Gmail MCP tools. Each tool
// validates its arguments, calls the Gmail client, and renders the
// result: JSON for reads, a short confirmation for writes. Failures
// come back as tool error results naming the error kind, never as
// protocol errors.
package gmail_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jsievers/mailbridge/internal/gmail"
	"github.com/jsievers/mailbridge/internal/mailerr"
	"github.com/jsievers/mailbridge/internal/server"
)

// Listing bounds. Requests outside the range are clamped, not rejected.
const (
	DefaultMaxResults = 10
	MaxInboxResults   = 50
	MaxSearchResults  = 100
)

// RegisterGmailTools registers every Gmail tool on the MCP server.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerQueryTools(s, sc)
	registerEmailTools(s, sc)
	registerModifyTools(s, sc)
	return nil
}

// clampMaxResults folds an optional numeric argument into [1, limit].
func clampMaxResults(args map[string]any, key string, limit int64) int64 {
	max := int64(DefaultMaxResults)
	if v, ok := args[key]; ok {
		if f, ok := v.(float64); ok {
			max = int64(f)
		}
	}
	if max < 1 {
		max = 1
	}
	if max > limit {
		max = limit
	}
	return max
}

// stringArg returns a required string argument, or an empty string when
// missing or blank.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// toolError renders an error as a tool result, prefixed with its kind
// so agents can tell a missing message from a rate limit.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", mailerr.KindOf(err), err))
}

// jsonResult marshals a payload into an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// client fetches the Gmail client, shaping credential failures into
// tool errors.
func client(ctx context.Context, sc *server.ServerContext) (*gmail.Client, *mcp.CallToolResult) {
	c, err := sc.GmailClient(ctx)
	if err != nil {
		return nil, toolError(err)
	}
	return c, nil
}
