// Package common holds helpers shared by the MCP tool packages.
package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jsievers/mailbridge/internal/instrumentation"
	"github.com/jsievers/mailbridge/internal/logging"
	"github.com/jsievers/mailbridge/internal/mailerr"
	"github.com/jsievers/mailbridge/internal/server"
)

// ToolHandler is the handler signature mcp-go expects.
type ToolHandler = mcpserver.ToolHandlerFunc

// InstrumentedToolHandler wraps a tool handler with invocation metrics
// and a structured log line per call.
//
// Usage:
//
//	s.AddTool(tool, common.InstrumentedToolHandler("get_labels_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		kind := ""
		if err != nil {
			status = instrumentation.StatusError
			kind = string(mailerr.KindOf(err))
		} else if result != nil && result.IsError {
			status = instrumentation.StatusError
		}

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, kind, duration)

		logger := sc.Logger()
		if status == instrumentation.StatusError {
			logger.Warn("tool invocation failed",
				logging.Tool(toolName),
				logging.Status(logging.StatusError),
				logging.Kind(kind),
				logging.Err(err),
				slog.Duration(logging.KeyDuration, duration))
		} else {
			logger.Debug("tool invocation completed",
				logging.Tool(toolName),
				logging.Status(logging.StatusSuccess),
				slog.Duration(logging.KeyDuration, duration))
		}

		return result, err
	}
}
