package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsievers/mailbridge/internal/logging"
	"github.com/jsievers/mailbridge/internal/server"
)

func testServerContext() *server.ServerContext {
	return server.NewServerContext(context.Background(), nil, logging.NewLogger(false), nil, nil)
}

func TestInstrumentedToolHandlerPassesResultThrough(t *testing.T) {
	sc := testServerContext()

	wrapped := InstrumentedToolHandler("get_labels_tool", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("ok"), nil
		})

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, "ok", text.Text)
}

func TestInstrumentedToolHandlerPassesErrorThrough(t *testing.T) {
	sc := testServerContext()
	boom := errors.New("boom")

	wrapped := InstrumentedToolHandler("send_email", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, boom
		})

	_, err := wrapped(context.Background(), mcp.CallToolRequest{})
	assert.Equal(t, boom, err)
}

func TestInstrumentedToolHandlerToolErrorResult(t *testing.T) {
	sc := testServerContext()

	wrapped := InstrumentedToolHandler("get_thread", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultError("thread_id is required"), nil
		})

	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
