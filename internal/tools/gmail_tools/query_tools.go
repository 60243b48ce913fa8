package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jsievers/mailbridge/internal/server"
	"github.com/jsievers/mailbridge/internal/tools/common"
)

// registerQueryTools registers the read-only tools: labels, inbox,
// message content, search, thread.
func registerQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	getLabelsTool := mcp.NewTool("get_labels_tool",
		mcp.WithDescription("List all Gmail labels, system and user created"),
	)
	s.AddTool(getLabelsTool, common.InstrumentedToolHandler("get_labels_tool", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetLabels(ctx, sc)
		}))

	getInboxTool := mcp.NewTool("get_inbox_messages",
		mcp.WithDescription("List recent inbox messages, newest first"),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of messages to return (default: 10, max: 50)"),
		),
	)
	s.AddTool(getInboxTool, common.InstrumentedToolHandler("get_inbox_messages", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetInbox(ctx, request, sc)
		}))

	getMessageTool := mcp.NewTool("get_message_content_tool",
		mcp.WithDescription("Get the full content of a message including its decoded body"),
		mcp.WithString("message_id",
			mcp.Required(),
			mcp.Description("The ID of the message to fetch"),
		),
	)
	s.AddTool(getMessageTool, common.InstrumentedToolHandler("get_message_content_tool", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessage(ctx, request, sc)
		}))

	searchTool := mcp.NewTool("search_emails_tool",
		mcp.WithDescription("Search messages with a Gmail query string, e.g. 'from:alice@example.com is:unread'"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of messages to return (default: 10, max: 100)"),
		),
	)
	s.AddTool(searchTool, common.InstrumentedToolHandler("search_emails_tool", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearch(ctx, request, sc)
		}))

	getThreadTool := mcp.NewTool("get_thread",
		mcp.WithDescription("Get a full conversation thread with all of its messages"),
		mcp.WithString("thread_id",
			mcp.Required(),
			mcp.Description("The ID of the thread to fetch"),
		),
	)
	s.AddTool(getThreadTool, common.InstrumentedToolHandler("get_thread", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetThread(ctx, request, sc)
		}))
}

func handleGetLabels(ctx context.Context, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	c, errResult := client(ctx, sc)
	if errResult != nil {
		return errResult, nil
	}

	labels, err := c.ListLabels(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(labels)
}

func handleGetInbox(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	maxResults := clampMaxResults(request.GetArguments(), "max_results", MaxInboxResults)

	c, errResult := client(ctx, sc)
	if errResult != nil {
		return errResult, nil
	}

	messages, err := c.ListInbox(ctx, maxResults)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(messages)
}

func handleGetMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	messageID := stringArg(request.GetArguments(), "message_id")
	if messageID == "" {
		return mcp.NewToolResultError("message_id is required"), nil
	}

	c, errResult := client(ctx, sc)
	if errResult != nil {
		return errResult, nil
	}

	content, err := c.GetMessage(ctx, messageID)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(content)
}

func handleSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	query := stringArg(args, "query")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	maxResults := clampMaxResults(args, "max_results", MaxSearchResults)

	c, errResult := client(ctx, sc)
	if errResult != nil {
		return errResult, nil
	}

	messages, err := c.Search(ctx, query, maxResults)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(messages)
}

func handleGetThread(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	threadID := stringArg(request.GetArguments(), "thread_id")
	if threadID == "" {
		return mcp.NewToolResultError("thread_id is required"), nil
	}

	c, errResult := client(ctx, sc)
	if errResult != nil {
		return errResult, nil
	}

	thread, err := c.GetThread(ctx, threadID)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(thread)
}
