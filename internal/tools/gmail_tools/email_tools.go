package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jsievers/mailbridge/internal/gmail"
	"github.com/jsievers/mailbridge/internal/server"
	"github.com/jsievers/mailbridge/internal/tools/common"
)

// registerEmailTools registers send_email and create_draft.
func registerEmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	sendTool := mcp.NewTool("send_email",
		mcp.WithDescription("Send an email from the authenticated account"),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain text email body"),
		),
	)
	s.AddTool(sendTool, common.InstrumentedToolHandler("send_email", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendEmail(ctx, request, sc)
		}))

	draftTool := mcp.NewTool("create_draft",
		mcp.WithDescription("Create a draft email without sending it"),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain text email body"),
		),
	)
	s.AddTool(draftTool, common.InstrumentedToolHandler("create_draft", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDraft(ctx, request, sc)
		}))
}

// outgoingFromArgs validates the shared send/draft arguments.
func outgoingFromArgs(args map[string]any) (*gmail.OutgoingMessage, string) {
	to := stringArg(args, "to")
	subject := stringArg(args, "subject")
	body := stringArg(args, "body")

	switch {
	case to == "":
		return nil, "to is required"
	case subject == "":
		return nil, "subject is required"
	case body == "":
		return nil, "body is required"
	}

	return &gmail.OutgoingMessage{
		To:      []string{to},
		Subject: subject,
		Body:    body,
	}, ""
}

func handleSendEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	msg, problem := outgoingFromArgs(request.GetArguments())
	if problem != "" {
		return mcp.NewToolResultError(problem), nil
	}

	c, errResult := client(ctx, sc)
	if errResult != nil {
		return errResult, nil
	}

	id, err := c.Send(ctx, msg)
	if err != nil {
		return toolError(err), nil
	}

	sc.Audit().EmailSent(id, msg.To)
	return mcp.NewToolResultText(fmt.Sprintf("Email sent successfully. Message ID: %s", id)), nil
}

func handleCreateDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	msg, problem := outgoingFromArgs(request.GetArguments())
	if problem != "" {
		return mcp.NewToolResultError(problem), nil
	}

	c, errResult := client(ctx, sc)
	if errResult != nil {
		return errResult, nil
	}

	id, err := c.CreateDraft(ctx, msg)
	if err != nil {
		return toolError(err), nil
	}

	sc.Audit().DraftCreated(id, msg.To)
	return mcp.NewToolResultText(fmt.Sprintf("Draft created successfully. Draft ID: %s", id)), nil
}
