package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jsievers/mailbridge/internal/server"
	"github.com/jsievers/mailbridge/internal/tools/common"
)

// registerModifyTools registers the state-changing tools: labeling,
// read state, archive and trash.
func registerModifyTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	addLabelTool := mcp.NewTool("add_label_to_message",
		mcp.WithDescription("Apply a label to a message, creating the label if it does not exist"),
		mcp.WithString("message_id",
			mcp.Required(),
			mcp.Description("The ID of the message to label"),
		),
		mcp.WithString("label_name",
			mcp.Required(),
			mcp.Description("The label name; matched case-insensitively against existing labels"),
		),
	)
	s.AddTool(addLabelTool, common.InstrumentedToolHandler("add_label_to_message", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddLabel(ctx, request, sc)
		}))

	type modifySpec struct {
		name        string
		description string
		confirm     string
		call        func(ctx context.Context, sc *server.ServerContext, messageID string) error
	}

	specs := []modifySpec{
		{
			name:        "mark_as_read",
			description: "Mark a message as read",
			confirm:     "Message %s marked as read.",
			call: func(ctx context.Context, sc *server.ServerContext, id string) error {
				c, err := sc.GmailClient(ctx)
				if err != nil {
					return err
				}
				return c.MarkRead(ctx, id)
			},
		},
		{
			name:        "mark_as_unread",
			description: "Mark a message as unread",
			confirm:     "Message %s marked as unread.",
			call: func(ctx context.Context, sc *server.ServerContext, id string) error {
				c, err := sc.GmailClient(ctx)
				if err != nil {
					return err
				}
				return c.MarkUnread(ctx, id)
			},
		},
		{
			name:        "archive_message",
			description: "Archive a message by removing it from the inbox",
			confirm:     "Message %s archived.",
			call: func(ctx context.Context, sc *server.ServerContext, id string) error {
				c, err := sc.GmailClient(ctx)
				if err != nil {
					return err
				}
				return c.Archive(ctx, id)
			},
		},
		{
			name:        "trash_message",
			description: "Move a message to the trash",
			confirm:     "Message %s moved to trash.",
			call: func(ctx context.Context, sc *server.ServerContext, id string) error {
				c, err := sc.GmailClient(ctx)
				if err != nil {
					return err
				}
				if err := c.Trash(ctx, id); err != nil {
					return err
				}
				sc.Audit().MessageTrashed(id)
				return nil
			},
		},
	}

	for _, spec := range specs {
		tool := mcp.NewTool(spec.name,
			mcp.WithDescription(spec.description),
			mcp.WithString("message_id",
				mcp.Required(),
				mcp.Description("The ID of the message"),
			),
		)
		s.AddTool(tool, common.InstrumentedToolHandler(spec.name, sc, makeModifyHandler(sc, spec.confirm, spec.call)))
	}
}

func makeModifyHandler(sc *server.ServerContext, confirm string, call func(ctx context.Context, sc *server.ServerContext, messageID string) error) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		messageID := stringArg(request.GetArguments(), "message_id")
		if messageID == "" {
			return mcp.NewToolResultError("message_id is required"), nil
		}

		if err := call(ctx, sc, messageID); err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(confirm, messageID)), nil
	}
}

func handleAddLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	messageID := stringArg(args, "message_id")
	if messageID == "" {
		return mcp.NewToolResultError("message_id is required"), nil
	}
	labelName := stringArg(args, "label_name")
	if labelName == "" {
		return mcp.NewToolResultError("label_name is required"), nil
	}

	c, errResult := client(ctx, sc)
	if errResult != nil {
		return errResult, nil
	}

	label, err := c.AddLabel(ctx, messageID, labelName)
	if err != nil {
		return toolError(err), nil
	}

	sc.Audit().LabelApplied(messageID, label.Name)
	return mcp.NewToolResultText(fmt.Sprintf("Label %q (%s) applied to message %s.", label.Name, label.ID, messageID)), nil
}
