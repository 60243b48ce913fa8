// Package prompts registers the MCP prompt templates that guide an
// agent through common email workflows using the Gmail tools and
// resources.
package prompts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterPrompts registers all prompt templates on the MCP server.
func RegisterPrompts(s *mcpserver.MCPServer) {
	composePrompt := mcp.NewPrompt("compose_email",
		mcp.WithPromptDescription("Compose an email to a recipient, optionally on a given subject and topic"),
		mcp.WithArgument("to",
			mcp.ArgumentDescription("Recipient email address"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("subject",
			mcp.ArgumentDescription("Optional email subject"),
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Optional topic to discuss in the email"),
		),
	)
	s.AddPrompt(composePrompt, handleComposeEmail)

	summarizePrompt := mcp.NewPrompt("summarize_emails",
		mcp.WithPromptDescription("Summarize recent emails matching a Gmail search query"),
		mcp.WithArgument("search_query",
			mcp.ArgumentDescription("Gmail search query (default: in:inbox)"),
		),
	)
	s.AddPrompt(summarizePrompt, handleSummarizeEmails)

	replyPrompt := mcp.NewPrompt("generate_reply",
		mcp.WithPromptDescription("Draft a reply to a specific email"),
		mcp.WithArgument("message_id",
			mcp.ArgumentDescription("ID of the message to reply to"),
			mcp.RequiredArgument(),
		),
	)
	s.AddPrompt(replyPrompt, handleGenerateReply)

	organizePrompt := mcp.NewPrompt("organize_inbox",
		mcp.WithPromptDescription("Analyze and organize the inbox"),
		mcp.WithArgument("suggestions",
			mcp.ArgumentDescription("Include label and filter suggestions (default: true)"),
		),
	)
	s.AddPrompt(organizePrompt, handleOrganizeInbox)
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	})
}

func handleComposeEmail(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments

	to := args["to"]
	if to == "" {
		return nil, fmt.Errorf("to argument is required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Please help me compose an email to %s.", to)
	if subject := args["subject"]; subject != "" {
		fmt.Fprintf(&b, " The subject is '%s'.", subject)
	}
	if topic := args["topic"]; topic != "" {
		fmt.Fprintf(&b, " I need to write about the following topic: %s.", topic)
	}
	b.WriteString("\n\nPlease format the email with a professional greeting, body, and signature.")

	return promptResult("Compose an email", b.String()), nil
}

func handleSummarizeEmails(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	query := request.Params.Arguments["search_query"]
	if query == "" {
		query = "in:inbox"
	}

	text := fmt.Sprintf(`Please help me summarize recent emails matching the search query: '%s'.

First, I'll use the search_emails_tool to find these emails, and then I'd like you to:
1. Group emails by sender or topic
2. Identify key information and action items
3. Provide a brief summary of each important conversation
4. Note any emails that require urgent attention

Please organize the summary in a clear, scannable format.`, query)

	return promptResult("Summarize matching emails", text), nil
}

func handleGenerateReply(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	messageID := request.Params.Arguments["message_id"]
	if messageID == "" {
		return nil, fmt.Errorf("message_id argument is required")
	}
	messageID = strings.TrimPrefix(messageID, "id_")

	text := fmt.Sprintf(`Please help me draft a reply to the email with ID: %s.

First, I'll retrieve the email content using the mail://message/%s resource, and then I'd like you to:
1. Draft a professional and appropriate response
2. Address all questions or requests from the original email
3. Maintain a similar tone to the original message
4. Keep the response concise but complete

Please format the reply so I can easily use it with the send_email tool.`, messageID, messageID)

	return promptResult("Draft a reply", text), nil
}

func handleOrganizeInbox(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	suggestions := true
	if v := request.Params.Arguments["suggestions"]; v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			suggestions = parsed
		}
	}

	text := `Please help me organize my Gmail inbox.

First, I'll retrieve my current labels and recent inbox messages, and then I'd like you to:
1. Analyze my email patterns
2. Suggest actions for specific emails (archive, label, etc.)
3. Help me process emails that need responses`

	if suggestions {
		text += `
4. Suggest a labeling system to better organize my emails
5. Recommend filters that might help manage my incoming mail`
	}

	return promptResult("Organize the inbox", text), nil
}
