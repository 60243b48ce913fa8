package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jsievers/mailbridge/internal/server"
)

// defaultResourceResults bounds inbox and search resource listings.
const defaultResourceResults = 10

// RegisterMailResources registers the mail:// resources: two static
// (labels, inbox) and two templated (message by id, search by query).
func RegisterMailResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	labelsResource := mcp.NewResource(
		"mail://labels",
		"Gmail Labels",
		mcp.WithResourceDescription("All labels on the authenticated account"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(labelsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleResource(ctx, request, sc)
	})

	inboxResource := mcp.NewResource(
		"mail://inbox",
		"Inbox Messages",
		mcp.WithResourceDescription("Recent inbox messages, newest first"),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(inboxResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleResource(ctx, request, sc)
	})

	messageTemplate := mcp.NewResourceTemplate(
		"mail://message/{id}",
		"Message Content",
		mcp.WithTemplateDescription("Full content of a single message by id"),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.AddResourceTemplate(messageTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleResource(ctx, request, sc)
	})

	searchTemplate := mcp.NewResourceTemplate(
		"mail://search/{query}",
		"Search Results",
		mcp.WithTemplateDescription("Messages matching a Gmail search query"),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.AddResourceTemplate(searchTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleResource(ctx, request, sc)
	})

	return nil
}

// handleResource resolves any mail:// URI to its JSON payload.
func handleResource(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	ref, err := ParseResourceURI(request.Params.URI)
	if err != nil {
		return nil, err
	}

	client, err := sc.GmailClient(ctx)
	if err != nil {
		return nil, err
	}

	var payload any
	switch ref.Kind {
	case KindLabels:
		payload, err = client.ListLabels(ctx)
	case KindInbox:
		payload, err = client.ListInbox(ctx, defaultResourceResults)
	case KindMessage:
		payload, err = client.GetMessage(ctx, ref.Arg)
	case KindSearch:
		payload, err = client.Search(ctx, ref.Arg, defaultResourceResults)
	}
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource payload: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
