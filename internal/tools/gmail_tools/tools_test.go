package gmail_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jsievers/mailbridge/internal/gmail"
	"github.com/jsievers/mailbridge/internal/logging"
	"github.com/jsievers/mailbridge/internal/mailerr"
	"github.com/jsievers/mailbridge/internal/server"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// newTestServerContext builds a ServerContext whose Gmail client talks
// to a fake backend.
func newTestServerContext(t *testing.T, handler http.Handler) *server.ServerContext {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logging.NewLogger(false)
	client, err := gmail.NewClient(context.Background(), srv.Client(), logger,
		option.WithEndpoint(srv.URL))
	require.NoError(t, err)

	sc := server.NewServerContext(context.Background(), nil, logger, nil, nil)
	sc.SetGmailClient(client)
	return sc
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestClampMaxResults(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want int64
	}{
		{name: "missing uses default", args: map[string]any{}, want: 10},
		{name: "in range", args: map[string]any{"max_results": float64(25)}, want: 25},
		{name: "above limit clamps down", args: map[string]any{"max_results": float64(500)}, want: 50},
		{name: "zero clamps up", args: map[string]any{"max_results": float64(0)}, want: 1},
		{name: "negative clamps up", args: map[string]any{"max_results": float64(-3)}, want: 1},
		{name: "non-numeric ignored", args: map[string]any{"max_results": "lots"}, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampMaxResults(tt.args, "max_results", MaxInboxResults))
		})
	}
}

func TestOutgoingFromArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing to", args: map[string]any{"subject": "s", "body": "b"}, want: "to is required"},
		{name: "missing subject", args: map[string]any{"to": "a@b.c", "body": "b"}, want: "subject is required"},
		{name: "missing body", args: map[string]any{"to": "a@b.c", "subject": "s"}, want: "body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, problem := outgoingFromArgs(tt.args)
			assert.Nil(t, msg)
			assert.Equal(t, tt.want, problem)
		})
	}

	msg, problem := outgoingFromArgs(map[string]any{"to": "a@b.c", "subject": "s", "body": "b"})
	require.Empty(t, problem)
	assert.Equal(t, []string{"a@b.c"}, msg.To)
}

func TestToolErrorNamesKind(t *testing.T) {
	result := toolError(mailerr.New(mailerr.NotFound, "gmail.GetMessage", "no such message"))
	assert.True(t, result.IsError)

	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "not_found")
}

func TestHandleGetInbox(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("maxResults"), "oversized request must be clamped")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&gmailapi.ListMessagesResponse{Messages: []*gmailapi.Message{
			{Id: "m1", ThreadId: "t1"},
		}})
	})
	mux.HandleFunc("GET /gmail/v1/users/me/messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&gmailapi.Message{
			Id:       r.PathValue("id"),
			ThreadId: "t1",
			Snippet:  "hello",
			LabelIds: []string{"INBOX", "UNREAD"},
			Payload: &gmailapi.MessagePart{Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: "alice@example.com"},
				{Name: "Subject", Value: "Hi"},
			}},
		})
	})

	sc := newTestServerContext(t, mux)
	result, err := handleGetInbox(context.Background(), callRequest(map[string]any{
		"max_results": float64(9999),
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var messages []gmail.MessageSummary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].ID)
	assert.True(t, messages[0].Unread)
}

func TestHandleSearchRequiresQuery(t *testing.T) {
	sc := newTestServerContext(t, http.NewServeMux())

	result, err := handleSearch(context.Background(), callRequest(map[string]any{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "query is required")
}

func TestHandleSendEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /gmail/v1/users/me/messages/send", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&gmailapi.Message{Id: "sent-42"})
	})

	sc := newTestServerContext(t, mux)
	result, err := handleSendEmail(context.Background(), callRequest(map[string]any{
		"to":      "alice@example.com",
		"subject": "Hello",
		"body":    "Hi Alice",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "sent-42")
}

func TestHandleGetMessageNotFoundIsToolError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{
			"code": 404, "message": "Requested entity was not found.",
		}})
	})

	sc := newTestServerContext(t, mux)
	result, err := handleGetMessage(context.Background(), callRequest(map[string]any{
		"message_id": "gone",
	}), sc)
	require.NoError(t, err, "API failures must surface as tool errors, not protocol errors")
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not_found")
}

func TestHandleAddLabelValidation(t *testing.T) {
	sc := newTestServerContext(t, http.NewServeMux())

	result, err := handleAddLabel(context.Background(), callRequest(map[string]any{
		"message_id": "m1",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "label_name is required")
}
