package resources

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

func readRequest(uri string) mcp.ReadResourceRequest {
	var req mcp.ReadResourceRequest
	req.Params.URI = uri
	return req
}

func TestHandleResourceLabels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/labels", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&gmailapi.ListLabelsResponse{Labels: []*gmailapi.Label{
			{Id: "INBOX", Name: "INBOX", Type: "system"},
		}})
	})

	sc := newTestServerContext(t, mux)
	contents, err := handleResource(context.Background(), readRequest("mail://labels"), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "mail://labels", text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var labels []gmail.Label
	require.NoError(t, json.Unmarshal([]byte(text.Text), &labels))
	require.Len(t, labels, 1)
	assert.Equal(t, "INBOX", labels[0].ID)
}

func TestHandleResourceSearchQueryReachesAPI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gmail/v1/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "is:unread", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&gmailapi.ListMessagesResponse{})
	})

	sc := newTestServerContext(t, mux)
	contents, err := handleResource(context.Background(), readRequest("mail://search/is:unread"), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text := contents[0].(*mcp.TextResourceContents)
	assert.JSONEq(t, "[]", text.Text)
}

func TestHandleResourceRejectsUnknownScheme(t *testing.T) {
	sc := newTestServerContext(t, http.NewServeMux())

	_, err := handleResource(context.Background(), readRequest("drive://files"), sc)
	require.Error(t, err)
	assert.Equal(t, mailerr.NotSupported, mailerr.KindOf(err))
}
