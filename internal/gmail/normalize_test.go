package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"
)

func b64url(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestHeaderValueCaseInsensitive(t *testing.T) {
	msg := &gmailapi.Message{
		Payload: &gmailapi.MessagePart{
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "from", Value: "alice@example.com"},
				{Name: "SUBJECT", Value: "Weekly sync"},
			},
		},
	}

	assert.Equal(t, "alice@example.com", headerValue(msg, "From"))
	assert.Equal(t, "Weekly sync", headerValue(msg, "Subject"))
	assert.Empty(t, headerValue(msg, "Cc"))
	assert.Empty(t, headerValue(nil, "From"))
}

func TestSummarizeUnreadFlag(t *testing.T) {
	msg := &gmailapi.Message{
		Id:       "m1",
		ThreadId: "t1",
		Snippet:  "hello there",
		LabelIds: []string{"INBOX", "UNREAD"},
		Payload: &gmailapi.MessagePart{
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: "alice@example.com"},
				{Name: "Subject", Value: "Hi"},
			},
		},
	}

	sum := summarize(msg)
	assert.True(t, sum.Unread)
	assert.Equal(t, "m1", sum.ID)
	assert.Equal(t, "t1", sum.ThreadID)
	assert.Equal(t, "hello there", sum.Snippet)

	msg.LabelIds = []string{"INBOX"}
	assert.False(t, summarize(msg).Unread)
}

func TestExtractBodyPrefersPlainText(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmailapi.MessagePartBody{Data: b64url("<p>Hello</p>")},
			},
			{
				MimeType: "text/plain",
				Body:     &gmailapi.MessagePartBody{Data: b64url("Hello")},
			},
		},
	}

	assert.Equal(t, "Hello", extractBody(payload))
}

func TestExtractBodyFallsBackToHTML(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmailapi.MessagePartBody{Data: b64url("<p>Only HTML</p>")},
			},
		},
	}

	assert.Equal(t, "<p>Only HTML</p>", extractBody(payload))
}

func TestExtractBodyNestedMultipart(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmailapi.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmailapi.MessagePartBody{Data: b64url("nested body")},
					},
				},
			},
			{
				MimeType: "application/pdf",
				Filename: "report.pdf",
				Body:     &gmailapi.MessagePartBody{AttachmentId: "att1", Size: 1024},
			},
		},
	}

	assert.Equal(t, "nested body", extractBody(payload))

	atts := collectAttachments(payload)
	assert.Len(t, atts, 1)
	assert.Equal(t, "att1", atts[0].ID)
	assert.Equal(t, "report.pdf", atts[0].Filename)
	assert.Equal(t, int64(1024), atts[0].Size)
}

func TestDecodeBodyAcceptsPaddedAndUnpadded(t *testing.T) {
	assert.Equal(t, "hi!", decodeBody(base64.RawURLEncoding.EncodeToString([]byte("hi!"))))
	assert.Equal(t, "hi!", decodeBody(base64.URLEncoding.EncodeToString([]byte("hi!"))))
	assert.Empty(t, decodeBody("!!not base64!!"))
}

func TestNormalizeIDStripsPrefix(t *testing.T) {
	assert.Equal(t, "18c2f9", normalizeID("id_18c2f9"))
	assert.Equal(t, "18c2f9", normalizeID("18c2f9"))
}
