package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsievers/mailbridge/internal/gmail"
)

func TestRenderSummaries(t *testing.T) {
	var out bytes.Buffer
	renderSummaries(&out, []gmail.MessageSummary{
		{ID: "m1", From: "alice@example.com", Subject: "Hello", Date: "Mon, 2 Jun 2026 10:00:00 +0000", Unread: true},
		{ID: "m2", From: "bob@example.com", Subject: "Re: Hello", Date: "Mon, 2 Jun 2026 11:00:00 +0000"},
	})

	text := out.String()
	assert.Contains(t, text, "m1")
	assert.Contains(t, text, "alice@example.com")
	assert.Contains(t, text, "Re: Hello")

	lines := bytes.Split(out.Bytes(), []byte("\n"))
	assert.True(t, bytes.HasPrefix(lines[1], []byte("*")), "unread message should carry a marker")
	assert.False(t, bytes.HasPrefix(lines[2], []byte("*")), "read message should not carry a marker")
}

func TestRenderSummariesEmpty(t *testing.T) {
	var out bytes.Buffer
	renderSummaries(&out, nil)
	assert.Equal(t, "No messages found.\n", out.String())
}

func TestRenderLabels(t *testing.T) {
	var out bytes.Buffer
	renderLabels(&out, []gmail.Label{
		{ID: "INBOX", Name: "INBOX", Type: "system"},
		{ID: "Label_7", Name: "receipts", Type: "user"},
	})

	text := out.String()
	assert.Contains(t, text, "INBOX")
	assert.Contains(t, text, "receipts")
	assert.Contains(t, text, "user")
}

func TestRenderMessage(t *testing.T) {
	var out bytes.Buffer
	renderMessage(&out, &gmail.MessageContent{
		MessageSummary: gmail.MessageSummary{
			From:    "alice@example.com",
			To:      "me@example.com",
			Subject: "Report",
			Date:    "Mon, 2 Jun 2026 10:00:00 +0000",
			Labels:  []string{"INBOX", "UNREAD"},
		},
		Cc:   "bob@example.com",
		Body: "Attached is the report.",
		Attachments: []gmail.Attachment{
			{ID: "att1", Filename: "report.pdf", MimeType: "application/pdf", Size: 2048},
		},
	})

	text := out.String()
	assert.Contains(t, text, "From:    alice@example.com")
	assert.Contains(t, text, "Cc:      bob@example.com")
	assert.Contains(t, text, "Subject: Report")
	assert.Contains(t, text, "INBOX, UNREAD")
	assert.Contains(t, text, "Attached is the report.")
	assert.Contains(t, text, "report.pdf (application/pdf, 2048 bytes)")
}

func TestRenderThread(t *testing.T) {
	var out bytes.Buffer
	renderThread(&out, &gmail.Thread{
		ID:      "t1",
		Subject: "Planning",
		Messages: []gmail.MessageContent{
			{MessageSummary: gmail.MessageSummary{From: "alice@example.com", Subject: "Planning"}, Body: "First"},
			{MessageSummary: gmail.MessageSummary{From: "bob@example.com", Subject: "Re: Planning"}, Body: "Second"},
		},
	})

	text := out.String()
	assert.Contains(t, text, "Thread t1: Planning (2 messages)")
	assert.Contains(t, text, "--- Message 1 of 2 ---")
	assert.Contains(t, text, "--- Message 2 of 2 ---")
	assert.Contains(t, text, "First")
	assert.Contains(t, text, "Second")
}
