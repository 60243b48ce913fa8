package gmail

import (
	"encoding/base64"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"
)

// headerValue returns the first matching header, case-insensitively.
// Gmail preserves the sender's header casing, so lookups cannot assume
// canonical MIME form.
func headerValue(msg *gmailapi.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func hasLabel(msg *gmailapi.Message, labelID string) bool {
	for _, id := range msg.LabelIds {
		if id == labelID {
			return true
		}
	}
	return false
}

// summarize builds the compact listing view from a metadata-format
// message.
func summarize(msg *gmailapi.Message) MessageSummary {
	return MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		From:     headerValue(msg, "From"),
		To:       headerValue(msg, "To"),
		Subject:  headerValue(msg, "Subject"),
		Date:     headerValue(msg, "Date"),
		Snippet:  msg.Snippet,
		Labels:   msg.LabelIds,
		Unread:   hasLabel(msg, "UNREAD"),
	}
}

// normalizeMessage builds the full view from a full-format message,
// decoding the body and collecting attachment metadata.
func normalizeMessage(msg *gmailapi.Message) MessageContent {
	content := MessageContent{
		MessageSummary: summarize(msg),
		Cc:             headerValue(msg, "Cc"),
	}
	if msg.Payload != nil {
		content.Body = extractBody(msg.Payload)
		content.Attachments = collectAttachments(msg.Payload)
	}
	return content
}

// extractBody walks the MIME tree breadth-first and returns the first
// text/plain part, falling back to the first text/html part. Breadth
// order means a top-level text part wins over one nested inside a
// forwarded attachment.
func extractBody(payload *gmailapi.MessagePart) string {
	var htmlFallback string

	queue := []*gmailapi.MessagePart{payload}
	for len(queue) > 0 {
		part := queue[0]
		queue = queue[1:]

		if part.Body != nil && part.Body.Data != "" {
			switch {
			case strings.HasPrefix(part.MimeType, "text/plain"):
				if text := decodeBody(part.Body.Data); text != "" {
					return text
				}
			case strings.HasPrefix(part.MimeType, "text/html"):
				if htmlFallback == "" {
					htmlFallback = decodeBody(part.Body.Data)
				}
			}
		}
		queue = append(queue, part.Parts...)
	}

	return htmlFallback
}

// decodeBody decodes a Gmail body payload. The API emits unpadded
// base64url; older clients occasionally stored padded data, so both are
// accepted.
func decodeBody(data string) string {
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}

func collectAttachments(payload *gmailapi.MessagePart) []Attachment {
	var attachments []Attachment

	queue := []*gmailapi.MessagePart{payload}
	for len(queue) > 0 {
		part := queue[0]
		queue = queue[1:]

		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			attachments = append(attachments, Attachment{
				ID:       part.Body.AttachmentId,
				Filename: part.Filename,
				MimeType: part.MimeType,
				Size:     part.Body.Size,
			})
		}
		queue = append(queue, part.Parts...)
	}

	return attachments
}
