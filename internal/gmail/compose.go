package gmail

import (
	"encoding/base64"
	"mime"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/jsievers/mailbridge/internal/mailerr"
)

// encodeRFC2047 encodes a header value when it contains non-ASCII
// characters, as RFC 2047 requires. ASCII-only values pass through
// unchanged.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

// buildRaw renders an OutgoingMessage as an RFC 2822 message and wraps
// it in the base64url envelope the API expects.
func buildRaw(msg *OutgoingMessage) (*gmailapi.Message, error) {
	if len(msg.To) == 0 {
		return nil, mailerr.New(mailerr.Invalid, "gmail.buildRaw", "at least one recipient is required")
	}
	if msg.Subject == "" {
		return nil, mailerr.New(mailerr.Invalid, "gmail.buildRaw", "subject is required")
	}
	if msg.Body == "" {
		return nil, mailerr.New(mailerr.Invalid, "gmail.buildRaw", "body is required")
	}

	// A CR or LF inside a header value would terminate the header and
	// let the caller inject arbitrary headers into the message.
	fields := make([]string, 0, 3+len(msg.To)+len(msg.Cc)+len(msg.Bcc))
	fields = append(fields, msg.Subject, msg.InReplyTo, msg.References)
	fields = append(fields, msg.To...)
	fields = append(fields, msg.Cc...)
	fields = append(fields, msg.Bcc...)
	for _, v := range fields {
		if strings.ContainsAny(v, "\r\n") {
			return nil, mailerr.New(mailerr.Invalid, "gmail.buildRaw", "header fields must not contain line breaks")
		}
	}

	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(strings.Join(msg.To, ", "))
	b.WriteString("\r\n")

	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(msg.Cc, ", "))
		b.WriteString("\r\n")
	}
	if len(msg.Bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(strings.Join(msg.Bcc, ", "))
		b.WriteString("\r\n")
	}

	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")

	if msg.InReplyTo != "" {
		b.WriteString("In-Reply-To: ")
		b.WriteString(msg.InReplyTo)
		b.WriteString("\r\n")
	}
	if msg.References != "" {
		b.WriteString("References: ")
		b.WriteString(msg.References)
		b.WriteString("\r\n")
	}

	if msg.IsHTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	raw := &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(b.String())),
	}
	if msg.ThreadID != "" {
		raw.ThreadId = msg.ThreadID
	}
	return raw, nil
}
