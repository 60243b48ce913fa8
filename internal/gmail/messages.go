package gmail

import (
	"context"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"
)

// summaryHeaders are the only headers a listing needs; requesting just
// these keeps metadata fetches small.
var summaryHeaders = []string{"From", "To", "Subject", "Date"}

// listSummaries runs a Messages.List call and hydrates each hit with a
// metadata-format fetch. An empty result set returns an empty slice, not
// nil, so callers and JSON encoders see a list either way.
func (c *Client) listSummaries(ctx context.Context, op string, build func() *gmailapi.UsersMessagesListCall) ([]MessageSummary, error) {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	res, err := withRetry(ctx, c, op, func() (*gmailapi.ListMessagesResponse, error) {
		return build().Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]MessageSummary, 0, len(res.Messages))
	for _, ref := range res.Messages {
		msg, err := withRetry(ctx, c, op, func() (*gmailapi.Message, error) {
			return c.svc.Messages.Get("me", ref.Id).
				Format("metadata").
				MetadataHeaders(summaryHeaders...).
				Context(ctx).Do()
		})
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summarize(msg))
	}
	return summaries, nil
}

// ListInbox returns up to maxResults inbox messages, newest first.
func (c *Client) ListInbox(ctx context.Context, maxResults int64) ([]MessageSummary, error) {
	return c.listSummaries(ctx, "gmail.ListInbox", func() *gmailapi.UsersMessagesListCall {
		return c.svc.Messages.List("me").LabelIds("INBOX").MaxResults(maxResults)
	})
}

// Search returns up to maxResults messages matching a Gmail query
// string ("from:alice is:unread", operators included).
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]MessageSummary, error) {
	return c.listSummaries(ctx, "gmail.Search", func() *gmailapi.UsersMessagesListCall {
		return c.svc.Messages.List("me").Q(query).MaxResults(maxResults)
	})
}

// GetMessage returns the full content of one message, body decoded.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*MessageContent, error) {
	messageID = normalizeID(messageID)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	msg, err := withRetry(ctx, c, "gmail.GetMessage", func() (*gmailapi.Message, error) {
		return c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}
	content := normalizeMessage(msg)
	return &content, nil
}

// Send delivers an outgoing message and returns the sent message id.
// There is no internal retry: a timeout after the API accepted the
// message would otherwise send it twice.
func (c *Client) Send(ctx context.Context, msg *OutgoingMessage) (string, error) {
	raw, err := buildRaw(msg)
	if err != nil {
		return "", err
	}
	ctx, cancel := callCtx(ctx)
	defer cancel()

	start := time.Now()
	sent, err := c.svc.Messages.Send("me", raw).Context(ctx).Do()
	if err != nil {
		err = classify("gmail.Send", err)
		c.recordOp(ctx, "gmail.Send", start, err)
		return "", err
	}
	c.recordOp(ctx, "gmail.Send", start, nil)
	return sent.Id, nil
}

// modifyLabels applies a label delta to a message.
func (c *Client) modifyLabels(ctx context.Context, op, messageID string, add, remove []string) error {
	messageID = normalizeID(messageID)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	_, err := withRetry(ctx, c, op, func() (*gmailapi.Message, error) {
		return c.svc.Messages.Modify("me", messageID, &gmailapi.ModifyMessageRequest{
			AddLabelIds:    add,
			RemoveLabelIds: remove,
		}).Context(ctx).Do()
	})
	return err
}

// MarkRead removes the UNREAD label. Already-read messages succeed
// unchanged; the modify is idempotent.
func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	return c.modifyLabels(ctx, "gmail.MarkRead", messageID, nil, []string{"UNREAD"})
}

// MarkUnread adds the UNREAD label back.
func (c *Client) MarkUnread(ctx context.Context, messageID string) error {
	return c.modifyLabels(ctx, "gmail.MarkUnread", messageID, []string{"UNREAD"}, nil)
}

// Archive removes a message from the inbox without deleting it.
func (c *Client) Archive(ctx context.Context, messageID string) error {
	return c.modifyLabels(ctx, "gmail.Archive", messageID, nil, []string{"INBOX"})
}

// Trash moves a message to the trash. Not retried internally: trash
// followed by a user restore must not re-trash on a stale retry.
func (c *Client) Trash(ctx context.Context, messageID string) error {
	messageID = normalizeID(messageID)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := c.svc.Messages.Trash("me", messageID).Context(ctx).Do()
	if err != nil {
		err = classify("gmail.Trash", err)
	}
	c.recordOp(ctx, "gmail.Trash", start, err)
	return err
}
