package gmail

import (
	"context"

	gmailapi "google.golang.org/api/gmail/v1"
)

// GetThread returns a full conversation. The thread subject comes from
// the first message; messages keep the API's delivery order.
func (c *Client) GetThread(ctx context.Context, threadID string) (*Thread, error) {
	threadID = normalizeID(threadID)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	t, err := withRetry(ctx, c, "gmail.GetThread", func() (*gmailapi.Thread, error) {
		return c.svc.Threads.Get("me", threadID).Format("full").Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	thread := &Thread{
		ID:       t.Id,
		Messages: make([]MessageContent, 0, len(t.Messages)),
	}
	for _, msg := range t.Messages {
		thread.Messages = append(thread.Messages, normalizeMessage(msg))
	}
	if len(thread.Messages) > 0 {
		thread.Subject = thread.Messages[0].Subject
	}
	return thread, nil
}
