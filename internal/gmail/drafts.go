package gmail

import (
	"context"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"
)

// CreateDraft stores an outgoing message as a draft and returns the
// draft id. Like Send, draft creation never retries internally; a retry
// after an ambiguous failure would leave two drafts behind.
func (c *Client) CreateDraft(ctx context.Context, msg *OutgoingMessage) (string, error) {
	raw, err := buildRaw(msg)
	if err != nil {
		return "", err
	}
	ctx, cancel := callCtx(ctx)
	defer cancel()

	start := time.Now()
	draft, err := c.svc.Drafts.Create("me", &gmailapi.Draft{Message: raw}).Context(ctx).Do()
	if err != nil {
		err = classify("gmail.CreateDraft", err)
		c.recordOp(ctx, "gmail.CreateDraft", start, err)
		return "", err
	}
	c.recordOp(ctx, "gmail.CreateDraft", start, nil)
	return draft.Id, nil
}
