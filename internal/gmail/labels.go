package gmail

import (
	"context"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"
)

// ListLabels returns every label on the account, system and user alike,
// in the order the API reports them.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	ctx, cancel := callCtx(ctx)
	defer cancel()

	res, err := withRetry(ctx, c, "gmail.ListLabels", func() (*gmailapi.ListLabelsResponse, error) {
		return c.svc.Labels.List("me").Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, Label{ID: l.Id, Name: l.Name, Type: l.Type})
	}
	return labels, nil
}

// findLabel returns the label whose name matches case-insensitively, or
// nil when none does.
func findLabel(labels []Label, name string) *Label {
	for i := range labels {
		if strings.EqualFold(labels[i].Name, name) {
			return &labels[i]
		}
	}
	return nil
}

// AddLabel applies the named label to a message, creating the label when
// it does not exist yet. The lookup and create are two API calls, so two
// concurrent callers can race to create the same label; Gmail rejects
// the duplicate and the loser surfaces that error.
func (c *Client) AddLabel(ctx context.Context, messageID, labelName string) (*Label, error) {
	messageID = normalizeID(messageID)
	ctx, cancel := callCtx(ctx)
	defer cancel()

	labels, err := c.ListLabels(ctx)
	if err != nil {
		return nil, err
	}

	label := findLabel(labels, labelName)
	if label == nil {
		created, err := withRetry(ctx, c, "gmail.CreateLabel", func() (*gmailapi.Label, error) {
			return c.svc.Labels.Create("me", &gmailapi.Label{
				Name:                  labelName,
				LabelListVisibility:   "labelShow",
				MessageListVisibility: "show",
			}).Context(ctx).Do()
		})
		if err != nil {
			return nil, err
		}
		label = &Label{ID: created.Id, Name: created.Name, Type: created.Type}
	}

	_, err = withRetry(ctx, c, "gmail.AddLabel", func() (*gmailapi.Message, error) {
		return c.svc.Messages.Modify("me", messageID, &gmailapi.ModifyMessageRequest{
			AddLabelIds: []string{label.ID},
		}).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}
	return label, nil
}
