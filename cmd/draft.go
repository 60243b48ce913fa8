package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsievers/mailbridge/internal/gmail"
)

func newDraftCmd() *cobra.Command {
	var (
		to      []string
		cc      []string
		subject string
		body    string
		html    bool
	)

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Create a draft email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd)
			if err != nil {
				return err
			}

			id, err := client.CreateDraft(cmd.Context(), &gmail.OutgoingMessage{
				To:      to,
				Cc:      cc,
				Subject: subject,
				Body:    body,
				IsHTML:  html,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Draft created. ID: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&to, "to", nil, "Recipient address (repeatable)")
	cmd.Flags().StringSliceVar(&cc, "cc", nil, "Cc address (repeatable)")
	cmd.Flags().StringVar(&subject, "subject", "", "Email subject")
	cmd.Flags().StringVar(&body, "body", "", "Email body")
	cmd.Flags().BoolVar(&html, "html", false, "Store the body as text/html")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("subject")
	cmd.MarkFlagRequired("body")

	return cmd
}
