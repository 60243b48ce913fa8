package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsievers/mailbridge/internal/gmail"
)

// newModifyCmd builds a single-argument command that changes message
// state. The four state-change commands differ only in name and the
// client call they make.
func newModifyCmd(use, short, confirm string, call func(*gmail.Client, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " MESSAGE_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd)
			if err != nil {
				return err
			}

			if err := call(client, cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), confirm+"\n", args[0])
			return nil
		},
	}
}

func newMarkReadCmd() *cobra.Command {
	return newModifyCmd("mark-read", "Mark a message as read",
		"Message %s marked as read.",
		func(c *gmail.Client, ctx context.Context, id string) error { return c.MarkRead(ctx, id) })
}

func newMarkUnreadCmd() *cobra.Command {
	return newModifyCmd("mark-unread", "Mark a message as unread",
		"Message %s marked as unread.",
		func(c *gmail.Client, ctx context.Context, id string) error { return c.MarkUnread(ctx, id) })
}

func newArchiveCmd() *cobra.Command {
	return newModifyCmd("archive", "Archive a message (remove it from the inbox)",
		"Message %s archived.",
		func(c *gmail.Client, ctx context.Context, id string) error { return c.Archive(ctx, id) })
}

func newTrashCmd() *cobra.Command {
	return newModifyCmd("trash", "Move a message to the trash",
		"Message %s moved to trash.",
		func(c *gmail.Client, ctx context.Context, id string) error { return c.Trash(ctx, id) })
}
