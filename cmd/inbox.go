package cmd

import (
	"github.com/spf13/cobra"
)

func newInboxCmd() *cobra.Command {
	var maxResults int64

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List recent inbox messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd)
			if err != nil {
				return err
			}

			summaries, err := client.ListInbox(cmd.Context(), maxResults)
			if err != nil {
				return err
			}

			renderSummaries(cmd.OutOrStdout(), summaries)
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max", 10, "Maximum number of messages to list")

	return cmd
}
