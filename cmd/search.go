package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var maxResults int64

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search messages with Gmail query syntax",
		Long: `Searches messages using Gmail's query syntax, for example:

  mailbridge search from:alice@example.com is:unread
  mailbridge search "subject:(quarterly report)" after:2026/01/01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd)
			if err != nil {
				return err
			}

			summaries, err := client.Search(cmd.Context(), strings.Join(args, " "), maxResults)
			if err != nil {
				return err
			}

			renderSummaries(cmd.OutOrStdout(), summaries)
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max", 10, "Maximum number of messages to return")

	return cmd
}
