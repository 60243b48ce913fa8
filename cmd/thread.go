package cmd

import (
	"github.com/spf13/cobra"
)

func newThreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "thread THREAD_ID",
		Short: "Show every message in a conversation thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd)
			if err != nil {
				return err
			}

			thread, err := client.GetThread(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderThread(cmd.OutOrStdout(), thread)
			return nil
		},
	}
}
