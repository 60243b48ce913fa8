package cmd

import (
	"github.com/spf13/cobra"
)

func newMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message MESSAGE_ID",
		Short: "Show the full content of a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd)
			if err != nil {
				return err
			}

			msg, err := client.GetMessage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderMessage(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
