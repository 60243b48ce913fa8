package cmd

import (
	"github.com/spf13/cobra"
)

func newLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List all Gmail labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd)
			if err != nil {
				return err
			}

			labels, err := client.ListLabels(cmd.Context())
			if err != nil {
				return err
			}

			renderLabels(cmd.OutOrStdout(), labels)
			return nil
		},
	}
}
