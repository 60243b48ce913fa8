package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddLabelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-label MESSAGE_ID LABEL_NAME",
		Short: "Apply a label to a message, creating the label if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newGmailClient(cmd)
			if err != nil {
				return err
			}

			label, err := client.AddLabel(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Label %q (%s) applied to message %s.\n", label.Name, label.ID, args[0])
			return nil
		},
	}
}
