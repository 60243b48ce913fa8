package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newAuthCmd creates the auth command. It runs the OAuth consent flow
// up front so later commands and serve mode start with a stored token.
func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize mailbridge to access your Gmail account",
		Long: `Runs the OAuth2 consent flow and stores the resulting token.

Requires a credentials.json (OAuth client for a desktop application)
downloaded from the Google Cloud Console. The token is stored next to
it and refreshed automatically on later invocations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd)
			store, err := newStore(cmd, logger)
			if err != nil {
				return err
			}

			if store.HasToken() {
				fmt.Fprintln(cmd.OutOrStdout(), "A stored token already exists; verifying it.")
			}

			if _, err := store.Obtain(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Authorized. Token stored in %s\n", store.ConfigDir())
			return nil
		},
	}
}
