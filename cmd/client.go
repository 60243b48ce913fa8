package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsievers/mailbridge/internal/auth"
	"github.com/jsievers/mailbridge/internal/gmail"
	"github.com/jsievers/mailbridge/internal/logging"
)

func cliLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return logging.NewLogger(debug)
}

func newStore(cmd *cobra.Command, logger *slog.Logger) (*auth.Store, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")
	credentials, _ := cmd.Flags().GetString("credentials")
	return auth.NewStore(configDir, credentials, logger)
}

// newGmailClient wires the credential store into a Gmail client for a
// single CLI invocation. A missing or expired token triggers refresh or
// the interactive consent flow before the first API call.
func newGmailClient(cmd *cobra.Command) (*gmail.Client, error) {
	logger := cliLogger(cmd)

	store, err := newStore(cmd, logger)
	if err != nil {
		return nil, err
	}

	httpClient, err := store.HTTPClient(cmd.Context())
	if err != nil {
		return nil, err
	}

	return gmail.NewClient(cmd.Context(), httpClient, logger)
}
