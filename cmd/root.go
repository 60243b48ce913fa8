// Package cmd implements the mailbridge command line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the mailbridge application.
var rootCmd = &cobra.Command{
	Use:   "mailbridge",
	Short: "Gmail from the command line and over MCP",
	Long: `mailbridge connects Gmail to the command line and to AI assistants.

It can run as:
  - A standalone CLI for reading, searching, sending and organizing mail
  - An MCP (Model Context Protocol) server exposing the same operations
    as tools, resources and prompts`,
	SilenceUsage: true,
}

// version is set by main at build time.
var version = "dev"

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailbridge version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config-dir", "", "Configuration directory (default: ~/.config/mailbridge)")
	rootCmd.PersistentFlags().String("credentials", "", "Path to the OAuth credentials.json (default: <config-dir>/credentials.json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newLabelsCmd())
	rootCmd.AddCommand(newInboxCmd())
	rootCmd.AddCommand(newMessageCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newDraftCmd())
	rootCmd.AddCommand(newAddLabelCmd())
	rootCmd.AddCommand(newThreadCmd())
	rootCmd.AddCommand(newMarkReadCmd())
	rootCmd.AddCommand(newMarkUnreadCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newTrashCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
