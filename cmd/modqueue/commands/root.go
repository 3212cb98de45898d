package commands

import (
	"github.com/spf13/cobra"
)

var (
	// serverAddr is the base URL of the modqueued HTTP API.
	serverAddr string

	// apiKey authenticates the reviewer against the API.
	apiKey string

	// outputFormat controls output format (text, json).
	outputFormat string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "modqueue",
	Short: "Moderation review queue CLI",
	Long: `Modqueue CLI drives the moderation review queue over its HTTP API.

Use this CLI to list items awaiting review, inspect their available
actions, and approve or reject them.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags.
	rootCmd.PersistentFlags().StringVar(
		&serverAddr, "addr", "http://localhost:8080",
		"Base URL of the modqueued HTTP API",
	)
	rootCmd.PersistentFlags().StringVar(
		&apiKey, "api-key", "",
		"Reviewer API key (from $MODQUEUE_API_KEY)",
	)
	rootCmd.PersistentFlags().StringVar(
		&outputFormat, "format", "text",
		"Output format: text, json",
	)

	// Add subcommands.
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(performCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
