package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	signupEmail string
	signupName  string
)

var signupCmd = &cobra.Command{
	Use:   "signup <username>",
	Short: "Register an account pending review",
	Long: `Create an unapproved account and enqueue it on the review queue.
Intended for testing the queue end to end.`,
	Args: cobra.ExactArgs(1),
	RunE: runSignup,
}

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "",
		"Email address for the account")
	signupCmd.Flags().StringVar(&signupName, "name", "",
		"Display name for the account")
}

func runSignup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client := newClient()
	resp, err := client.Signup(ctx, args[0], signupEmail, signupName)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return outputJSON(resp)
	}

	fmt.Printf("Created user %s (id=%d), queued as reviewable #%d.\n",
		resp.User.Username, resp.User.ID, resp.ReviewableID)

	return nil
}
