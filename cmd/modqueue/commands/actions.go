package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions <reviewable-id>",
	Short: "Show the actions offered on a reviewable",
	Long: `Display one queue item and the actions this reviewer may perform
on it. An item that is no longer pending offers no actions.`,
	Args: cobra.ExactArgs(1),
	RunE: runActions,
}

func runActions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	reviewableID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reviewable id %q", args[0])
	}

	client := newClient()
	resp, err := client.GetReviewable(ctx, reviewableID)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return outputJSON(resp)
	}

	fmt.Print(formatReviewable(resp.Reviewable))

	if len(resp.ReviewableActions) == 0 {
		fmt.Println("\nNo actions available.")
		return nil
	}

	fmt.Println("\nAvailable actions:")
	for _, action := range resp.ReviewableActions {
		fmt.Printf("  %-10s %-18s %s\n", action.ID, action.Icon,
			action.Title)
	}

	return nil
}
