package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listStatus string
	listQuery  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items awaiting review",
	Long: `Display the review queue visible to this reviewer. By default shows
pending items; use --status to view another slice of the queue, and
--query to full-text search item payloads.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "",
		"Filter by status: pending, approved, rejected, ignored, deleted")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "",
		"Full-text search query over item payloads")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client := newClient()
	resp, err := client.ListReviewables(ctx, listStatus, listQuery)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return outputJSON(resp)
	}

	if len(resp.Reviewables) == 0 {
		fmt.Println("Review queue is empty.")
		return nil
	}

	fmt.Printf("Review queue (%d items):\n\n", len(resp.Reviewables))
	for _, item := range resp.Reviewables {
		fmt.Print(formatReviewable(item))
		fmt.Println()
	}

	return nil
}
