package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var performCmd = &cobra.Command{
	Use:   "perform <reviewable-id> <action>",
	Short: "Perform an action on a reviewable",
	Long: `Execute one of the offered actions on a queue item, for example:

  modqueue perform 42 approve
  modqueue perform 42 reject`,
	Args: cobra.ExactArgs(2),
	RunE: runPerform,
}

func runPerform(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	reviewableID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reviewable id %q", args[0])
	}
	actionID := args[1]

	client := newClient()
	result, err := client.Perform(ctx, reviewableID, actionID)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return outputJSON(result)
	}

	if !result.Success {
		fmt.Printf("Action %s on #%d did not complete.\n", actionID,
			reviewableID)
		return nil
	}

	fmt.Printf("Performed %s on #%d.", actionID, reviewableID)
	if result.TransitionTo != nil {
		fmt.Printf(" Now %s.", *result.TransitionTo)
	}
	fmt.Println()

	return nil
}
