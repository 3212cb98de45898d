package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// outputJSON writes the value as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// statusName maps a numeric status onto its wire name.
func statusName(status int64) string {
	switch status {
	case 0:
		return "pending"
	case 1:
		return "approved"
	case 2:
		return "rejected"
	case 3:
		return "ignored"
	case 4:
		return "deleted"
	default:
		return fmt.Sprintf("unknown(%d)", status)
	}
}

// formatReviewable renders one queue row for text output.
func formatReviewable(item ReviewableItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#%d  %s  [%s]\n", item.ID, item.Type,
		statusName(item.Status))

	if item.Username != "" {
		fmt.Fprintf(&b, "    user: %s", item.Username)
		if item.Email != "" {
			fmt.Fprintf(&b, " <%s>", item.Email)
		}
		b.WriteString("\n")
	}

	if note, ok := item.Payload["note"].(string); ok && note != "" {
		fmt.Fprintf(&b, "    note: %s\n", note)
	}

	if item.ClaimedByID != nil {
		fmt.Fprintf(&b, "    claimed by: %d\n", *item.ClaimedByID)
	}

	if len(item.ReviewableActions) > 0 {
		fmt.Fprintf(&b, "    actions: %s\n",
			strings.Join(item.ReviewableActions, ", "))
	}

	fmt.Fprintf(&b, "    created: %s\n", item.CreatedAt)

	return b.String()
}
