package review

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewActionDefaults verifies that well-known action ids resolve to
// their registry defaults.
func TestNewActionDefaults(t *testing.T) {
	action := NewAction("reviewable_user", "approve")

	require.Equal(t, "approve", action.ID)
	require.Equal(t, "far-thumbs-up", action.Icon)
	require.Equal(t, "reviewables.actions.approve.title", action.Title)
}

// TestNewActionOverrides verifies that explicit overrides win over the
// registry defaults.
func TestNewActionOverrides(t *testing.T) {
	action := NewAction(
		"reviewable_user", "approve",
		WithTitle("custom.title"), WithIcon("check"),
	)

	require.Equal(t, "custom.title", action.Title)
	require.Equal(t, "check", action.Icon)
}

// TestNewActionFallbackTitle verifies the computed title key for action ids
// the registry does not know about.
func TestNewActionFallbackTitle(t *testing.T) {
	action := NewAction("reviewable_user", "escalate")

	require.Equal(
		t, "reviewables.reviewable_user.actions.escalate.title",
		action.Title,
	)
	require.Empty(t, action.Icon)
}

// TestActionListDedup verifies that adding the same id twice keeps only the
// first resolution.
func TestActionListDedup(t *testing.T) {
	list := NewActionList("reviewable_user")

	list.Add("approve")
	list.Add("approve", WithTitle("ignored.second.add"))
	list.Add("reject")

	actions := list.ToList()
	require.Len(t, actions, 2)
	require.Equal(t, "approve", actions[0].ID)
	require.Equal(t, "reviewables.actions.approve.title",
		actions[0].Title)
	require.Equal(t, "reject", actions[1].ID)
}

// TestActionListOrder verifies insertion ordering and Has.
func TestActionListOrder(t *testing.T) {
	list := NewActionList("reviewable_user")

	require.False(t, list.Has("reject"))

	list.Add("reject")
	list.Add("approve")

	require.True(t, list.Has("reject"))
	require.True(t, list.Has("approve"))
	require.False(t, list.Has("delete"))

	actions := list.ToList()
	require.Equal(t, "reject", actions[0].ID)
	require.Equal(t, "approve", actions[1].ID)
}
