package review

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestStatusRoundTrip verifies that every valid status survives a
// String/ParseStatus round trip.
func TestStatusRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		status := Status(rapid.Int64Range(0, 4).Draw(t, "status"))
		require.True(t, status.Valid())

		parsed, err := ParseStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, parsed)
	})
}

// TestParseStatusUnknown verifies unknown names are rejected.
func TestParseStatusUnknown(t *testing.T) {
	_, err := ParseStatus("bandersnatch")
	require.Error(t, err)
}

// TestStatusPredicates spot checks the predicate helpers.
func TestStatusPredicates(t *testing.T) {
	require.True(t, StatusPending.Pending())
	require.False(t, StatusPending.Approved())
	require.True(t, StatusApproved.Approved())
	require.True(t, StatusRejected.Rejected())
	require.True(t, StatusIgnored.Ignored())
	require.True(t, StatusDeleted.Deleted())
	require.False(t, Status(7).Valid())
}
