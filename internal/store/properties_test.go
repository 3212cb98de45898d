package store

import (
	"context"
	"testing"

	"pgregory.net/rapid"
)

// payloadGen draws a flat JSON-compatible payload. Numbers are drawn as
// float64 since that is what a JSON round trip produces.
func payloadGen() *rapid.Generator[map[string]any] {
	key := rapid.StringMatching(`[a-z][a-z_]{0,8}`)
	value := rapid.OneOf(
		rapid.String().AsAny(),
		rapid.Float64Range(-1e6, 1e6).AsAny(),
		rapid.Bool().AsAny(),
	)
	return rapid.MapOfN(key, value, 0, 6)
}

// TestPayloadRoundTrip verifies arbitrary payloads survive the mock store
// unchanged and isolated from later mutation.
func TestPayloadRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewMockStore()
		ctx := context.Background()

		payload := payloadGen().Draw(t, "payload")

		rev, err := s.CreateReviewable(ctx, CreateReviewableParams{
			Type:                  "reviewable_user",
			CreatedByID:           1,
			ReviewableByModerator: true,
			Payload:               payload,
		})
		if err != nil {
			t.Fatal(err)
		}

		got, err := s.GetReviewable(ctx, rev.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Payload == nil {
			t.Fatal("payload must never be nil on read")
		}
		if len(got.Payload) != len(payload) {
			t.Fatalf("payload length changed: got %d, want %d",
				len(got.Payload), len(payload))
		}
		for k, v := range payload {
			if got.Payload[k] != v {
				t.Fatalf("payload key %q changed: got %v, "+
					"want %v", k, got.Payload[k], v)
			}
		}

		// Mutating the returned map must not leak into the store.
		got.Payload["mutated"] = true
		again, err := s.GetReviewable(ctx, rev.ID)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := again.Payload["mutated"]; ok {
			t.Fatal("returned payload aliases stored payload")
		}
	})
}

// TestStatusUpdateSequence verifies the last status write always wins and
// counts stay consistent.
func TestStatusUpdateSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewMockStore()
		ctx := context.Background()

		numItems := rapid.IntRange(1, 5).Draw(t, "numItems")
		ids := make([]int64, numItems)
		for i := 0; i < numItems; i++ {
			rev, err := s.CreateReviewable(ctx,
				CreateReviewableParams{
					Type:                  "reviewable_user",
					CreatedByID:           1,
					ReviewableByModerator: true,
				})
			if err != nil {
				t.Fatal(err)
			}
			ids[i] = rev.ID
		}

		final := make(map[int64]int64)
		numUpdates := rapid.IntRange(0, 10).Draw(t, "numUpdates")
		for i := 0; i < numUpdates; i++ {
			id := ids[rapid.IntRange(0, numItems-1).Draw(t, "idx")]
			status := rapid.Int64Range(0, 4).Draw(t, "status")
			if err := s.UpdateReviewableStatus(
				ctx, id, status,
			); err != nil {
				t.Fatal(err)
			}
			final[id] = status
		}

		for _, id := range ids {
			got, err := s.GetReviewable(ctx, id)
			if err != nil {
				t.Fatal(err)
			}
			want := final[id]
			if got.Status != want {
				t.Fatalf("item %d: got status %d, want %d",
					id, got.Status, want)
			}
		}
	})
}
