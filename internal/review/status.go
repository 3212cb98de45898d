package review

import "fmt"

// Status is the lifecycle state of a reviewable. The zero value is Pending,
// the only state a reviewable is ever created in. The integer values are
// part of the storage and wire formats and must not be reordered.
type Status int64

const (
	// StatusPending indicates the item is awaiting review.
	StatusPending Status = 0

	// StatusApproved indicates a reviewer approved the item.
	StatusApproved Status = 1

	// StatusRejected indicates a reviewer rejected the item.
	StatusRejected Status = 2

	// StatusIgnored indicates a reviewer dismissed the item without
	// acting on the underlying subject.
	StatusIgnored Status = 3

	// StatusDeleted indicates the underlying subject was removed out of
	// band.
	StatusDeleted Status = 4
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusIgnored:
		return "ignored"
	case StatusDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("unknown(%d)", int64(s))
	}
}

// ParseStatus maps a wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	case "ignored":
		return StatusIgnored, nil
	case "deleted":
		return StatusDeleted, nil
	default:
		return 0, fmt.Errorf("unknown reviewable status %q", s)
	}
}

// Valid reports whether the status is one of the five known values.
func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusDeleted
}

// Pending reports whether the status is StatusPending.
func (s Status) Pending() bool { return s == StatusPending }

// Approved reports whether the status is StatusApproved.
func (s Status) Approved() bool { return s == StatusApproved }

// Rejected reports whether the status is StatusRejected.
func (s Status) Rejected() bool { return s == StatusRejected }

// Ignored reports whether the status is StatusIgnored.
func (s Status) Ignored() bool { return s == StatusIgnored }

// Deleted reports whether the status is StatusDeleted.
func (s Status) Deleted() bool { return s == StatusDeleted }
