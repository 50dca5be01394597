package parcel

import (
	"time"

	"donedelivery/internal/core/domain/model/kernel"
)

// HistoryEntry is one record in a parcel's append-only audit trail: the
// status that was entered, when, an optional free-form note, and the actor
// who performed the transition. Entries are never truncated or reordered,
// and successive entries are monotone in the canonical status order.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	note      string
	updatedBy kernel.UUID
	role      Role
}

// NewHistoryEntry creates an audit record for a status transition.
func NewHistoryEntry(status Status, timestamp time.Time, note string, updatedBy Actor) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := updatedBy.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		status:    status,
		timestamp: timestamp,
		note:      note,
		updatedBy: updatedBy.ID(),
		role:      updatedBy.Role(),
	}, nil
}

// RestoreHistoryEntry reconstructs an audit record from persistence.
func RestoreHistoryEntry(
	status Status, timestamp time.Time, note string, updatedBy kernel.UUID, role Role,
) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := updatedBy.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := role.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		status:    status,
		timestamp: timestamp,
		note:      note,
		updatedBy: updatedBy,
		role:      role,
	}, nil
}

// Status returns the status entered by this transition.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Timestamp returns when the transition happened.
func (h HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}

// Note returns the optional free-form note attached to the transition.
func (h HistoryEntry) Note() string {
	return h.note
}

// UpdatedBy returns the identity of the actor who performed the transition.
func (h HistoryEntry) UpdatedBy() kernel.UUID {
	return h.updatedBy
}

// UpdatedByRole returns the role of the actor who performed the transition.
func (h HistoryEntry) UpdatedByRole() Role {
	return h.role
}
