package entities

import "time"

// ProfileEventType names a profile lifecycle change.
type ProfileEventType string

const (
	ProfileCreated ProfileEventType = "profile.created"
	ProfileUpdated ProfileEventType = "profile.updated"
	ProfileDeleted ProfileEventType = "profile.deleted"
)

// ProfileEvent is published after a profile write commits.
type ProfileEvent struct {
	Type       ProfileEventType `json:"type"`
	ProfileIDs []uint           `json:"profile_ids"`
	Email      string           `json:"email,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
