package domain

import "time"

// Activity actions.
const (
	ActionStart = "start"
	ActionStop  = "stop"
)

// Actionable types discriminate what an activity row points at.
const (
	ActionableTypeStop = "stop"
	ActionableTypeTour = "tour"
)

// Activity is a raw timestamped tracking event emitted by a visitor's
// device. Rows are append-only; the reporting side only ever reads
// them ordered by device then timestamp.
type Activity struct {
	ID             int64     `json:"id" db:"id"`
	ActionableType string    `json:"actionable_type" db:"actionable_type"`
	ActionableID   int64     `json:"actionable_id" db:"actionable_id"`
	DeviceID       string    `json:"device_id" db:"device_id"`
	Action         string    `json:"action" db:"action"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// StopStatSum is the date-ranged aggregate a report consumes.
type StopStatSum struct {
	StopID    int64 `json:"stop_id" db:"stop_id"`
	TimeSpent int64 `json:"time_spent" db:"time_spent"`
	Actions   int64 `json:"actions" db:"actions"`
}
