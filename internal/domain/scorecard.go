package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScoreCard tracks one user's run through a tour. Adventure tours
// only appear on the leaderboard once finished; regular tours always
// count.
type ScoreCard struct {
	ID         int64      `json:"id" db:"id"`
	TourID     int64      `json:"tour_id" db:"tour_id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	DeviceID   uuid.UUID  `json:"device_id" db:"device_id"`
	Points     int        `json:"points" db:"points"`
	FinishedAt *time.Time `json:"finished_at,omitempty" db:"finished_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// LeaderboardEntry is one ranked row of a tour's leaderboard.
type LeaderboardEntry struct {
	UserID   int64  `json:"user_id" db:"user_id"`
	UserName string `json:"user_name" db:"user_name"`
	Points   int    `json:"points" db:"points"`
}
