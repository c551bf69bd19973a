package domain

import "time"

// Review is a mobile user's rating of a tour. One review per
// (tour, user); resubmitting replaces the previous one. Ratings run
// 0-50 and the tour's aggregate rating is their rounded average.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	TourID    int64     `json:"tour_id" db:"tour_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Review    *string   `json:"review,omitempty" db:"review"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
