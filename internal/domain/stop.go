package domain

import "time"

// Stop location types.
const (
	LocationTypeAddress = "address"
	LocationTypeMap     = "map"
	LocationTypeHidden  = "hidden"
)

var LocationTypes = []string{LocationTypeAddress, LocationTypeMap, LocationTypeHidden}

// TourStop is one ordered waypoint within a tour.
//
// Order values are per-tour and 1-based. New stops always receive
// max(existing order)+1; archiving a stop never renumbers the rest.
type TourStop struct {
	ID           int64    `json:"id" db:"id"`
	TourID       int64    `json:"tour_id" db:"tour_id"`
	Title        string   `json:"title" db:"title"`
	Description  string   `json:"description" db:"description"`
	LocationType string   `json:"location_type" db:"location_type"`
	Order        int      `json:"order" db:"order"`
	Latitude     *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64 `json:"longitude,omitempty" db:"longitude"`

	PlayRadius *float64 `json:"play_radius,omitempty" db:"play_radius"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	Choices []StopChoice `json:"choices,omitempty" db:"-"`
	Routes  []StopRoute  `json:"routes,omitempty" db:"-"`
}

// StopChoice is a labeled branch from a stop: "if the visitor picks
// this, go to next_stop_id." A nil NextStopID means the choice leads
// nowhere.
type StopChoice struct {
	ID         int64  `json:"id" db:"id"`
	StopID     int64  `json:"stop_id" db:"stop_id"`
	Prompt     string `json:"prompt" db:"prompt"`
	NextStopID *int64 `json:"next_stop_id,omitempty" db:"next_stop_id"`
	Order      int    `json:"order" db:"order"`
}

// StopRoute is a waypoint on an alternative path between two stops.
// Order disambiguates multiple waypoints for the same stop pair; it
// is not a global ranking.
type StopRoute struct {
	ID         int64   `json:"id" db:"id"`
	StopID     int64   `json:"stop_id" db:"stop_id"`
	NextStopID int64   `json:"next_stop_id" db:"next_stop_id"`
	Order      int     `json:"order" db:"order"`
	Latitude   float64 `json:"latitude" db:"latitude"`
	Longitude  float64 `json:"longitude" db:"longitude"`
}

// StopLocation is the optional address record attached to a stop.
type StopLocation struct {
	Address1  *string  `json:"address1,omitempty" db:"address1"`
	Address2  *string  `json:"address2,omitempty" db:"address2"`
	City      *string  `json:"city,omitempty" db:"city"`
	State     *string  `json:"state,omitempty" db:"state"`
	Zipcode   *string  `json:"zipcode,omitempty" db:"zipcode"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
}
