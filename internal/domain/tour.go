package domain

import "time"

// Tour pricing types.
const (
	PricingTypeFree    = "free"
	PricingTypePremium = "premium"
)

// Tour types. Adventure tours keep score and only count finished
// runs on the leaderboard.
const (
	TourTypeOutdoor   = "outdoor"
	TourTypeIndoor    = "indoor"
	TourTypeAdventure = "adventure"
)

var PricingTypes = []string{PricingTypeFree, PricingTypePremium}

var TourTypes = []string{TourTypeOutdoor, TourTypeIndoor, TourTypeAdventure}

// Tour is a guided sequence of stops authored by a client or admin.
type Tour struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"user_id" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	PricingType  string     `json:"pricing_type" db:"pricing_type"`
	Type         string     `json:"type" db:"type"`
	Rating       int        `json:"rating" db:"rating"`
	PublishedAt  *time.Time `json:"published_at,omitempty" db:"published_at"`
	StartPointID *int64     `json:"start_point_id,omitempty" db:"start_point_id"`
	EndPointID   *int64     `json:"end_point_id,omitempty" db:"end_point_id"`

	VideoURL      *string `json:"video_url,omitempty" db:"video_url"`
	StartVideoURL *string `json:"start_video_url,omitempty" db:"start_video_url"`
	EndVideoURL   *string `json:"end_video_url,omitempty" db:"end_video_url"`
	StartMessage  *string `json:"start_message,omitempty" db:"start_message"`
	EndMessage    *string `json:"end_message,omitempty" db:"end_message"`

	HasPrize          bool    `json:"has_prize" db:"has_prize"`
	PrizeDetails      *string `json:"prize_details,omitempty" db:"prize_details"`
	PrizeInstructions *string `json:"prize_instructions,omitempty" db:"prize_instructions"`

	FacebookURL  *string `json:"facebook_url,omitempty" db:"facebook_url"`
	TwitterURL   *string `json:"twitter_url,omitempty" db:"twitter_url"`
	InstagramURL *string `json:"instagram_url,omitempty" db:"instagram_url"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	Stops []TourStop `json:"stops,omitempty" db:"-"`
}

// IsPublished reports whether the tour is visible to mobile users.
func (t *Tour) IsPublished() bool {
	return t.PublishedAt != nil
}

func ValidPricingType(s string) bool {
	for _, p := range PricingTypes {
		if p == s {
			return true
		}
	}
	return false
}

func ValidTourType(s string) bool {
	for _, t := range TourTypes {
		if t == s {
			return true
		}
	}
	return false
}
