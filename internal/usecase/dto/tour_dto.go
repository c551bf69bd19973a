package dto

type CreateTourRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,min=3,max=16000"`
	PricingType string `json:"pricing_type" validate:"required,oneof=free premium"`
	Type        string `json:"type" validate:"required,oneof=outdoor indoor adventure"`
}

type UpdateTourRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,min=3,max=16000"`
	PricingType string `json:"pricing_type" validate:"required,oneof=free premium"`
	Type        string `json:"type" validate:"required,oneof=outdoor indoor adventure"`

	StartPointID *int64 `json:"start_point_id,omitempty"`
	EndPointID   *int64 `json:"end_point_id,omitempty"`

	VideoURL      *string `json:"video_url,omitempty" validate:"omitempty,url"`
	StartVideoURL *string `json:"start_video_url,omitempty" validate:"omitempty,url"`
	EndVideoURL   *string `json:"end_video_url,omitempty" validate:"omitempty,url"`
	StartMessage  *string `json:"start_message,omitempty" validate:"omitempty,max=1000"`
	EndMessage    *string `json:"end_message,omitempty" validate:"omitempty,max=1000"`

	HasPrize          bool    `json:"has_prize"`
	PrizeDetails      *string `json:"prize_details,omitempty" validate:"omitempty,max=1000"`
	PrizeInstructions *string `json:"prize_instructions,omitempty" validate:"omitempty,max=1000"`

	FacebookURL  *string `json:"facebook_url,omitempty" validate:"omitempty,contains=facebook.com/"`
	TwitterURL   *string `json:"twitter_url,omitempty" validate:"omitempty,contains=twitter.com/"`
	InstagramURL *string `json:"instagram_url,omitempty" validate:"omitempty,contains=instagram.com/"`
}
