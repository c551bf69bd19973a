package dto

// ChoiceInput is one entry of a stop's full choice set. The set is
// always supplied whole: whatever the request carries replaces every
// existing choice.
type ChoiceInput struct {
	Prompt     string `json:"prompt" validate:"required,min=1,max=255"`
	NextStopID *int64 `json:"next_stop_id,omitempty"`
}

// RouteInput is one waypoint of a stop's route set. Entries carrying
// an ID refer to existing waypoints and survive a sync; entries
// without one are created, receiving the next order for their stop
// pair when Order is zero.
type RouteInput struct {
	ID         int64   `json:"id,omitempty"`
	NextStopID int64   `json:"next_stop_id" validate:"required"`
	Order      int     `json:"order,omitempty" validate:"gte=0"`
	Latitude   float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type LocationInput struct {
	Address1  *string  `json:"address1,omitempty" validate:"omitempty,max=255"`
	Address2  *string  `json:"address2,omitempty" validate:"omitempty,max=255"`
	City      *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	State     *string  `json:"state,omitempty" validate:"omitempty,max=2"`
	Zipcode   *string  `json:"zipcode,omitempty" validate:"omitempty,max=12"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type CreateStopRequest struct {
	Title        string         `json:"title" validate:"required,min=3,max=255"`
	Description  string         `json:"description" validate:"required,min=3,max=2000"`
	LocationType string         `json:"location_type" validate:"required,oneof=address map hidden"`
	Latitude     *float64       `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64       `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	PlayRadius   *float64       `json:"play_radius,omitempty" validate:"omitempty,gte=0"`
	Location     *LocationInput `json:"location,omitempty"`
	Choices      []ChoiceInput  `json:"choices,omitempty" validate:"dive"`
}

type UpdateStopRequest struct {
	Title        string         `json:"title" validate:"required,min=3,max=255"`
	Description  string         `json:"description" validate:"required,min=3,max=2000"`
	LocationType string         `json:"location_type" validate:"required,oneof=address map hidden"`
	Latitude     *float64       `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64       `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	PlayRadius   *float64       `json:"play_radius,omitempty" validate:"omitempty,gte=0"`
	Location     *LocationInput `json:"location,omitempty"`
	Choices      []ChoiceInput  `json:"choices,omitempty" validate:"dive"`

	// Routes is a pointer so that an absent field leaves the route
	// set untouched while an empty array clears it.
	Routes *[]RouteInput `json:"routes,omitempty" validate:"omitempty,dive"`
}

type ChangeOrderRequest struct {
	Order *int `json:"order" validate:"required"`
}
