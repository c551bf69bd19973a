package dto

// ReviewRequest submits or replaces the caller's review of a tour.
// Ratings run 0-50.
type ReviewRequest struct {
	Rating *int    `json:"rating" validate:"required,gte=0,lte=50"`
	Review *string `json:"review,omitempty" validate:"omitempty,max=2000"`
}
