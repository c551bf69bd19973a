package dto

// ScoreRequest records the caller's run through a tour. Score cards
// are keyed by device, so DeviceID must be a UUID.
type ScoreRequest struct {
	DeviceID string `json:"device_id" validate:"required,uuid"`
	Points   *int   `json:"points" validate:"required,gte=0"`
	Finished bool   `json:"finished"`
}
