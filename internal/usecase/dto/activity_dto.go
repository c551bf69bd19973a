package dto

import "time"

// TrackRequest records one start/stop tracking event from a device.
// Timestamp is optional; the server clock is used when absent.
type TrackRequest struct {
	DeviceID  string     `json:"device_id" validate:"required,max=255"`
	Action    string     `json:"action" validate:"required,oneof=start stop"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}
