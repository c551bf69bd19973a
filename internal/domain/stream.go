package domain

// ActivityStream is the Redis stream carrying tracking events from
// the API to the summary worker.
const ActivityStream = "activities"

// StreamMessage is one raw message read from a stream; Data holds the
// JSON payload.
type StreamMessage struct {
	ID   string
	Data string
}
