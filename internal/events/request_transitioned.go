package events

import "time"

const RequestTransitionedTopic = "campus.request.approval.v1"

// RequestTransitionedEvent mirrors one approval audit entry for
// downstream consumers (reporting, notification collaborators).
type RequestTransitionedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	RequestType string    `json:"request_type"`
	ActorID     string    `json:"actor_id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
