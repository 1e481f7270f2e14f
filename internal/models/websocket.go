package models

// WebSocket event types pushed to dashboard clients
const (
	EventStateChanged = "state.changed"
	EventToastAdded   = "toast.added"
	EventToastRemoved = "toast.removed"
	EventError        = "error"
)

type WSEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type WSErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
