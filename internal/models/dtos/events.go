package dtos

import "ground-experiment/groundlink/internal/models/entities"

// Event Types
// Frame names pushed over the WebSocket channel; clients filter by type.

const (
	EventNewRequest           = "new_request"
	EventRequestClaimed       = "request_claimed"
	EventRequestStatusUpdated = "request_status_updated"
	EventNewMessage           = "new_message"
)

// Event is the JSON frame broadcast to every connected subscriber
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// NewMessagePayload is the data body of a new_message event
type NewMessagePayload struct {
	RequestID string                `json:"requestId"`
	Message   *entities.ChatMessage `json:"message"`
}
