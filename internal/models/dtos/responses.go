package dtos

import "time"

type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
	Code      string    `json:"code,omitempty"`
	Data      *T        `json:"data,omitempty"`
}

// ServiceTypeCatalogResponse exposes the canonical service catalog with its
// revision so clients can cache it
type ServiceTypeCatalogResponse struct {
	Version      string   `json:"version"`
	ServiceTypes []string `json:"serviceTypes"`
}

// SessionResponse is the result of exchanging an identity assertion
type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
