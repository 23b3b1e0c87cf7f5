// Package requests holds request bodies bound by the HTTP handlers.
package requests

import "ursa-server/spatial-api/internal/domain/chat"

// CreatePinRequest is the body of POST /api/pins.
type CreatePinRequest struct {
	Title string   `json:"title" binding:"required"`
	Notes *string  `json:"notes"`
	Lat   *float64 `json:"lat" binding:"required"`
	Lon   *float64 `json:"lon" binding:"required"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message        string        `json:"message" binding:"required"`
	MapState       chat.MapState `json:"map_state" binding:"required"`
	ConversationID string        `json:"conversation_id"`
}
