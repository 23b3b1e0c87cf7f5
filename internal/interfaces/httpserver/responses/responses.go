// Package responses holds response bodies rendered by the HTTP handlers.
package responses

import (
	"time"

	"ursa-server/spatial-api/internal/domain/chat"
	"ursa-server/spatial-api/internal/domain/pin"
)

// PinResponse is the wire shape of a stored pin.
type PinResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Notes     *string `json:"notes"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	CreatedAt string  `json:"created_at"`
}

// NewPinResponse maps a domain pin onto its wire shape.
func NewPinResponse(p *pin.Pin) PinResponse {
	return PinResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Notes:     p.Notes,
		Lat:       p.Lat,
		Lon:       p.Lon,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewPinListResponse maps a slice of domain pins.
func NewPinListResponse(pins []*pin.Pin) []PinResponse {
	out := make([]PinResponse, 0, len(pins))
	for _, p := range pins {
		out = append(out, NewPinResponse(p))
	}
	return out
}

// ChatResponse is the body of POST /api/chat.
type ChatResponse struct {
	AssistantText  string        `json:"assistant_text"`
	Actions        []chat.Action `json:"actions"`
	ConversationID string        `json:"conversation_id"`
}

// NewChatResponse maps an orchestrator result onto its wire shape.
func NewChatResponse(result *chat.Result) ChatResponse {
	actions := result.Actions
	if actions == nil {
		actions = []chat.Action{}
	}
	return ChatResponse{
		AssistantText:  result.AssistantText,
		Actions:        actions,
		ConversationID: result.ConversationID,
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
