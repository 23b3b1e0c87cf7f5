// Package chathandler exposes the conversational endpoint.
package chathandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ursa-server/spatial-api/internal/domain/chat"
	"ursa-server/spatial-api/internal/infrastructure/logger"
	"ursa-server/spatial-api/internal/interfaces/httpserver/requests"
	"ursa-server/spatial-api/internal/interfaces/httpserver/responses"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// ChatHandler handles chat HTTP requests.
type ChatHandler struct {
	orchestrator *chat.Orchestrator
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(orchestrator *chat.Orchestrator) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator}
}

// Chat runs one conversational turn: the user message and current map view
// go to the model, requested tools are executed, and the final assistant
// text plus surfaced actions come back.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "message and map_state are required")
		return
	}

	result, err := h.orchestrator.Chat(c.Request.Context(), req.Message, &req.MapState, req.ConversationID)
	if err != nil {
		platformerrors.WriteError(c, err, logger.GetLogger())
		return
	}

	c.JSON(http.StatusOK, responses.NewChatResponse(result))
}
