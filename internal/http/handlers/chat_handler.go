// README: Chatbot message endpoint.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hanco/internal/http/middleware"
	"hanco/internal/modules/chat"
)

type ChatHandler struct {
	chat *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{chat: svc}
}

type chatMessageReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Message handles POST /api/v1/chat/message. The session id is client-chosen;
// sessions expire server-side after idle timeout.
func (h *ChatHandler) Message(c *gin.Context) {
	var req chatMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)
	if !isValidID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	if len(req.Message) > 2000 {
		writeError(c, http.StatusBadRequest, "message too long")
		return
	}

	// The LLM call inside can be slow; bound the whole exchange.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	resp, err := h.chat.HandleMessage(ctx, req.SessionID, middleware.CallerUID(c), req.Message)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
