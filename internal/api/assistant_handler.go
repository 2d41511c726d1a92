package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulsemind/fitness-coach/internal/assistant"
	"pulsemind/fitness-coach/internal/service"
)

// AssistantHandler exposes the voice-AI conversation bridge.
type AssistantHandler struct {
	bridge      *assistant.Bridge
	authService service.AuthService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(bridge *assistant.Bridge, authService service.AuthService) *AssistantHandler {
	return &AssistantHandler{
		bridge:      bridge,
		authService: authService,
	}
}

// Call upgrades the request to a websocket and relays the conversation
// to the hosted assistant.
func (h *AssistantHandler) Call(c *gin.Context) {
	subject, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	userName := ""
	if userID, err := getUserIDFromContext(c); err == nil {
		if user, err := h.authService.CurrentUser(c.Request.Context(), userID); err == nil {
			userName = user.Name
		}
	}

	h.bridge.Relay(c.Writer, c.Request, subject, userName)
}
