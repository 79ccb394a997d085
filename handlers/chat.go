package handlers

import (
	"net/http"

	"dairyfront/middleware"
	"dairyfront/services/chat"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	Chat chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Chat: svc}
}

func (h *ChatHandler) HistoryHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{"messages": h.Chat.History(sess)})
}

func (h *ChatHandler) SendHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	sess := middleware.GetSession(c)
	messages, err := h.Chat.Send(c.Request.Context(), sess, req.Text)
	if err != nil {
		if messages != nil {
			// Reply lost, message kept.
			getLogger(c).Warn("Chat reply failed", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"messages": messages})
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
