package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// RegisterRoutes expects router to require authentication. Questions count
// against the AI generation limit.
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	chat := router.Group("/chat")
	{
		chat.POST("", limiter.Middleware(), h.Ask)
		chat.GET("/history", h.History)
		chat.DELETE("/history", h.ClearHistory)
	}
}

func (h *ChatHandler) Ask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.chat.Ask(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to answer message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": msg.ID, "response": msg.Response})
}

func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	messages, err := h.chat.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load chat history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) ClearHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	removed, err := h.chat.ClearHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to clear chat history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
