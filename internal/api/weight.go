package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type WeightHandler struct {
	weights *service.WeightService
}

func NewWeightHandler(weights *service.WeightService) *WeightHandler {
	return &WeightHandler{weights: weights}
}

// RegisterRoutes expects router to require authentication.
func (h *WeightHandler) RegisterRoutes(router *gin.RouterGroup) {
	weight := router.Group("/weight")
	{
		weight.GET("", h.History)
		weight.POST("", h.Log)
		weight.DELETE("/:id", h.Delete)
	}
}

func (h *WeightHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.weights.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load weight history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *WeightHandler) Log(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.WeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := h.weights.Log(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to log weight")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *WeightHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.weights.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to delete weight entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}
