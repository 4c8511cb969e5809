package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// AIRecipeHandler serves AI generated recipes and their history.
type AIRecipeHandler struct {
	generator *service.RecipeGeneratorService
	limiter   *middleware.RateLimiter
}

func NewAIRecipeHandler(generator *service.RecipeGeneratorService, limiter *middleware.RateLimiter) *AIRecipeHandler {
	return &AIRecipeHandler{
		generator: generator,
		limiter:   limiter,
	}
}

// RegisterRoutes expects router to require authentication.
func (h *AIRecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai/recipes")
	{
		ai.POST("", h.limiter.Middleware(), h.Generate)
		ai.GET("", h.History)
		ai.GET("/:id", h.Get)
		ai.POST("/:id/save", h.Save)
		ai.POST("/:id/speech", h.Speech)
	}
	router.GET("/rate-limits/ai-generation", h.RateLimit)
}

func (h *AIRecipeHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.generator.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, http.StatusBadGateway, "failed to generate recipe")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AIRecipeHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	history, err := h.generator.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load recipe history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": history})
}

func (h *AIRecipeHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.generator.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load generated recipe")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AIRecipeHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.generator.Save(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to save recipe")
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *AIRecipeHandler) Speech(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	text, err := h.generator.Speech(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to build speech text")
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

// RateLimit reports the user's remaining AI generations in the current window.
func (h *AIRecipeHandler) RateLimit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	remaining, resetTime, err := h.limiter.Remaining(c.Request.Context(), userID.String())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to check rate limit")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"limit":      h.limiter.Limit(),
		"remaining":  remaining,
		"reset_time": resetTime.Unix(),
		"window":     h.limiter.Window().String(),
	})
}
