package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type NutritionHandler struct {
	nutrition *service.NutritionService
}

func NewNutritionHandler(nutrition *service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutrition: nutrition}
}

// RegisterRoutes expects router to require authentication.
func (h *NutritionHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	nutrition := router.Group("/nutrition")
	{
		nutrition.POST("/analyze", limiter.Middleware(), h.Analyze)
		nutrition.POST("/analyses", h.SaveAnalysis)
		nutrition.GET("/analyses", h.ListAnalyses)
		nutrition.GET("/analyses/:id", h.GetAnalysis)
		nutrition.DELETE("/analyses/:id", h.DeleteAnalysis)
	}
}

func (h *NutritionHandler) Analyze(c *gin.Context) {
	var req types.AnalyzeNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	summary, err := h.nutrition.Analyze(c.Request.Context(), req.Ingredients)
	if err != nil {
		respondError(c, err, http.StatusBadGateway, "failed to analyze nutrition")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *NutritionHandler) SaveAnalysis(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.SaveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	analysis, err := h.nutrition.SaveAnalysis(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to save analysis")
		return
	}

	c.JSON(http.StatusCreated, analysis)
}

func (h *NutritionHandler) ListAnalyses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	analyses, err := h.nutrition.ListAnalyses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load analyses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

func (h *NutritionHandler) GetAnalysis(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	analysis, err := h.nutrition.GetAnalysis(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load analysis")
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *NutritionHandler) DeleteAnalysis(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.nutrition.DeleteAnalysis(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to delete analysis")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "analysis deleted"})
}
