package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type DietPlanHandler struct {
	plans *service.DietPlanService
}

func NewDietPlanHandler(plans *service.DietPlanService) *DietPlanHandler {
	return &DietPlanHandler{plans: plans}
}

// RegisterRoutes expects router to require authentication.
func (h *DietPlanHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	plans := router.Group("/diet-plans")
	{
		plans.POST("/generate", limiter.Middleware(), h.Generate)
		plans.POST("", h.Save)
		plans.GET("", h.List)
		plans.POST("/track", h.Track)
	}
}

func (h *DietPlanHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GenerateDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := h.plans.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, http.StatusBadGateway, "failed to generate diet plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *DietPlanHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.SaveDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := h.plans.Save(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to save diet plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *DietPlanHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plans, err := h.plans.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load diet plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *DietPlanHandler) Track(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.TrackMealsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	applied, err := h.plans.Track(c.Request.Context(), userID, req.Updates)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to track meals")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": applied})
}
