package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type MealPlanHandler struct {
	plans *service.MealPlanService
}

func NewMealPlanHandler(plans *service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{plans: plans}
}

// RegisterRoutes expects router to require authentication.
func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	plans := router.Group("/meal-plans")
	{
		plans.POST("/generate", limiter.Middleware(), h.Generate)
		plans.POST("", h.Save)
		plans.GET("", h.List)
		plans.GET("/:id", h.Get)
		plans.DELETE("/:id", h.Delete)
		plans.POST("/:id/export", h.Export)
	}
}

func (h *MealPlanHandler) Generate(c *gin.Context) {
	var req types.GenerateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := h.plans.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, http.StatusBadGateway, "failed to generate meal plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.SaveMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := h.plans.Save(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to save meal plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *MealPlanHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plans, err := h.plans.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load meal plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *MealPlanHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	plan, err := h.plans.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load meal plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.plans.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to delete meal plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal plan deleted"})
}

func (h *MealPlanHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	url, err := h.plans.Export(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to export meal plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
