package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type GroceryHandler struct {
	grocery *service.GroceryService
}

func NewGroceryHandler(grocery *service.GroceryService) *GroceryHandler {
	return &GroceryHandler{grocery: grocery}
}

// RegisterRoutes expects router to require authentication.
func (h *GroceryHandler) RegisterRoutes(router *gin.RouterGroup) {
	grocery := router.Group("/grocery")
	{
		grocery.GET("", h.List)
		grocery.POST("", h.Add)
		grocery.POST("/batch", h.AddBatch)
		grocery.PUT("/:id", h.Update)
		grocery.DELETE("/:id", h.Delete)
		grocery.DELETE("", h.Clear)
	}
}

func (h *GroceryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.grocery.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load grocery list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *GroceryHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.grocery.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to add grocery item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *GroceryHandler) AddBatch(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GroceryBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	items, err := h.grocery.AddBatch(c.Request.Context(), userID, req.Items)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to add grocery items")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": items})
}

func (h *GroceryHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.UpdateGroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.grocery.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to update grocery item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *GroceryHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.grocery.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to delete grocery item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func (h *GroceryHandler) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	removed, err := h.grocery.Clear(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to clear grocery list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
