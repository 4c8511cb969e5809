package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// RegisterRoutes expects router to require authentication and adds the admin check.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(h.admin))
	{
		admin.GET("/stats", h.Stats)
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.GET("/recipes", h.ListRecipes)
		admin.DELETE("/recipes/:id", h.DeleteRecipe)
		admin.GET("/reviews", h.RecentReviews)
		admin.DELETE("/reviews/:id", h.DeleteReview)
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.AdminUserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.admin.UpdateUser(c.Request.Context(), actorID, id, req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), actorID, id); err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *AdminHandler) ListRecipes(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		page = n
	}

	result, err := h.admin.ListRecipes(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load recipes")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to delete recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

func (h *AdminHandler) RecentReviews(c *gin.Context) {
	reviews, err := h.admin.RecentReviews(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to load reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *AdminHandler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.admin.DeleteReview(c.Request.Context(), id); err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to delete review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
