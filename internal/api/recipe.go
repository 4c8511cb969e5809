package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes registers public reads and authenticated writes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/similar", h.SimilarRecipes)
		recipes.POST("", requireAuth, h.CreateRecipe)
		recipes.PUT("/:id", requireAuth, h.UpdateRecipe)
		recipes.DELETE("/:id", requireAuth, h.DeleteRecipe)
		recipes.POST("/:id/favorite", requireAuth, h.ToggleFavorite)
		recipes.GET("/:id/favorite", requireAuth, h.IsFavorite)
	}
	router.GET("/favorites", requireAuth, h.Favorites)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	search := types.RecipeSearch{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}
	if ex := c.Query("exclude"); ex != "" {
		search.Exclude = strings.Split(ex, ",")
	}

	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), search)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to fetch recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) SimilarRecipes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSimilarLimit)))
	if err != nil || limit < 1 || limit > maxSimilarLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxSimilarLimit)})
		return
	}

	recipes, err := h.recipes.SimilarRecipes(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to find similar recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to delete recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	favorited, err := h.recipes.ToggleFavorite(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

func (h *RecipeHandler) IsFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	favorited, err := h.recipes.IsFavorite(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to check favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

func (h *RecipeHandler) Favorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.GetFavoriteRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, "failed to fetch favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
