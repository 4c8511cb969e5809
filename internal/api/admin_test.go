package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
)

func TestAdminHandler_RequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "cook@example.com")

	w := api.do(t, http.MethodGet, "/api/v1/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = api.do(t, http.MethodGet, "/api/v1/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// rights are checked per request, so an existing token gains access
	admins := service.NewAdminService(api.db, nil, nil)
	require.NoError(t, admins.SetAdmin(context.Background(), api.userID(t, "cook@example.com"), true))
	w = api.do(t, http.MethodGet, "/api/v1/admin/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminHandler(t *testing.T) {
	api := newTestAPI(t)
	boss := api.register(t, "boss@example.com")
	api.register(t, "cook@example.com")
	bossID := api.userID(t, "boss@example.com")
	cookID := api.userID(t, "cook@example.com")
	require.NoError(t, service.NewAdminService(api.db, nil, nil).SetAdmin(context.Background(), bossID, true))

	soup := testhelpers.CreateRecipe(t, api.db, cookID, "Soup", "water")
	review := &model.RecipeReview{UserID: bossID, RecipeID: soup.ID, Rating: 2}
	require.NoError(t, api.db.Create(review).Error)

	var stats service.AdminStats
	w := api.do(t, http.MethodGet, "/api/v1/admin/stats", boss, nil)
	decode(t, w, &stats)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Recipes)
	assert.Equal(t, int64(1), stats.Reviews)

	var users struct {
		Users []model.User `json:"users"`
	}
	w = api.do(t, http.MethodGet, "/api/v1/admin/users", boss, nil)
	decode(t, w, &users)
	assert.Len(t, users.Users, 2)
	assert.NotContains(t, w.Body.String(), "password")

	w = api.do(t, http.MethodPut, "/api/v1/admin/users/"+bossID.String(), boss, gin.H{"is_admin": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.do(t, http.MethodPut, "/api/v1/admin/users/"+cookID.String(), boss, gin.H{"name": "Line Cook"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Line Cook")

	var page service.RecipePage
	w = api.do(t, http.MethodGet, "/api/v1/admin/recipes?page=1", boss, nil)
	decode(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
	w = api.do(t, http.MethodGet, "/api/v1/admin/recipes?page=two", boss, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reviews struct {
		Reviews []service.ReviewView `json:"reviews"`
	}
	w = api.do(t, http.MethodGet, "/api/v1/admin/reviews", boss, nil)
	decode(t, w, &reviews)
	require.Len(t, reviews.Reviews, 1)
	assert.Equal(t, "Soup", reviews.Reviews[0].RecipeName)

	w = api.do(t, http.MethodDelete, "/api/v1/admin/reviews/"+review.ID.String(), boss, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(t, http.MethodDelete, "/api/v1/admin/recipes/"+soup.ID.String(), boss, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(t, http.MethodDelete, "/api/v1/admin/users/"+bossID.String(), boss, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.do(t, http.MethodDelete, "/api/v1/admin/users/"+cookID.String(), boss, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/admin/users", boss, nil)
	users.Users = nil
	decode(t, w, &users)
	assert.Len(t, users.Users, 1)
}
