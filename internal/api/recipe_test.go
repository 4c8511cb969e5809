package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/internal/model"
)

func soupRequest() gin.H {
	return gin.H{
		"name":         "Tomato Soup",
		"description":  "Warm and simple",
		"category":     "Dinner",
		"ingredients":  []string{"tomatoes", "basil"},
		"instructions": []string{"Simmer", "Blend"},
		"calories":     180,
	}
}

func TestRecipeHandler_CRUD(t *testing.T) {
	api := newTestAPI(t)
	owner := api.register(t, "owner@example.com")
	other := api.register(t, "other@example.com")

	w := api.do(t, http.MethodPost, "/api/v1/recipes", "", soupRequest())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/recipes", owner, gin.H{"name": "No ingredients"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/recipes", owner, soupRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var recipe model.Recipe
	decode(t, w, &recipe)
	assert.Equal(t, 180.0, recipe.Calories)

	w = api.do(t, http.MethodGet, "/api/v1/recipes/"+recipe.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "embedding")

	w = api.do(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = api.do(t, http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	update := soupRequest()
	update["name"] = "Roasted Tomato Soup"
	w = api.do(t, http.MethodPut, "/api/v1/recipes/"+recipe.ID.String(), other, update)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.do(t, http.MethodPut, "/api/v1/recipes/"+recipe.ID.String(), owner, update)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/recipes?q=roasted", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	decode(t, w, &list)
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, "Roasted Tomato Soup", list.Recipes[0].Name)

	w = api.do(t, http.MethodGet, "/api/v1/recipes?exclude=basil,garlic", "", nil)
	decode(t, w, &list)
	assert.Empty(t, list.Recipes)

	w = api.do(t, http.MethodGet, "/api/v1/recipes/"+recipe.ID.String()+"/similar", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(t, http.MethodGet, "/api/v1/recipes/"+recipe.ID.String()+"/similar?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodDelete, "/api/v1/recipes/"+recipe.ID.String(), owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(t, http.MethodGet, "/api/v1/recipes/"+recipe.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeHandler_Favorites(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "cook@example.com")

	w := api.do(t, http.MethodPost, "/api/v1/recipes", token, soupRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	var recipe model.Recipe
	decode(t, w, &recipe)
	favoritePath := "/api/v1/recipes/" + recipe.ID.String() + "/favorite"

	w = api.do(t, http.MethodPost, favoritePath, token, nil)
	assert.JSONEq(t, `{"favorited": true}`, w.Body.String())
	w = api.do(t, http.MethodGet, favoritePath, token, nil)
	assert.JSONEq(t, `{"favorited": true}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/v1/favorites", token, nil)
	var list struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	decode(t, w, &list)
	require.Len(t, list.Recipes, 1)

	w = api.do(t, http.MethodPost, favoritePath, token, nil)
	assert.JSONEq(t, `{"favorited": false}`, w.Body.String())
	w = api.do(t, http.MethodGet, "/api/v1/favorites", token, nil)
	decode(t, w, &list)
	assert.Empty(t, list.Recipes)

	w = api.do(t, http.MethodPost, "/api/v1/recipes/"+uuid.NewString()+"/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeHandler_EstimatesMissingMacros(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "cook@example.com")
	api.gen.Reply("```json\n{\"calories\": 320, \"protein\": 12, \"carbs\": 40, \"fat\": 9,}\n```")

	req := soupRequest()
	delete(req, "calories")
	w := api.do(t, http.MethodPost, "/api/v1/recipes", token, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var recipe model.Recipe
	decode(t, w, &recipe)
	assert.Equal(t, 320.0, recipe.Calories)
	assert.Equal(t, 9.0, recipe.Fat)
}
