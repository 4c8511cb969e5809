package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/cache"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/sanitizer"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
)

const testJWTSecret = "test-secret"

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	gen    *testhelpers.MockGenerator
	store  *testhelpers.FakeObjectStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	gen := new(testhelpers.MockGenerator)
	store := testhelpers.NewFakeObjectStore()
	queries := cache.NewMemory(time.Minute)

	llm := service.NewLLMService(gen, sanitizer.New())
	profiles := service.NewProfileService(db)
	recipes := service.NewRecipeService(db, ai.HashEmbedder{}, llm, queries)
	notifications := service.NewNotificationService(db)
	reviews := service.NewReviewService(db, notifications)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	RegisterRoutes(router, &Services{
		Auth:      service.NewAuthService(db, testJWTSecret),
		Profiles:  profiles,
		Recipes:   recipes,
		Generator: service.NewRecipeGeneratorService(db, llm, recipes),
		MealPlans: service.NewMealPlanService(db, llm, store),
		DietPlans: service.NewDietPlanService(db, llm, profiles, queries),
		Nutrition: service.NewNutritionService(db, llm),
		Grocery:   service.NewGroceryService(db),

		Reviews:       reviews,
		Notifications: notifications,
		Weights:       service.NewWeightService(db),
		Chat:          service.NewChatService(db, llm),
		Admin:         service.NewAdminService(db, profiles, reviews),
	})

	return &testAPI{
		router: router,
		db:     db,
		gen:    gen,
		store:  store,
	}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token.
func (a *testAPI) register(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test Cook",
		"email":    email,
		"password": "password123",
		"username": email,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// userID looks up the account registered with email.
func (a *testAPI) userID(t *testing.T, email string) uuid.UUID {
	t.Helper()
	var user model.User
	require.NoError(t, a.db.Where("email = ?", email).First(&user).Error)
	return user.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
