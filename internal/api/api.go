package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// Services holds everything the HTTP handlers depend on.
type Services struct {
	Auth      *service.AuthService
	Profiles  *service.ProfileService
	Recipes   *service.RecipeService
	Generator *service.RecipeGeneratorService
	MealPlans *service.MealPlanService
	DietPlans *service.DietPlanService
	Nutrition *service.NutritionService
	Grocery   *service.GroceryService

	Reviews       *service.ReviewService
	Notifications *service.NotificationService
	Weights       *service.WeightService
	Chat          *service.ChatService
	Admin         *service.AdminService

	// Limiter throttles AI generation. A limiter without Redis lets everything through.
	Limiter *middleware.RateLimiter
	// Ping reports whether the database is reachable.
	Ping func(ctx context.Context) error
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, s *Services) {
	health := NewHealthHandler(s.Ping)
	router.GET("/health", health.Check)
	router.GET("/api/health", health.Check)

	requireAuth := middleware.AuthMiddleware(s.Auth)
	limiter := s.Limiter
	if limiter == nil {
		limiter = middleware.NewAIGenerationRateLimiter(nil, 0)
	}

	v1 := router.Group("/api/v1")
	v1.GET("/health", health.Check)

	NewAuthHandler(s.Auth).RegisterRoutes(v1)
	NewRecipeHandler(s.Recipes).RegisterRoutes(v1, requireAuth)
	NewReviewHandler(s.Reviews).RegisterRoutes(v1, requireAuth, middleware.OptionalAuth(s.Auth))

	authed := v1.Group("")
	authed.Use(requireAuth)
	NewProfileHandler(s.Profiles).RegisterRoutes(authed)
	NewAIRecipeHandler(s.Generator, limiter).RegisterRoutes(authed)
	NewMealPlanHandler(s.MealPlans).RegisterRoutes(authed, limiter)
	NewDietPlanHandler(s.DietPlans).RegisterRoutes(authed, limiter)
	NewNutritionHandler(s.Nutrition).RegisterRoutes(authed, limiter)
	NewGroceryHandler(s.Grocery).RegisterRoutes(authed)
	NewNotificationHandler(s.Notifications).RegisterRoutes(authed)
	NewWeightHandler(s.Weights).RegisterRoutes(authed)
	NewChatHandler(s.Chat).RegisterRoutes(authed, limiter)
	NewAdminHandler(s.Admin).RegisterRoutes(authed)
}
