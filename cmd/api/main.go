package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/api"
	"github.com/pageza/recipe-finder/backend/internal/cache"
	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/sanitizer"
	"github.com/pageza/recipe-finder/backend/internal/server"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("[Main] %v", err)
	}
	log.Println("[Main] server stopped")
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	// Redis is optional: without it caches live in memory and AI rate limiting is off.
	var redisClient *redis.Client
	if client, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("[Main] Redis unavailable, using in-memory caches: %v", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}
	aiCache, queryCache := newCaches(ctx, cfg, redisClient)

	generator, closeGenerator, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeGenerator()

	embedder, closeEmbedder := newEmbedder(ctx, cfg)
	defer closeEmbedder()

	var opts []sanitizer.Option
	if cfg.AIDeepJSONRepair {
		opts = append(opts, sanitizer.WithDeepRepair())
	}
	llm := service.NewLLMService(ai.NewCachingGenerator(generator, aiCache), sanitizer.New(opts...))

	var storage service.ObjectStore
	if cfg.S3BucketName != "" {
		s3, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		storage = s3
	}

	profiles := service.NewProfileService(db)
	recipes := service.NewRecipeService(db, embedder, llm, queryCache)
	notifications := service.NewNotificationService(db)
	reviews := service.NewReviewService(db, notifications)
	services := &api.Services{
		Auth:      service.NewAuthService(db, cfg.JWTSecret),
		Profiles:  profiles,
		Recipes:   recipes,
		Generator: service.NewRecipeGeneratorService(db, llm, recipes),
		MealPlans: service.NewMealPlanService(db, llm, storage),
		DietPlans: service.NewDietPlanService(db, llm, profiles, queryCache),
		Nutrition: service.NewNutritionService(db, llm),
		Grocery:   service.NewGroceryService(db),

		Reviews:       reviews,
		Notifications: notifications,
		Weights:       service.NewWeightService(db),
		Chat:          service.NewChatService(db, llm),
		Admin:         service.NewAdminService(db, profiles, reviews),

		Limiter: middleware.NewAIGenerationRateLimiter(redisClient, cfg.AIGenerationLimit),
		Ping:    database.Pinger(db),
	}

	return server.New(cfg, services).Start(ctx)
}

// newCaches picks Redis when available. In-memory caches get a janitor that
// purges expired entries once per TTL until ctx is done.
func newCaches(ctx context.Context, cfg *config.Config, client *redis.Client) (aiCache, queryCache cache.Cache) {
	if client == nil {
		aiMem, queryMem := cache.NewMemory(cfg.AICacheTTL), cache.NewMemory(cfg.QueryCacheTTL)
		go aiMem.Janitor(ctx, cfg.AICacheTTL)
		go queryMem.Janitor(ctx, cfg.QueryCacheTTL)
		return aiMem, queryMem
	}
	return cache.NewRedis(client, "ai_response", cfg.AICacheTTL), cache.NewRedis(client, "query", cfg.QueryCacheTTL)
}

func newGenerator(ctx context.Context, cfg *config.Config) (ai.TextGenerator, func(), error) {
	if cfg.AIProvider == "deepseek" {
		client, err := ai.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.DeepSeekAPIURL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[Main] using DeepSeek for text generation")
		return client, func() {}, nil
	}

	client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[Main] using Gemini for text generation")
	return client, client.Close, nil
}

func newEmbedder(ctx context.Context, cfg *config.Config) (ai.Embedder, func()) {
	if cfg.GeminiAPIKey != "" {
		embedder, err := ai.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.GeminiEmbeddingModel)
		if err == nil {
			return embedder, embedder.Close
		}
		log.Printf("[Main] Gemini embeddings unavailable, falling back to hashed embeddings: %v", err)
	}
	return ai.HashEmbedder{}, func() {}
}
