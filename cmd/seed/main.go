package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/sanitizer"
	"github.com/pageza/recipe-finder/backend/internal/seed"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func main() {
	recipes := flag.Bool("recipes", true, "generate demo recipes with the AI provider")
	pause := flag.Duration("pause", 2*time.Second, "delay between recipe batches")
	admin := flag.Bool("admin", true, "grant admin rights to the first demo user")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Seed] failed to load configuration: %v", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("[Seed] %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("[Seed] %v", err)
	}

	var generator ai.TextGenerator
	if cfg.AIProvider == "deepseek" {
		generator, err = ai.NewDeepSeekClient(cfg.DeepSeekAPIKey, cfg.DeepSeekAPIURL)
	} else {
		var gemini *ai.GeminiClient
		gemini, err = ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel)
		if err == nil {
			defer gemini.Close()
			generator = gemini
		}
	}
	if err != nil {
		log.Fatalf("[Seed] %v", err)
	}

	llm := service.NewLLMService(generator, sanitizer.New(sanitizer.WithDeepRepair()))
	recipeService := service.NewRecipeService(db, ai.HashEmbedder{}, llm, nil)
	seeder := seed.New(
		service.NewAuthService(db, cfg.JWTSecret),
		service.NewRecipeGeneratorService(db, llm, recipeService),
		*pause,
	)

	ids, err := seeder.Users(ctx, seed.DemoUsers)
	if err != nil {
		log.Fatalf("[Seed] %v", err)
	}
	log.Printf("[Seed] %d demo users ready, password %q", len(ids), seed.DemoPassword)

	if *admin && len(ids) > 0 {
		admins := service.NewAdminService(db, service.NewProfileService(db), nil)
		if err := admins.SetAdmin(ctx, ids[0], true); err != nil {
			log.Fatalf("[Seed] %v", err)
		}
		log.Printf("[Seed] %s is an admin", seed.DemoUsers[0].Email)
	}

	if !*recipes || len(ids) == 0 {
		return
	}
	saved, err := seeder.Recipes(ctx, ids[0], seed.DemoRecipes)
	if err != nil {
		log.Fatalf("[Seed] %v", err)
	}
	log.Printf("[Seed] created %d of %d demo recipes", saved, len(seed.DemoRecipes))
}
