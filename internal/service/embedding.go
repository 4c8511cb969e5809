package service

import (
	"context"
	"log"
	"strings"

	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/model"
	pgvector "github.com/pgvector/pgvector-go"
)

// recipeText is the text a recipe embedding is computed from.
func recipeText(r *model.Recipe) string {
	parts := []string{r.Name, r.Description, r.Category, r.Cuisine}
	parts = append(parts, r.Ingredients...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// generateEmbedding returns nil when no embedder is configured or embedding fails.
func generateEmbedding(ctx context.Context, embedder ai.Embedder, text string) *pgvector.Vector {
	if embedder == nil || text == "" {
		return nil
	}
	values, err := embedder.Embed(ctx, text)
	if err != nil {
		log.Printf("[RecipeService] embedding failed: %v", err)
		return nil
	}
	vec := pgvector.NewVector(values)
	return &vec
}
