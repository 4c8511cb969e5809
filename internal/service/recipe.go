package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/cache"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const searchLimit = 50

// MacroEstimator fills in missing nutrition values.
type MacroEstimator interface {
	EstimateMacros(ctx context.Context, ingredients []string) (*model.Macros, error)
}

// RecipeService handles recipe operations
type RecipeService struct {
	db       *gorm.DB
	embedder ai.Embedder
	macros   MacroEstimator
	cache    cache.Cache
}

// NewRecipeService creates a new RecipeService instance. embedder, macros and c may be nil.
func NewRecipeService(db *gorm.DB, embedder ai.Embedder, macros MacroEstimator, c cache.Cache) *RecipeService {
	return &RecipeService{
		db:       db,
		embedder: embedder,
		macros:   macros,
		cache:    c,
	}
}

func favoritesKey(userID uuid.UUID) string {
	return "favorites:" + userID.String()
}

// CreateRecipe stores a recipe owned by userID.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*model.Recipe, error) {
	recipe := &model.Recipe{UserID: userID}
	applyRecipeRequest(recipe, req)
	return s.create(ctx, recipe)
}

func (s *RecipeService) create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	s.fillMacros(ctx, recipe)
	recipe.Embedding = generateEmbedding(ctx, s.embedder, recipeText(recipe))
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// UpdateRecipe replaces the recipe fields. Only the owner may update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.CreateRecipeRequest) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrForbidden
	}

	applyRecipeRequest(recipe, req)
	s.fillMacros(ctx, recipe)
	recipe.Embedding = generateEmbedding(ctx, s.embedder, recipeText(recipe))
	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// DeleteRecipe deletes a recipe. Only the owner may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// SearchRecipes filters by category and excluded ingredients. A query orders by
// vector distance on Postgres and matches name or description elsewhere.
func (s *RecipeService) SearchRecipes(ctx context.Context, search types.RecipeSearch) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{})

	if search.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(search.Category))
	}
	for _, ex := range search.Exclude {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}
		query = query.Where("LOWER(CAST(ingredients AS TEXT)) NOT LIKE ?", "%"+strings.ToLower(ex)+"%")
	}

	q := strings.TrimSpace(search.Query)
	switch {
	case q != "" && s.vectorSearch():
		vec := generateEmbedding(ctx, s.embedder, q)
		if vec == nil {
			query = likeSearch(query, q)
			break
		}
		query = query.Where("embedding IS NOT NULL").Clauses(nearest(*vec))
	case q != "":
		query = likeSearch(query, q).Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	recipes := []model.Recipe{}
	if err := query.Limit(searchLimit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return recipes, nil
}

func nearest(vec pgvector.Vector) clause.OrderBy {
	return clause.OrderBy{
		Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
	}
}

func likeSearch(query *gorm.DB, q string) *gorm.DB {
	pattern := "%" + strings.ToLower(q) + "%"
	return query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
}

func (s *RecipeService) vectorSearch() bool {
	return s.embedder != nil && s.db.Dialector.Name() == "postgres"
}

// SimilarRecipes returns the recipes closest to the given recipe. It is empty
// when the recipe has no embedding or vectors are not searchable.
func (s *RecipeService) SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	recipes := []model.Recipe{}
	if recipe.Embedding == nil || s.db.Dialector.Name() != "postgres" {
		return recipes, nil
	}

	err = s.db.WithContext(ctx).
		Where("embedding IS NOT NULL AND id <> ?", id).
		Clauses(nearest(*recipe.Embedding)).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find similar recipes: %w", err)
	}
	return recipes, nil
}

// ToggleFavorite favorites the recipe, or removes the favorite if present.
// It reports whether the recipe is a favorite afterwards.
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return false, err
	}

	favorited := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.RecipeFavorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		favorited = true
		return tx.Create(&model.RecipeFavorite{UserID: userID, RecipeID: recipeID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.invalidate(ctx, favoritesKey(userID))
	return favorited, nil
}

func (s *RecipeService) IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// GetFavoriteRecipes lists the user's favorites, newest first. Results are cached
// until the next toggle.
func (s *RecipeService) GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	key := favoritesKey(userID)
	recipes := []model.Recipe{}
	if s.cache != nil {
		hit, err := cache.GetJSON(ctx, s.cache, key, &recipes)
		if err != nil {
			log.Printf("[RecipeService] cache read failed: %v", err)
		} else if hit {
			return recipes, nil
		}
	}

	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipe_favorites.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, recipes); err != nil {
			log.Printf("[RecipeService] cache write failed: %v", err)
		}
	}
	return recipes, nil
}

func (s *RecipeService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("[RecipeService] cache invalidation failed: %v", err)
	}
}

// fillMacros estimates nutrition when none was provided. Failures are logged only.
func (s *RecipeService) fillMacros(ctx context.Context, recipe *model.Recipe) {
	if s.macros == nil || recipe.HasMacros() || len(recipe.Ingredients) == 0 {
		return
	}
	macros, err := s.macros.EstimateMacros(ctx, recipe.Ingredients)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[RecipeService] macro estimation skipped: %v", err)
		}
		return
	}
	recipe.ApplyMacros(*macros)
}

func applyRecipeRequest(recipe *model.Recipe, req *types.CreateRecipeRequest) {
	recipe.Name = req.Name
	recipe.Description = req.Description
	recipe.Category = req.Category
	recipe.Cuisine = req.Cuisine
	recipe.Difficulty = req.Difficulty
	recipe.CookingTime = req.CookingTime
	recipe.ImageURL = req.ImageURL
	recipe.Ingredients = model.JSONBStringArray(req.Ingredients)
	recipe.Instructions = model.JSONBStringArray(req.Instructions)
	recipe.ApplyMacros(model.Macros{
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	})
}
