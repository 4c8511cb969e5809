package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const historyLimit = 5

// GeneratedRecipeData is the recipe document produced by the AI.
type GeneratedRecipeData struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Ingredients     []string     `json:"ingredients"`
	Instructions    []string     `json:"instructions"`
	CookingTime     string       `json:"cooking_time"`
	Difficulty      string       `json:"difficulty"`
	Category        string       `json:"category"`
	NutritionalInfo model.Macros `json:"nutritional_info"`
}

// GeneratedRecipeView is a history entry with its decoded recipe.
type GeneratedRecipeView struct {
	model.GeneratedRecipe
	Recipe GeneratedRecipeData `json:"recipe"`
}

// RecipeGeneratorService produces recipes from the AI and keeps a per-user history.
type RecipeGeneratorService struct {
	db      *gorm.DB
	llm     *LLMService
	recipes *RecipeService
}

func NewRecipeGeneratorService(db *gorm.DB, llm *LLMService, recipes *RecipeService) *RecipeGeneratorService {
	return &RecipeGeneratorService{
		db:      db,
		llm:     llm,
		recipes: recipes,
	}
}

// Generate asks the AI for a recipe and records it in the user's history.
func (s *RecipeGeneratorService) Generate(ctx context.Context, userID uuid.UUID, req *types.GenerateRecipeRequest) (*GeneratedRecipeView, error) {
	if strings.TrimSpace(req.Ingredients) == "" {
		return nil, fmt.Errorf("%w: ingredients are required", ErrInvalidInput)
	}

	prompt := ai.RecipePrompt(req.Ingredients, req.Cuisine, req.MealType, req.DietaryRestrictions)
	var data GeneratedRecipeData
	if err := s.llm.Complete(ctx, "recipe", prompt, &data); err != nil {
		return nil, err
	}
	if strings.TrimSpace(data.Title) == "" || len(data.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: recipe is missing title or ingredients", ErrInvalidAIFormat)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}
	entry := model.GeneratedRecipe{
		UserID:     userID,
		Prompt:     prompt,
		RecipeData: datatypes.JSON(raw),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to store generated recipe: %w", err)
	}
	return &GeneratedRecipeView{GeneratedRecipe: entry, Recipe: data}, nil
}

// History returns the user's most recent generated recipes.
func (s *RecipeGeneratorService) History(ctx context.Context, userID uuid.UUID) ([]GeneratedRecipeView, error) {
	var entries []model.GeneratedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load generated recipes: %w", err)
	}

	views := make([]GeneratedRecipeView, 0, len(entries))
	for _, e := range entries {
		view, err := decodeGenerated(e)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *RecipeGeneratorService) Get(ctx context.Context, userID, id uuid.UUID) (*GeneratedRecipeView, error) {
	var entry model.GeneratedRecipe
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return decodeGenerated(entry)
}

// Save turns a generated recipe into a regular recipe. Saving twice returns the
// recipe created the first time.
func (s *RecipeGeneratorService) Save(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	view, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if view.SavedRecipeID != nil {
		if recipe, err := s.recipes.GetRecipe(ctx, *view.SavedRecipeID); err == nil {
			return recipe, nil
		}
	}

	data := view.Recipe
	recipe := &model.Recipe{
		UserID:       userID,
		Name:         data.Title,
		Description:  data.Description,
		Category:     data.Category,
		Difficulty:   data.Difficulty,
		CookingTime:  data.CookingTime,
		Ingredients:  model.JSONBStringArray(data.Ingredients),
		Instructions: model.JSONBStringArray(data.Instructions),
	}
	recipe.ApplyMacros(data.NutritionalInfo)

	recipe, err = s.recipes.create(ctx, recipe)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.GeneratedRecipe{}).
		Where("id = ?", id).
		Update("saved_recipe_id", recipe.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to link saved recipe: %w", err)
	}
	return recipe, nil
}

// Speech returns the text-to-speech script of a generated recipe.
func (s *RecipeGeneratorService) Speech(ctx context.Context, userID, id uuid.UUID) (string, error) {
	view, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return SpeechScript(view.Recipe), nil
}

// SpeechScript renders a recipe as text meant to be read aloud.
func SpeechScript(r GeneratedRecipeData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe: %s. ", r.Title)
	if len(r.Ingredients) > 0 {
		fmt.Fprintf(&b, "Ingredients: %s. ", strings.Join(r.Ingredients, ", "))
	}
	if len(r.Instructions) > 0 {
		b.WriteString("Instructions: ")
		for i, step := range r.Instructions {
			fmt.Fprintf(&b, "Step %d: %s. ", i+1, strings.TrimRight(strings.TrimSpace(step), "."))
		}
	}
	return strings.TrimSpace(b.String())
}

func decodeGenerated(e model.GeneratedRecipe) (*GeneratedRecipeView, error) {
	view := &GeneratedRecipeView{GeneratedRecipe: e}
	if err := json.Unmarshal(e.RecipeData, &view.Recipe); err != nil {
		return nil, fmt.Errorf("failed to decode generated recipe %s: %w", e.ID, err)
	}
	return view, nil
}
