package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedRecipe = `Here is your recipe!
{
  "title": "Lemon Pasta",
  "description": "Bright and quick.",
  "ingredients": ["200g pasta", "1 lemon", "parmesan",],
  "instructions": ["Boil pasta.", "Toss with lemon and cheese"],
  "cooking_time": "20 minutes",
  "difficulty": "Easy",
  "category": "Dinner",
  "nutritional_info": {"calories": 480, "protein": 16, "carbs": 70, "fat": 12}
}
Enjoy!`

func newGeneratorService(t *testing.T, raw string) (*service.RecipeGeneratorService, *testhelpers.MockGenerator, uuid.UUID) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	gen := new(testhelpers.MockGenerator)
	gen.Reply(raw)
	llm := newLLM(gen)
	recipes := service.NewRecipeService(db, nil, llm, nil)
	user := testhelpers.CreateUser(t, db, "cook@example.com")
	return service.NewRecipeGeneratorService(db, llm, recipes), gen, user.ID
}

func TestRecipeGenerator_Generate(t *testing.T) {
	generator, _, userID := newGeneratorService(t, generatedRecipe)
	ctx := context.Background()

	view, err := generator.Generate(ctx, userID, &types.GenerateRecipeRequest{Ingredients: "pasta, lemon"})
	require.NoError(t, err)
	assert.Equal(t, "Lemon Pasta", view.Recipe.Title)
	assert.Equal(t, []string{"200g pasta", "1 lemon", "parmesan"}, view.Recipe.Ingredients)
	assert.Equal(t, 480.0, view.Recipe.NutritionalInfo.Calories)
	assert.Contains(t, view.Prompt, "pasta, lemon")

	stored, err := generator.Get(ctx, userID, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Recipe, stored.Recipe)

	_, err = generator.Get(ctx, uuid.New(), view.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRecipeGenerator_InvalidResponses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"apology", "Sorry, I can't create that recipe."},
		{"missing title", `{"description": "no title", "ingredients": ["x"]}`},
		{"wrong types", `{"title": 7, "ingredients": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator, _, userID := newGeneratorService(t, tt.raw)
			_, err := generator.Generate(context.Background(), userID, &types.GenerateRecipeRequest{Ingredients: "x"})
			assert.ErrorIs(t, err, service.ErrInvalidAIFormat)

			history, err := generator.History(context.Background(), userID)
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}

	generator, gen, userID := newGeneratorService(t, generatedRecipe)
	_, err := generator.Generate(context.Background(), userID, &types.GenerateRecipeRequest{Ingredients: " "})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	gen.AssertNumberOfCalls(t, "Generate", 0)
}

func TestRecipeGenerator_HistoryKeepsFive(t *testing.T) {
	generator, _, userID := newGeneratorService(t, generatedRecipe)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := generator.Generate(ctx, userID, &types.GenerateRecipeRequest{Ingredients: fmt.Sprintf("item %d", i)})
		require.NoError(t, err)
	}

	history, err := generator.History(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestRecipeGenerator_Save(t *testing.T) {
	generator, gen, userID := newGeneratorService(t, generatedRecipe)
	ctx := context.Background()

	view, err := generator.Generate(ctx, userID, &types.GenerateRecipeRequest{Ingredients: "pasta"})
	require.NoError(t, err)

	recipe, err := generator.Save(ctx, userID, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lemon Pasta", recipe.Name)
	assert.Equal(t, userID, recipe.UserID)
	assert.Equal(t, 16.0, recipe.Protein)

	again, err := generator.Save(ctx, userID, view.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, again.ID)

	// nutrition came with the recipe, so no macro estimation call was made
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRecipeGenerator_Speech(t *testing.T) {
	generator, _, userID := newGeneratorService(t, generatedRecipe)
	ctx := context.Background()

	view, err := generator.Generate(ctx, userID, &types.GenerateRecipeRequest{Ingredients: "pasta"})
	require.NoError(t, err)

	text, err := generator.Speech(ctx, userID, view.ID)
	require.NoError(t, err)
	assert.Equal(t,
		"Recipe: Lemon Pasta. Ingredients: 200g pasta, 1 lemon, parmesan. Instructions: Step 1: Boil pasta. Step 2: Toss with lemon and cheese.",
		text)
}

func TestSpeechScript_TitleOnly(t *testing.T) {
	assert.Equal(t, "Recipe: Water.", service.SpeechScript(service.GeneratedRecipeData{Title: "Water"}))
}
