package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutritionService_Analyze(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	gen := new(testhelpers.MockGenerator)
	gen.Reply(`Analysis: {{"calories": 300, "protein": 20, "carbs": 10, "fat": 15, "vitamins": ["B12"], "benefits": ["protein"], "concerns": [], "summary": "Solid breakfast"}}`)
	nutrition := service.NewNutritionService(db, newLLM(gen))

	summary, err := nutrition.Analyze(context.Background(), "2 eggs, 1 slice cheese")
	require.NoError(t, err)
	assert.Equal(t, 300.0, summary.Calories)
	assert.Equal(t, []string{"B12"}, summary.Vitamins)
	assert.Equal(t, "Solid breakfast", summary.Summary)
}

func TestNutritionService_SavedAnalyses(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	nutrition := service.NewNutritionService(db, nil)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "cook@example.com")
	other := testhelpers.CreateUser(t, db, "other@example.com")

	req := &types.SaveAnalysisRequest{
		AnalysisName: "Breakfast",
		AnalysisData: types.AnalysisData{
			Ingredients: json.RawMessage(`"2 eggs"`),
			Analysis:    json.RawMessage(`{"calories": 140}`),
		},
	}
	saved, err := nutrition.SaveAnalysis(ctx, user.ID, req)
	require.NoError(t, err)

	_, err = nutrition.SaveAnalysis(ctx, user.ID, req)
	assert.ErrorIs(t, err, service.ErrDuplicateName)

	// names are unique per user only
	_, err = nutrition.SaveAnalysis(ctx, other.ID, req)
	require.NoError(t, err)

	list, err := nutrition.ListAnalyses(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Breakfast", list[0].Name)

	got, err := nutrition.GetAnalysis(ctx, user.ID, saved.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"calories": 140}`, string(got.Analysis))
	assert.JSONEq(t, `"2 eggs"`, string(got.Ingredients))

	_, err = nutrition.GetAnalysis(ctx, other.ID, saved.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, nutrition.DeleteAnalysis(ctx, user.ID, saved.ID))
	assert.ErrorIs(t, nutrition.DeleteAnalysis(ctx, user.ID, saved.ID), service.ErrNotFound)
	assert.ErrorIs(t, nutrition.DeleteAnalysis(ctx, user.ID, uuid.New()), service.ErrNotFound)
}

func TestNutritionService_SaveValidation(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	nutrition := service.NewNutritionService(db, nil)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "cook@example.com")

	tests := []types.SaveAnalysisRequest{
		{AnalysisName: " ", AnalysisData: types.AnalysisData{Analysis: json.RawMessage(`{"a": 1}`)}},
		{AnalysisName: "Empty", AnalysisData: types.AnalysisData{Analysis: json.RawMessage(`{}`)}},
		{AnalysisName: "Broken", AnalysisData: types.AnalysisData{Analysis: json.RawMessage(`{"a": `)}},
	}
	for _, req := range tests {
		_, err := nutrition.SaveAnalysis(ctx, user.ID, &req)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	}

	saved, err := nutrition.SaveAnalysis(ctx, user.ID, &types.SaveAnalysisRequest{
		AnalysisName: "No ingredients",
		AnalysisData: types.AnalysisData{Analysis: json.RawMessage(`{"calories": 1}`)},
	})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(saved.Ingredients))
}
