package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NutritionService struct {
	db  *gorm.DB
	llm *LLMService
}

func NewNutritionService(db *gorm.DB, llm *LLMService) *NutritionService {
	return &NutritionService{
		db:  db,
		llm: llm,
	}
}

func (s *NutritionService) Analyze(ctx context.Context, ingredients string) (*model.NutritionSummary, error) {
	return s.llm.AnalyzeNutrition(ctx, ingredients)
}

// SaveAnalysis stores an analysis under a name that is unique per user.
func (s *NutritionService) SaveAnalysis(ctx context.Context, userID uuid.UUID, req *types.SaveAnalysisRequest) (*model.NutritionAnalysis, error) {
	name := strings.TrimSpace(req.AnalysisName)
	if name == "" || isEmptyJSON(req.AnalysisData.Analysis) {
		return nil, fmt.Errorf("%w: analysis name and data are required", ErrInvalidInput)
	}
	if !json.Valid(req.AnalysisData.Analysis) {
		return nil, fmt.Errorf("%w: analysis must be valid JSON", ErrInvalidInput)
	}
	ingredients := req.AnalysisData.Ingredients
	if isEmptyJSON(ingredients) {
		ingredients = json.RawMessage(`""`)
	}

	analysis := model.NutritionAnalysis{
		UserID:      userID,
		Name:        name,
		Ingredients: datatypes.JSON(ingredients),
		Analysis:    datatypes.JSON(req.AnalysisData.Analysis),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.NutritionAnalysis{}).
			Where("user_id = ? AND name = ?", userID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateName
		}
		return tx.Create(&analysis).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save nutrition analysis: %w", err)
	}
	return &analysis, nil
}

// ListAnalyses returns the user's most recent analyses.
func (s *NutritionService) ListAnalyses(ctx context.Context, userID uuid.UUID) ([]model.NutritionAnalysis, error) {
	analyses := []model.NutritionAnalysis{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load nutrition analyses: %w", err)
	}
	return analyses, nil
}

func (s *NutritionService) GetAnalysis(ctx context.Context, userID, id uuid.UUID) (*model.NutritionAnalysis, error) {
	var analysis model.NutritionAnalysis
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&analysis).Error; err != nil {
		return nil, notFound(err)
	}
	return &analysis, nil
}

func (s *NutritionService) DeleteAnalysis(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.NutritionAnalysis{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete nutrition analysis: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == "{}" || s == `""`
}
