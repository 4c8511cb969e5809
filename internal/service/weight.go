package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"gorm.io/gorm"
)

// maxWeightKg matches the DECIMAL(5,2) column.
const maxWeightKg = 1000

type WeightService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewWeightService(db *gorm.DB) *WeightService {
	return &WeightService{db: db, now: time.Now}
}

// Log records a weight for req.Date, or for today when no date is given.
// Several entries may share a day.
func (s *WeightService) Log(ctx context.Context, userID uuid.UUID, req types.WeightRequest) (*model.WeightEntry, error) {
	if req.Weight <= 0 || req.Weight >= maxWeightKg {
		return nil, fmt.Errorf("%w: weight must be between 0 and %d kg", ErrInvalidInput, maxWeightKg)
	}

	today := s.now().Format(trackingDateLayout)
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = today
	} else {
		parsed, err := time.Parse(trackingDateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must look like %s", ErrInvalidInput, trackingDateLayout)
		}
		date = parsed.Format(trackingDateLayout)
		if date > today {
			return nil, fmt.Errorf("%w: date is in the future", ErrInvalidInput)
		}
	}

	entry := &model.WeightEntry{
		UserID: userID,
		Weight: math.Round(req.Weight*100) / 100,
		Date:   date,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to log weight: %w", err)
	}
	return entry, nil
}

// History returns the user's entries, latest day first.
func (s *WeightService) History(ctx context.Context, userID uuid.UUID) ([]model.WeightEntry, error) {
	entries := []model.WeightEntry{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load weight history: %w", err)
	}
	return entries, nil
}

func (s *WeightService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.WeightEntry{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete weight entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
