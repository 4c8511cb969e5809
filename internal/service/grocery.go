package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"gorm.io/gorm"
)

type GroceryService struct {
	db *gorm.DB
}

func NewGroceryService(db *gorm.DB) *GroceryService {
	return &GroceryService{db: db}
}

// List returns unchecked items first, each group oldest first.
func (s *GroceryService) List(ctx context.Context, userID uuid.UUID) ([]model.GroceryItem, error) {
	items := []model.GroceryItem{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("checked").
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load grocery list: %w", err)
	}
	return items, nil
}

func (s *GroceryService) Add(ctx context.Context, userID uuid.UUID, req types.GroceryItemRequest) (*model.GroceryItem, error) {
	item, err := newGroceryItem(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add grocery item: %w", err)
	}
	return item, nil
}

// AddBatch adds all items or none.
func (s *GroceryService) AddBatch(ctx context.Context, userID uuid.UUID, reqs []types.GroceryItemRequest) ([]model.GroceryItem, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no items given", ErrInvalidInput)
	}
	items := make([]model.GroceryItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := newGroceryItem(userID, req)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	}); err != nil {
		return nil, fmt.Errorf("failed to add grocery items: %w", err)
	}
	return items, nil
}

func (s *GroceryService) Update(ctx context.Context, userID, id uuid.UUID, req types.UpdateGroceryItemRequest) (*model.GroceryItem, error) {
	var item model.GroceryItem
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	if req.Quantity != nil {
		item.Quantity = strings.TrimSpace(*req.Quantity)
	}
	if req.Checked != nil {
		item.Checked = *req.Checked
	}
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update grocery item: %w", err)
	}
	return &item, nil
}

func (s *GroceryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.GroceryItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete grocery item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every item of the user's list and returns how many were removed.
func (s *GroceryService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.GroceryItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear grocery list: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func newGroceryItem(userID uuid.UUID, req types.GroceryItemRequest) (*model.GroceryItem, error) {
	name := strings.TrimSpace(req.Item)
	if name == "" {
		return nil, fmt.Errorf("%w: item is required", ErrInvalidInput)
	}
	return &model.GroceryItem{
		UserID:   userID,
		Item:     name,
		Quantity: strings.TrimSpace(req.Quantity),
	}, nil
}
