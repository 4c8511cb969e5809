package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"gorm.io/gorm"
)

const (
	minRating        = 1
	maxRating        = 5
	maxCommentLength = 2000
)

// ReviewView is a review with the reviewer's username. RecipeName is only
// filled in admin listings.
type ReviewView struct {
	model.RecipeReview
	Username   string `json:"username"`
	RecipeName string `json:"recipe_name,omitempty"`
}

type ReviewSummary struct {
	Reviews       []ReviewView `json:"reviews"`
	AverageRating float64      `json:"average_rating"`
	Count         int          `json:"count"`
	// UserRating is the viewer's own rating, when they left one.
	UserRating *int `json:"user_rating,omitempty"`
}

type ReviewService struct {
	db            *gorm.DB
	notifications *NotificationService
}

// NewReviewService creates a ReviewService. Recipe owners are notified of new
// reviews when notifications is not nil.
func NewReviewService(db *gorm.DB, notifications *NotificationService) *ReviewService {
	return &ReviewService{db: db, notifications: notifications}
}

// Submit creates the user's review of a recipe or edits the existing one. It
// reports whether a new review was created.
func (s *ReviewService) Submit(ctx context.Context, userID, recipeID uuid.UUID, req types.ReviewRequest) (*model.RecipeReview, bool, error) {
	if req.Rating != nil && (*req.Rating < minRating || *req.Rating > maxRating) {
		return nil, false, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, minRating, maxRating)
	}
	var comment string
	if req.Comment != nil {
		comment = strings.TrimSpace(*req.Comment)
		if utf8.RuneCountInString(comment) > maxCommentLength {
			return nil, false, fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, maxCommentLength)
		}
	}

	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, false, notFound(err)
	}

	var review model.RecipeReview
	err := s.db.WithContext(ctx).Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&review).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.Rating == nil {
			return nil, false, fmt.Errorf("%w: rating is required for new reviews", ErrInvalidInput)
		}
		review = model.RecipeReview{RecipeID: recipeID, UserID: userID, Rating: *req.Rating, Comment: comment}
		if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
			return nil, false, fmt.Errorf("failed to create review: %w", err)
		}
		if recipe.UserID != userID {
			s.notifyOwner(ctx, &recipe, userID, review.Rating)
		}
		return &review, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to load review: %w", err)
	}

	if req.Rating == nil && req.Comment == nil {
		return nil, false, fmt.Errorf("%w: rating or comment is required", ErrInvalidInput)
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = comment
	}
	if err := s.db.WithContext(ctx).Save(&review).Error; err != nil {
		return nil, false, fmt.Errorf("failed to update review: %w", err)
	}
	return &review, false, nil
}

// List returns the reviews of a recipe, newest first, with the average
// rating. viewer may be uuid.Nil for anonymous requests.
func (s *ReviewService) List(ctx context.Context, recipeID, viewer uuid.UUID) (*ReviewSummary, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, notFound(err)
	}

	views := []ReviewView{}
	err := s.reviewQuery(ctx).
		Where("rr.recipe_id = ?", recipeID).
		Order("rr.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	summary := &ReviewSummary{Reviews: views, Count: len(views)}
	total := 0
	for i := range views {
		total += views[i].Rating
		if viewer != uuid.Nil && views[i].UserID == viewer {
			rating := views[i].Rating
			summary.UserRating = &rating
		}
	}
	if len(views) > 0 {
		summary.AverageRating = float64(total) / float64(len(views))
	}
	return summary, nil
}

// Recent returns the latest reviews across all recipes.
func (s *ReviewService) Recent(ctx context.Context, limit int) ([]ReviewView, error) {
	views := []ReviewView{}
	err := s.reviewQuery(ctx).
		Select("rr.*, up.username AS username, r.name AS recipe_name").
		Joins("JOIN recipes r ON r.id = rr.recipe_id AND r.deleted_at IS NULL").
		Order("rr.created_at DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return views, nil
}

// Delete removes any review. Callers check admin rights.
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.RecipeReview{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ReviewService) reviewQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("recipe_reviews AS rr").
		Select("rr.*, up.username AS username").
		Joins("LEFT JOIN user_profiles up ON up.user_id = rr.user_id")
}

func (s *ReviewService) notifyOwner(ctx context.Context, recipe *model.Recipe, reviewerID uuid.UUID, rating int) {
	if s.notifications == nil {
		return
	}
	reviewer := "Someone"
	var profile model.UserProfile
	if err := s.db.WithContext(ctx).Select("username").Where("user_id = ?", reviewerID).First(&profile).Error; err == nil {
		reviewer = profile.Username
	}
	msg := fmt.Sprintf("%s rated your recipe %q %d/5", reviewer, recipe.Name, rating)
	if _, err := s.notifications.Notify(ctx, recipe.UserID, msg); err != nil {
		log.Printf("[ReviewService] failed to notify recipe owner: %v", err)
	}
}
