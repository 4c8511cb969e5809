package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"gorm.io/gorm"
)

const (
	adminRecipesPerPage = 10
	adminRecentLimit    = 5
	adminReviewLimit    = 20
	adminCategoryLimit  = 10
	adminTrendDays      = 30
)

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `gorm:"column:total" json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AdminStats is the dashboard overview.
type AdminStats struct {
	Users          int64           `json:"users"`
	Recipes        int64           `json:"recipes"`
	Favorites      int64           `json:"favorites"`
	Reviews        int64           `json:"reviews"`
	Categories     []CategoryCount `json:"categories"`
	UserSignups    []DailyCount    `json:"user_signups"`
	RecipesCreated []DailyCount    `json:"recipes_created"`
	RecentUsers    []model.User    `json:"recent_users"`
	RecentRecipes  []model.Recipe  `json:"recent_recipes"`
}

type RecipePage struct {
	Recipes    []model.Recipe `json:"recipes"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// AdminService backs the admin routes. It does not check rights itself.
type AdminService struct {
	db       *gorm.DB
	profiles *ProfileService
	reviews  *ReviewService
	now      func() time.Time
}

func NewAdminService(db *gorm.DB, profiles *ProfileService, reviews *ReviewService) *AdminService {
	return &AdminService{db: db, profiles: profiles, reviews: reviews, now: time.Now}
}

// IsAdmin reports false for unknown users.
func (s *AdminService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var user model.User
	err := s.db.WithContext(ctx).Select("id", "is_admin").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load user: %w", err)
	}
	return user.IsAdmin, nil
}

// SetAdmin grants or revokes admin rights without any checks. It is meant for
// seeding and tooling; the HTTP routes go through UpdateUser.
func (s *AdminService) SetAdmin(ctx context.Context, userID uuid.UUID, admin bool) error {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("is_admin", admin)
	if res.Error != nil {
		return fmt.Errorf("failed to update admin rights: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	db := s.db.WithContext(ctx)
	stats := &AdminStats{
		Categories:    []CategoryCount{},
		RecentUsers:   []model.User{},
		RecentRecipes: []model.Recipe{},
	}

	counts := []struct {
		table interface{}
		dest  *int64
	}{
		{&model.User{}, &stats.Users},
		{&model.Recipe{}, &stats.Recipes},
		{&model.RecipeFavorite{}, &stats.Favorites},
		{&model.RecipeReview{}, &stats.Reviews},
	}
	for _, c := range counts {
		if err := db.Model(c.table).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	err := db.Model(&model.Recipe{}).
		Select("category, COUNT(*) AS total").
		Where("category <> ''").
		Group("category").
		Order("total DESC").
		Limit(adminCategoryLimit).
		Scan(&stats.Categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	since := s.now().AddDate(0, 0, -adminTrendDays)
	if stats.UserSignups, err = s.daily(ctx, &model.User{}, since); err != nil {
		return nil, err
	}
	if stats.RecipesCreated, err = s.daily(ctx, &model.Recipe{}, since); err != nil {
		return nil, err
	}

	if err := db.Order("created_at DESC").Limit(adminRecentLimit).Find(&stats.RecentUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent users: %w", err)
	}
	if err := db.Order("created_at DESC").Limit(adminRecentLimit).Find(&stats.RecentRecipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent recipes: %w", err)
	}
	return stats, nil
}

// daily counts rows of m created since the given time per UTC day, oldest
// day first. Days without rows are left out.
func (s *AdminService) daily(ctx context.Context, m interface{}, since time.Time) ([]DailyCount, error) {
	var created []time.Time
	if err := s.db.WithContext(ctx).Model(m).Where("created_at >= ?", since).Pluck("created_at", &created).Error; err != nil {
		return nil, fmt.Errorf("failed to load creation dates: %w", err)
	}

	byDay := map[string]int64{}
	for _, t := range created {
		byDay[t.UTC().Format(trackingDateLayout)]++
	}
	days := make([]DailyCount, 0, len(byDay))
	for day, n := range byDay {
		days = append(days, DailyCount{Date: day, Count: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

// UpdateUser edits another account. Admins cannot revoke their own rights.
func (s *AdminService) UpdateUser(ctx context.Context, actorID, userID uuid.UUID, req types.AdminUserUpdate) (*model.User, error) {
	if req.IsAdmin != nil && !*req.IsAdmin && actorID == userID {
		return nil, fmt.Errorf("%w: you cannot remove your own admin rights", ErrInvalidInput)
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
		if email != user.Email {
			var taken int64
			if err := s.db.WithContext(ctx).Unscoped().Model(&model.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if taken > 0 {
				return nil, fmt.Errorf("%w: email %s is taken", ErrUserExists, email)
			}
		}
		user.Email = email
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// DeleteUser removes another account with everything it owns.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return fmt.Errorf("%w: you cannot delete your own account here", ErrInvalidInput)
	}
	return s.profiles.DeleteAccount(ctx, userID)
}

// ListRecipes pages through all recipes, newest first. Pages start at 1.
func (s *AdminService) ListRecipes(ctx context.Context, page int) (*RecipePage, error) {
	if page < 1 {
		page = 1
	}
	result := &RecipePage{Recipes: []model.Recipe{}, Page: page, PerPage: adminRecipesPerPage}

	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Recipe{}).Count(&result.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}
	result.TotalPages = int((result.Total + adminRecipesPerPage - 1) / adminRecipesPerPage)

	err := db.Order("created_at DESC").
		Offset((page - 1) * adminRecipesPerPage).
		Limit(adminRecipesPerPage).
		Find(&result.Recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return result, nil
}

// DeleteRecipe removes any recipe regardless of owner.
func (s *AdminService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AdminService) RecentReviews(ctx context.Context) ([]ReviewView, error) {
	return s.reviews.Recent(ctx, adminReviewLimit)
}

func (s *AdminService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return s.reviews.Delete(ctx, id)
}
