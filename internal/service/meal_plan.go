package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPlanDays = 7
	maxPlanDays     = 14
	defaultMealDay  = "Day 1"
	exportURLExpiry = 15 * time.Minute
)

// Meal is a single meal of a plan. Fields vary between generated and saved plans.
type Meal map[string]interface{}

type MealPlanDay struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

// MealPlanDocument is the generated plan, grouped by day.
type MealPlanDocument struct {
	Days []MealPlanDay `json:"days"`
}

// MealPlanView is a saved plan with its meals grouped by day.
type MealPlanView struct {
	ID        uuid.UUID     `json:"id"`
	PlanName  string        `json:"plan_name"`
	Goal      string        `json:"goal"`
	CreatedAt time.Time     `json:"created_at"`
	Days      []MealPlanDay `json:"days"`
}

type storedMealPlan struct {
	PlanName string        `json:"plan_name,omitempty"`
	Goal     string        `json:"goal,omitempty"`
	Meals    []Meal        `json:"meals,omitempty"`
	Days     []MealPlanDay `json:"days,omitempty"`
}

// ObjectStore uploads exported documents.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, data []byte) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

type MealPlanService struct {
	db      *gorm.DB
	llm     *LLMService
	storage ObjectStore
}

// NewMealPlanService creates the service. storage may be nil, which disables export.
func NewMealPlanService(db *gorm.DB, llm *LLMService, storage ObjectStore) *MealPlanService {
	return &MealPlanService{
		db:      db,
		llm:     llm,
		storage: storage,
	}
}

// planDays applies the default and bounds to a requested number of days.
func planDays(days int) (int, error) {
	if days == 0 {
		return defaultPlanDays, nil
	}
	if days < 1 || days > maxPlanDays {
		return 0, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, maxPlanDays)
	}
	return days, nil
}

func (s *MealPlanService) Generate(ctx context.Context, req *types.GenerateMealPlanRequest) (*MealPlanDocument, error) {
	days, err := planDays(req.Days)
	if err != nil {
		return nil, err
	}

	var plan MealPlanDocument
	if err := s.llm.Complete(ctx, "meal plan", ai.MealPlanPrompt(days, req.DietaryPreferences, req.Allergies), &plan); err != nil {
		return nil, err
	}
	if len(plan.Days) == 0 {
		return nil, fmt.Errorf("%w: meal plan has no days", ErrInvalidAIFormat)
	}
	return &plan, nil
}

// Save stores a plan given either as a flat meals list or grouped days.
func (s *MealPlanService) Save(ctx context.Context, userID uuid.UUID, req *types.SaveMealPlanRequest) (*model.MealPlan, error) {
	doc := storedMealPlan{
		PlanName: strings.TrimSpace(req.PlanName),
		Goal:     strings.TrimSpace(req.Goal),
	}
	if len(req.Meals) > 0 && string(req.Meals) != "null" {
		if err := json.Unmarshal(req.Meals, &doc.Meals); err != nil {
			return nil, fmt.Errorf("%w: meals must be a list of objects", ErrInvalidInput)
		}
	}
	if len(req.Days) > 0 && string(req.Days) != "null" {
		if err := json.Unmarshal(req.Days, &doc.Days); err != nil {
			return nil, fmt.Errorf("%w: days must be a list of day objects", ErrInvalidInput)
		}
	}
	if doc.PlanName == "" || doc.Goal == "" || (len(doc.Meals) == 0 && len(doc.Days) == 0) {
		return nil, fmt.Errorf("%w: missing plan data fields", ErrInvalidInput)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meal plan: %w", err)
	}
	plan := model.MealPlan{
		UserID:   userID,
		PlanName: doc.PlanName,
		Goal:     doc.Goal,
		PlanData: datatypes.JSON(data),
	}
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}
	return &plan, nil
}

// List returns the user's most recent plans.
func (s *MealPlanService) List(ctx context.Context, userID uuid.UUID) ([]model.MealPlan, error) {
	plans := []model.MealPlan{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plans: %w", err)
	}
	return plans, nil
}

func (s *MealPlanService) Get(ctx context.Context, userID, id uuid.UUID) (*MealPlanView, error) {
	var plan model.MealPlan
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&plan).Error; err != nil {
		return nil, notFound(err)
	}

	var doc storedMealPlan
	if err := json.Unmarshal(plan.PlanData, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode meal plan %s: %w", plan.ID, err)
	}
	days := doc.Days
	if len(days) == 0 {
		days = GroupMealsByDay(doc.Meals)
	}
	return &MealPlanView{
		ID:        plan.ID,
		PlanName:  plan.PlanName,
		Goal:      plan.Goal,
		CreatedAt: plan.CreatedAt,
		Days:      days,
	}, nil
}

func (s *MealPlanService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.MealPlan{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete meal plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Export uploads the grouped plan as JSON and returns a short-lived download URL.
func (s *MealPlanService) Export(ctx context.Context, userID, id uuid.UUID) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("%w: export storage is not configured", ErrUnavailable)
	}
	view, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode meal plan: %w", err)
	}

	key := fmt.Sprintf("exports/%s/meal-plan-%s.json", userID, id)
	if err := s.storage.PutObject(ctx, key, "application/json", data); err != nil {
		return "", err
	}
	url, err := s.storage.GeneratePresignedURL(ctx, key, exportURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign export: %w", err)
	}
	return url, nil
}

// GroupMealsByDay groups a flat meal list by its "day" field, keeping days in
// the order they first appear. Meals without a day belong to "Day 1".
func GroupMealsByDay(meals []Meal) []MealPlanDay {
	days := []MealPlanDay{}
	index := map[string]int{}
	for _, meal := range meals {
		day := defaultMealDay
		if v, ok := meal["day"]; ok && v != nil {
			if d := strings.TrimSpace(fmt.Sprint(v)); d != "" {
				day = d
			}
		}
		i, ok := index[day]
		if !ok {
			i = len(days)
			index[day] = i
			days = append(days, MealPlanDay{Day: day})
		}
		days[i].Meals = append(days[i].Meals, meal)
	}
	return days
}
