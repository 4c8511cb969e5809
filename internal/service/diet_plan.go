package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/cache"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const trackingDateLayout = "2006-01-02"

// DietPlanDocument is a generated diet plan. It is not stored until saved.
type DietPlanDocument struct {
	PlanName  string                  `json:"plan_name"`
	Goal      string                  `json:"goal"`
	Generated bool                    `json:"generated"`
	CreatedAt time.Time               `json:"created_at"`
	Meals     []types.DietMealRequest `json:"meals"`
}

type DietPlanService struct {
	db       *gorm.DB
	llm      *LLMService
	profiles *ProfileService
	cache    cache.Cache
	now      func() time.Time
}

// NewDietPlanService creates the service. c may be nil.
func NewDietPlanService(db *gorm.DB, llm *LLMService, profiles *ProfileService, c cache.Cache) *DietPlanService {
	return &DietPlanService{
		db:       db,
		llm:      llm,
		profiles: profiles,
		cache:    c,
		now:      time.Now,
	}
}

func dietPlansKey(userID uuid.UUID) string {
	return "diet_plans:" + userID.String()
}

// GoalText describes a signed weight goal, such as "Gain 2 kg" or "Lose 1.5 kg".
func GoalText(goalKg float64) string {
	return fmt.Sprintf("%s %g kg", capitalize(goalType(goalKg)), math.Abs(goalKg))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func goalType(goalKg float64) string {
	if goalKg > 0 {
		return "gain"
	}
	return "lose"
}

// Generate stores the user's allergies and asks the AI for a plan for the signed goal.
func (s *DietPlanService) Generate(ctx context.Context, userID uuid.UUID, req *types.GenerateDietPlanRequest) (*DietPlanDocument, error) {
	if req.Goal == 0 || math.IsNaN(req.Goal) || math.IsInf(req.Goal, 0) {
		return nil, fmt.Errorf("%w: goal must be a non-zero number of kg", ErrInvalidInput)
	}
	days, err := planDays(req.Days)
	if err != nil {
		return nil, err
	}

	allergies := cleanList(req.Allergies)
	if err := s.profiles.ReplaceAllergies(ctx, userID, allergies); err != nil {
		return nil, fmt.Errorf("failed to store allergies: %w", err)
	}

	prompt := ai.DietPlanPrompt(days, goalType(req.Goal), math.Abs(req.Goal), strings.Join(allergies, ", "))
	var plan DietPlanDocument
	if err := s.llm.Complete(ctx, "diet plan", prompt, &plan); err != nil {
		return nil, err
	}
	if len(plan.Meals) == 0 {
		return nil, fmt.Errorf("%w: diet plan has no meals", ErrInvalidAIFormat)
	}

	plan.Goal = GoalText(req.Goal)
	plan.Generated = true
	plan.CreatedAt = s.now()
	if plan.PlanName == "" {
		plan.PlanName = fmt.Sprintf("Weight %s Plan", capitalize(goalType(req.Goal)))
	}
	return &plan, nil
}

func (s *DietPlanService) Save(ctx context.Context, userID uuid.UUID, req *types.SaveDietPlanRequest) (*model.DietPlan, error) {
	if strings.TrimSpace(req.PlanName) == "" || strings.TrimSpace(req.Goal) == "" || len(req.Meals) == 0 {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidInput)
	}

	plan := model.DietPlan{
		UserID:   userID,
		PlanName: strings.TrimSpace(req.PlanName),
		Goal:     strings.TrimSpace(req.Goal),
	}
	for i, m := range req.Meals {
		plan.Meals = append(plan.Meals, model.DietPlanMeal{
			Position:    i,
			Day:         string(m.Day),
			MealType:    m.MealType,
			MealName:    m.MealName,
			Description: m.Description,
			Ingredients: model.JSONBStringArray(m.Ingredients),
			PrepTime:    string(m.PrepTime),
		})
	}

	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to save diet plan: %w", err)
	}
	s.invalidate(ctx, userID)
	return &plan, nil
}

// List returns the user's saved plans with today's meal statuses.
func (s *DietPlanService) List(ctx context.Context, userID uuid.UUID) ([]model.DietPlan, error) {
	key := dietPlansKey(userID)
	plans := []model.DietPlan{}
	if s.cache != nil {
		hit, err := cache.GetJSON(ctx, s.cache, key, &plans)
		if err != nil {
			log.Printf("[DietPlanService] cache read failed: %v", err)
		} else if hit {
			return plans, nil
		}
	}

	db := s.db.WithContext(ctx)
	err := db.Where("user_id = ?", userID).
		Preload("Meals", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position")
		}).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load diet plans: %w", err)
	}

	var tracking []model.MealTracking
	if err := db.Where("user_id = ? AND date = ?", userID, s.today()).Find(&tracking).Error; err != nil {
		return nil, fmt.Errorf("failed to load meal tracking: %w", err)
	}
	status := make(map[uuid.UUID]string, len(tracking))
	for _, t := range tracking {
		status[t.DietPlanMealID] = t.Status
	}
	for i := range plans {
		for j := range plans[i].Meals {
			plans[i].Meals[j].Status = status[plans[i].Meals[j].ID]
		}
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, plans); err != nil {
			log.Printf("[DietPlanService] cache write failed: %v", err)
		}
	}
	return plans, nil
}

// Track applies a batch of status updates for today in one transaction. Entries
// with an unknown meal or status are skipped. It returns the number applied.
func (s *DietPlanService) Track(ctx context.Context, userID uuid.UUID, updates []types.TrackingUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, fmt.Errorf("%w: missing or invalid updates data", ErrInvalidInput)
	}

	today := s.today()
	applied := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			mealID, err := uuid.Parse(strings.TrimSpace(u.MealID))
			if err != nil {
				continue
			}
			owned, err := ownsMeal(tx, userID, mealID)
			if err != nil {
				return err
			}
			if !owned {
				continue
			}

			switch {
			case u.Status == nil:
				err = tx.Where("user_id = ? AND diet_plan_meal_id = ? AND date = ?", userID, mealID, today).
					Delete(&model.MealTracking{}).Error
			case *u.Status == model.MealCompleted || *u.Status == model.MealSkipped:
				err = tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_id"}, {Name: "diet_plan_meal_id"}, {Name: "date"}},
					DoUpdates: clause.AssignmentColumns([]string{"status"}),
				}).Create(&model.MealTracking{
					UserID:         userID,
					DietPlanMealID: mealID,
					Date:           today,
					Status:         *u.Status,
				}).Error
			default:
				continue
			}
			if err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		log.Printf("[DietPlanService] batch meal tracking failed: %v", err)
		return 0, fmt.Errorf("failed to track meals: %w", err)
	}

	s.invalidate(ctx, userID)
	return applied, nil
}

func ownsMeal(tx *gorm.DB, userID, mealID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&model.DietPlanMeal{}).
		Joins("JOIN diet_plans ON diet_plans.id = diet_plan_meals.diet_plan_id").
		Where("diet_plan_meals.id = ? AND diet_plans.user_id = ?", mealID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *DietPlanService) today() string {
	return s.now().Format(trackingDateLayout)
}

func (s *DietPlanService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dietPlansKey(userID)); err != nil {
		log.Printf("[DietPlanService] cache invalidation failed: %v", err)
	}
}
