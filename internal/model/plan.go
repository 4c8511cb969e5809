package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GeneratedRecipe keeps the history of AI generated recipes.
type GeneratedRecipe struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Prompt        string         `gorm:"type:text;not null" json:"prompt"`
	RecipeData    datatypes.JSON `gorm:"not null" json:"recipe_data"`
	SavedRecipeID *uuid.UUID     `gorm:"type:uuid" json:"saved_recipe_id,omitempty"`
}

func (g *GeneratedRecipe) BeforeCreate(tx *gorm.DB) error {
	assignID(&g.ID)
	return nil
}

// MealPlan is a saved meal plan document.
type MealPlan struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanName  string         `gorm:"size:100;not null" json:"plan_name"`
	Goal      string         `gorm:"size:100;not null" json:"goal"`
	PlanData  datatypes.JSON `gorm:"not null" json:"plan_data"`
}

func (m *MealPlan) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// DietPlan groups the meals of a saved diet plan.
type DietPlan struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanName  string         `gorm:"size:100;not null" json:"plan_name"`
	Goal      string         `gorm:"size:100;not null" json:"goal"`
	Meals     []DietPlanMeal `gorm:"constraint:OnDelete:CASCADE" json:"meals"`
}

func (d *DietPlan) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	return nil
}

type DietPlanMeal struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	DietPlanID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"diet_plan_id"`
	Position    int              `gorm:"not null;default:0" json:"-"`
	Day         string           `gorm:"size:20;not null" json:"day"`
	MealType    string           `gorm:"size:20;not null" json:"meal_type"`
	MealName    string           `gorm:"size:255;not null" json:"meal_name"`
	Description string           `gorm:"type:text" json:"description"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	PrepTime    string           `gorm:"size:50" json:"prep_time"`
	Status      string           `gorm:"-" json:"status,omitempty"`
}

func (m *DietPlanMeal) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}

const (
	MealCompleted = "Completed"
	MealSkipped   = "Skipped"
)

// MealTracking records what happened to a diet plan meal on a given day.
type MealTracking struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_user_meal_date" json:"user_id"`
	DietPlanMealID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_user_meal_date" json:"diet_plan_meal_id"`
	Date           string    `gorm:"size:10;not null;uniqueIndex:idx_tracking_user_meal_date" json:"date"`
	Status         string    `gorm:"size:20;not null" json:"status"`
}

func (MealTracking) TableName() string {
	return "meal_tracking"
}

func (t *MealTracking) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// GroceryItem is an entry of a user's grocery list.
type GroceryItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Item      string    `gorm:"size:255;not null" json:"item"`
	Quantity  string    `gorm:"size:50" json:"quantity"`
	Checked   bool      `gorm:"not null;default:false" json:"checked"`
}

func (g *GroceryItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&g.ID)
	return nil
}

// All lists every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&DietaryPreference{},
		&Allergen{},
		&Recipe{},
		&RecipeFavorite{},
		&GeneratedRecipe{},
		&MealPlan{},
		&DietPlan{},
		&DietPlanMeal{},
		&MealTracking{},
		&NutritionAnalysis{},
		&GroceryItem{},
		&RecipeReview{},
		&Notification{},
		&WeightEntry{},
		&ChatMessage{},
	}
}
