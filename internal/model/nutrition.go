package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Macros represents nutrition information for a recipe.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionSummary is the structured analysis returned by the AI.
type NutritionSummary struct {
	Macros
	Vitamins []string `json:"vitamins"`
	Benefits []string `json:"benefits"`
	Concerns []string `json:"concerns"`
	Summary  string   `json:"summary"`
}

// NutritionAnalysis is a saved analysis. Names are unique per user.
type NutritionAnalysis struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_nutrition_user_name" json:"user_id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex:idx_nutrition_user_name" json:"name"`
	Ingredients datatypes.JSON `gorm:"not null" json:"ingredients"`
	Analysis    datatypes.JSON `gorm:"not null" json:"analysis"`
}

func (NutritionAnalysis) TableName() string {
	return "nutrition_analysis"
}

func (n *NutritionAnalysis) BeforeCreate(tx *gorm.DB) error {
	assignID(&n.ID)
	return nil
}
