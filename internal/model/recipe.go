package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	Category     string           `gorm:"size:50" json:"category"`
	Cuisine      string           `gorm:"size:50" json:"cuisine"`
	Difficulty   string           `gorm:"size:20" json:"difficulty"`
	CookingTime  string           `gorm:"size:50" json:"cooking_time"`
	ImageURL     string           `gorm:"size:255" json:"image_url"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Calories     float64          `gorm:"type:float" json:"calories"`
	Protein      float64          `gorm:"type:float" json:"protein"`
	Carbs        float64          `gorm:"type:float" json:"carbs"`
	Fat          float64          `gorm:"type:float" json:"fat"`
	Embedding    *pgvector.Vector `gorm:"type:vector(768)" json:"-"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// HasMacros reports whether any nutrition value is set.
func (r *Recipe) HasMacros() bool {
	return r.Calories != 0 || r.Protein != 0 || r.Carbs != 0 || r.Fat != 0
}

// ApplyMacros copies m onto the recipe.
func (r *Recipe) ApplyMacros(m Macros) {
	r.Calories = m.Calories
	r.Protein = m.Protein
	r.Carbs = m.Carbs
	r.Fat = m.Fat
}
