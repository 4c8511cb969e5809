package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	assignID(&n.ID)
	return nil
}

// WeightEntry is a body weight in kilograms logged for a day (YYYY-MM-DD).
type WeightEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Weight    float64   `gorm:"type:decimal(5,2);not null" json:"weight"`
	Date      string    `gorm:"size:10;not null" json:"date"`
}

func (WeightEntry) TableName() string {
	return "weight_tracking"
}

func (w *WeightEntry) BeforeCreate(tx *gorm.DB) error {
	assignID(&w.ID)
	return nil
}

// ChatMessage is one exchange with the recipe assistant.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text;not null" json:"response"`
}

func (ChatMessage) TableName() string {
	return "chat_history"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}
