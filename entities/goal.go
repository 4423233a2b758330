package entities

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID  `gorm:"index" json:"user_id"`
	Title        string     `json:"title"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit"`
	DueDate      *time.Time `gorm:"type:timestamp" json:"due_date,omitempty"`
	Status       string     `json:"status"` // "active", "completed"

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

// GoalProgress rows are append-only; they are the audit trail backing a
// goal's current_value and are never mutated or deleted.
type GoalProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	GoalID    uuid.UUID `gorm:"index" json:"goal_id"`
	Delta     float64   `json:"delta"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Goal *Goal `gorm:"foreignKey:GoalID"`
}
