package entities

import (
	"time"

	"github.com/google/uuid"
)

type GlucoseReading struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"index" json:"user_id"`
	Value      float64   `json:"value"`             // mg/dL
	Context    string    `json:"context,omitempty"` // "fasting", "before_meal", "after_meal", ...
	Note       string    `json:"note,omitempty"`
	MeasuredAt time.Time `gorm:"type:timestamp" json:"measured_at"`
	CreatedAt  time.Time `gorm:"type:timestamp" json:"created_at"`

	User *User `gorm:"foreignKey:UserID"`
}

type Workout struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	Activity        string    `json:"activity"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned,omitempty"`
	Note            string    `json:"note,omitempty"`
	PerformedAt     time.Time `gorm:"type:timestamp" json:"performed_at"`
	CreatedAt       time.Time `gorm:"type:timestamp" json:"created_at"`

	User *User `gorm:"foreignKey:UserID"`
}
