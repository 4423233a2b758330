package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateGoal     = "goal created successfully"
	MessageSuccessGetGoals       = "success get goals"
	MessageSuccessRecordProgress = "progress recorded successfully"

	MessageFailedCreateGoal     = "failed to create goal"
	MessageFailedGetGoals       = "failed to get goals"
	MessageFailedRecordProgress = "failed to record progress"

	ErrGoalNotFound = errors.New("goal not found")
	ErrInvalidDelta = errors.New("progress delta must be a positive finite number")
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

type (
	CreateGoalRequest struct {
		Title       string     `json:"title" validate:"required,max=200"`
		TargetValue float64    `json:"target_value" validate:"required,gt=0"`
		Unit        string     `json:"unit" validate:"required,max=50"`
		DueDate     *time.Time `json:"due_date,omitempty"`
	}

	RecordProgressRequest struct {
		Delta float64 `json:"delta" validate:"required"`
		Note  string  `json:"note,omitempty" validate:"max=500"`
	}

	GoalView struct {
		ID           string     `json:"id"`
		Title        string     `json:"title"`
		TargetValue  float64    `json:"target_value"`
		CurrentValue float64    `json:"current_value"`
		Unit         string     `json:"unit"`
		DueDate      *time.Time `json:"due_date,omitempty"`
		Status       string     `json:"status"`
		CreatedAt    time.Time  `json:"created_at"`
	}

	RecordProgressResponse struct {
		OK         bool     `json:"ok"`
		ProgressID string   `json:"progress_id"`
		Goal       GoalView `json:"goal"`
	}
)
