package domain

import (
	"time"
)

var (
	MessageSuccessAddGlucose  = "glucose reading recorded"
	MessageSuccessGetGlucose  = "success get glucose readings"
	MessageSuccessAddWorkout  = "workout recorded"
	MessageSuccessGetWorkouts = "success get workouts"

	MessageFailedAddGlucose  = "failed to record glucose reading"
	MessageFailedGetGlucose  = "failed to get glucose readings"
	MessageFailedAddWorkout  = "failed to record workout"
	MessageFailedGetWorkouts = "failed to get workouts"
)

type (
	AddGlucoseRequest struct {
		Value      float64    `json:"value" validate:"required,gt=0"`
		Context    string     `json:"context,omitempty" validate:"omitempty,oneof=fasting before_meal after_meal bedtime random"`
		Note       string     `json:"note,omitempty" validate:"max=500"`
		MeasuredAt *time.Time `json:"measured_at,omitempty"`
	}

	AddWorkoutRequest struct {
		Activity        string     `json:"activity" validate:"required,max=100"`
		DurationMinutes int        `json:"duration_minutes" validate:"required,gt=0"`
		CaloriesBurned  float64    `json:"calories_burned,omitempty" validate:"gte=0"`
		Note            string     `json:"note,omitempty" validate:"max=500"`
		PerformedAt     *time.Time `json:"performed_at,omitempty"`
	}

	GlucoseReadingView struct {
		ID         string    `json:"id"`
		Value      float64   `json:"value"`
		Context    string    `json:"context,omitempty"`
		Note       string    `json:"note,omitempty"`
		MeasuredAt time.Time `json:"measured_at"`
	}

	WorkoutView struct {
		ID              string    `json:"id"`
		Activity        string    `json:"activity"`
		DurationMinutes int       `json:"duration_minutes"`
		CaloriesBurned  float64   `json:"calories_burned,omitempty"`
		Note            string    `json:"note,omitempty"`
		PerformedAt     time.Time `json:"performed_at"`
	}
)
