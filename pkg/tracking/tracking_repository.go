package tracking

import (
	"context"

	"gorm.io/gorm"

	"vitalog/entities"
)

type (
	TrackingRepository interface {
		CreateGlucoseReading(ctx context.Context, reading *entities.GlucoseReading) error
		GetGlucoseReadings(ctx context.Context, userID string) ([]*entities.GlucoseReading, error)
		CreateWorkout(ctx context.Context, workout *entities.Workout) error
		GetWorkouts(ctx context.Context, userID string) ([]*entities.Workout, error)
	}

	trackingRepository struct {
		db *gorm.DB
	}
)

func NewTrackingRepository(db *gorm.DB) TrackingRepository {
	return &trackingRepository{db: db}
}

func (r *trackingRepository) CreateGlucoseReading(ctx context.Context, reading *entities.GlucoseReading) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

func (r *trackingRepository) GetGlucoseReadings(ctx context.Context, userID string) ([]*entities.GlucoseReading, error) {
	var readings []*entities.GlucoseReading
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("measured_at desc").
		Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *trackingRepository) CreateWorkout(ctx context.Context, workout *entities.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *trackingRepository) GetWorkouts(ctx context.Context, userID string) ([]*entities.Workout, error) {
	var workouts []*entities.Workout
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("performed_at desc").
		Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}
