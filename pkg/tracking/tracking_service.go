package tracking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitalog/domain"
	"vitalog/entities"
)

type (
	TrackingService interface {
		AddGlucoseReading(ctx context.Context, req domain.AddGlucoseRequest, userID string) (domain.GlucoseReadingView, error)
		GetGlucoseReadings(ctx context.Context, userID string) ([]domain.GlucoseReadingView, error)
		AddWorkout(ctx context.Context, req domain.AddWorkoutRequest, userID string) (domain.WorkoutView, error)
		GetWorkouts(ctx context.Context, userID string) ([]domain.WorkoutView, error)
	}

	trackingService struct {
		trackingRepository TrackingRepository
	}
)

func NewTrackingService(trackingRepository TrackingRepository) TrackingService {
	return &trackingService{trackingRepository: trackingRepository}
}

func (s *trackingService) AddGlucoseReading(ctx context.Context, req domain.AddGlucoseRequest, userID string) (domain.GlucoseReadingView, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return domain.GlucoseReadingView{}, err
	}

	measuredAt := time.Now()
	if req.MeasuredAt != nil {
		measuredAt = *req.MeasuredAt
	}

	reading := &entities.GlucoseReading{
		ID:         uuid.New(),
		UserID:     owner,
		Value:      req.Value,
		Context:    req.Context,
		Note:       req.Note,
		MeasuredAt: measuredAt,
		CreatedAt:  time.Now(),
	}
	if err := s.trackingRepository.CreateGlucoseReading(ctx, reading); err != nil {
		return domain.GlucoseReadingView{}, err
	}
	return toGlucoseView(reading), nil
}

func (s *trackingService) GetGlucoseReadings(ctx context.Context, userID string) ([]domain.GlucoseReadingView, error) {
	readings, err := s.trackingRepository.GetGlucoseReadings(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.GlucoseReadingView, 0, len(readings))
	for _, r := range readings {
		views = append(views, toGlucoseView(r))
	}
	return views, nil
}

func (s *trackingService) AddWorkout(ctx context.Context, req domain.AddWorkoutRequest, userID string) (domain.WorkoutView, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return domain.WorkoutView{}, err
	}

	performedAt := time.Now()
	if req.PerformedAt != nil {
		performedAt = *req.PerformedAt
	}

	workout := &entities.Workout{
		ID:              uuid.New(),
		UserID:          owner,
		Activity:        req.Activity,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Note:            req.Note,
		PerformedAt:     performedAt,
		CreatedAt:       time.Now(),
	}
	if err := s.trackingRepository.CreateWorkout(ctx, workout); err != nil {
		return domain.WorkoutView{}, err
	}
	return toWorkoutView(workout), nil
}

func (s *trackingService) GetWorkouts(ctx context.Context, userID string) ([]domain.WorkoutView, error) {
	workouts, err := s.trackingRepository.GetWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.WorkoutView, 0, len(workouts))
	for _, w := range workouts {
		views = append(views, toWorkoutView(w))
	}
	return views, nil
}

func toGlucoseView(reading *entities.GlucoseReading) domain.GlucoseReadingView {
	return domain.GlucoseReadingView{
		ID:         reading.ID.String(),
		Value:      reading.Value,
		Context:    reading.Context,
		Note:       reading.Note,
		MeasuredAt: reading.MeasuredAt,
	}
}

func toWorkoutView(workout *entities.Workout) domain.WorkoutView {
	return domain.WorkoutView{
		ID:              workout.ID.String(),
		Activity:        workout.Activity,
		DurationMinutes: workout.DurationMinutes,
		CaloriesBurned:  workout.CaloriesBurned,
		Note:            workout.Note,
		PerformedAt:     workout.PerformedAt,
	}
}
