package goal

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vitalog/domain"
	"vitalog/entities"
)

type (
	GoalService interface {
		CreateGoal(ctx context.Context, req domain.CreateGoalRequest, userID string) (domain.GoalView, error)
		GetGoals(ctx context.Context, userID string) ([]domain.GoalView, error)
		RecordProgress(ctx context.Context, goalID string, req domain.RecordProgressRequest, userID string) (domain.RecordProgressResponse, error)
	}

	goalService struct {
		goalRepository GoalRepository
	}
)

func NewGoalService(goalRepository GoalRepository) GoalService {
	return &goalService{goalRepository: goalRepository}
}

func (s *goalService) CreateGoal(ctx context.Context, req domain.CreateGoalRequest, userID string) (domain.GoalView, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return domain.GoalView{}, err
	}

	goal := &entities.Goal{
		ID:          uuid.New(),
		UserID:      owner,
		Title:       req.Title,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		DueDate:     req.DueDate,
		Status:      domain.GoalStatusActive,
	}
	if err := s.goalRepository.CreateGoal(ctx, goal); err != nil {
		return domain.GoalView{}, err
	}
	return toView(goal), nil
}

func (s *goalService) GetGoals(ctx context.Context, userID string) ([]domain.GoalView, error) {
	goals, err := s.goalRepository.GetGoalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, toView(g))
	}
	return views, nil
}

// RecordProgress appends one immutable ledger event and rolls its delta
// into the goal's current value. The repository applies the increment under
// a row lock; the total here never comes from a stale snapshot.
func (s *goalService) RecordProgress(ctx context.Context, goalID string, req domain.RecordProgressRequest, userID string) (domain.RecordProgressResponse, error) {
	if req.Delta <= 0 || math.IsNaN(req.Delta) || math.IsInf(req.Delta, 0) {
		return domain.RecordProgressResponse{}, domain.ErrInvalidDelta
	}

	event := &entities.GoalProgress{
		ID:        uuid.New(),
		Delta:     req.Delta,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}

	goal, err := s.goalRepository.AddProgress(ctx, goalID, userID, event)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecordProgressResponse{}, domain.ErrGoalNotFound
		}
		return domain.RecordProgressResponse{}, err
	}

	return domain.RecordProgressResponse{
		OK:         true,
		ProgressID: event.ID.String(),
		Goal:       toView(goal),
	}, nil
}

func toView(goal *entities.Goal) domain.GoalView {
	return domain.GoalView{
		ID:           goal.ID.String(),
		Title:        goal.Title,
		TargetValue:  goal.TargetValue,
		CurrentValue: goal.CurrentValue,
		Unit:         goal.Unit,
		DueDate:      goal.DueDate,
		Status:       goal.Status,
		CreatedAt:    goal.CreatedAt,
	}
}
