package goal

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vitalog/domain"
	"vitalog/entities"
)

type (
	GoalRepository interface {
		CreateGoal(ctx context.Context, goal *entities.Goal) error
		GetGoalsByUser(ctx context.Context, userID string) ([]*entities.Goal, error)
		AddProgress(ctx context.Context, goalID, userID string, event *entities.GoalProgress) (*entities.Goal, error)
	}

	goalRepository struct {
		db *gorm.DB
	}
)

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) CreateGoal(ctx context.Context, goal *entities.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) GetGoalsByUser(ctx context.Context, userID string) ([]*entities.Goal, error) {
	var goals []*entities.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// AddProgress appends the event and rolls its delta into the goal inside one
// transaction, holding a row lock on the goal while the new total is
// computed. Concurrent calls serialize on the lock, so current_value always
// equals the ledger sum and an event is never recorded without its goal
// update landing too. Status flips to completed when the total reaches the
// target and never flips back.
func (r *goalRepository) AddProgress(ctx context.Context, goalID, userID string, event *entities.GoalProgress) (*entities.Goal, error) {
	var goal entities.Goal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", goalID, userID).
			First(&goal).Error; err != nil {
			return err
		}

		event.GoalID = goal.ID
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		goal.CurrentValue += event.Delta
		if goal.CurrentValue >= goal.TargetValue {
			goal.Status = domain.GoalStatusCompleted
		}
		goal.UpdatedAt = time.Now()

		return tx.Model(&entities.Goal{}).
			Where("id = ?", goal.ID).
			Updates(map[string]any{
				"current_value": goal.CurrentValue,
				"status":        goal.Status,
				"updated_at":    goal.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
