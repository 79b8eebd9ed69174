package calorie

import (
	"context"
	"slices"
	"strings"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

type CreateGoalInput struct {
	UserID        string
	DailyCalories float64
	Protein       *float64
	Carbs         *float64
	Fat           *float64
	ActivityLevel model.ActivityLevel
	Goal          model.GoalType
	// IsActive defaults to true when nil.
	IsActive *bool
}

type UpdateGoalInput struct {
	UserID        *string
	DailyCalories *float64
	Protein       *float64
	Carbs         *float64
	Fat           *float64
	ActivityLevel *model.ActivityLevel
	Goal          *model.GoalType
	IsActive      *bool
}

// CreateGoal appends a goal. An active goal deactivates every other goal.
func (r *Repository) CreateGoal(ctx context.Context, in CreateGoalInput) (model.CalorieGoal, error) {
	now := r.now()
	goal := model.CalorieGoal{
		ID:            r.newID(),
		UserID:        strings.TrimSpace(in.UserID),
		DailyCalories: in.DailyCalories,
		Protein:       in.Protein,
		Carbs:         in.Carbs,
		Fat:           in.Fat,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
		IsActive:      in.IsActive == nil || *in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}.Clone()
	if err := service.ValidateGoal(goal); err != nil {
		return model.CalorieGoal{}, r.fail(err)
	}

	if goal.IsActive {
		r.deactivateGoals("")
	}
	r.goals = append(r.goals, goal)
	r.emit(EventGoalCreated, goal.ID)
	return goal.Clone(), r.persistGoals(ctx)
}

func (r *Repository) UpdateGoal(ctx context.Context, id string, in UpdateGoalInput) (model.CalorieGoal, error) {
	i := r.goalIndex(id)
	if i < 0 {
		return model.CalorieGoal{}, r.fail(&service.NotFoundError{Kind: "calorie goal", ID: id})
	}

	goal := r.goals[i]
	if in.UserID != nil {
		goal.UserID = strings.TrimSpace(*in.UserID)
	}
	if in.DailyCalories != nil {
		goal.DailyCalories = *in.DailyCalories
	}
	if in.Protein != nil {
		goal.Protein = in.Protein
	}
	if in.Carbs != nil {
		goal.Carbs = in.Carbs
	}
	if in.Fat != nil {
		goal.Fat = in.Fat
	}
	if in.ActivityLevel != nil {
		goal.ActivityLevel = *in.ActivityLevel
	}
	if in.Goal != nil {
		goal.Goal = *in.Goal
	}
	if in.IsActive != nil {
		goal.IsActive = *in.IsActive
	}
	goal = goal.Clone()
	goal.UpdatedAt = r.now()
	if err := service.ValidateGoal(goal); err != nil {
		return model.CalorieGoal{}, r.fail(err)
	}

	if in.IsActive != nil && *in.IsActive {
		r.deactivateGoals(id)
	}
	r.goals[i] = goal
	r.emit(EventGoalUpdated, goal.ID)
	return goal.Clone(), r.persistGoals(ctx)
}

func (r *Repository) DeleteGoal(ctx context.Context, id string) error {
	i := r.goalIndex(id)
	if i < 0 {
		return r.fail(&service.NotFoundError{Kind: "calorie goal", ID: id})
	}
	r.goals = slices.Delete(r.goals, i, i+1)
	r.emit(EventGoalDeleted, id)
	return r.persistGoals(ctx)
}

// ActiveGoal returns the first active goal.
func (r *Repository) ActiveGoal() (model.CalorieGoal, bool) {
	g, ok := service.ActiveGoal(r.goals)
	return g.Clone(), ok
}

func (r *Repository) deactivateGoals(exceptID string) {
	for i := range r.goals {
		if r.goals[i].ID != exceptID {
			r.goals[i].IsActive = false
		}
	}
}
