package app

import (
	"context"
	"strings"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

type GoalInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	TargetDate  *time.Time `json:"targetDate"`
	Progress    int        `json:"progress" validate:"gte=0,lte=100"`
	Category    string     `json:"category" validate:"omitempty,oneof=personal health career finance learning other"`
	Status      string     `json:"status" validate:"omitempty,oneof=active completed paused"`
}

func (s *Service) AddGoal(ctx context.Context, in GoalInput) (entity.Goal, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := check(in); err != nil {
		return entity.Goal{}, err
	}
	category, _ := entity.ParseGoalCategory(in.Category)
	status, _ := entity.ParseGoalStatus(in.Status)
	now := s.now()
	g := entity.Goal{
		ID:          entity.NewID(),
		Title:       in.Title,
		Description: in.Description,
		TargetDate:  timestampPtr(in.TargetDate),
		Progress:    in.Progress,
		Category:    category,
		Status:      status,
		CreatedAt:   entity.At(now),
	}
	if status == entity.GoalCompleted {
		g.CompletedAt = entity.Ptr(now)
	}
	if _, err := s.dispatch(state.AddGoal{Goal: g}); err != nil {
		return g, err
	}
	return g, nil
}

// SetGoalProgress records progress in 0..100.
func (s *Service) SetGoalProgress(ctx context.Context, id string, progress int) (entity.Goal, error) {
	if progress < 0 || progress > 100 {
		return entity.Goal{}, invalid("progress", "must be between 0 and 100")
	}
	return s.updateGoal(id, func(g entity.Goal) entity.Goal {
		g.Progress = progress
		return g
	})
}

// SetGoalStatus moves a goal through its lifecycle. Completing stamps
// CompletedAt; leaving completed clears it.
func (s *Service) SetGoalStatus(ctx context.Context, id string, raw string) (entity.Goal, error) {
	status, err := entity.ParseGoalStatus(raw)
	if err != nil {
		return entity.Goal{}, invalid("status", "must be one of active, completed, paused")
	}
	now := s.now()
	return s.updateGoal(id, func(g entity.Goal) entity.Goal {
		if status == entity.GoalCompleted && g.Status != entity.GoalCompleted {
			g.CompletedAt = entity.Ptr(now)
		}
		if status != entity.GoalCompleted {
			g.CompletedAt = nil
		}
		g.Status = status
		return g
	})
}

func (s *Service) updateGoal(id string, fn func(entity.Goal) entity.Goal) (entity.Goal, error) {
	st, err := s.State()
	if err != nil {
		return entity.Goal{}, err
	}
	g, ok := st.Goal(id)
	if !ok {
		return entity.Goal{}, notFound("goal", id)
	}
	g = fn(g)
	if _, err := s.dispatch(state.UpdateGoal{Goal: g}); err != nil {
		return g, err
	}
	return g, nil
}

func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	_, err := s.dispatchExisting(state.DeleteGoal{ID: id}, func(st state.State) bool {
		_, ok := st.Goal(id)
		return ok
	}, "goal", id)
	return err
}

func (s *Service) Goals(ctx context.Context) ([]entity.Goal, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	return st.Goals, nil
}
