package app

import (
	"context"
	"strings"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

type HabitInput struct {
	Name        string `json:"name" validate:"required"`
	Frequency   string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	TargetCount int    `json:"targetCount" validate:"min=1"`
}

func (s *Service) AddHabit(ctx context.Context, in HabitInput) (entity.Habit, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Frequency = strings.ToLower(strings.TrimSpace(in.Frequency))
	if in.TargetCount == 0 {
		in.TargetCount = 1
	}
	if err := check(in); err != nil {
		return entity.Habit{}, err
	}
	freq, _ := entity.ParseFrequency(in.Frequency)
	h := entity.Habit{
		ID:          entity.NewID(),
		Name:        in.Name,
		Frequency:   freq,
		TargetCount: in.TargetCount,
		CreatedAt:   entity.At(s.now()),
	}
	if _, err := s.dispatch(state.AddHabit{Habit: h}); err != nil {
		return h, err
	}
	return h, nil
}

// CompleteHabit first lapses streaks that missed a period, then counts a
// completion for id.
func (s *Service) CompleteHabit(ctx context.Context, id string) (entity.Habit, error) {
	st, err := s.State()
	if err != nil {
		return entity.Habit{}, err
	}
	if _, ok := st.Habit(id); !ok {
		return entity.Habit{}, notFound("habit", id)
	}
	now := s.now()
	if _, err := s.dispatch(state.ResetHabitStreaks{At: now}); err != nil {
		return entity.Habit{}, err
	}
	next, err := s.dispatch(state.CompleteHabit{ID: id, At: now})
	if err != nil {
		return entity.Habit{}, err
	}
	h, _ := next.Habit(id)
	return h, nil
}

// ResetStreaks zeroes the streak of every habit whose period lapsed.
func (s *Service) ResetStreaks(ctx context.Context) ([]entity.Habit, error) {
	next, err := s.dispatch(state.ResetHabitStreaks{At: s.now()})
	return next.Habits, err
}

func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	_, err := s.dispatchExisting(state.DeleteHabit{ID: id}, func(st state.State) bool {
		_, ok := st.Habit(id)
		return ok
	}, "habit", id)
	return err
}

// Habits lists habits with streaks as of now. Lapsed streaks read as zero
// without changing the store.
func (s *Service) Habits(ctx context.Context) ([]entity.Habit, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	return state.Reduce(st, state.ResetHabitStreaks{At: s.now()}).Habits, nil
}
