package app

import (
	"context"
	"strings"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

// TaskInput is the editable part of a task.
type TaskInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

func (in TaskInput) normalize() TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))
	return in
}

// AddTask validates in and stores a new open task.
func (s *Service) AddTask(ctx context.Context, in TaskInput) (entity.Task, error) {
	in = in.normalize()
	if err := check(in); err != nil {
		return entity.Task{}, err
	}
	priority, _ := entity.ParsePriority(in.Priority, entity.PriorityMedium)
	t := entity.Task{
		ID:          entity.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     timestampPtr(in.DueDate),
		CreatedAt:   entity.At(s.now()),
	}
	if _, err := s.dispatch(state.AddTask{Task: t}); err != nil {
		return t, err
	}
	return t, nil
}

// UpdateTask replaces the editable fields of task id.
func (s *Service) UpdateTask(ctx context.Context, id string, in TaskInput) (entity.Task, error) {
	in = in.normalize()
	if err := check(in); err != nil {
		return entity.Task{}, err
	}
	st, err := s.State()
	if err != nil {
		return entity.Task{}, err
	}
	t, ok := st.Task(id)
	if !ok {
		return entity.Task{}, notFound("task", id)
	}
	t.Title = in.Title
	t.Description = in.Description
	t.Priority, _ = entity.ParsePriority(in.Priority, t.Priority)
	t.DueDate = timestampPtr(in.DueDate)
	if _, err := s.dispatch(state.UpdateTask{Task: t}); err != nil {
		return t, err
	}
	return t, nil
}

// ToggleTask flips completion and returns the updated task.
func (s *Service) ToggleTask(ctx context.Context, id string) (entity.Task, error) {
	next, err := s.dispatchExisting(state.ToggleTask{ID: id, At: s.now()}, func(st state.State) bool {
		_, ok := st.Task(id)
		return ok
	}, "task", id)
	if err != nil {
		return entity.Task{}, err
	}
	t, _ := next.Task(id)
	return t, nil
}

// DeleteTask removes the task and every reference to it.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	_, err := s.dispatchExisting(state.DeleteTask{ID: id}, func(st state.State) bool {
		_, ok := st.Task(id)
		return ok
	}, "task", id)
	return err
}

// TaskStatus filters tasks by completion.
type TaskStatus string

const (
	TasksAll       TaskStatus = "all"
	TasksActive    TaskStatus = "active"
	TasksCompleted TaskStatus = "completed"
)

// TaskFilter narrows Tasks.
type TaskFilter struct {
	Status   TaskStatus
	Priority entity.Priority
}

// Tasks lists tasks in insertion order.
func (s *Service) Tasks(ctx context.Context, f TaskFilter) ([]entity.Task, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Task, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		switch f.Status {
		case TasksActive:
			if t.Completed {
				continue
			}
		case TasksCompleted:
			if !t.Completed {
				continue
			}
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// dispatchExisting checks exists against the current state before
// dispatching a, so callers get ErrNotFound rather than a silent no-op.
func (s *Service) dispatchExisting(a state.Action, exists func(state.State) bool, kind, id string) (state.State, error) {
	st, err := s.State()
	if err != nil {
		return st, err
	}
	if !exists(st) {
		return st, notFound(kind, id)
	}
	return s.dispatch(a)
}
