package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/store"
)

// Service provides the operations shared by the CLI, the dashboard and the
// MCP server. It validates input, assigns ids and times, and dispatches
// actions to the store.
type Service struct {
	Store *store.Store
	// Now is the clock used to stamp records. Defaults to time.Now.
	Now func() time.Time
	Log *zap.Logger
}

var (
	// ErrNotFound is returned when an id does not name an existing record.
	ErrNotFound = errors.New("app: not found")
	ErrNoStore  = errors.New("app: no store configured")
)

// NewService wraps st.
func NewService(st *store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: st, Now: time.Now, Log: log}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// State returns the current state tree.
func (s *Service) State() (state.State, error) {
	if s.Store == nil {
		return state.State{}, ErrNoStore
	}
	return s.Store.State(), nil
}

func (s *Service) dispatch(a state.Action) (state.State, error) {
	if s.Store == nil {
		return state.State{}, ErrNoStore
	}
	next, err := s.Store.Dispatch(a)
	if err != nil {
		return next, fmt.Errorf("app: %s: %w", a.Kind(), err)
	}
	return next, nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	return s.Store.Watch(ctx)
}

// Reload rereads the snapshot from disk.
func (s *Service) Reload(ctx context.Context) (state.State, error) {
	if s.Store == nil {
		return state.State{}, ErrNoStore
	}
	return s.Store.Reload(ctx)
}

// ToggleDarkMode flips the theme preference and returns the new value.
func (s *Service) ToggleDarkMode(ctx context.Context) (bool, error) {
	next, err := s.dispatch(state.ToggleDarkMode{})
	return next.DarkMode, err
}

func timestampPtr(t *time.Time) *entity.Timestamp {
	if t == nil {
		return nil
	}
	return entity.Ptr(*t)
}
