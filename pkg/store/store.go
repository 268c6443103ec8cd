package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/mindgrid/pkg/state"
)

// ErrNoPersistence is returned by operations that need a snapshot on disk
// when the store runs purely in memory.
var ErrNoPersistence = errors.New("store: no persistence configured")

// Listener observes every state transition.
type Listener func(prev, next state.State)

// Store owns the current state tree. Dispatches are serialised so concurrent
// callers observe a single, ordered history.
type Store struct {
	mu      sync.Mutex
	current state.State
	persist Persistence
	log     *zap.Logger

	subMu  sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithPersistence writes every transition to p.
func WithPersistence(p Persistence) Option {
	return func(s *Store) {
		s.persist = p
	}
}

// New creates a store holding initial.
func New(initial state.State, opts ...Option) *Store {
	s := &Store{current: initial, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the snapshot from p and returns a store that keeps writing to it.
func Open(ctx context.Context, p Persistence, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, ErrNoPersistence
	}
	initial, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(initial, append(opts, WithPersistence(p))...), nil
}

// State returns the current tree. Callers must treat it as read-only.
func (s *Store) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Persistent reports whether transitions are written to disk.
func (s *Store) Persistent() bool {
	return s.persist != nil
}

// Dispatch reduces a into the current state, writes the changed branches and
// then notifies listeners. The new state is installed even when the write
// fails; the error is returned so callers can report it.
func (s *Store) Dispatch(a state.Action) (state.State, error) {
	s.mu.Lock()
	prev := s.current
	next := state.Reduce(prev, a)
	s.current = next

	var err error
	if _, hydrate := a.(state.Hydrate); !hydrate && s.persist != nil {
		if err = s.persist.Save(prev, next); err != nil {
			s.log.Error("persist", zap.String("action", kindOf(a)), zap.Error(err))
		}
	}
	s.mu.Unlock()

	s.log.Debug("dispatch", zap.String("action", kindOf(a)), zap.Bool("changed", state.Diff(prev, next).Any()))
	s.notify(prev, next)
	return next, err
}

// Subscribe registers fn and returns a function that removes it. Listeners
// run on the dispatching goroutine after the lock is released, in the order
// they subscribed.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(prev, next state.State) {
	s.subMu.Lock()
	subs := s.subs
	s.subMu.Unlock()
	for _, sub := range subs {
		sub.fn(prev, next)
	}
}

// Reload replaces the state with the snapshot on disk, for example after
// another process edited it.
func (s *Store) Reload(ctx context.Context) (state.State, error) {
	if s.persist == nil {
		return state.State{}, ErrNoPersistence
	}
	loaded, err := s.persist.Load(ctx)
	if err != nil {
		return state.State{}, fmt.Errorf("store: reload: %w", err)
	}
	return s.Dispatch(state.Hydrate{State: loaded})
}

// Watch forwards change notifications from the persistence layer.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if s.persist == nil {
		return nil, ErrNoPersistence
	}
	return s.persist.Watch(ctx)
}

func kindOf(a state.Action) string {
	if a == nil {
		return "<nil>"
	}
	return string(a.Kind())
}
