package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

// Persistence keeps a snapshot of the state tree.
type Persistence interface {
	// Load reads the whole snapshot. A missing directory yields state.Initial.
	Load(ctx context.Context) (state.State, error)
	// Save writes what changed between prev and next.
	Save(prev, next state.State) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Snapshot kinds, one directory each under the base path.
const (
	KindTasks          = "tasks"
	KindHabits         = "habits"
	KindGoals          = "goals"
	KindNotes          = "notes"
	KindEvents         = "events"
	KindHighlights     = "highlights"
	KindBudgets        = "budgets"
	KindExpenses       = "expenses"
	KindIncome         = "income"
	KindFinancialGoals = "financial-goals"
	KindMeta           = "meta"

	metaKey = KindMeta + "/state"
)

// Kinds lists every snapshot directory.
func Kinds() []string {
	return []string{
		KindTasks, KindHabits, KindGoals, KindNotes, KindEvents, KindHighlights,
		KindBudgets, KindExpenses, KindIncome, KindFinancialGoals, KindMeta,
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, log *zap.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: log}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

// read bypasses the diskv cache so that writes made by other processes are
// seen on reload.
func (p *persistence) read(key string) ([]byte, error) {
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// meta carries the scalar parts of the tree.
type meta struct {
	DarkMode          bool                     `json:"darkMode"`
	ExpenseCategories []string                 `json:"expenseCategories"`
	ModuleTime        map[string]time.Duration `json:"moduleTime,omitempty"`
	DailyActivity     []state.Activity         `json:"dailyActivity,omitempty"`
}

// record describes how one collection is keyed and ordered on disk.
type record[T any] struct {
	kind    string
	id      func(T) string
	created func(T) time.Time
}

var (
	taskRecords      = record[entity.Task]{KindTasks, func(v entity.Task) string { return v.ID }, func(v entity.Task) time.Time { return v.CreatedAt.Time }}
	habitRecords     = record[entity.Habit]{KindHabits, func(v entity.Habit) string { return v.ID }, func(v entity.Habit) time.Time { return v.CreatedAt.Time }}
	goalRecords      = record[entity.Goal]{KindGoals, func(v entity.Goal) string { return v.ID }, func(v entity.Goal) time.Time { return v.CreatedAt.Time }}
	noteRecords      = record[entity.Note]{KindNotes, func(v entity.Note) string { return v.ID }, func(v entity.Note) time.Time { return v.CreatedAt.Time }}
	eventRecords     = record[entity.Event]{KindEvents, func(v entity.Event) string { return v.ID }, func(v entity.Event) time.Time { return v.CreatedAt.Time }}
	highlightRecords = record[entity.Highlight]{KindHighlights, func(v entity.Highlight) string { return v.ID }, func(v entity.Highlight) time.Time { return v.CreatedAt.Time }}
	budgetRecords    = record[entity.Budget]{KindBudgets, func(v entity.Budget) string { return v.ID }, func(v entity.Budget) time.Time { return v.CreatedAt.Time }}
	expenseRecords   = record[entity.Expense]{KindExpenses, func(v entity.Expense) string { return v.ID }, func(v entity.Expense) time.Time { return v.CreatedAt.Time }}
	incomeRecords    = record[entity.Income]{KindIncome, func(v entity.Income) string { return v.ID }, func(v entity.Income) time.Time { return v.CreatedAt.Time }}
	finGoalRecords   = record[entity.FinancialGoal]{KindFinancialGoals, func(v entity.FinancialGoal) string { return v.ID }, func(v entity.FinancialGoal) time.Time { return v.CreatedAt.Time }}
)

func (p *persistence) Load(ctx context.Context) (state.State, error) {
	s := state.Initial()
	keys := p.keysByKind(ctx)

	var err error
	if s.Tasks, err = loadRecords(p, taskRecords, keys); err != nil {
		return s, err
	}
	if s.Habits, err = loadRecords(p, habitRecords, keys); err != nil {
		return s, err
	}
	if s.Goals, err = loadRecords(p, goalRecords, keys); err != nil {
		return s, err
	}
	if s.Notes, err = loadRecords(p, noteRecords, keys); err != nil {
		return s, err
	}
	if s.Events, err = loadRecords(p, eventRecords, keys); err != nil {
		return s, err
	}
	if s.Highlights, err = loadRecords(p, highlightRecords, keys); err != nil {
		return s, err
	}
	if s.Finance.Budgets, err = loadRecords(p, budgetRecords, keys); err != nil {
		return s, err
	}
	if s.Finance.Expenses, err = loadRecords(p, expenseRecords, keys); err != nil {
		return s, err
	}
	if s.Finance.Income, err = loadRecords(p, incomeRecords, keys); err != nil {
		return s, err
	}
	if s.Finance.FinancialGoals, err = loadRecords(p, finGoalRecords, keys); err != nil {
		return s, err
	}

	if p.d.Has(metaKey) {
		val, err := p.read(metaKey)
		if err != nil {
			return s, fmt.Errorf("store: read meta: %w", err)
		}
		var m meta
		if err := json.Unmarshal(val, &m); err != nil {
			return s, fmt.Errorf("store: decode meta: %w", err)
		}
		s.DarkMode = m.DarkMode
		if m.ExpenseCategories != nil {
			s.Finance.ExpenseCategories = m.ExpenseCategories
		}
		s.Analytics.ModuleTime = m.ModuleTime
		s.Analytics.DailyActivity = m.DailyActivity
	}
	return s, nil
}

func (p *persistence) Save(prev, next state.State) error {
	changes := state.Diff(prev, next)
	if !changes.Any() {
		return nil
	}
	if changes.Tasks {
		if err := saveRecords(p, taskRecords, prev.Tasks, next.Tasks); err != nil {
			return err
		}
	}
	if changes.Habits {
		if err := saveRecords(p, habitRecords, prev.Habits, next.Habits); err != nil {
			return err
		}
	}
	if changes.Goals {
		if err := saveRecords(p, goalRecords, prev.Goals, next.Goals); err != nil {
			return err
		}
	}
	if changes.Notes {
		if err := saveRecords(p, noteRecords, prev.Notes, next.Notes); err != nil {
			return err
		}
	}
	if changes.Events {
		if err := saveRecords(p, eventRecords, prev.Events, next.Events); err != nil {
			return err
		}
	}
	if changes.Highlights {
		if err := saveRecords(p, highlightRecords, prev.Highlights, next.Highlights); err != nil {
			return err
		}
	}
	if changes.Budgets {
		if err := saveRecords(p, budgetRecords, prev.Finance.Budgets, next.Finance.Budgets); err != nil {
			return err
		}
	}
	if changes.Expenses {
		if err := saveRecords(p, expenseRecords, prev.Finance.Expenses, next.Finance.Expenses); err != nil {
			return err
		}
	}
	if changes.Income {
		if err := saveRecords(p, incomeRecords, prev.Finance.Income, next.Finance.Income); err != nil {
			return err
		}
	}
	if changes.FinancialGoals {
		if err := saveRecords(p, finGoalRecords, prev.Finance.FinancialGoals, next.Finance.FinancialGoals); err != nil {
			return err
		}
	}
	if changes.Meta {
		data, err := json.Marshal(meta{
			DarkMode:          next.DarkMode,
			ExpenseCategories: next.Finance.ExpenseCategories,
			ModuleTime:        next.Analytics.ModuleTime,
			DailyActivity:     next.Analytics.DailyActivity,
		})
		if err != nil {
			return fmt.Errorf("store: encode meta: %w", err)
		}
		if err := p.d.Write(metaKey, data); err != nil {
			return fmt.Errorf("store: write meta: %w", err)
		}
	}
	return nil
}

// saveRecords writes records that are new or differ from prev and erases the
// ones next no longer holds.
func saveRecords[T any](p *persistence, r record[T], prev, next []T) error {
	before := make(map[string]T, len(prev))
	for _, v := range prev {
		before[r.id(v)] = v
	}
	for _, v := range next {
		id := r.id(v)
		if old, ok := before[id]; ok {
			delete(before, id)
			if reflect.DeepEqual(old, v) {
				continue
			}
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("store: encode %s %s: %w", r.kind, id, err)
		}
		if err := p.d.Write(toKey(r.kind, id), data); err != nil {
			return fmt.Errorf("store: write %s %s: %w", r.kind, id, err)
		}
		p.log.Debug("write", zap.String("kind", r.kind), zap.String("id", id))
	}
	for id := range before {
		if err := p.d.Erase(toKey(r.kind, id)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: erase %s %s: %w", r.kind, id, err)
		}
		p.log.Debug("erase", zap.String("kind", r.kind), zap.String("id", id))
	}
	return nil
}

// loadRecords decodes every record of one kind. Unreadable files are logged
// and skipped so one bad file does not hide the rest.
func loadRecords[T any](p *persistence, r record[T], keys map[string][]string) ([]T, error) {
	var out []T
	for _, key := range keys[r.kind] {
		val, err := p.read(key)
		if err != nil {
			p.log.Warn("read", zap.String("key", key), zap.Error(err))
			continue
		}
		var v T
		if err := json.Unmarshal(val, &v); err != nil {
			p.log.Warn("decode", zap.String("key", key), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		lt, rt := r.created(out[i]), r.created(out[j])
		if lt.Equal(rt) {
			return r.id(out[i]) < r.id(out[j])
		}
		return lt.Before(rt)
	})
	return out, nil
}

func (p *persistence) keysByKind(ctx context.Context) map[string][]string {
	all := make(map[string][]string)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 {
			continue
		}
		all[pk.Path[0]] = append(all[pk.Path[0]], key)
	}
	return all
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}

// toKey makes `kind/encoded-id`. Ids are caller supplied, so they are encoded
// to stay a single path element.
func toKey(kind, id string) string {
	return fmt.Sprintf("%s/%s", kind, encodeID(id))
}

func encodeID(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}
