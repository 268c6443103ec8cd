package state

import (
	"tableflip.dev/mindgrid/pkg/entity"
)

func taskID(t entity.Task) string                   { return t.ID }
func habitID(h entity.Habit) string                 { return h.ID }
func goalID(g entity.Goal) string                   { return g.ID }
func noteID(n entity.Note) string                   { return n.ID }
func eventID(e entity.Event) string                 { return e.ID }
func highlightID(h entity.Highlight) string         { return h.ID }
func budgetID(b entity.Budget) string               { return b.ID }
func expenseID(e entity.Expense) string             { return e.ID }
func incomeID(i entity.Income) string               { return i.ID }
func financialGoalID(g entity.FinancialGoal) string { return g.ID }

func indexOf[T any](items []T, id string, key func(T) string) int {
	if id == "" {
		return -1
	}
	for i := range items {
		if key(items[i]) == id {
			return i
		}
	}
	return -1
}

func find[T any](items []T, id string, key func(T) string) (T, bool) {
	if i := indexOf(items, id, key); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// insert appends item to a fresh copy of items. Items without an id or with
// an id already in use are rejected so ids stay unique. Deleted ids are not
// remembered; callers that must never reuse an id mint it with entity.NewID.
func insert[T any](items []T, item T, key func(T) string) ([]T, bool) {
	id := key(item)
	if id == "" || indexOf(items, id, key) >= 0 {
		return items, false
	}
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item), true
}

// replace swaps the element with item's id for item.
func replace[T any](items []T, item T, key func(T) string) ([]T, bool) {
	return modify(items, key(item), key, func(T) T { return item })
}

// modify rewrites the element with the given id through fn.
func modify[T any](items []T, id string, key func(T) string, fn func(T) T) ([]T, bool) {
	i := indexOf(items, id, key)
	if i < 0 {
		return items, false
	}
	out := make([]T, len(items))
	copy(out, items)
	out[i] = fn(out[i])
	return out, true
}

// remove drops the element with the given id.
func remove[T any](items []T, id string, key func(T) string) ([]T, bool) {
	i := indexOf(items, id, key)
	if i < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), true
}
