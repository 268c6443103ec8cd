package state

import (
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/link"
)

// Reduce applies a to s and returns the resulting state. It never panics:
// unknown actions, and actions naming ids that do not exist, return s
// unchanged. Only the touched branch is copied.
//
// Link actions do not check that the referenced task or goal exists; the
// service layer does that before dispatching, and deletes sweep references.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddTask:
		if tasks, ok := insert(s.Tasks, a.Task, taskID); ok {
			s.Tasks = tasks
		}
	case UpdateTask:
		if tasks, ok := replace(s.Tasks, a.Task, taskID); ok {
			s.Tasks = tasks
		}
	case ToggleTask:
		if tasks, ok := modify(s.Tasks, a.ID, taskID, func(t entity.Task) entity.Task {
			t.Completed = !t.Completed
			if t.Completed {
				t.CompletedAt = entity.Ptr(a.At)
			} else {
				t.CompletedAt = nil
			}
			return t
		}); ok {
			s.Tasks = tasks
		}
	case DeleteTask:
		if tasks, ok := remove(s.Tasks, a.ID, taskID); ok {
			s.Tasks = tasks
			s.Notes, s.Events = link.SweepTask(s.Notes, s.Events, a.ID)
		}

	case AddHabit:
		if habits, ok := insert(s.Habits, a.Habit, habitID); ok {
			s.Habits = habits
		}
	case UpdateHabit:
		if habits, ok := replace(s.Habits, a.Habit, habitID); ok {
			s.Habits = habits
		}
	case DeleteHabit:
		if habits, ok := remove(s.Habits, a.ID, habitID); ok {
			s.Habits = habits
		}
	case CompleteHabit:
		if habits, ok := modify(s.Habits, a.ID, habitID, func(h entity.Habit) entity.Habit {
			return completeHabit(h, a.At)
		}); ok {
			s.Habits = habits
		}
	case ResetHabitStreaks:
		s.Habits = resetStreaks(s.Habits, a.At)

	case AddGoal:
		if goals, ok := insert(s.Goals, a.Goal, goalID); ok {
			s.Goals = goals
		}
	case UpdateGoal:
		if goals, ok := replace(s.Goals, a.Goal, goalID); ok {
			s.Goals = goals
		}
	case DeleteGoal:
		if goals, ok := remove(s.Goals, a.ID, goalID); ok {
			s.Goals = goals
			s.Notes, s.Events = link.SweepGoal(s.Notes, s.Events, a.ID)
		}

	case AddNote:
		s = addNote(s, a.Note)
	case UpdateNote:
		s = updateNote(s, a.Note)
	case DeleteNote:
		if notes, ok := remove(s.Notes, a.ID, noteID); ok {
			s.Notes, s.Highlights = link.SweepNote(notes, s.Highlights, a.ID)
		}

	case AddEvent:
		if events, ok := insert(s.Events, link.ExclusiveEvent(a.Event), eventID); ok {
			s.Events = events
		}
	case UpdateEvent:
		if events, ok := replace(s.Events, link.ExclusiveEvent(a.Event), eventID); ok {
			s.Events = events
		}
	case DeleteEvent:
		if events, ok := remove(s.Events, a.ID, eventID); ok {
			s.Events = events
		}

	case AddHighlight:
		if highlights, ok := insert(s.Highlights, a.Highlight, highlightID); ok {
			s.Highlights = highlights
			if _, ok := s.Note(a.Highlight.LinkedNoteID); ok {
				s.Notes, s.Highlights = link.PairHighlight(s.Notes, s.Highlights, a.Highlight.ID, a.Highlight.LinkedNoteID)
			}
		}
	case UpdateHighlight:
		s = updateHighlight(s, a.Highlight)
	case DeleteHighlight:
		if highlights, ok := remove(s.Highlights, a.ID, highlightID); ok {
			s.Highlights = highlights
			s.Notes = link.SweepHighlight(s.Notes, a.ID)
		}

	case AddBudget:
		if budgets, ok := insert(s.Finance.Budgets, a.Budget, budgetID); ok {
			s.Finance.Budgets = budgets
		}
	case UpdateBudget:
		if budgets, ok := replace(s.Finance.Budgets, a.Budget, budgetID); ok {
			s.Finance.Budgets = budgets
		}
	case DeleteBudget:
		if budgets, ok := remove(s.Finance.Budgets, a.ID, budgetID); ok {
			s.Finance.Budgets = budgets
		}

	case AddExpense:
		if expenses, ok := insert(s.Finance.Expenses, a.Expense, expenseID); ok {
			s.Finance.Expenses = expenses
		}
	case UpdateExpense:
		if expenses, ok := replace(s.Finance.Expenses, a.Expense, expenseID); ok {
			s.Finance.Expenses = expenses
		}
	case DeleteExpense:
		if expenses, ok := remove(s.Finance.Expenses, a.ID, expenseID); ok {
			s.Finance.Expenses = expenses
		}

	case AddIncome:
		if income, ok := insert(s.Finance.Income, a.Income, incomeID); ok {
			s.Finance.Income = income
		}
	case UpdateIncome:
		if income, ok := replace(s.Finance.Income, a.Income, incomeID); ok {
			s.Finance.Income = income
		}
	case DeleteIncome:
		if income, ok := remove(s.Finance.Income, a.ID, incomeID); ok {
			s.Finance.Income = income
		}

	case AddFinancialGoal:
		if goals, ok := insert(s.Finance.FinancialGoals, a.Goal, financialGoalID); ok {
			s.Finance.FinancialGoals = goals
		}
	case UpdateFinancialGoal:
		if goals, ok := replace(s.Finance.FinancialGoals, a.Goal, financialGoalID); ok {
			s.Finance.FinancialGoals = goals
		}
	case DeleteFinancialGoal:
		if goals, ok := remove(s.Finance.FinancialGoals, a.ID, financialGoalID); ok {
			s.Finance.FinancialGoals = goals
		}

	case LinkNoteToTask:
		s.Notes = link.NoteToTask(s.Notes, a.NoteID, a.TaskID)
	case UnlinkNoteFromTask:
		s.Notes = link.NoteFromTask(s.Notes, a.NoteID, a.TaskID)
	case LinkNoteToGoal:
		s.Notes = link.NoteToGoal(s.Notes, a.NoteID, a.GoalID)
	case UnlinkNoteFromGoal:
		s.Notes = link.NoteFromGoal(s.Notes, a.NoteID, a.GoalID)
	case LinkNotes:
		s.Notes = link.Notes(s.Notes, a.A, a.B)
	case UnlinkNotes:
		s.Notes = link.UnlinkNotes(s.Notes, a.A, a.B)
	case LinkEventToTask:
		s.Events = link.EventToTask(s.Events, a.EventID, a.TaskID)
	case LinkEventToProject:
		s.Events = link.EventToProject(s.Events, a.EventID, a.ProjectID)
	case UnlinkEvent:
		s.Events = link.UnlinkEvent(s.Events, a.EventID)
	case LinkHighlightToNote:
		_, hasHighlight := s.Highlight(a.HighlightID)
		_, hasNote := s.Note(a.NoteID)
		if hasHighlight && hasNote {
			s.Notes, s.Highlights = link.PairHighlight(s.Notes, s.Highlights, a.HighlightID, a.NoteID)
		}
	case RepairLinks:
		s = s.withGraph(link.Repair(s.Graph()))

	case ToggleDarkMode:
		s.DarkMode = !s.DarkMode
	case TrackModuleTime:
		if a.Module != "" && a.Duration != 0 {
			s.Analytics.ModuleTime = addModuleTime(s.Analytics.ModuleTime, a.Module, a.Duration)
		}
	case LogDailyActivity:
		s.Analytics.DailyActivity = appendActivity(s.Analytics.DailyActivity, a.Activity)
	case Hydrate:
		return a.State
	}
	return s
}

func completeHabit(h entity.Habit, at time.Time) entity.Habit {
	h.CurrentStreak++
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}
	h.LastCompleted = entity.Ptr(at)
	completions := make([]entity.Timestamp, len(h.Completions), len(h.Completions)+1)
	copy(completions, h.Completions)
	h.Completions = append(completions, entity.At(at))
	return h
}

func resetStreaks(habits []entity.Habit, at time.Time) []entity.Habit {
	var out []entity.Habit
	for i, h := range habits {
		if !h.StreakBroken(at) {
			continue
		}
		if out == nil {
			out = make([]entity.Habit, len(habits))
			copy(out, habits)
		}
		out[i].CurrentStreak = 0
	}
	if out == nil {
		return habits
	}
	return out
}

func addModuleTime(in map[string]time.Duration, module string, d time.Duration) map[string]time.Duration {
	out := make(map[string]time.Duration, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	out[module] += d
	return out
}

func appendActivity(in []Activity, a Activity) []Activity {
	keep := in
	if len(keep) >= DailyActivityLimit {
		keep = keep[len(keep)-DailyActivityLimit+1:]
	}
	out := make([]Activity, len(keep), len(keep)+1)
	copy(out, keep)
	return append(out, a)
}

func addNote(s State, n entity.Note) State {
	peers := n.LinkedNoteIDs
	n.LinkedNoteIDs = nil
	n.LinkedTasks, _ = link.Dedupe(n.LinkedTasks)
	n.LinkedGoals, _ = link.Dedupe(n.LinkedGoals)
	notes, ok := insert(s.Notes, n, noteID)
	if !ok {
		return s
	}
	for _, peer := range peers {
		notes = link.Notes(notes, n.ID, peer)
	}
	s.Notes = notes
	if _, ok := s.Highlight(n.LinkedHighlightID); ok {
		s.Notes, s.Highlights = link.PairHighlight(s.Notes, s.Highlights, n.LinkedHighlightID, n.ID)
	}
	return s
}

// updateNote replaces a note and reconciles LinkedNoteIDs against the previous
// version so the peers gain or lose their reverse links.
func updateNote(s State, n entity.Note) State {
	prev, ok := s.Note(n.ID)
	if !ok {
		return s
	}
	wanted := n.LinkedNoteIDs
	n.LinkedNoteIDs = prev.LinkedNoteIDs
	n.LinkedTasks, _ = link.Dedupe(n.LinkedTasks)
	n.LinkedGoals, _ = link.Dedupe(n.LinkedGoals)
	notes, _ := replace(s.Notes, n, noteID)
	for _, peer := range prev.LinkedNoteIDs {
		if !link.Contains(wanted, peer) {
			notes = link.UnlinkNotes(notes, n.ID, peer)
		}
	}
	for _, peer := range wanted {
		notes = link.Notes(notes, n.ID, peer)
	}
	s.Notes = notes
	if n.LinkedHighlightID != prev.LinkedHighlightID {
		if _, ok := s.Highlight(n.LinkedHighlightID); ok {
			s.Notes, s.Highlights = link.PairHighlight(s.Notes, s.Highlights, n.LinkedHighlightID, n.ID)
		} else {
			// Cleared or dangling: only the old highlight lets go.
			_, s.Highlights = link.PairHighlight(nil, s.Highlights, "", n.ID)
		}
	}
	return s
}

// updateHighlight replaces a highlight and moves the note side of the pair
// when LinkedNoteID changes.
func updateHighlight(s State, h entity.Highlight) State {
	prev, ok := s.Highlight(h.ID)
	if !ok {
		return s
	}
	s.Highlights, _ = replace(s.Highlights, h, highlightID)
	if h.LinkedNoteID == prev.LinkedNoteID {
		return s
	}
	if _, ok := s.Note(h.LinkedNoteID); ok {
		s.Notes, s.Highlights = link.PairHighlight(s.Notes, s.Highlights, h.ID, h.LinkedNoteID)
	} else {
		s.Notes = link.SweepHighlight(s.Notes, h.ID)
	}
	return s
}
