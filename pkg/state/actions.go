package state

import (
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
)

// Kind names an action in the store's vocabulary.
type Kind string

const (
	KindAddTask    Kind = "ADD_TASK"
	KindUpdateTask Kind = "UPDATE_TASK"
	KindDeleteTask Kind = "DELETE_TASK"
	KindToggleTask Kind = "TOGGLE_TASK"

	KindAddHabit          Kind = "ADD_HABIT"
	KindUpdateHabit       Kind = "UPDATE_HABIT"
	KindDeleteHabit       Kind = "DELETE_HABIT"
	KindCompleteHabit     Kind = "COMPLETE_HABIT"
	KindResetHabitStreaks Kind = "RESET_HABIT_STREAKS"

	KindAddGoal    Kind = "ADD_GOAL"
	KindUpdateGoal Kind = "UPDATE_GOAL"
	KindDeleteGoal Kind = "DELETE_GOAL"

	KindAddNote    Kind = "ADD_NOTE"
	KindUpdateNote Kind = "UPDATE_NOTE"
	KindDeleteNote Kind = "DELETE_NOTE"

	KindAddEvent    Kind = "ADD_EVENT"
	KindUpdateEvent Kind = "UPDATE_EVENT"
	KindDeleteEvent Kind = "DELETE_EVENT"

	KindAddHighlight    Kind = "ADD_HIGHLIGHT"
	KindUpdateHighlight Kind = "UPDATE_HIGHLIGHT"
	KindDeleteHighlight Kind = "DELETE_HIGHLIGHT"

	KindAddBudget    Kind = "ADD_BUDGET"
	KindUpdateBudget Kind = "UPDATE_BUDGET"
	KindDeleteBudget Kind = "DELETE_BUDGET"

	KindAddExpense    Kind = "ADD_EXPENSE"
	KindUpdateExpense Kind = "UPDATE_EXPENSE"
	KindDeleteExpense Kind = "DELETE_EXPENSE"

	KindAddIncome    Kind = "ADD_INCOME"
	KindUpdateIncome Kind = "UPDATE_INCOME"
	KindDeleteIncome Kind = "DELETE_INCOME"

	KindAddFinancialGoal    Kind = "ADD_FINANCIAL_GOAL"
	KindUpdateFinancialGoal Kind = "UPDATE_FINANCIAL_GOAL"
	KindDeleteFinancialGoal Kind = "DELETE_FINANCIAL_GOAL"

	KindLinkNoteToTask      Kind = "LINK_NOTE_TO_TASK"
	KindUnlinkNoteFromTask  Kind = "UNLINK_NOTE_FROM_TASK"
	KindLinkNoteToGoal      Kind = "LINK_NOTE_TO_GOAL"
	KindUnlinkNoteFromGoal  Kind = "UNLINK_NOTE_FROM_GOAL"
	KindLinkNotes           Kind = "LINK_NOTE_TO_NOTE"
	KindUnlinkNotes         Kind = "UNLINK_NOTE_FROM_NOTE"
	KindLinkEventToTask     Kind = "LINK_EVENT_TO_TASK"
	KindLinkEventToProject  Kind = "LINK_EVENT_TO_PROJECT"
	KindUnlinkEvent         Kind = "UNLINK_EVENT"
	KindLinkHighlightToNote Kind = "LINK_HIGHLIGHT_TO_NOTE"
	KindRepairLinks         Kind = "REPAIR_LINKS"

	KindToggleDarkMode   Kind = "TOGGLE_DARK_MODE"
	KindTrackModuleTime  Kind = "TRACK_MODULE_TIME"
	KindLogDailyActivity Kind = "LOG_DAILY_ACTIVITY"
	KindHydrate          Kind = "HYDRATE"
)

// Action is a state change request. The set of implementations is closed;
// Reduce matches on the concrete type.
type Action interface {
	Kind() Kind
	action()
}

type (
	AddTask    struct{ Task entity.Task }
	UpdateTask struct{ Task entity.Task }
	DeleteTask struct{ ID string }
	// ToggleTask flips Completed; At stamps CompletedAt when it becomes true.
	ToggleTask struct {
		ID string
		At time.Time
	}

	AddHabit    struct{ Habit entity.Habit }
	UpdateHabit struct{ Habit entity.Habit }
	DeleteHabit struct{ ID string }
	// CompleteHabit increments the current streak and records a completion.
	CompleteHabit struct {
		ID string
		At time.Time
	}
	// ResetHabitStreaks zeroes the streak of every habit whose period lapsed
	// before At.
	ResetHabitStreaks struct{ At time.Time }

	AddGoal    struct{ Goal entity.Goal }
	UpdateGoal struct{ Goal entity.Goal }
	DeleteGoal struct{ ID string }

	AddNote    struct{ Note entity.Note }
	UpdateNote struct{ Note entity.Note }
	DeleteNote struct{ ID string }

	AddEvent    struct{ Event entity.Event }
	UpdateEvent struct{ Event entity.Event }
	DeleteEvent struct{ ID string }

	AddHighlight    struct{ Highlight entity.Highlight }
	UpdateHighlight struct{ Highlight entity.Highlight }
	DeleteHighlight struct{ ID string }

	AddBudget    struct{ Budget entity.Budget }
	UpdateBudget struct{ Budget entity.Budget }
	DeleteBudget struct{ ID string }

	AddExpense    struct{ Expense entity.Expense }
	UpdateExpense struct{ Expense entity.Expense }
	DeleteExpense struct{ ID string }

	AddIncome    struct{ Income entity.Income }
	UpdateIncome struct{ Income entity.Income }
	DeleteIncome struct{ ID string }

	AddFinancialGoal    struct{ Goal entity.FinancialGoal }
	UpdateFinancialGoal struct{ Goal entity.FinancialGoal }
	DeleteFinancialGoal struct{ ID string }

	LinkNoteToTask     struct{ NoteID, TaskID string }
	UnlinkNoteFromTask struct{ NoteID, TaskID string }
	LinkNoteToGoal     struct{ NoteID, GoalID string }
	UnlinkNoteFromGoal struct{ NoteID, GoalID string }
	LinkNotes          struct{ A, B string }
	UnlinkNotes        struct{ A, B string }
	LinkEventToTask    struct{ EventID, TaskID string }
	// LinkEventToProject links an event to a goal acting as a project.
	LinkEventToProject  struct{ EventID, ProjectID string }
	UnlinkEvent         struct{ EventID string }
	LinkHighlightToNote struct{ HighlightID, NoteID string }
	RepairLinks         struct{}

	ToggleDarkMode  struct{}
	TrackModuleTime struct {
		Module   string
		Duration time.Duration
	}
	LogDailyActivity struct{ Activity Activity }
	// Hydrate replaces the whole tree, used when loading a snapshot.
	Hydrate struct{ State State }
)

func (AddTask) Kind() Kind    { return KindAddTask }
func (UpdateTask) Kind() Kind { return KindUpdateTask }
func (DeleteTask) Kind() Kind { return KindDeleteTask }
func (ToggleTask) Kind() Kind { return KindToggleTask }

func (AddHabit) Kind() Kind          { return KindAddHabit }
func (UpdateHabit) Kind() Kind       { return KindUpdateHabit }
func (DeleteHabit) Kind() Kind       { return KindDeleteHabit }
func (CompleteHabit) Kind() Kind     { return KindCompleteHabit }
func (ResetHabitStreaks) Kind() Kind { return KindResetHabitStreaks }

func (AddGoal) Kind() Kind    { return KindAddGoal }
func (UpdateGoal) Kind() Kind { return KindUpdateGoal }
func (DeleteGoal) Kind() Kind { return KindDeleteGoal }

func (AddNote) Kind() Kind    { return KindAddNote }
func (UpdateNote) Kind() Kind { return KindUpdateNote }
func (DeleteNote) Kind() Kind { return KindDeleteNote }

func (AddEvent) Kind() Kind    { return KindAddEvent }
func (UpdateEvent) Kind() Kind { return KindUpdateEvent }
func (DeleteEvent) Kind() Kind { return KindDeleteEvent }

func (AddHighlight) Kind() Kind    { return KindAddHighlight }
func (UpdateHighlight) Kind() Kind { return KindUpdateHighlight }
func (DeleteHighlight) Kind() Kind { return KindDeleteHighlight }

func (AddBudget) Kind() Kind    { return KindAddBudget }
func (UpdateBudget) Kind() Kind { return KindUpdateBudget }
func (DeleteBudget) Kind() Kind { return KindDeleteBudget }

func (AddExpense) Kind() Kind    { return KindAddExpense }
func (UpdateExpense) Kind() Kind { return KindUpdateExpense }
func (DeleteExpense) Kind() Kind { return KindDeleteExpense }

func (AddIncome) Kind() Kind    { return KindAddIncome }
func (UpdateIncome) Kind() Kind { return KindUpdateIncome }
func (DeleteIncome) Kind() Kind { return KindDeleteIncome }

func (AddFinancialGoal) Kind() Kind    { return KindAddFinancialGoal }
func (UpdateFinancialGoal) Kind() Kind { return KindUpdateFinancialGoal }
func (DeleteFinancialGoal) Kind() Kind { return KindDeleteFinancialGoal }

func (LinkNoteToTask) Kind() Kind      { return KindLinkNoteToTask }
func (UnlinkNoteFromTask) Kind() Kind  { return KindUnlinkNoteFromTask }
func (LinkNoteToGoal) Kind() Kind      { return KindLinkNoteToGoal }
func (UnlinkNoteFromGoal) Kind() Kind  { return KindUnlinkNoteFromGoal }
func (LinkNotes) Kind() Kind           { return KindLinkNotes }
func (UnlinkNotes) Kind() Kind         { return KindUnlinkNotes }
func (LinkEventToTask) Kind() Kind     { return KindLinkEventToTask }
func (LinkEventToProject) Kind() Kind  { return KindLinkEventToProject }
func (UnlinkEvent) Kind() Kind         { return KindUnlinkEvent }
func (LinkHighlightToNote) Kind() Kind { return KindLinkHighlightToNote }
func (RepairLinks) Kind() Kind         { return KindRepairLinks }

func (ToggleDarkMode) Kind() Kind   { return KindToggleDarkMode }
func (TrackModuleTime) Kind() Kind  { return KindTrackModuleTime }
func (LogDailyActivity) Kind() Kind { return KindLogDailyActivity }
func (Hydrate) Kind() Kind          { return KindHydrate }

func (AddTask) action()    {}
func (UpdateTask) action() {}
func (DeleteTask) action() {}
func (ToggleTask) action() {}

func (AddHabit) action()          {}
func (UpdateHabit) action()       {}
func (DeleteHabit) action()       {}
func (CompleteHabit) action()     {}
func (ResetHabitStreaks) action() {}

func (AddGoal) action()    {}
func (UpdateGoal) action() {}
func (DeleteGoal) action() {}

func (AddNote) action()    {}
func (UpdateNote) action() {}
func (DeleteNote) action() {}

func (AddEvent) action()    {}
func (UpdateEvent) action() {}
func (DeleteEvent) action() {}

func (AddHighlight) action()    {}
func (UpdateHighlight) action() {}
func (DeleteHighlight) action() {}

func (AddBudget) action()    {}
func (UpdateBudget) action() {}
func (DeleteBudget) action() {}

func (AddExpense) action()    {}
func (UpdateExpense) action() {}
func (DeleteExpense) action() {}

func (AddIncome) action()    {}
func (UpdateIncome) action() {}
func (DeleteIncome) action() {}

func (AddFinancialGoal) action()    {}
func (UpdateFinancialGoal) action() {}
func (DeleteFinancialGoal) action() {}

func (LinkNoteToTask) action()      {}
func (UnlinkNoteFromTask) action()  {}
func (LinkNoteToGoal) action()      {}
func (UnlinkNoteFromGoal) action()  {}
func (LinkNotes) action()           {}
func (UnlinkNotes) action()         {}
func (LinkEventToTask) action()     {}
func (LinkEventToProject) action()  {}
func (UnlinkEvent) action()         {}
func (LinkHighlightToNote) action() {}
func (RepairLinks) action()         {}

func (ToggleDarkMode) action()   {}
func (TrackModuleTime) action()  {}
func (LogDailyActivity) action() {}
func (Hydrate) action()          {}
