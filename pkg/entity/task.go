// Package entity defines the records held by the MindGrid store.
package entity

// Task is a to-do item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *Timestamp `json:"dueDate,omitempty"`
	CreatedAt   Timestamp  `json:"createdAt"`
	CompletedAt *Timestamp `json:"completedAt,omitempty"`
}

// Habit is a recurring practice with a streak.
type Habit struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Frequency     Frequency   `json:"frequency"`
	TargetCount   int         `json:"targetCount"`
	CurrentStreak int         `json:"currentStreak"`
	LongestStreak int         `json:"longestStreak"`
	LastCompleted *Timestamp  `json:"lastCompleted,omitempty"`
	Completions   []Timestamp `json:"completions,omitempty"`
	CreatedAt     Timestamp   `json:"createdAt"`
}

// Goal is a longer running objective with a progress percentage.
type Goal struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	TargetDate  *Timestamp   `json:"targetDate,omitempty"`
	Progress    int          `json:"progress"`
	Category    GoalCategory `json:"category"`
	Status      GoalStatus   `json:"status"`
	CreatedAt   Timestamp    `json:"createdAt"`
	CompletedAt *Timestamp   `json:"completedAt,omitempty"`
}
