package analytics

import (
	"math"
	"time"

	"tableflip.dev/mindgrid/pkg/entity"
)

// Summary holds the headline analytics numbers. Rates are percentages.
type Summary struct {
	Range             Range   `json:"range"`
	TotalTasks        int     `json:"totalTasks"`
	CompletedTasks    int     `json:"completedTasks"`
	TotalHabits       int     `json:"totalHabits"`
	HabitsDoneToday   int     `json:"habitsDoneToday"`
	TotalGoals        int     `json:"totalGoals"`
	CompletedGoals    int     `json:"completedGoals"`
	TaskRate          float64 `json:"taskCompletionRate"`
	HabitRate         float64 `json:"habitCompletionRate"`
	GoalRate          float64 `json:"goalCompletionRate"`
	AvgHabitStreak    float64 `json:"avgHabitStreak"`
	AvgGoalProgress   float64 `json:"avgGoalProgress"`
	ProductivityScore int     `json:"productivityScore"`
}

// Summarize computes completion rates over the whole collections. A habit
// counts as done when it was last completed on now's day.
func Summarize(tasks []entity.Task, habits []entity.Habit, goals []entity.Goal, now time.Time, r Range) Summary {
	s := Summary{
		Range:       r,
		TotalTasks:  len(tasks),
		TotalHabits: len(habits),
		TotalGoals:  len(goals),
	}
	for _, t := range tasks {
		if t.Completed {
			s.CompletedTasks++
		}
	}
	streaks := 0
	for _, h := range habits {
		if h.CompletedOn(now) {
			s.HabitsDoneToday++
		}
		streaks += h.CurrentStreak
	}
	progress := 0
	for _, g := range goals {
		if g.Status == entity.GoalCompleted {
			s.CompletedGoals++
		}
		progress += g.Progress
	}

	s.TaskRate = Rate(s.CompletedTasks, s.TotalTasks)
	s.HabitRate = Rate(s.HabitsDoneToday, s.TotalHabits)
	s.GoalRate = Rate(s.CompletedGoals, s.TotalGoals)
	if len(habits) > 0 {
		s.AvgHabitStreak = float64(streaks) / float64(len(habits))
	}
	if len(goals) > 0 {
		s.AvgGoalProgress = float64(progress) / float64(len(goals))
	}
	s.ProductivityScore = ProductivityScore(s.TaskRate, s.HabitRate, s.GoalRate)
	return s
}

// Rate returns part/total as a percentage, or 0 when total is 0.
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ProductivityScore weights tasks 40%, habits 30% and goals 30%.
func ProductivityScore(taskRate, habitRate, goalRate float64) int {
	return int(math.Round(taskRate*0.4 + habitRate*0.3 + goalRate*0.3))
}
