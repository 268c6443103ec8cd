package entity

import (
	"fmt"
	"strings"
)

// Priority ranks tasks and highlights.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority resolves raw into a Priority. Empty input yields fallback.
func ParsePriority(raw string, fallback Priority) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return fallback, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return fallback, fmt.Errorf("entity: unknown priority %q", raw)
	}
}

// Frequency is how often a habit is expected to be completed.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

func ParseFrequency(raw string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return Daily, nil
	case Daily, Weekly, Monthly:
		return f, nil
	default:
		return Daily, fmt.Errorf("entity: unknown frequency %q", raw)
	}
}

// GoalStatus tracks where a goal is in its lifecycle.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

func ParseGoalStatus(raw string) (GoalStatus, error) {
	switch s := GoalStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return GoalActive, nil
	case GoalActive, GoalCompleted, GoalPaused:
		return s, nil
	default:
		return GoalActive, fmt.Errorf("entity: unknown goal status %q", raw)
	}
}

// GoalCategory groups goals.
type GoalCategory string

const (
	CategoryPersonal GoalCategory = "personal"
	CategoryHealth   GoalCategory = "health"
	CategoryCareer   GoalCategory = "career"
	CategoryFinance  GoalCategory = "finance"
	CategoryLearning GoalCategory = "learning"
	CategoryOther    GoalCategory = "other"
)

// GoalCategories returns every known goal category.
func GoalCategories() []GoalCategory {
	return []GoalCategory{
		CategoryPersonal,
		CategoryHealth,
		CategoryCareer,
		CategoryFinance,
		CategoryLearning,
		CategoryOther,
	}
}

func ParseGoalCategory(raw string) (GoalCategory, error) {
	c := GoalCategory(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategoryPersonal, nil
	}
	for _, candidate := range GoalCategories() {
		if candidate == c {
			return c, nil
		}
	}
	return CategoryOther, fmt.Errorf("entity: unknown goal category %q", raw)
}

// EventType classifies calendar events.
type EventType string

const (
	EventMeeting     EventType = "meeting"
	EventWork        EventType = "work"
	EventPersonal    EventType = "personal"
	EventAppointment EventType = "appointment"
	EventReminder    EventType = "reminder"
	EventOther       EventType = "other"
)

var eventColors = map[EventType]string{
	EventMeeting:     "#3b82f6",
	EventWork:        "#10b981",
	EventPersonal:    "#8b5cf6",
	EventAppointment: "#f59e0b",
	EventReminder:    "#ef4444",
	EventOther:       "#6b7280",
}

// EventTypes returns the supported event types in display order.
func EventTypes() []EventType {
	return []EventType{EventMeeting, EventWork, EventPersonal, EventAppointment, EventReminder, EventOther}
}

// DefaultColor is the color assigned to events of this type.
func (t EventType) DefaultColor() string {
	if c, ok := eventColors[t]; ok {
		return c
	}
	return DefaultEventColor
}

func ParseEventType(raw string) (EventType, error) {
	t := EventType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return EventMeeting, nil
	}
	if _, ok := eventColors[t]; ok {
		return t, nil
	}
	return EventOther, fmt.Errorf("entity: unknown event type %q", raw)
}

const (
	// DefaultEventColor is used when neither the caller nor the type picks one.
	DefaultEventColor = "#6366f1"
	// DefaultHighlightColor is the yellow marker.
	DefaultHighlightColor = "#fbbf24"
)
