package entity

// Note is a rich-text note that can reference tasks, goals, other notes and a
// highlight. LinkedNoteIDs is kept symmetric by the reducer.
type Note struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	Tags              []string  `json:"tags,omitempty"`
	LinkedTasks       []string  `json:"linkedTasks,omitempty"`
	LinkedGoals       []string  `json:"linkedGoals,omitempty"`
	LinkedNoteIDs     []string  `json:"linkedNoteIds,omitempty"`
	LinkedHighlightID string    `json:"linkedHighlightId,omitempty"`
	CreatedAt         Timestamp `json:"createdAt"`
	UpdatedAt         Timestamp `json:"updatedAt"`
}

// HasTag reports whether the note carries tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Highlight is a marked passage with an optional annotation.
type Highlight struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Annotation   string    `json:"annotation,omitempty"`
	Priority     Priority  `json:"priority"`
	Color        string    `json:"color"`
	Tags         []string  `json:"tags,omitempty"`
	LinkedNoteID string    `json:"linkedNoteId,omitempty"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
}
