package app

import (
	"context"
	"sort"
	"strings"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/link"
	"tableflip.dev/mindgrid/pkg/state"
)

// NoteInput is the editable part of a note. Link lists are filtered to ids
// that exist; LinkedNoteIDs are kept symmetric by the store.
type NoteInput struct {
	Title         string   `json:"title" validate:"required"`
	Content       string   `json:"content" validate:"required"`
	Tags          []string `json:"tags"`
	LinkedTasks   []string `json:"linkedTasks"`
	LinkedGoals   []string `json:"linkedGoals"`
	LinkedNoteIDs []string `json:"linkedNoteIds"`
}

func (in NoteInput) normalize() NoteInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Tags = normalizeTags(in.Tags)
	return in
}

// normalizeTags trims, drops empties and keeps the first of each duplicate.
func normalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || link.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Service) AddNote(ctx context.Context, in NoteInput) (entity.Note, error) {
	in = in.normalize()
	if err := check(in); err != nil {
		return entity.Note{}, err
	}
	st, err := s.State()
	if err != nil {
		return entity.Note{}, err
	}
	now := entity.At(s.now())
	n := entity.Note{
		ID:            entity.NewID(),
		Title:         in.Title,
		Content:       in.Content,
		Tags:          in.Tags,
		LinkedTasks:   existingTasks(st, in.LinkedTasks),
		LinkedGoals:   existingGoals(st, in.LinkedGoals),
		LinkedNoteIDs: existingNotes(st, in.LinkedNoteIDs),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	next, err := s.dispatch(state.AddNote{Note: n})
	if err != nil {
		return n, err
	}
	n, _ = next.Note(n.ID)
	return n, nil
}

// UpdateNote replaces title, content, tags and links of note id.
func (s *Service) UpdateNote(ctx context.Context, id string, in NoteInput) (entity.Note, error) {
	in = in.normalize()
	if err := check(in); err != nil {
		return entity.Note{}, err
	}
	st, err := s.State()
	if err != nil {
		return entity.Note{}, err
	}
	n, ok := st.Note(id)
	if !ok {
		return entity.Note{}, notFound("note", id)
	}
	n.Title = in.Title
	n.Content = in.Content
	n.Tags = in.Tags
	n.LinkedTasks = existingTasks(st, in.LinkedTasks)
	n.LinkedGoals = existingGoals(st, in.LinkedGoals)
	n.LinkedNoteIDs = existingNotes(st, in.LinkedNoteIDs)
	n.UpdatedAt = entity.At(s.now())
	next, err := s.dispatch(state.UpdateNote{Note: n})
	if err != nil {
		return n, err
	}
	n, _ = next.Note(id)
	return n, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	_, err := s.dispatchExisting(state.DeleteNote{ID: id}, func(st state.State) bool {
		_, ok := st.Note(id)
		return ok
	}, "note", id)
	return err
}

// LinkTarget names what a note link points at.
type LinkTarget string

const (
	TargetTask LinkTarget = "task"
	TargetGoal LinkTarget = "goal"
	TargetNote LinkTarget = "note"
)

// LinkNote links note id to a task, goal or other note after checking both
// ends exist.
func (s *Service) LinkNote(ctx context.Context, id string, target LinkTarget, targetID string) (entity.Note, error) {
	return s.noteLink(id, target, targetID, true)
}

// UnlinkNote removes a link added by LinkNote.
func (s *Service) UnlinkNote(ctx context.Context, id string, target LinkTarget, targetID string) (entity.Note, error) {
	return s.noteLink(id, target, targetID, false)
}

func (s *Service) noteLink(id string, target LinkTarget, targetID string, add bool) (entity.Note, error) {
	st, err := s.State()
	if err != nil {
		return entity.Note{}, err
	}
	if _, ok := st.Note(id); !ok {
		return entity.Note{}, notFound("note", id)
	}
	var a state.Action
	switch target {
	case TargetTask:
		if _, ok := st.Task(targetID); !ok && add {
			return entity.Note{}, notFound("task", targetID)
		}
		a = state.LinkNoteToTask{NoteID: id, TaskID: targetID}
		if !add {
			a = state.UnlinkNoteFromTask{NoteID: id, TaskID: targetID}
		}
	case TargetGoal:
		if _, ok := st.Goal(targetID); !ok && add {
			return entity.Note{}, notFound("goal", targetID)
		}
		a = state.LinkNoteToGoal{NoteID: id, GoalID: targetID}
		if !add {
			a = state.UnlinkNoteFromGoal{NoteID: id, GoalID: targetID}
		}
	case TargetNote:
		if _, ok := st.Note(targetID); !ok && add {
			return entity.Note{}, notFound("note", targetID)
		}
		if targetID == id {
			return entity.Note{}, invalid("target", "cannot link a note to itself")
		}
		a = state.LinkNotes{A: id, B: targetID}
		if !add {
			a = state.UnlinkNotes{A: id, B: targetID}
		}
	default:
		return entity.Note{}, invalid("target", "must be one of task, goal, note")
	}
	next, err := s.dispatch(a)
	if err != nil {
		return entity.Note{}, err
	}
	n, _ := next.Note(id)
	return n, nil
}

// NoteFilter narrows SearchNotes. Query matches title or content, case
// insensitive; Tag must match exactly.
type NoteFilter struct {
	Query string
	Tag   string
}

func (s *Service) SearchNotes(ctx context.Context, f NoteFilter) ([]entity.Note, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	tag := strings.TrimSpace(f.Tag)
	out := make([]entity.Note, 0, len(st.Notes))
	for _, n := range st.Notes {
		if q != "" && !strings.Contains(strings.ToLower(n.Title), q) && !strings.Contains(strings.ToLower(n.Content), q) {
			continue
		}
		if tag != "" && !n.HasTag(tag) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Tags returns every tag used by a note, sorted.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, n := range st.Notes {
		for _, t := range n.Tags {
			tags, _ = link.Add(tags, t)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// NoteLinks is a note with its references resolved to display names.
type NoteLinks struct {
	Note      entity.Note `json:"note"`
	Tasks     []string    `json:"tasks"`
	Goals     []string    `json:"goals"`
	Notes     []string    `json:"notes"`
	Highlight string      `json:"highlight,omitempty"`
}

// ShowNote resolves the note's links for display.
func (s *Service) ShowNote(ctx context.Context, id string) (NoteLinks, error) {
	st, err := s.State()
	if err != nil {
		return NoteLinks{}, err
	}
	n, ok := st.Note(id)
	if !ok {
		return NoteLinks{}, notFound("note", id)
	}
	out := NoteLinks{Note: n}
	for _, t := range n.LinkedTasks {
		out.Tasks = append(out.Tasks, ResolveTaskTitle(st, t))
	}
	for _, g := range n.LinkedGoals {
		out.Goals = append(out.Goals, ResolveGoalTitle(st, g))
	}
	for _, o := range n.LinkedNoteIDs {
		out.Notes = append(out.Notes, ResolveNoteTitle(st, o))
	}
	if h, ok := st.Highlight(n.LinkedHighlightID); ok {
		out.Highlight = h.Text
	}
	return out, nil
}

func existingTasks(st state.State, ids []string) []string {
	out, _ := link.Filter(ids, func(id string) bool {
		_, ok := st.Task(id)
		return ok
	})
	out, _ = link.Dedupe(out)
	return out
}

func existingGoals(st state.State, ids []string) []string {
	out, _ := link.Filter(ids, func(id string) bool {
		_, ok := st.Goal(id)
		return ok
	})
	out, _ = link.Dedupe(out)
	return out
}

func existingNotes(st state.State, ids []string) []string {
	out, _ := link.Filter(ids, func(id string) bool {
		_, ok := st.Note(id)
		return ok
	})
	out, _ = link.Dedupe(out)
	return out
}

// SuggestLinks lists tasks, goals and notes whose titles appear in the note
// but are not linked from it.
func (s *Service) SuggestLinks(ctx context.Context, id string) ([]link.Mention, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	if _, ok := st.Note(id); !ok {
		return nil, notFound("note", id)
	}
	return link.Mentions(st.Graph(), id)
}

// ApplySuggestions links every suggestion and returns the ones applied.
func (s *Service) ApplySuggestions(ctx context.Context, id string) ([]link.Mention, error) {
	ms, err := s.SuggestLinks(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		if _, err := s.LinkNote(ctx, id, LinkTarget(m.Kind), m.ID); err != nil {
			return nil, err
		}
	}
	return ms, nil
}
