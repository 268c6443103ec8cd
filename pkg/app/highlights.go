package app

import (
	"context"
	"strings"

	"tableflip.dev/mindgrid/pkg/entity"
	"tableflip.dev/mindgrid/pkg/state"
)

type HighlightInput struct {
	Text         string   `json:"text" validate:"required"`
	Annotation   string   `json:"annotation"`
	Priority     string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Color        string   `json:"color" validate:"omitempty,color"`
	Tags         []string `json:"tags"`
	LinkedNoteID string   `json:"linkedNoteId"`
}

func (in HighlightInput) normalize() HighlightInput {
	in.Text = strings.TrimSpace(in.Text)
	in.Annotation = strings.TrimSpace(in.Annotation)
	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))
	in.Tags = normalizeTags(in.Tags)
	return in
}

// AddHighlight stores a highlight. A linked note gets its LinkedHighlightID
// set in the same step.
func (s *Service) AddHighlight(ctx context.Context, in HighlightInput) (entity.Highlight, error) {
	in = in.normalize()
	if err := check(in); err != nil {
		return entity.Highlight{}, err
	}
	st, err := s.State()
	if err != nil {
		return entity.Highlight{}, err
	}
	if in.LinkedNoteID != "" {
		if _, ok := st.Note(in.LinkedNoteID); !ok {
			return entity.Highlight{}, notFound("note", in.LinkedNoteID)
		}
	}
	priority, _ := entity.ParsePriority(in.Priority, entity.PriorityMedium)
	color, _ := entity.NormalizeColor(in.Color, entity.DefaultHighlightColor)
	now := entity.At(s.now())
	h := entity.Highlight{
		ID:           entity.NewID(),
		Text:         in.Text,
		Annotation:   in.Annotation,
		Priority:     priority,
		Color:        color,
		Tags:         in.Tags,
		LinkedNoteID: in.LinkedNoteID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.dispatch(state.AddHighlight{Highlight: h}); err != nil {
		return h, err
	}
	return h, nil
}

// LinkHighlightToNote sets both sides of the highlight/note link.
func (s *Service) LinkHighlightToNote(ctx context.Context, highlightID, noteID string) (entity.Highlight, error) {
	st, err := s.State()
	if err != nil {
		return entity.Highlight{}, err
	}
	if _, ok := st.Highlight(highlightID); !ok {
		return entity.Highlight{}, notFound("highlight", highlightID)
	}
	if _, ok := st.Note(noteID); !ok {
		return entity.Highlight{}, notFound("note", noteID)
	}
	next, err := s.dispatch(state.LinkHighlightToNote{HighlightID: highlightID, NoteID: noteID})
	if err != nil {
		return entity.Highlight{}, err
	}
	h, _ := next.Highlight(highlightID)
	return h, nil
}

// DeleteHighlight removes the highlight and clears notes that pointed at it.
func (s *Service) DeleteHighlight(ctx context.Context, id string) error {
	_, err := s.dispatchExisting(state.DeleteHighlight{ID: id}, func(st state.State) bool {
		_, ok := st.Highlight(id)
		return ok
	}, "highlight", id)
	return err
}

// HighlightFilter narrows Highlights. Search matches text, annotation or a
// tag, case insensitive.
type HighlightFilter struct {
	Search   string
	Priority entity.Priority
	Color    string
}

func (s *Service) Highlights(ctx context.Context, f HighlightFilter) ([]entity.Highlight, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	color := ""
	if f.Color != "" {
		if color, err = entity.NormalizeColor(f.Color, ""); err != nil {
			return nil, invalid("color", "must be a hex color")
		}
	}
	var out []entity.Highlight
	for _, h := range st.Highlights {
		if f.Priority != "" && h.Priority != f.Priority {
			continue
		}
		if color != "" && !strings.EqualFold(h.Color, color) {
			continue
		}
		if q != "" && !highlightMatches(h, q) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func highlightMatches(h entity.Highlight, q string) bool {
	if strings.Contains(strings.ToLower(h.Text), q) || strings.Contains(strings.ToLower(h.Annotation), q) {
		return true
	}
	for _, t := range h.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
