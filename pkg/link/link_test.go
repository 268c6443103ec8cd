package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/mindgrid/pkg/entity"
)

func notesFixture() []entity.Note {
	return []entity.Note{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Beta"},
		{ID: "c", Title: "Gamma"},
	}
}

func noteByID(t *testing.T, notes []entity.Note, id string) entity.Note {
	t.Helper()
	for _, n := range notes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("note %q not found", id)
	return entity.Note{}
}

func TestAddIsIdempotent(t *testing.T) {
	ids, changed := Add(nil, "x")
	require.True(t, changed)
	again, changed := Add(ids, "x")
	assert.False(t, changed)
	assert.Equal(t, []string{"x"}, again)
}

func TestAddDoesNotAliasInput(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "a"
	first, _ := Add(base, "b")
	second, _ := Add(base, "c")
	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, []string{"a", "c"}, second)
}

func TestRemoveAndFilter(t *testing.T) {
	ids, changed := Remove([]string{"a", "b", "a"}, "a")
	require.True(t, changed)
	assert.Equal(t, []string{"b"}, ids)

	in := []string{"a", "b"}
	out, changed := Filter(in, func(string) bool { return true })
	assert.False(t, changed)
	assert.Same(t, &in[0], &out[0])
}

func TestDedupe(t *testing.T) {
	ids, changed := Dedupe([]string{"a", "b", "a", "", "c", "b"})
	require.True(t, changed)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestNotesLinkTwiceKeepsSingleEntries(t *testing.T) {
	notes := Notes(notesFixture(), "a", "b")
	notes = Notes(notes, "a", "b")

	assert.Equal(t, []string{"b"}, noteByID(t, notes, "a").LinkedNoteIDs)
	assert.Equal(t, []string{"a"}, noteByID(t, notes, "b").LinkedNoteIDs)
}

func TestNotesIgnoresSelfAndMissing(t *testing.T) {
	in := notesFixture()
	assert.Same(t, &in[0], &Notes(in, "a", "a")[0])
	assert.Same(t, &in[0], &Notes(in, "a", "zzz")[0])
}

func TestUnlinkNotesIsSymmetricAndLocal(t *testing.T) {
	notes := Notes(notesFixture(), "a", "b")
	notes = Notes(notes, "a", "c")
	notes = Notes(notes, "b", "c")

	notes = UnlinkNotes(notes, "a", "b")

	assert.Equal(t, []string{"c"}, noteByID(t, notes, "a").LinkedNoteIDs)
	assert.Equal(t, []string{"c"}, noteByID(t, notes, "b").LinkedNoteIDs)
	assert.ElementsMatch(t, []string{"a", "b"}, noteByID(t, notes, "c").LinkedNoteIDs)
}

func TestNoteToTaskDeduplicates(t *testing.T) {
	notes := NoteToTask(notesFixture(), "a", "t1")
	notes = NoteToTask(notes, "a", "t1")
	assert.Equal(t, []string{"t1"}, noteByID(t, notes, "a").LinkedTasks)

	notes = NoteFromTask(notes, "a", "t1")
	assert.Empty(t, noteByID(t, notes, "a").LinkedTasks)
}

func TestEventLinksAreExclusive(t *testing.T) {
	events := []entity.Event{{ID: "e", LinkedTaskID: "5"}}

	events = EventToProject(events, "e", "9")
	assert.Equal(t, "9", events[0].LinkedProjectID)
	assert.Empty(t, events[0].LinkedTaskID)

	events = EventToTask(events, "e", "6")
	assert.Equal(t, "6", events[0].LinkedTaskID)
	assert.Empty(t, events[0].LinkedProjectID)

	fresh := ExclusiveEvent(entity.Event{LinkedTaskID: "1", LinkedProjectID: "2"})
	assert.Equal(t, "1", fresh.LinkedTaskID)
	assert.Empty(t, fresh.LinkedProjectID)
}

func TestSweepHighlightClearsOnlyMatchingNotes(t *testing.T) {
	notes := []entity.Note{
		{ID: "a", LinkedHighlightID: "h1"},
		{ID: "b", LinkedHighlightID: "h2"},
	}
	out := SweepHighlight(notes, "h1")
	assert.Empty(t, out[0].LinkedHighlightID)
	assert.Equal(t, "h2", out[1].LinkedHighlightID)
	assert.Equal(t, "h1", notes[0].LinkedHighlightID, "input must not change")
}

func TestSweepTaskAndGoal(t *testing.T) {
	notes := []entity.Note{{ID: "n", LinkedTasks: []string{"t", "u"}, LinkedGoals: []string{"g"}}}
	events := []entity.Event{{ID: "e1", LinkedTaskID: "t"}, {ID: "e2", LinkedProjectID: "g"}}

	notes, events = SweepTask(notes, events, "t")
	assert.Equal(t, []string{"u"}, notes[0].LinkedTasks)
	assert.Empty(t, events[0].LinkedTaskID)

	notes, events = SweepGoal(notes, events, "g")
	assert.Empty(t, notes[0].LinkedGoals)
	assert.Empty(t, events[1].LinkedProjectID)
}

func TestSweepNoteClearsHighlightsAndPeers(t *testing.T) {
	notes := Notes(notesFixture(), "a", "b")
	highlights := []entity.Highlight{{ID: "h", LinkedNoteID: "b"}}

	remaining := []entity.Note{noteByID(t, notes, "a"), noteByID(t, notes, "c")}
	remaining, highlights = SweepNote(remaining, highlights, "b")

	assert.Empty(t, remaining[0].LinkedNoteIDs)
	assert.Empty(t, highlights[0].LinkedNoteID)
}

func TestAuditAndRepair(t *testing.T) {
	g := Graph{
		Tasks:      []entity.Task{{ID: "t"}},
		Goals:      []entity.Goal{{ID: "g"}},
		Highlights: []entity.Highlight{{ID: "h", LinkedNoteID: "gone"}},
		Notes: []entity.Note{
			{ID: "a", LinkedTasks: []string{"t", "t", "missing"}, LinkedNoteIDs: []string{"b"}},
			{ID: "b", LinkedGoals: []string{"g"}, LinkedHighlightID: "nope"},
		},
		Events: []entity.Event{{ID: "e", LinkedTaskID: "t", LinkedProjectID: "g"}},
	}

	findings := Audit(g)
	problems := map[Problem]int{}
	for _, f := range findings {
		problems[f.Problem]++
	}
	assert.Equal(t, 1, problems[ProblemDuplicate])
	assert.Equal(t, 3, problems[ProblemDangling])
	assert.Equal(t, 1, problems[ProblemAsymmetric])
	assert.Equal(t, 1, problems[ProblemExclusive])

	fixed := Repair(g)
	assert.Empty(t, Audit(fixed))
	assert.Equal(t, []string{"t"}, fixed.Notes[0].LinkedTasks)
	assert.Equal(t, []string{"a"}, fixed.Notes[1].LinkedNoteIDs)
	assert.Empty(t, fixed.Notes[1].LinkedHighlightID)
	assert.Empty(t, fixed.Events[0].LinkedProjectID)
	assert.Empty(t, fixed.Highlights[0].LinkedNoteID)
}

func TestAuditAndRepairHighlightPairs(t *testing.T) {
	g := Graph{
		Notes: []entity.Note{
			{ID: "n1", LinkedHighlightID: "h1"},
			{ID: "n2", LinkedHighlightID: "h2"},
		},
		Highlights: []entity.Highlight{
			{ID: "h1", LinkedNoteID: "n2"},
			{ID: "h2", LinkedNoteID: "n2"},
		},
	}
	findings := Audit(g)
	assert.Equal(t, []Finding{
		{Problem: ProblemAsymmetric, Kind: "note", ID: "n1", Field: "linkedHighlightId", Target: "h1"},
		{Problem: ProblemAsymmetric, Kind: "highlight", ID: "h1", Field: "linkedNoteId", Target: "n2"},
	}, findings)

	fixed := Repair(g)
	assert.Empty(t, Audit(fixed))
	assert.Empty(t, fixed.Notes[0].LinkedHighlightID)
	assert.Equal(t, "h2", fixed.Notes[1].LinkedHighlightID)
	assert.Empty(t, fixed.Highlights[0].LinkedNoteID, "agreeing pair wins over a stray claim")
	assert.Equal(t, "n2", fixed.Highlights[1].LinkedNoteID)
}

func TestPairHighlight(t *testing.T) {
	notes := []entity.Note{{ID: "a", LinkedHighlightID: "h"}, {ID: "b", LinkedHighlightID: "old"}}
	highlights := []entity.Highlight{{ID: "h", LinkedNoteID: "a"}, {ID: "old", LinkedNoteID: "b"}}

	gotNotes, gotHighlights := PairHighlight(notes, highlights, "h", "b")
	assert.Empty(t, gotNotes[0].LinkedHighlightID)
	assert.Equal(t, "h", gotNotes[1].LinkedHighlightID)
	assert.Equal(t, "b", gotHighlights[0].LinkedNoteID)
	assert.Empty(t, gotHighlights[1].LinkedNoteID)
	assert.Equal(t, "h", notes[0].LinkedHighlightID, "input must not change")

	gotNotes, gotHighlights = PairHighlight(gotNotes, gotHighlights, "h", "")
	assert.Empty(t, gotNotes[1].LinkedHighlightID)
	assert.Empty(t, gotHighlights[0].LinkedNoteID)
}

func TestRepairKeepsCleanSlices(t *testing.T) {
	g := Graph{
		Tasks:  []entity.Task{{ID: "t"}},
		Notes:  []entity.Note{{ID: "a", LinkedTasks: []string{"t"}}},
		Events: []entity.Event{{ID: "e", LinkedTaskID: "t"}},
	}
	fixed := Repair(g)
	assert.Same(t, &g.Notes[0], &fixed.Notes[0])
	assert.Same(t, &g.Events[0], &fixed.Events[0])
}
