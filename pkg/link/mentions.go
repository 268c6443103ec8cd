package link

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/coregx/ahocorasick"
	"github.com/orsinium-labs/stopwords"

	"tableflip.dev/mindgrid/pkg/entity"
)

// Mention is a title of a task, goal or note found in a note's text that the
// note does not link to yet.
type Mention struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Title string `json:"title"`
	// Offset is where the first match starts in the folded text.
	Offset int `json:"offset"`
}

// minMention is the shortest folded title worth matching.
const minMention = 3

var english = stopwords.MustGet("en")

type candidate struct {
	kind, id, title string
}

// Mentions scans the title and content of note noteID for the titles of
// everything it could link to but does not. Matches respect word boundaries
// and ignore case and punctuation. Titles that are too short or are common
// English words are skipped. An unknown note yields nil.
func Mentions(g Graph, noteID string) ([]Mention, error) {
	at := indexOf(g.Notes, noteID)
	if at < 0 {
		return nil, nil
	}
	note := g.Notes[at]

	var cands []candidate
	for _, t := range g.Tasks {
		if !Contains(note.LinkedTasks, t.ID) {
			cands = append(cands, candidate{"task", t.ID, t.Title})
		}
	}
	for _, gl := range g.Goals {
		if !Contains(note.LinkedGoals, gl.ID) {
			cands = append(cands, candidate{"goal", gl.ID, gl.Title})
		}
	}
	for _, n := range g.Notes {
		if n.ID != noteID && !Contains(note.LinkedNoteIDs, n.ID) {
			cands = append(cands, candidate{"note", n.ID, n.Title})
		}
	}

	// One pattern per folded title; several entities may share it.
	var (
		patterns []string
		owners   [][]candidate
		index    = map[string]int{}
	)
	for _, c := range cands {
		key := fold(c.title)
		if len(key) < minMention || english.Contains(key) {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(patterns)
			index[key] = i
			patterns = append(patterns, key)
			owners = append(owners, nil)
		}
		owners[i] = append(owners[i], c)
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	ac, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		Build()
	if err != nil {
		return nil, fmt.Errorf("link: build matcher: %w", err)
	}

	hay := []byte(fold(note.Title + "\n" + note.Content))
	seen := map[string]bool{}
	var out []Mention
	for _, m := range ac.FindAllOverlapping(hay) {
		if !boundary(hay, m.Start, m.End) {
			continue
		}
		for _, c := range owners[m.PatternID] {
			key := c.kind + "/" + c.id
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Mention{Kind: c.kind, ID: c.id, Title: c.title, Offset: m.Start})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out, nil
}

// fold lowercases s, keeps letters and digits, and collapses every other run
// of characters into one space.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func boundary(hay []byte, start, end int) bool {
	return (start == 0 || hay[start-1] == ' ') && (end == len(hay) || hay[end] == ' ')
}

func indexOf(notes []entity.Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
