// Package link maintains id references between notes, tasks, goals, events
// and highlights. Every helper is copy-on-write: inputs are never modified and
// an unchanged input is returned as-is so callers can detect no-ops by
// identity.
package link

// Contains reports whether ids holds id.
func Contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless it is already present or empty.
func Add(ids []string, id string) ([]string, bool) {
	if id == "" || Contains(ids, id) {
		return ids, false
	}
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id), true
}

// Remove drops every occurrence of id.
func Remove(ids []string, id string) ([]string, bool) {
	if !Contains(ids, id) {
		return ids, false
	}
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out, true
}

// Dedupe keeps the first occurrence of every id and drops empty ids.
func Dedupe(ids []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(ids))
	dirty := false
	for _, v := range ids {
		if _, ok := seen[v]; ok || v == "" {
			dirty = true
			break
		}
		seen[v] = struct{}{}
	}
	if !dirty {
		return ids, false
	}
	seen = make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, true
}

// Filter keeps the ids for which keep returns true.
func Filter(ids []string, keep func(string) bool) ([]string, bool) {
	for i, v := range ids {
		if keep(v) {
			continue
		}
		out := make([]string, i, len(ids))
		copy(out, ids[:i])
		for _, w := range ids[i+1:] {
			if keep(w) {
				out = append(out, w)
			}
		}
		return out, true
	}
	return ids, false
}
