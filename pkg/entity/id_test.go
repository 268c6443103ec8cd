package entity

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDNeverRepeats(t *testing.T) {
	ids := make([]string, 1000)
	seen := make(map[string]bool, len(ids))
	for i := range ids {
		ids[i] = NewID()
		assert.False(t, seen[ids[i]], "repeated id %s", ids[i])
		seen[ids[i]] = true
	}
	assert.True(t, sort.StringsAreSorted(ids), "ids should sort by creation")
}
