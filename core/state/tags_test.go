package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSetDeduplicates(t *testing.T) {
	// Duplicates collapse; first-occurrence order is preserved.
	s := NewTagSet(nil)
	s.Add([]int{5, 5, 3})

	assert.Equal(t, []int{5, 3}, s.Values())
}

func TestTagSetAddUnions(t *testing.T) {
	// Add unions into the existing set.
	s := NewTagSet([]int{1, 2})
	s.Add([]int{2, 3})

	assert.Equal(t, []int{1, 2, 3}, s.Values())
}

func TestTagSetAddFiltersNegatives(t *testing.T) {
	// Negative tags are filtered; the count of survivors is reported.
	s := NewTagSet(nil)

	assert.Equal(t, 1, s.Add([]int{-1, 7, -3}))
	assert.Equal(t, 0, s.Add([]int{-1, -2}))
	assert.Equal(t, []int{7}, s.Values())
}

func TestTagSetReplace(t *testing.T) {
	// Replace discards prior contents and flips the replace flag.
	s := NewTagSet([]int{1, 2, 3})
	assert.False(t, s.Replaced())

	s.Replace([]int{9, 9, 4})

	assert.True(t, s.Replaced())
	assert.Equal(t, []int{9, 4}, s.Values())
}

func TestTagSetReplaceWithNothingValid(t *testing.T) {
	// Replace with only invalid tags empties the set.
	s := NewTagSet([]int{1})
	s.Replace([]int{-5})

	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Replaced())
}

func TestTagSetSeedDropsNegatives(t *testing.T) {
	// Seed values below zero never enter the set.
	s := NewTagSet([]int{-1, 0, 2})

	assert.Equal(t, []int{0, 2}, s.Values())
}

func TestTagSetValuesIsolation(t *testing.T) {
	// Mutating the returned slice must not reach the set.
	s := NewTagSet([]int{1, 2})
	values := s.Values()
	values[0] = 99

	assert.Equal(t, []int{1, 2}, s.Values())
}
