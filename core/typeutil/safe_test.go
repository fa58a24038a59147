package typeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeMapStringAny(t *testing.T) {
	// Asserts maps and rejects everything else.
	m, ok := SafeMapStringAny(map[string]any{"k": "v"})
	require.True(t, ok)
	assert.Equal(t, "v", m["k"])

	_, ok = SafeMapStringAny(nil)
	assert.False(t, ok)
	_, ok = SafeMapStringAny("string")
	assert.False(t, ok)
}

func TestSafeString(t *testing.T) {
	// Asserts strings and rejects everything else.
	s, ok := SafeString("hello")
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = SafeString(42)
	assert.False(t, ok)
	_, ok = SafeString(nil)
	assert.False(t, ok)

	assert.Equal(t, "fallback", SafeStringDefault(nil, "fallback"))
}

func TestSafeInt(t *testing.T) {
	// Accepts int kinds and whole floats; rejects fractions and strings.
	cases := []struct {
		in   any
		want int
		ok   bool
	}{
		{5, 5, true},
		{int64(7), 7, true},
		{float64(3), 3, true},
		{float64(3.5), 0, false},
		{"3", 0, false},
		{nil, 0, false},
	}
	for _, c := range cases {
		got, ok := SafeInt(c.in)
		assert.Equal(t, c.ok, ok)
		assert.Equal(t, c.want, got)
	}

	assert.Equal(t, 9, SafeIntDefault("x", 9))
}

func TestSafeIntSlice(t *testing.T) {
	// []any from JSON yields the contained ints; non-ints are skipped.
	out, ok := SafeIntSlice([]any{float64(1), "two", float64(3)})
	require.True(t, ok)
	assert.Equal(t, []int{1, 3}, out)

	out, ok = SafeIntSlice([]int{4, 5})
	require.True(t, ok)
	assert.Equal(t, []int{4, 5}, out)

	_, ok = SafeIntSlice("nope")
	assert.False(t, ok)
}

func TestGetNestedValue(t *testing.T) {
	// Walks nested maps and misses on any broken step.
	data := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "deep"},
		},
	}

	v, ok := GetNestedValue(data, "a", "b", "c")
	require.True(t, ok)
	assert.Equal(t, "deep", v)

	_, ok = GetNestedValue(data, "a", "x")
	assert.False(t, ok)
	_, ok = GetNestedValue(data, "a", "b", "c", "d")
	assert.False(t, ok)
	_, ok = GetNestedValue(nil, "a")
	assert.False(t, ok)
}

func TestGetNestedMap(t *testing.T) {
	// Returns the nested map only when the leaf is a map.
	data := map[string]any{"a": map[string]any{"b": "leaf"}}

	m, ok := GetNestedMap(data, "a")
	require.True(t, ok)
	assert.Equal(t, "leaf", m["b"])

	_, ok = GetNestedMap(data, "a", "b")
	assert.False(t, ok)
}
