package state

// TagSet is a set of non-negative integer tags. The external representation
// is an ordered sequence, so the set preserves insertion order of the first
// occurrence; duplicates collapse.
type TagSet struct {
	order    []int
	seen     map[int]struct{}
	replaced bool
}

// NewTagSet creates a set seeded with the classified tags. Negative seed
// values are dropped.
func NewTagSet(seed []int) *TagSet {
	s := &TagSet{seen: map[int]struct{}{}}
	s.union(seed)
	return s
}

// FilterValid keeps the non-negative integers of tags, preserving order.
func FilterValid(tags []int) []int {
	out := make([]int, 0, len(tags))
	for _, t := range tags {
		if t >= 0 {
			out = append(out, t)
		}
	}
	return out
}

// Add unions valid tags into the set. Returns the number of tags that
// survived filtering (zero means the caller should report failure).
func (s *TagSet) Add(tags []int) int {
	valid := FilterValid(tags)
	s.union(valid)
	return len(valid)
}

// Replace discards the prior contents and installs the valid tags. The
// replace flag is reported through Replaced and travels with the tag-binding
// command on the wire.
func (s *TagSet) Replace(tags []int) {
	s.order = s.order[:0]
	s.seen = map[int]struct{}{}
	s.replaced = true
	s.union(FilterValid(tags))
}

// Replaced reports whether the set was last modified by Replace.
func (s *TagSet) Replaced() bool {
	return s.replaced
}

// Values returns the deduplicated tags in first-occurrence order.
func (s *TagSet) Values() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of distinct tags.
func (s *TagSet) Len() int {
	return len(s.order)
}

func (s *TagSet) union(tags []int) {
	for _, t := range tags {
		if t < 0 {
			continue
		}
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		s.order = append(s.order, t)
	}
}
