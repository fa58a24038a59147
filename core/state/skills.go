package state

import (
	"github.com/voximplant/kit-functions-sdk-sub000/core/typeutil"
)

// Skill level bounds.
const (
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// Skill is an (identifier, proficiency level) pair.
type Skill struct {
	SkillID int `json:"skill_id"`
	Level   int `json:"level"`
}

// SkillList is an ordered collection of skills with at most one entry per
// skill id. Upserts keep the original position of an existing id; new ids
// append.
type SkillList struct {
	skills []Skill
}

// NewSkillList creates a list seeded from classified skill objects. Seed
// entries that fail validation are skipped; within the seed, last write wins
// per id.
func NewSkillList(seed []any) *SkillList {
	l := &SkillList{}
	for _, raw := range seed {
		m, ok := typeutil.SafeMapStringAny(raw)
		if !ok {
			continue
		}
		id, okID := typeutil.SafeInt(m["skill_id"])
		level, okLevel := typeutil.SafeInt(m["level"])
		if !okID || !okLevel {
			continue
		}
		_ = l.Upsert(Skill{SkillID: id, Level: level})
	}
	return l
}

// Upsert validates the skill and inserts or replaces by id. The whole
// operation is rejected without mutation when any field is invalid.
func (l *SkillList) Upsert(s Skill) error {
	if s.SkillID < 0 {
		return NewValidationError("skill_id", "must be a non-negative integer")
	}
	if s.Level < MinSkillLevel || s.Level > MaxSkillLevel {
		return NewValidationError("level", "must be an integer from 1 to 5")
	}
	for i := range l.skills {
		if l.skills[i].SkillID == s.SkillID {
			l.skills[i].Level = s.Level
			return nil
		}
	}
	l.skills = append(l.skills, s)
	return nil
}

// Remove deletes the skill with the given id. Returns false when no entry
// matches.
func (l *SkillList) Remove(id int) bool {
	for i := range l.skills {
		if l.skills[i].SkillID == id {
			l.skills = append(l.skills[:i], l.skills[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the skill list in insertion order.
func (l *SkillList) Snapshot() []Skill {
	out := make([]Skill, len(l.skills))
	copy(out, l.skills)
	return out
}

// Len returns the number of skills.
func (l *SkillList) Len() int {
	return len(l.skills)
}
