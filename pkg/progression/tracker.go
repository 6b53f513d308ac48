package progression

import (
	"fmt"
	"math"
)

// Tracker maintains experience per skill category and derives mastery from it.
// Tracker is not safe for concurrent use; callers serialize access per character.
type Tracker struct {
	skills  SkillExperience
	mastery *MasteryTable
}

// NewTracker creates a tracker with zero experience in every category.
// A nil table falls back to DefaultMasteryTable.
func NewTracker(mastery *MasteryTable) *Tracker {
	return RestoreTracker(SkillExperience{}, mastery)
}

// RestoreTracker creates a tracker seeded with previously persisted experience.
func RestoreTracker(skills SkillExperience, mastery *MasteryTable) *Tracker {
	if mastery == nil {
		mastery = DefaultMasteryTable()
	}
	return &Tracker{
		skills:  skills,
		mastery: mastery,
	}
}

// AddExperience increments the experience of category by amount.
// The stored value saturates at math.MaxInt64.
func (t *Tracker) AddExperience(category SkillCategory, amount int64) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, int(category))
	}
	if amount < 0 {
		return fmt.Errorf("%w: experience amount must be non-negative, got %d", ErrInvalidInput, amount)
	}

	t.skills[category] = saturatingAdd(t.skills[category], amount)
	return nil
}

// Experience returns the accumulated experience for category.
func (t *Tracker) Experience(category SkillCategory) int64 {
	return t.skills.Get(category)
}

// Mastery returns the tier the category's experience maps to.
func (t *Tracker) Mastery(category SkillCategory) MasteryTier {
	return t.mastery.Tier(t.skills.Get(category))
}

// Skills returns a copy of the per-category experience.
func (t *Tracker) Skills() SkillExperience {
	return t.skills
}

// MasteryTable returns the table used to derive tiers.
func (t *Tracker) MasteryTable() *MasteryTable {
	return t.mastery
}

// Clone returns an independent copy sharing the same mastery table.
func (t *Tracker) Clone() *Tracker {
	return &Tracker{
		skills:  t.skills,
		mastery: t.mastery,
	}
}

func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
