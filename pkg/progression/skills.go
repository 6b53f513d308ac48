package progression

import (
	"encoding/json"
	"fmt"
)

// SkillExperience holds one non-negative experience value per skill category.
// The array form guarantees every category is always present.
type SkillExperience [NumCategories]int64

// Get returns the experience stored for c, or 0 for a category outside the set.
func (s SkillExperience) Get(c SkillCategory) int64 {
	if !c.Valid() {
		return 0
	}
	return s[c]
}

// Total returns the summed experience across all categories.
func (s SkillExperience) Total() int64 {
	var total int64
	for _, v := range s {
		total = saturatingAdd(total, v)
	}
	return total
}

// Validate checks that no category holds a negative value.
func (s SkillExperience) Validate() error {
	for i, v := range s {
		if v < 0 {
			return fmt.Errorf("%w: %s experience is negative (%d)", ErrInvalidInput, SkillCategory(i), v)
		}
	}
	return nil
}

// MarshalJSON encodes the experience as an object keyed by category name.
func (s SkillExperience) MarshalJSON() ([]byte, error) {
	m := make(map[string]int64, NumCategories)
	for i, v := range s {
		m[categoryNames[i]] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by category name.
// Missing categories decode as zero.
func (s *SkillExperience) UnmarshalJSON(data []byte) error {
	var m map[string]int64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var out SkillExperience
	for name, v := range m {
		c, err := ParseCategory(name)
		if err != nil {
			return err
		}
		out[c] = v
	}
	if err := out.Validate(); err != nil {
		return err
	}

	*s = out
	return nil
}
