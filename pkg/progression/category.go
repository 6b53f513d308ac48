package progression

import (
	"fmt"
	"strings"
)

// SkillCategory is one of the six fixed skill domains tracked per character.
type SkillCategory int

const (
	Combat SkillCategory = iota
	Magic
	Stealth
	Diplomacy
	Crafting
	Exploration

	// NumCategories is the size of the closed category set.
	NumCategories = int(Exploration) + 1
)

var categoryNames = [NumCategories]string{
	Combat:      "combat",
	Magic:       "magic",
	Stealth:     "stealth",
	Diplomacy:   "diplomacy",
	Crafting:    "crafting",
	Exploration: "exploration",
}

// Categories returns every skill category in display order.
func Categories() []SkillCategory {
	out := make([]SkillCategory, NumCategories)
	for i := range out {
		out[i] = SkillCategory(i)
	}
	return out
}

// ParseCategory resolves an external category identifier (case-insensitive).
func ParseCategory(s string) (SkillCategory, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == name {
			return SkillCategory(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is a member of the closed set.
func (c SkillCategory) Valid() bool {
	return c >= 0 && int(c) < NumCategories
}

func (c SkillCategory) String() string {
	if !c.Valid() {
		return fmt.Sprintf("SkillCategory(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c SkillCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *SkillCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
