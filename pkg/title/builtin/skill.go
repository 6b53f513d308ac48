package builtin

import (
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

const (
	// SkillExperienceType unlocks when a category's experience reaches a minimum.
	SkillExperienceType = "skill_experience"

	// SkillMasteryType unlocks when a category reaches a mastery tier.
	SkillMasteryType = "skill_mastery"

	// MasteryCountType unlocks when enough categories reach a mastery tier.
	MasteryCountType = "mastery_count"
)

// SkillExperience is satisfied when one category has at least Min experience.
type SkillExperience struct {
	category progression.SkillCategory
	min      int64
}

// NewSkillExperience creates the condition from parameters "category" and "min".
func NewSkillExperience(config title.ConditionConfig) (*SkillExperience, error) {
	category, err := progression.ParseCategory(config.GetString("category", ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", title.ErrInvalidCondition, err)
	}
	minimum, ok := config.GetInteger("min")
	if !ok || minimum < 0 {
		return nil, fmt.Errorf("%w: %s requires a non-negative whole-number min, got %v",
			title.ErrInvalidCondition, SkillExperienceType, config.Parameters["min"])
	}
	return &SkillExperience{category: category, min: minimum}, nil
}

func (c *SkillExperience) Type() string {
	return SkillExperienceType
}

func (c *SkillExperience) Satisfied(p title.Progress) bool {
	return p.Skills.Get(c.category) >= c.min
}

func (c *SkillExperience) Describe() string {
	return fmt.Sprintf("%s experience >= %d", c.category, c.min)
}

// SkillMastery is satisfied when one category's tier is at least the configured tier.
type SkillMastery struct {
	category progression.SkillCategory
	tier     progression.MasteryTier
	table    *progression.MasteryTable
}

// NewSkillMastery creates the condition from parameters "category" and "tier".
func NewSkillMastery(config title.ConditionConfig, table *progression.MasteryTable) (*SkillMastery, error) {
	category, err := progression.ParseCategory(config.GetString("category", ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", title.ErrInvalidCondition, err)
	}
	tier, err := resolveTier(config, table)
	if err != nil {
		return nil, err
	}
	return &SkillMastery{category: category, tier: tier, table: table}, nil
}

func (c *SkillMastery) Type() string {
	return SkillMasteryType
}

func (c *SkillMastery) Satisfied(p title.Progress) bool {
	return c.table.Tier(p.Skills.Get(c.category)).AtLeast(c.tier)
}

func (c *SkillMastery) Describe() string {
	return fmt.Sprintf("%s mastery >= %s", c.category, c.tier)
}

// MasteryCount is satisfied when at least Count categories reach the configured tier.
type MasteryCount struct {
	tier  progression.MasteryTier
	count int
	table *progression.MasteryTable
}

// NewMasteryCount creates the condition from parameters "tier" and "count".
// count defaults to every category.
func NewMasteryCount(config title.ConditionConfig, table *progression.MasteryTable) (*MasteryCount, error) {
	tier, err := resolveTier(config, table)
	if err != nil {
		return nil, err
	}
	count := progression.NumCategories
	if config.Has("count") {
		n, ok := config.GetInteger("count")
		if !ok {
			return nil, fmt.Errorf("%w: %s count must be a whole number, got %v",
				title.ErrInvalidCondition, MasteryCountType, config.Parameters["count"])
		}
		if n < 1 || n > int64(progression.NumCategories) {
			return nil, fmt.Errorf("%w: %s count must be between 1 and %d, got %d",
				title.ErrInvalidCondition, MasteryCountType, progression.NumCategories, n)
		}
		count = int(n)
	}
	return &MasteryCount{tier: tier, count: count, table: table}, nil
}

func (c *MasteryCount) Type() string {
	return MasteryCountType
}

func (c *MasteryCount) Satisfied(p title.Progress) bool {
	reached := 0
	for _, category := range progression.Categories() {
		if c.table.Tier(p.Skills.Get(category)).AtLeast(c.tier) {
			reached++
		}
	}
	return reached >= c.count
}

func (c *MasteryCount) Describe() string {
	return fmt.Sprintf("%d categories at %s or above", c.count, c.tier)
}

func resolveTier(config title.ConditionConfig, table *progression.MasteryTable) (progression.MasteryTier, error) {
	name := config.GetString("tier", "")
	tier, ok := table.TierByName(name)
	if !ok {
		return progression.MasteryTier{}, fmt.Errorf("%w: unknown mastery tier %q", title.ErrInvalidCondition, name)
	}
	return tier, nil
}
