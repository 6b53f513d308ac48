package builtin

import (
	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// Dependencies holds what built-in conditions need at construction time.
type Dependencies struct {
	Mastery *progression.MasteryTable
}

// RegisterConditions registers all built-in condition types with the factory.
func RegisterConditions(deps *Dependencies) {
	table := progression.DefaultMasteryTable()
	if deps != nil && deps.Mastery != nil {
		table = deps.Mastery
	}

	title.RegisterConditionType(StatThresholdType, func(config title.ConditionConfig) (title.Condition, error) {
		return NewStatThreshold(config)
	})

	title.RegisterConditionType(SkillExperienceType, func(config title.ConditionConfig) (title.Condition, error) {
		return NewSkillExperience(config)
	})

	title.RegisterConditionType(SkillMasteryType, func(config title.ConditionConfig) (title.Condition, error) {
		return NewSkillMastery(config, table)
	})

	title.RegisterConditionType(MasteryCountType, func(config title.ConditionConfig) (title.Condition, error) {
		return NewMasteryCount(config, table)
	})

	title.RegisterConditionType(AllOfType, func(config title.ConditionConfig) (title.Condition, error) {
		return NewAllOf(config)
	})
}
