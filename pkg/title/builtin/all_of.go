package builtin

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// AllOfType unlocks when every nested condition is satisfied.
const AllOfType = "all_of"

// AllOf combines nested conditions with logical AND.
type AllOf struct {
	conditions []title.Condition
}

// NewAllOf creates the composite from parameter "conditions", a list of
// {type, parameters} mappings.
func NewAllOf(config title.ConditionConfig) (*AllOf, error) {
	nested, err := config.GetConditions("conditions")
	if err != nil {
		return nil, err
	}
	if len(nested) == 0 {
		return nil, fmt.Errorf("%w: %s requires at least one condition", title.ErrInvalidCondition, AllOfType)
	}

	conditions := make([]title.Condition, 0, len(nested))
	for i, nc := range nested {
		cond, err := title.CreateCondition(nc)
		if err != nil {
			return nil, fmt.Errorf("%s condition %d: %w", AllOfType, i, err)
		}
		conditions = append(conditions, cond)
	}
	return &AllOf{conditions: conditions}, nil
}

func (c *AllOf) Type() string {
	return AllOfType
}

func (c *AllOf) Satisfied(p title.Progress) bool {
	for _, cond := range c.conditions {
		if !cond.Satisfied(p) {
			return false
		}
	}
	return true
}

func (c *AllOf) Describe() string {
	parts := make([]string, len(c.conditions))
	for i, cond := range c.conditions {
		parts[i] = cond.Describe()
	}
	return strings.Join(parts, " and ")
}
