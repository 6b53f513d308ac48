package builtin

import (
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// StatThresholdType unlocks when a lifetime statistic reaches a minimum.
const StatThresholdType = "stat_threshold"

// StatThreshold is satisfied when the configured stat is at least Min.
// The stat is either an integer counter or playtime_hours.
type StatThreshold struct {
	stat     string
	counter  progression.Counter
	playtime bool
	min      float64
}

// NewStatThreshold creates the condition from parameters "stat" and "min".
func NewStatThreshold(config title.ConditionConfig) (*StatThreshold, error) {
	stat := config.GetString("stat", "")
	minimum, ok := config.GetNumber("min")
	if !ok {
		return nil, fmt.Errorf("%w: %s requires a numeric min, got %v (%T)",
			title.ErrInvalidCondition, StatThresholdType, config.Parameters["min"], config.Parameters["min"])
	}
	if minimum < 0 {
		return nil, fmt.Errorf("%w: %s min must be non-negative, got %v", title.ErrInvalidCondition, StatThresholdType, minimum)
	}

	c := &StatThreshold{stat: stat, min: minimum}
	if stat == progression.PlaytimeStat {
		c.playtime = true
		return c, nil
	}

	counter, err := progression.ParseCounter(stat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", title.ErrInvalidCondition, err)
	}
	c.counter = counter
	return c, nil
}

func (c *StatThreshold) Type() string {
	return StatThresholdType
}

func (c *StatThreshold) Satisfied(p title.Progress) bool {
	if c.playtime {
		return p.Stats.PlaytimeHours >= c.min
	}
	return float64(p.Stats.Value(c.counter)) >= c.min
}

func (c *StatThreshold) Describe() string {
	return fmt.Sprintf("%s >= %v", c.stat, c.min)
}
