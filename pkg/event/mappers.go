package event

import (
	"fmt"
	"math"

	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/progression"
)

// ExperienceMapper adds experience to one skill category.
type ExperienceMapper struct {
	statCode string
	category progression.SkillCategory
	mode     Mode
}

func NewExperienceMapper(statCode string, category progression.SkillCategory, mode Mode) *ExperienceMapper {
	return &ExperienceMapper{statCode: statCode, category: category, mode: mode}
}

func (m *ExperienceMapper) StatCode() string {
	return m.statCode
}

func (m *ExperienceMapper) Apply(tx *character.Tx, value float64) error {
	amount, err := wholeNumber(m.statCode, value)
	if err != nil {
		return err
	}
	if m.mode == ModeTotal {
		amount, err = totalDelta(m.statCode, amount, tx.Experience(m.category))
		if err != nil {
			return err
		}
	}
	return tx.AddExperience(m.category, amount)
}

// CounterMapper increments one lifetime counter.
type CounterMapper struct {
	statCode string
	counter  progression.Counter
	mode     Mode
}

func NewCounterMapper(statCode string, counter progression.Counter, mode Mode) *CounterMapper {
	return &CounterMapper{statCode: statCode, counter: counter, mode: mode}
}

func (m *CounterMapper) StatCode() string {
	return m.statCode
}

func (m *CounterMapper) Apply(tx *character.Tx, value float64) error {
	n, err := wholeNumber(m.statCode, value)
	if err != nil {
		return err
	}
	if m.mode == ModeTotal {
		n, err = totalDelta(m.statCode, n, tx.Stats().Value(m.counter))
		if err != nil {
			return err
		}
	}
	return tx.IncrementStat(m.counter, n)
}

// PlaytimeMapper accumulates playtime reported in hours, minutes or seconds.
type PlaytimeMapper struct {
	statCode string
	perHour  float64
	mode     Mode
}

// Playtime units accepted by NewPlaytimeMapper.
const (
	UnitHours   = "hours"
	UnitMinutes = "minutes"
	UnitSeconds = "seconds"
)

func NewPlaytimeMapper(statCode, unit string, mode Mode) (*PlaytimeMapper, error) {
	var perHour float64
	switch unit {
	case "", UnitHours:
		perHour = 1
	case UnitMinutes:
		perHour = 60
	case UnitSeconds:
		perHour = 3600
	default:
		return nil, fmt.Errorf("unknown playtime unit %q", unit)
	}
	return &PlaytimeMapper{statCode: statCode, perHour: perHour, mode: mode}, nil
}

func (m *PlaytimeMapper) StatCode() string {
	return m.statCode
}

func (m *PlaytimeMapper) Apply(tx *character.Tx, value float64) error {
	hours := value / m.perHour
	if m.mode == ModeTotal {
		current := tx.Stats().PlaytimeHours
		if hours < current {
			return fmt.Errorf("%w: %s total %v hours is below recorded %v",
				progression.ErrInvalidInput, m.statCode, hours, current)
		}
		hours -= current
	}
	return tx.AddPlaytime(hours)
}

// wholeNumber converts a reported value to an integer amount.
// Fractional, negative and non-finite values are rejected.
func wholeNumber(statCode string, value float64) (int64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, fmt.Errorf("%w: %s expects a whole number, got %v", progression.ErrInvalidInput, statCode, value)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: %s value must be non-negative, got %v", progression.ErrInvalidInput, statCode, value)
	}
	if value >= math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(value), nil
}

func totalDelta(statCode string, total, current int64) (int64, error) {
	if total < current {
		return 0, fmt.Errorf("%w: %s total %d is below recorded %d",
			progression.ErrInvalidInput, statCode, total, current)
	}
	return total - current, nil
}
