package progression

import (
	"fmt"
	"math"
	"strings"
)

// Counter identifies one integer lifetime statistic.
type Counter int

const (
	QuestsCompleted Counter = iota
	EnemiesDefeated
	ItemsCrafted
	LocationsDiscovered
	SecretsFound
	CompanionsRecruited
	Deaths

	numCounters = int(Deaths) + 1
)

// PlaytimeStat is the external identifier of the real-valued playtime accumulator.
const PlaytimeStat = "playtime_hours"

var counterNames = [numCounters]string{
	QuestsCompleted:     "quests_completed",
	EnemiesDefeated:     "enemies_defeated",
	ItemsCrafted:        "items_crafted",
	LocationsDiscovered: "locations_discovered",
	SecretsFound:        "secrets_found",
	CompanionsRecruited: "companions_recruited",
	Deaths:              "deaths",
}

// Counters returns every integer counter in display order.
func Counters() []Counter {
	out := make([]Counter, numCounters)
	for i := range out {
		out[i] = Counter(i)
	}
	return out
}

// ParseCounter resolves an external counter identifier (case-insensitive).
func ParseCounter(s string) (Counter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range counterNames {
		if n == name {
			return Counter(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, s)
}

// Valid reports whether c is a member of the closed set.
func (c Counter) Valid() bool {
	return c >= 0 && int(c) < numCounters
}

func (c Counter) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Counter(%d)", int(c))
	}
	return counterNames[c]
}

// Stats is the record of lifetime counters for one character.
// Counters only ever grow; there is no decrement operation.
type Stats struct {
	QuestsCompleted     int64   `json:"quests_completed"`
	EnemiesDefeated     int64   `json:"enemies_defeated"`
	ItemsCrafted        int64   `json:"items_crafted"`
	LocationsDiscovered int64   `json:"locations_discovered"`
	SecretsFound        int64   `json:"secrets_found"`
	CompanionsRecruited int64   `json:"companions_recruited"`
	Deaths              int64   `json:"deaths"`
	PlaytimeHours       float64 `json:"playtime_hours"`
}

// Increment adds n to counter c.
func (s *Stats) Increment(c Counter, n int64) error {
	field := s.field(c)
	if field == nil {
		return fmt.Errorf("%w: %d", ErrUnknownStat, int(c))
	}
	if n < 0 {
		return fmt.Errorf("%w: %s increment must be non-negative, got %d", ErrInvalidInput, c, n)
	}

	*field = saturatingAdd(*field, n)
	return nil
}

// AddPlaytime accumulates played hours.
func (s *Stats) AddPlaytime(hours float64) error {
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return fmt.Errorf("%w: playtime must be a non-negative finite number, got %v", ErrInvalidInput, hours)
	}

	next := s.PlaytimeHours + hours
	if math.IsInf(next, 0) {
		return fmt.Errorf("%w: playtime overflows adding %v to %v", ErrInvalidInput, hours, s.PlaytimeHours)
	}
	s.PlaytimeHours = next
	return nil
}

// Value returns the current value of counter c, or 0 when c is outside the set.
func (s Stats) Value(c Counter) int64 {
	field := s.field(c)
	if field == nil {
		return 0
	}
	return *field
}

// Validate checks that every counter is non-negative and playtime is finite.
func (s Stats) Validate() error {
	for _, c := range Counters() {
		if v := s.Value(c); v < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalidInput, c, v)
		}
	}
	if s.PlaytimeHours < 0 || math.IsNaN(s.PlaytimeHours) || math.IsInf(s.PlaytimeHours, 0) {
		return fmt.Errorf("%w: playtime_hours is invalid (%v)", ErrInvalidInput, s.PlaytimeHours)
	}
	return nil
}

func (s *Stats) field(c Counter) *int64 {
	switch c {
	case QuestsCompleted:
		return &s.QuestsCompleted
	case EnemiesDefeated:
		return &s.EnemiesDefeated
	case ItemsCrafted:
		return &s.ItemsCrafted
	case LocationsDiscovered:
		return &s.LocationsDiscovered
	case SecretsFound:
		return &s.SecretsFound
	case CompanionsRecruited:
		return &s.CompanionsRecruited
	case Deaths:
		return &s.Deaths
	}
	return nil
}
