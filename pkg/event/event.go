package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/character"
)

// ErrNoMapper is returned for stat codes nothing is registered for.
var ErrNoMapper = errors.New("no mapper registered for stat code")

// StatUpdate is one gameplay statistic change reported for a player.
type StatUpdate struct {
	UserID    string
	StatCode  string
	Value     float64
	Timestamp time.Time
}

// Mode selects how a mapper interprets the reported value.
type Mode string

const (
	// ModeDelta treats the value as an increment.
	ModeDelta Mode = "delta"

	// ModeTotal treats the value as the latest absolute statistic; the
	// difference against the record is applied.
	ModeTotal Mode = "total"
)

// ParseMode resolves a configured mode. An empty string selects delta.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDelta:
		return ModeDelta, nil
	case ModeTotal:
		return ModeTotal, nil
	}
	return "", fmt.Errorf("unknown mapper mode %q", s)
}

// Mapper turns one stat code into a mutation of a character record.
type Mapper interface {
	// StatCode returns the stat code this mapper handles (e.g., "cp-combat-xp").
	StatCode() string

	// Apply mutates the record working copy for the reported value.
	Apply(tx *character.Tx, value float64) error
}
