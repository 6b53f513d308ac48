package title

import (
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
)

// Progress is the character state unlock conditions are evaluated against.
type Progress struct {
	Stats  progression.Stats
	Skills progression.SkillExperience
}

// Condition decides whether a title is unlocked.
// Each title owns exactly one condition; composite conditions nest others.
type Condition interface {
	// Type returns the registered condition type (e.g., "stat_threshold").
	Type() string

	// Satisfied reports whether the progress meets the condition.
	// It must be a pure function of its input.
	Satisfied(p Progress) bool

	// Describe returns a short human-readable form of the condition.
	Describe() string
}

// Title is a named designation a character can unlock and display as active.
type Title struct {
	ID          string
	Name        string
	Description string
	Priority    int

	condition Condition
}

// NoneEarned is the active title before any selection has been made.
var NoneEarned = Title{}

// NewTitle creates a title guarded by cond.
func NewTitle(id, name string, cond Condition) Title {
	if name == "" {
		name = id
	}
	return Title{
		ID:        id,
		Name:      name,
		condition: cond,
	}
}

// WithDescription returns a copy of t with the description set.
func (t Title) WithDescription(description string) Title {
	t.Description = description
	return t
}

// WithPriority returns a copy of t with the priority set.
func (t Title) WithPriority(priority int) Title {
	t.Priority = priority
	return t
}

// Condition returns the title's unlock condition (nil for placeholder titles).
func (t Title) Condition() Condition {
	return t.condition
}

// IsNone reports whether t is the NoneEarned sentinel.
func (t Title) IsNone() bool {
	return t.ID == ""
}

// Unlock records a title crossing from locked to unlocked for one player.
// Unlock actions receive it.
type Unlock struct {
	UserID     string
	Title      Title
	UnlockedAt time.Time
}
