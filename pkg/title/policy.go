package title

import (
	"fmt"
	"strings"
)

// Policy names accepted in configuration.
const (
	PolicyManual          = "manual"
	PolicyFirstEarned     = "first_earned"
	PolicyHighestPriority = "highest_priority"
)

// ActivePolicy decides whether newly unlocked titles change the active title.
// The registry only accepts a choice from the newly unlocked set, so a policy
// can never activate a title that is not earned.
type ActivePolicy interface {
	Name() string

	// Choose returns the title to activate and true, or false to keep the current one.
	Choose(active Title, newlyUnlocked []Title) (Title, bool)
}

// ParsePolicy resolves a configured policy name. An empty name selects manual.
func ParsePolicy(name string) (ActivePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyManual:
		return ManualPolicy{}, nil
	case PolicyFirstEarned:
		return FirstEarnedPolicy{}, nil
	case PolicyHighestPriority:
		return HighestPriorityPolicy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// ManualPolicy never changes the active title; the player selects explicitly.
type ManualPolicy struct{}

func (ManualPolicy) Name() string { return PolicyManual }

func (ManualPolicy) Choose(Title, []Title) (Title, bool) { return NoneEarned, false }

// FirstEarnedPolicy activates the first title a character unlocks and then leaves the choice to the player.
type FirstEarnedPolicy struct{}

func (FirstEarnedPolicy) Name() string { return PolicyFirstEarned }

func (FirstEarnedPolicy) Choose(active Title, newlyUnlocked []Title) (Title, bool) {
	if !active.IsNone() || len(newlyUnlocked) == 0 {
		return NoneEarned, false
	}
	return newlyUnlocked[0], true
}

// HighestPriorityPolicy switches to a newly unlocked title when it outranks the active one.
// Ties keep the current title.
type HighestPriorityPolicy struct{}

func (HighestPriorityPolicy) Name() string { return PolicyHighestPriority }

func (HighestPriorityPolicy) Choose(active Title, newlyUnlocked []Title) (Title, bool) {
	if len(newlyUnlocked) == 0 {
		return NoneEarned, false
	}

	best := newlyUnlocked[0]
	for _, t := range newlyUnlocked[1:] {
		if t.Priority > best.Priority {
			best = t
		}
	}

	if active.IsNone() || best.Priority > active.Priority {
		return best, true
	}
	return NoneEarned, false
}
