package title

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/sirupsen/logrus"
)

// EarnedTitle is the persisted form of one unlocked title.
type EarnedTitle struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// State is the persisted form of a character's title registry.
type State struct {
	Earned []EarnedTitle `json:"earned"`
	Active string        `json:"active,omitempty"`
}

// Registry tracks one character's earned titles and the active selection.
// Earned titles are never revoked. Registry is not safe for concurrent use;
// character.Record serializes access to it.
type Registry struct {
	catalog *Catalog
	policy  ActivePolicy
	earned  []EarnedTitle
	index   map[string]int
	active  string
	now     func() time.Time
}

// NewRegistry creates an empty registry evaluating titles from catalog.
// A nil policy means ManualPolicy.
func NewRegistry(catalog *Catalog, policy ActivePolicy) *Registry {
	if policy == nil {
		policy = ManualPolicy{}
	}
	return &Registry{
		catalog: catalog,
		policy:  policy,
		index:   make(map[string]int),
		now:     time.Now,
	}
}

// RestoreRegistry rebuilds a registry from persisted state.
// Earned IDs that are no longer defined in the catalog are kept.
func RestoreRegistry(catalog *Catalog, policy ActivePolicy, state State) (*Registry, error) {
	r := NewRegistry(catalog, policy)

	for _, e := range state.Earned {
		if e.ID == "" {
			return nil, fmt.Errorf("earned title with empty ID")
		}
		if _, dup := r.index[e.ID]; dup {
			return nil, fmt.Errorf("title %s earned twice", e.ID)
		}
		if _, known := catalog.Get(e.ID); !known {
			logrus.Warnf("earned title %s is no longer defined; keeping it", e.ID)
		}
		r.index[e.ID] = len(r.earned)
		r.earned = append(r.earned, e)
	}

	if state.Active != "" {
		if _, ok := r.index[state.Active]; !ok {
			return nil, fmt.Errorf("%w: active title %s", ErrInvalidSelection, state.Active)
		}
		r.active = state.Active
	}

	return r, nil
}

// SetClock overrides the time source used to stamp unlocks.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// EvaluateUnlocks checks every locked title against the given progress and
// returns the titles unlocked by this call, in catalog order.
// Calling it again with unchanged inputs returns nothing.
func (r *Registry) EvaluateUnlocks(stats progression.Stats, skills progression.SkillExperience) []Title {
	progress := Progress{Stats: stats, Skills: skills}
	unlockedAt := r.now()

	var unlocked []Title
	for _, t := range r.catalog.All() {
		if _, earned := r.index[t.ID]; earned {
			continue
		}
		if !t.condition.Satisfied(progress) {
			continue
		}

		r.index[t.ID] = len(r.earned)
		r.earned = append(r.earned, EarnedTitle{ID: t.ID, UnlockedAt: unlockedAt})
		unlocked = append(unlocked, t)
		logrus.Debugf("title %s unlocked (%s)", t.ID, t.condition.Describe())
	}

	if len(unlocked) == 0 {
		return nil
	}

	if choice, ok := r.policy.Choose(r.ActiveTitle(), unlocked); ok {
		if _, earned := r.index[choice.ID]; earned {
			r.active = choice.ID
			logrus.Debugf("active title set to %s by %s policy", choice.ID, r.policy.Name())
		}
	}

	return unlocked
}

// SetActiveTitle selects an earned title as active.
func (r *Registry) SetActiveTitle(id string) error {
	if _, earned := r.index[id]; !earned {
		return fmt.Errorf("%w: %q", ErrInvalidSelection, id)
	}
	r.active = id
	return nil
}

// ActiveTitle returns the active title, or NoneEarned if none was selected.
func (r *Registry) ActiveTitle() Title {
	if r.active == "" {
		return NoneEarned
	}
	return r.lookup(r.active)
}

// EarnedTitles returns a copy of the earned titles in unlock order.
func (r *Registry) EarnedTitles() []Title {
	out := make([]Title, 0, len(r.earned))
	for _, e := range r.earned {
		out = append(out, r.lookup(e.ID))
	}
	return out
}

// EarnedCount returns the number of earned titles.
func (r *Registry) EarnedCount() int {
	return len(r.earned)
}

// IsEarned reports whether the title with the given ID is earned.
func (r *Registry) IsEarned(id string) bool {
	_, ok := r.index[id]
	return ok
}

// UnlockedAt returns when the title was earned.
func (r *Registry) UnlockedAt(id string) (time.Time, bool) {
	i, ok := r.index[id]
	if !ok {
		return time.Time{}, false
	}
	return r.earned[i].UnlockedAt, true
}

// Policy returns the active-title policy in use.
func (r *Registry) Policy() ActivePolicy {
	return r.policy
}

// State returns the persistable form of the registry.
func (r *Registry) State() State {
	earned := make([]EarnedTitle, len(r.earned))
	copy(earned, r.earned)
	return State{
		Earned: earned,
		Active: r.active,
	}
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		catalog: r.catalog,
		policy:  r.policy,
		earned:  make([]EarnedTitle, len(r.earned)),
		index:   make(map[string]int, len(r.index)),
		active:  r.active,
		now:     r.now,
	}
	copy(c.earned, r.earned)
	for k, v := range r.index {
		c.index[k] = v
	}
	return c
}

func (r *Registry) lookup(id string) Title {
	if t, ok := r.catalog.Get(id); ok {
		return t
	}
	return Title{ID: id, Name: id}
}
