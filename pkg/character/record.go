package character

import (
	"sync"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// Record is the complete progression state of one character: skill
// experience, lifetime statistics and titles. All access goes through the
// record's lock, so one record is mutated by one caller at a time.
type Record struct {
	mu sync.Mutex

	userID    string
	tracker   *progression.Tracker
	stats     progression.Stats
	titles    *title.Registry
	updatedAt time.Time
	now       func() time.Time
}

// New creates an empty record for userID.
func New(userID string, mastery *progression.MasteryTable, catalog *title.Catalog, policy title.ActivePolicy) *Record {
	return &Record{
		userID:  userID,
		tracker: progression.NewTracker(mastery),
		titles:  title.NewRegistry(catalog, policy),
		now:     time.Now,
	}
}

// SetClock overrides the time source for unlock and update timestamps.
func (r *Record) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
	r.titles.SetClock(now)
}

// UserID returns the owner of the record.
func (r *Record) UserID() string {
	return r.userID
}

// Update runs fn against a working copy of the record and commits the copy
// only if fn returns nil. A failing fn leaves the record untouched.
func (r *Record) Update(fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &Tx{
		tracker: r.tracker.Clone(),
		stats:   r.stats,
		titles:  r.titles.Clone(),
	}
	if err := fn(tx); err != nil {
		return err
	}

	r.tracker = tx.tracker
	r.stats = tx.stats
	r.titles = tx.titles
	if tx.dirty {
		r.updatedAt = r.now()
	}
	return nil
}

// AddExperience adds amount to category.
func (r *Record) AddExperience(category progression.SkillCategory, amount int64) error {
	return r.Update(func(tx *Tx) error {
		return tx.AddExperience(category, amount)
	})
}

// IncrementStat adds n to a lifetime counter.
func (r *Record) IncrementStat(counter progression.Counter, n int64) error {
	return r.Update(func(tx *Tx) error {
		return tx.IncrementStat(counter, n)
	})
}

// AddPlaytime adds hours of playtime.
func (r *Record) AddPlaytime(hours float64) error {
	return r.Update(func(tx *Tx) error {
		return tx.AddPlaytime(hours)
	})
}

// EvaluateUnlocks unlocks every title whose condition the current state meets
// and returns those unlocked by this call.
func (r *Record) EvaluateUnlocks() []title.Title {
	var unlocked []title.Title
	_ = r.Update(func(tx *Tx) error {
		unlocked = tx.EvaluateUnlocks()
		return nil
	})
	return unlocked
}

// SetActiveTitle selects an earned title.
func (r *Record) SetActiveTitle(id string) error {
	return r.Update(func(tx *Tx) error {
		return tx.SetActiveTitle(id)
	})
}

func (r *Record) Experience(category progression.SkillCategory) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracker.Experience(category)
}

func (r *Record) Mastery(category progression.SkillCategory) progression.MasteryTier {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracker.Mastery(category)
}

func (r *Record) Skills() progression.SkillExperience {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracker.Skills()
}

func (r *Record) Stats() progression.Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Record) ActiveTitle() title.Title {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.titles.ActiveTitle()
}

func (r *Record) EarnedTitles() []title.Title {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.titles.EarnedTitles()
}

func (r *Record) EarnedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.titles.EarnedCount()
}

// UpdatedAt returns the time of the last committed change.
func (r *Record) UpdatedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updatedAt
}
