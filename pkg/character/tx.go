package character

import (
	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// Tx is the working copy handed to Record.Update.
type Tx struct {
	tracker *progression.Tracker
	stats   progression.Stats
	titles  *title.Registry
	dirty   bool
}

func (tx *Tx) AddExperience(category progression.SkillCategory, amount int64) error {
	if err := tx.tracker.AddExperience(category, amount); err != nil {
		return err
	}
	tx.dirty = true
	return nil
}

func (tx *Tx) IncrementStat(counter progression.Counter, n int64) error {
	if err := tx.stats.Increment(counter, n); err != nil {
		return err
	}
	tx.dirty = true
	return nil
}

func (tx *Tx) AddPlaytime(hours float64) error {
	if err := tx.stats.AddPlaytime(hours); err != nil {
		return err
	}
	tx.dirty = true
	return nil
}

// EvaluateUnlocks runs title evaluation against the working copy.
func (tx *Tx) EvaluateUnlocks() []title.Title {
	unlocked := tx.titles.EvaluateUnlocks(tx.stats, tx.tracker.Skills())
	if len(unlocked) > 0 {
		tx.dirty = true
	}
	return unlocked
}

func (tx *Tx) SetActiveTitle(id string) error {
	if err := tx.titles.SetActiveTitle(id); err != nil {
		return err
	}
	tx.dirty = true
	return nil
}

func (tx *Tx) Experience(category progression.SkillCategory) int64 {
	return tx.tracker.Experience(category)
}

func (tx *Tx) Mastery(category progression.SkillCategory) progression.MasteryTier {
	return tx.tracker.Mastery(category)
}

func (tx *Tx) Stats() progression.Stats {
	return tx.stats
}

func (tx *Tx) ActiveTitle() title.Title {
	return tx.titles.ActiveTitle()
}
