package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/action"
	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/common"
	"github.com/AccelByte/extend-character-progression/pkg/event"
	"github.com/AccelByte/extend-character-progression/pkg/metrics"
	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/service"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// ErrCorruptRecord is returned when a stored record fails validation on load.
var ErrCorruptRecord = errors.New("stored character record is invalid")

// Components are the collaborators a Manager orchestrates.
type Components struct {
	Store        service.RecordStore
	Mappers      *event.MapperRegistry
	Catalog      *title.Catalog
	Mastery      *progression.MasteryTable
	Policy       title.ActivePolicy
	Executor     *action.Executor
	TitleActions map[string][]string // Maps title ID to action IDs
}

// Manager orchestrates the complete progression pipeline:
// Stat event → Record mutation → Title unlocks → Actions
type Manager struct {
	store        service.RecordStore
	mappers      *event.MapperRegistry
	catalog      *title.Catalog
	mastery      *progression.MasteryTable
	policy       title.ActivePolicy
	executor     *action.Executor
	titleActions map[string][]string
	now          func() time.Time
}

// NewManager creates a new pipeline manager with all required components.
func NewManager(c Components) *Manager {
	if c.Mastery == nil {
		c.Mastery = progression.DefaultMasteryTable()
	}
	if c.Policy == nil {
		c.Policy = title.ManualPolicy{}
	}
	if c.TitleActions == nil {
		c.TitleActions = make(map[string][]string)
	}

	return &Manager{
		store:        c.Store,
		mappers:      c.Mappers,
		catalog:      c.Catalog,
		mastery:      c.Mastery,
		policy:       c.Policy,
		executor:     c.Executor,
		titleActions: c.TitleActions,
		now:          time.Now,
	}
}

// SetClock overrides the time source used for unlock timestamps.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Promotion is a mastery tier change caused by one event.
type Promotion struct {
	Category progression.SkillCategory
	From     progression.MasteryTier
	To       progression.MasteryTier
}

// Outcome describes what one stat update changed.
type Outcome struct {
	Unlocked   []title.Title
	Promotions []Promotion
	Summary    character.Summary
}

// HandleStatUpdate applies a stat update to the player's record, evaluates
// title unlocks and runs the actions bound to newly unlocked titles.
// Invalid values are rejected with an error wrapping progression.ErrInvalidInput
// and leave the record untouched.
func (m *Manager) HandleStatUpdate(ctx context.Context, update event.StatUpdate) (*Outcome, error) {
	scope := common.ChildScopeFromRemoteScope(ctx, "pipeline.HandleStatUpdate")
	defer scope.Finish()
	scope.SetAttributes("user_id", update.UserID)
	scope.SetAttributes("stat_code", update.StatCode)

	if update.UserID == "" {
		metrics.RecordEvent(update.StatCode, metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: stat update has no user ID", progression.ErrInvalidInput)
	}

	mapper := m.mappers.Get(update.StatCode)
	if mapper == nil {
		metrics.RecordEvent(update.StatCode, metrics.ResultUnmapped)
		scope.Log.Debugf("no mapper for stat code %s, skipping", update.StatCode)
		return nil, fmt.Errorf("%w: %s", event.ErrNoMapper, update.StatCode)
	}

	var outcome *Outcome
	var gained progression.SkillExperience

	err := m.store.UpdateRecord(scope.Ctx, update.UserID, func(current *character.Snapshot) (*character.Snapshot, error) {
		record, err := m.restore(update.UserID, current)
		if err != nil {
			return nil, err
		}

		before := record.Skills()
		var unlocked []title.Title
		err = record.Update(func(tx *character.Tx) error {
			if err := mapper.Apply(tx, update.Value); err != nil {
				return err
			}
			unlocked = tx.EvaluateUnlocks()
			return nil
		})
		if err != nil {
			return nil, err
		}

		after := record.Skills()
		outcome = &Outcome{
			Unlocked:   unlocked,
			Promotions: m.promotions(before, after),
			Summary:    record.Summary(),
		}
		for _, c := range progression.Categories() {
			gained[c] = after[c] - before[c]
		}

		snapshot := record.Snapshot()
		return &snapshot, nil
	})
	if err != nil {
		scope.TraceError(err)
		if errors.Is(err, progression.ErrInvalidInput) {
			metrics.RecordEvent(update.StatCode, metrics.ResultInvalid)
			scope.Log.Warnf("rejected stat update user=%s stat_code=%s value=%v: %v", update.UserID, update.StatCode, update.Value, err)
		} else {
			metrics.RecordEvent(update.StatCode, metrics.ResultError)
			scope.Log.Errorf("failed to apply stat update user=%s stat_code=%s: %v", update.UserID, update.StatCode, err)
		}
		return nil, err
	}

	metrics.RecordEvent(update.StatCode, metrics.ResultApplied)
	for _, c := range progression.Categories() {
		metrics.RecordExperience(c.String(), gained[c])
	}
	for _, p := range outcome.Promotions {
		metrics.RecordPromotion(p.Category.String(), p.To.Name)
		scope.Log.Infof("mastery promotion user=%s category=%s from=%s to=%s", update.UserID, p.Category, p.From, p.To)
	}

	if len(outcome.Unlocked) > 0 {
		scope.TraceEvent(fmt.Sprintf("%d titles unlocked", len(outcome.Unlocked)))
		m.runUnlockActions(scope, update.UserID, outcome)
	}

	return outcome, nil
}

// HandleTitleSelection sets the player's active title.
func (m *Manager) HandleTitleSelection(ctx context.Context, userID, titleID string) (*character.Summary, error) {
	scope := common.ChildScopeFromRemoteScope(ctx, "pipeline.HandleTitleSelection")
	defer scope.Finish()
	scope.SetAttributes("user_id", userID)
	scope.SetAttributes("title_id", titleID)

	var summary character.Summary
	err := m.store.UpdateRecord(scope.Ctx, userID, func(current *character.Snapshot) (*character.Snapshot, error) {
		record, err := m.restore(userID, current)
		if err != nil {
			return nil, err
		}
		if err := record.SetActiveTitle(titleID); err != nil {
			return nil, err
		}

		summary = record.Summary()
		snapshot := record.Snapshot()
		return &snapshot, nil
	})
	if err != nil {
		scope.TraceError(err)
		scope.Log.Warnf("title selection failed user=%s title=%s: %v", userID, titleID, err)
		return nil, err
	}

	scope.Log.Infof("active title set user=%s title=%s", userID, titleID)
	return &summary, nil
}

// GetSummary returns the player's progression summary. Unknown players get
// an empty summary.
func (m *Manager) GetSummary(ctx context.Context, userID string) (*character.Summary, error) {
	snapshot, err := m.store.GetRecord(ctx, userID)
	if err != nil && !errors.Is(err, service.ErrRecordNotFound) {
		return nil, err
	}

	record, err := m.restore(userID, snapshot)
	if err != nil {
		return nil, err
	}

	summary := record.Summary()
	return &summary, nil
}

// DeleteCharacter removes every stored trace of the player's progression.
func (m *Manager) DeleteCharacter(ctx context.Context, userID string) error {
	scope := common.ChildScopeFromRemoteScope(ctx, "pipeline.DeleteCharacter")
	defer scope.Finish()

	if err := m.store.DeleteRecord(scope.Ctx, userID); err != nil {
		scope.TraceError(err)
		return err
	}
	return nil
}

func (m *Manager) restore(userID string, snapshot *character.Snapshot) (*character.Record, error) {
	var record *character.Record
	if snapshot == nil {
		record = character.New(userID, m.mastery, m.catalog, m.policy)
	} else {
		restored, err := character.Restore(*snapshot, m.mastery, m.catalog, m.policy)
		if err != nil {
			return nil, fmt.Errorf("%w: user %s: %v", ErrCorruptRecord, userID, err)
		}
		record = restored
	}
	record.SetClock(m.now)
	return record, nil
}

func (m *Manager) promotions(before, after progression.SkillExperience) []Promotion {
	var promotions []Promotion
	for _, c := range progression.Categories() {
		from := m.mastery.Tier(before[c])
		to := m.mastery.Tier(after[c])
		if to.Rank > from.Rank {
			promotions = append(promotions, Promotion{Category: c, From: from, To: to})
		}
	}
	return promotions
}

// runUnlockActions executes the actions bound to each unlocked title.
// Action failures are logged and counted; the unlock itself is already committed.
func (m *Manager) runUnlockActions(scope *common.Scope, userID string, outcome *Outcome) {
	unlockedAt := make(map[string]time.Time, len(outcome.Summary.EarnedTitles))
	for _, t := range outcome.Summary.EarnedTitles {
		unlockedAt[t.ID] = t.UnlockedAt
	}

	for _, t := range outcome.Unlocked {
		metrics.RecordUnlock(t.ID)
		scope.Log.Infof("title unlocked user=%s title=%s", userID, t.ID)

		actionIDs := m.titleActions[t.ID]
		if len(actionIDs) == 0 || m.executor == nil {
			continue
		}

		unlock := &title.Unlock{
			UserID:     userID,
			Title:      t,
			UnlockedAt: unlockedAt[t.ID],
		}

		child := scope.NewChildScope("pipeline.runUnlockActions")
		child.SetAttributes("title_id", t.ID)

		results, err := m.executor.ExecuteMultiple(child.Ctx, actionIDs, unlock, &outcome.Summary, true)
		if err != nil {
			child.TraceError(err)
			child.Log.Errorf("action execution encountered error title=%s: %v", t.ID, err)
		}

		successCount := 0
		failureCount := 0
		for _, result := range results {
			metrics.RecordAction(result.ActionID, result.Success)
			if result.Success {
				successCount++
			} else {
				failureCount++
			}
		}

		child.Log.Infof("action execution completed title=%s success=%d failure=%d", t.ID, successCount, failureCount)
		child.Finish()
	}
}
