package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/action"
	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/service"
	"github.com/AccelByte/extend-character-progression/pkg/title"
	"github.com/sirupsen/logrus"
)

const (
	// IncrementStatActionID is the identifier for the user statistic increment action
	IncrementStatActionID = "increment_stat"
)

// IncrementStatAction increments an AccelByte user statistic on unlock,
// e.g. a "titles earned" stat that feeds leaderboards or achievements.
type IncrementStatAction struct {
	config   action.ActionConfig
	updater  service.UserStatisticUpdater
	statCode string
	inc      float64
}

// NewIncrementStatAction creates the action from parameters "stat_code" and "inc" (default 1).
func NewIncrementStatAction(config action.ActionConfig, updater service.UserStatisticUpdater) (*IncrementStatAction, error) {
	statCode := config.GetParameterString("stat_code", "")
	if statCode == "" {
		return nil, fmt.Errorf("%w: %s requires stat_code", action.ErrInvalidConfig, config.ID)
	}
	inc := config.GetParameterInt("inc", 1)
	if inc < 1 {
		return nil, fmt.Errorf("%w: %s inc must be positive, got %d", action.ErrInvalidConfig, config.ID, inc)
	}

	return &IncrementStatAction{
		config:   config,
		updater:  updater,
		statCode: statCode,
		inc:      float64(inc),
	}, nil
}

func (a *IncrementStatAction) ID() string {
	return a.config.ID
}

func (a *IncrementStatAction) Name() string {
	return "Increment User Statistic"
}

func (a *IncrementStatAction) Config() action.ActionConfig {
	return a.config
}

func (a *IncrementStatAction) Execute(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	if a.updater == nil {
		logrus.Warnf("[TEST MODE] would increment stat %s by %v for user %s", a.statCode, a.inc, unlock.UserID)
		return nil
	}

	if err := a.updater.IncrementUserStat(ctx, unlock.UserID, a.statCode, a.inc); err != nil {
		return err
	}

	logrus.Infof("incremented stat %s by %v for user %s", a.statCode, a.inc, unlock.UserID)
	return nil
}

// Rollback is not supported; statistic increments are not reversible.
func (a *IncrementStatAction) Rollback(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	return action.ErrRollbackNotSupported
}
