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
	// GrantItemActionID is the identifier for item grant action
	GrantItemActionID = "grant_item"
)

// GrantItemAction grants a store item to the player who unlocked a title.
// This action integrates with AccelByte Platform to fulfill items.
type GrantItemAction struct {
	config   action.ActionConfig
	granter  service.EntitlementGranter
	itemID   string
	quantity int
}

// NewGrantItemAction creates a new grant item action from parameters
// "item_id" and "quantity" (default 1).
func NewGrantItemAction(config action.ActionConfig, granter service.EntitlementGranter) (*GrantItemAction, error) {
	itemID := config.GetParameterString("item_id", "")
	if itemID == "" {
		return nil, fmt.Errorf("%w: %s requires item_id", action.ErrInvalidConfig, config.ID)
	}
	quantity := config.GetParameterInt("quantity", 1)
	if quantity < 1 {
		return nil, fmt.Errorf("%w: %s quantity must be positive, got %d", action.ErrInvalidConfig, config.ID, quantity)
	}

	logrus.Infof("creating grant item action: itemID=%s, quantity=%d", itemID, quantity)

	return &GrantItemAction{
		config:   config,
		granter:  granter,
		itemID:   itemID,
		quantity: quantity,
	}, nil
}

// ID returns the action identifier.
func (a *GrantItemAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *GrantItemAction) Name() string {
	return "Grant Item"
}

// Config returns the action configuration.
func (a *GrantItemAction) Config() action.ActionConfig {
	return a.config
}

// Execute grants the configured item to the player.
func (a *GrantItemAction) Execute(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	if a.granter == nil {
		logrus.Warnf("[TEST MODE] would grant item %s (quantity: %d) to user %s for title %s",
			a.itemID, a.quantity, unlock.UserID, unlock.Title.ID)
		return nil
	}

	logrus.Infof("granting item %s (quantity: %d) to user %s for title %s",
		a.itemID, a.quantity, unlock.UserID, unlock.Title.ID)

	if err := a.granter.GrantEntitlement(ctx, unlock.UserID, a.itemID, a.quantity); err != nil {
		return fmt.Errorf("failed to grant item: %w", err)
	}

	logrus.Infof("successfully granted item %s to user %s", a.itemID, unlock.UserID)
	return nil
}

// Rollback is not supported for item grants (items cannot be taken back).
func (a *GrantItemAction) Rollback(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	return action.ErrRollbackNotSupported
}
