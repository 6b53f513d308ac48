package builtin

import (
	"github.com/AccelByte/extend-character-progression/pkg/action"
	"github.com/AccelByte/extend-character-progression/pkg/service"
)

// Dependencies holds dependencies needed by built-in actions.
type Dependencies struct {
	Services *service.Dependencies
	// UnlockChannel is the default channel for publish_unlock.
	UnlockChannel string
}

// RegisterActions registers built-in action factories with dependencies.
// Built-in actions need their dependencies, so they cannot register in init().
func RegisterActions(deps *Dependencies) {
	services := service.NewDependencies()
	unlockChannel := ""
	if deps != nil {
		if deps.Services != nil {
			services = deps.Services
		}
		unlockChannel = deps.UnlockChannel
	}

	action.RegisterActionType(GrantItemActionID, func(config action.ActionConfig) (action.Action, error) {
		a, err := NewGrantItemAction(config, services.Entitlements)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	action.RegisterActionType(IncrementStatActionID, func(config action.ActionConfig) (action.Action, error) {
		a, err := NewIncrementStatAction(config, services.Statistics)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	action.RegisterActionType(PublishUnlockActionID, func(config action.ActionConfig) (action.Action, error) {
		a, err := NewPublishUnlockAction(config, services.Publisher, unlockChannel)
		if err != nil {
			return nil, err
		}
		return a, nil
	})
}
