package action

import "errors"

var (
	// ErrRollbackNotSupported indicates that an action doesn't support rollback.
	ErrRollbackNotSupported = errors.New("rollback not supported for this action")

	// ErrActionNotFound indicates that a requested action doesn't exist in the registry.
	ErrActionNotFound = errors.New("action not found in registry")

	// ErrUnknownActionType indicates that no factory is registered for an action type.
	ErrUnknownActionType = errors.New("unknown action type")

	// ErrInvalidConfig indicates that an action's configuration is invalid.
	ErrInvalidConfig = errors.New("invalid action configuration")

	// ErrMissingSummary indicates that an action needing character state got none.
	ErrMissingSummary = errors.New("missing character summary")
)
