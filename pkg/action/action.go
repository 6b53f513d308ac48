package action

import (
	"context"

	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// Action rewards or announces a title unlock.
// Actions are registered in a Registry and executed by the Executor.
type Action interface {
	// ID returns unique action identifier.
	ID() string

	// Name returns human-readable action name.
	Name() string

	// Execute performs the action for one unlock. summary is the character's
	// state after the unlock was committed.
	Execute(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error

	// Rollback undoes the action (optional, can return ErrRollbackNotSupported).
	// This is called if a later action for the same unlock fails and rollback is enabled.
	Rollback(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error

	// Config returns the action's configuration.
	Config() ActionConfig
}

// ActionResult represents the outcome of an action execution.
type ActionResult struct {
	ActionID string
	Success  bool
	Attempts int
	Error    error
}

// NewActionResult creates a successful action result.
func NewActionResult(actionID string, attempts int) *ActionResult {
	return &ActionResult{
		ActionID: actionID,
		Success:  true,
		Attempts: attempts,
	}
}

// NewActionError creates a failed action result with an error.
func NewActionError(actionID string, attempts int, err error) *ActionResult {
	return &ActionResult{
		ActionID: actionID,
		Success:  false,
		Attempts: attempts,
		Error:    err,
	}
}
