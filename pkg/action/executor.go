package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/title"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Executor runs unlock actions, retrying them per their RetryConfig.
type Executor struct {
	registry *Registry
}

// NewExecutor creates a new action executor.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{
		registry: registry,
	}
}

// Execute runs one action for an unlock.
func (e *Executor) Execute(ctx context.Context, actionID string, unlock *title.Unlock, summary *character.Summary) (*ActionResult, error) {
	action := e.registry.GetEnabled(actionID)
	if action == nil {
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
	}

	return e.run(ctx, action, unlock, summary)
}

// ExecuteMultiple executes actions in sequence and stops at the first failure.
// If rollbackOnError is true, previously executed actions are rolled back in reverse order.
func (e *Executor) ExecuteMultiple(ctx context.Context, actionIDs []string, unlock *title.Unlock, summary *character.Summary, rollbackOnError bool) ([]*ActionResult, error) {
	var results []*ActionResult
	var executed []Action

	for _, actionID := range actionIDs {
		action := e.registry.GetEnabled(actionID)
		if action == nil {
			err := fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
			logrus.Errorf("%v", err)

			if rollbackOnError && len(executed) > 0 {
				e.rollbackActions(ctx, executed, unlock, summary)
			}
			return results, err
		}

		result, err := e.run(ctx, action, unlock, summary)
		results = append(results, result)
		if err != nil {
			if rollbackOnError && len(executed) > 0 {
				e.rollbackActions(ctx, executed, unlock, summary)
			}
			return results, err
		}

		executed = append(executed, action)
	}

	return results, nil
}

func (e *Executor) run(ctx context.Context, action Action, unlock *title.Unlock, summary *character.Summary) (*ActionResult, error) {
	logrus.Infof("executing action %s for title %s (user: %s)", action.ID(), unlock.Title.ID, unlock.UserID)

	attempts := 0
	operation := func() error {
		attempts++
		err := action.Execute(ctx, unlock, summary)
		if err != nil && errors.Is(err, ErrInvalidConfig) {
			return backoff.Permanent(err)
		}
		if err != nil {
			logrus.Warnf("action %s attempt %d failed: %v", action.ID(), attempts, err)
		}
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(retryPolicy(action.Config().Retry), ctx))
	if err != nil {
		logrus.Errorf("action %s failed after %d attempt(s): %v", action.ID(), attempts, err)
		return NewActionError(action.ID(), attempts, err), err
	}

	logrus.Infof("action %s completed successfully", action.ID())
	return NewActionResult(action.ID(), attempts), nil
}

// retryPolicy converts a RetryConfig into a backoff policy.
// A nil config or MaxAttempts <= 1 means a single attempt.
func retryPolicy(cfg *RetryConfig) backoff.BackOff {
	if cfg == nil || cfg.MaxAttempts <= 1 {
		return &backoff.StopBackOff{}
	}

	var policy backoff.BackOff
	switch cfg.Backoff {
	case BackoffExponential:
		exp := backoff.NewExponentialBackOff()
		if cfg.Delay > 0 {
			exp.InitialInterval = cfg.Delay
		}
		exp.MaxElapsedTime = 0
		policy = exp
	default:
		policy = backoff.NewConstantBackOff(cfg.Delay)
	}

	return backoff.WithMaxRetries(policy, uint64(cfg.MaxAttempts-1))
}

// rollbackActions rolls back actions in reverse order.
func (e *Executor) rollbackActions(ctx context.Context, actions []Action, unlock *title.Unlock, summary *character.Summary) {
	logrus.Warnf("rolling back %d actions", len(actions))

	for i := len(actions) - 1; i >= 0; i-- {
		action := actions[i]
		logrus.Infof("rolling back action %s", action.ID())

		err := action.Rollback(ctx, unlock, summary)
		switch {
		case err == nil:
			logrus.Infof("action %s rolled back successfully", action.ID())
		case errors.Is(err, ErrRollbackNotSupported):
			logrus.Warnf("action %s does not support rollback", action.ID())
		default:
			logrus.Errorf("failed to rollback action %s: %v", action.ID(), err)
		}
	}
}

// GetRegistry returns the action registry used by this executor.
func (e *Executor) GetRegistry() *Registry {
	return e.registry
}
