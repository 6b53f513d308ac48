package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// testAction is a simple action for testing
type testAction struct {
	id             string
	config         ActionConfig
	executeFunc    func(attempt int) error
	rollbackErr    error
	executeCalls   int
	rollbackCalled bool
}

func (a *testAction) ID() string           { return a.id }
func (a *testAction) Name() string         { return a.id }
func (a *testAction) Config() ActionConfig { return a.config }

func (a *testAction) Execute(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	a.executeCalls++
	if a.executeFunc != nil {
		return a.executeFunc(a.executeCalls)
	}
	return nil
}

func (a *testAction) Rollback(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	a.rollbackCalled = true
	return a.rollbackErr
}

func newTestAction(id string) *testAction {
	return &testAction{id: id, config: ActionConfig{ID: id, Enabled: true}}
}

func testUnlock() (*title.Unlock, *character.Summary) {
	unlock := &title.Unlock{
		UserID:     "test-user",
		Title:      title.Title{ID: "friend_to_all", Name: "Friend to All"},
		UnlockedAt: time.Now(),
	}
	return unlock, &character.Summary{UserID: "test-user"}
}

func TestExecutor_Execute_Success(t *testing.T) {
	registry := NewRegistry()
	executor := NewExecutor(registry)
	action := newTestAction("test_action")
	registry.Register(action)

	unlock, summary := testUnlock()
	result, err := executor.Execute(context.Background(), "test_action", unlock, summary)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success || result.Attempts != 1 {
		t.Errorf("result = %+v, expected success after 1 attempt", result)
	}
	if action.executeCalls != 1 {
		t.Errorf("executeCalls = %d, expected 1", action.executeCalls)
	}
	if executor.GetRegistry() != registry {
		t.Error("Expected executor to use provided registry")
	}
}

func TestExecutor_Execute_ActionNotFound(t *testing.T) {
	executor := NewExecutor(NewRegistry())
	unlock, summary := testUnlock()

	result, err := executor.Execute(context.Background(), "nonexistent_action", unlock, summary)
	if !errors.Is(err, ErrActionNotFound) {
		t.Errorf("error = %v, expected ErrActionNotFound", err)
	}
	if result != nil {
		t.Error("Expected nil result for nonexistent action")
	}
}

func TestExecutor_Execute_Retry(t *testing.T) {
	failing := errors.New("platform unavailable")

	tests := []struct {
		name             string
		retry            *RetryConfig
		failUntil        int
		expectedSuccess  bool
		expectedAttempts int
	}{
		{name: "no retry config", retry: nil, failUntil: 1, expectedSuccess: false, expectedAttempts: 1},
		{
			name:             "constant recovers",
			retry:            &RetryConfig{MaxAttempts: 3, Delay: time.Millisecond, Backoff: BackoffConstant},
			failUntil:        2,
			expectedSuccess:  true,
			expectedAttempts: 3,
		},
		{
			name:             "exponential exhausted",
			retry:            &RetryConfig{MaxAttempts: 2, Delay: time.Millisecond, Backoff: BackoffExponential},
			failUntil:        5,
			expectedSuccess:  false,
			expectedAttempts: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			action := newTestAction("flaky")
			action.config.Retry = tt.retry
			action.executeFunc = func(attempt int) error {
				if attempt <= tt.failUntil {
					return failing
				}
				return nil
			}
			registry.Register(action)

			unlock, summary := testUnlock()
			result, err := NewExecutor(registry).Execute(context.Background(), "flaky", unlock, summary)

			if result.Success != tt.expectedSuccess {
				t.Errorf("Success = %v, expected %v (err: %v)", result.Success, tt.expectedSuccess, err)
			}
			if result.Attempts != tt.expectedAttempts {
				t.Errorf("Attempts = %d, expected %d", result.Attempts, tt.expectedAttempts)
			}
			if !tt.expectedSuccess && !errors.Is(err, failing) {
				t.Errorf("error = %v, expected %v", err, failing)
			}
		})
	}
}

func TestExecutor_Execute_InvalidConfigIsNotRetried(t *testing.T) {
	registry := NewRegistry()
	action := newTestAction("broken")
	action.config.Retry = &RetryConfig{MaxAttempts: 5, Delay: time.Millisecond}
	action.executeFunc = func(int) error { return ErrInvalidConfig }
	registry.Register(action)

	unlock, summary := testUnlock()
	result, err := NewExecutor(registry).Execute(context.Background(), "broken", unlock, summary)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, expected ErrInvalidConfig", err)
	}
	if result.Attempts != 1 {
		t.Errorf("Attempts = %d, expected 1", result.Attempts)
	}
}

func TestExecutor_ExecuteMultiple_Success(t *testing.T) {
	registry := NewRegistry()
	action1 := newTestAction("action1")
	action2 := newTestAction("action2")
	registry.Register(action1)
	registry.Register(action2)

	unlock, summary := testUnlock()
	results, err := NewExecutor(registry).ExecuteMultiple(context.Background(), []string{"action1", "action2"}, unlock, summary, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if action1.executeCalls != 1 || action2.executeCalls != 1 {
		t.Error("Expected both actions to be executed once")
	}
}

func TestExecutor_ExecuteMultiple_RollbackOnError(t *testing.T) {
	registry := NewRegistry()
	action1 := newTestAction("action1")
	action2 := newTestAction("action2")
	action2.rollbackErr = ErrRollbackNotSupported
	failing := newTestAction("failing")
	failing.executeFunc = func(int) error { return errors.New("boom") }
	action4 := newTestAction("action4")

	for _, a := range []*testAction{action1, action2, failing, action4} {
		registry.Register(a)
	}

	unlock, summary := testUnlock()
	results, err := NewExecutor(registry).ExecuteMultiple(context.Background(),
		[]string{"action1", "action2", "failing", "action4"}, unlock, summary, true)
	if err == nil {
		t.Fatal("Expected error from failing action")
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}
	if !action1.rollbackCalled || !action2.rollbackCalled {
		t.Error("Expected executed actions to be rolled back")
	}
	if failing.rollbackCalled {
		t.Error("Expected failed action not to be rolled back")
	}
	if action4.executeCalls != 0 {
		t.Error("Expected actions after the failure not to run")
	}
}

func TestExecutor_ExecuteMultiple_NoRollback(t *testing.T) {
	registry := NewRegistry()
	action1 := newTestAction("action1")
	registry.Register(action1)

	unlock, summary := testUnlock()
	_, err := NewExecutor(registry).ExecuteMultiple(context.Background(), []string{"action1", "missing"}, unlock, summary, false)
	if !errors.Is(err, ErrActionNotFound) {
		t.Errorf("error = %v, expected ErrActionNotFound", err)
	}
	if action1.rollbackCalled {
		t.Error("Expected no rollback when rollbackOnError is false")
	}
}
