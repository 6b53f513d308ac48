package mock

import (
	"context"
	"sync"
)

// EntitlementGranter is a mock implementation of service.EntitlementGranter for testing
type EntitlementGranter struct {
	mu sync.Mutex

	// GrantFunc is called when GrantEntitlement is invoked
	GrantFunc func(ctx context.Context, userID, itemID string, quantity int) error

	// Call tracking
	Calls []GrantCall
}

// GrantCall tracks parameters for GrantEntitlement calls
type GrantCall struct {
	UserID   string
	ItemID   string
	Quantity int
}

func (m *EntitlementGranter) GrantEntitlement(ctx context.Context, userID, itemID string, quantity int) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, GrantCall{UserID: userID, ItemID: itemID, Quantity: quantity})
	m.mu.Unlock()

	if m.GrantFunc != nil {
		return m.GrantFunc(ctx, userID, itemID, quantity)
	}
	return nil
}

// StatisticUpdater is a mock implementation of service.UserStatisticUpdater for testing
type StatisticUpdater struct {
	mu sync.Mutex

	// IncrementFunc is called when IncrementUserStat is invoked
	IncrementFunc func(ctx context.Context, userID, statCode string, inc float64) error

	// Call tracking
	Calls []IncrementCall
}

// IncrementCall tracks parameters for IncrementUserStat calls
type IncrementCall struct {
	UserID   string
	StatCode string
	Inc      float64
}

func (m *StatisticUpdater) IncrementUserStat(ctx context.Context, userID, statCode string, inc float64) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, IncrementCall{UserID: userID, StatCode: statCode, Inc: inc})
	m.mu.Unlock()

	if m.IncrementFunc != nil {
		return m.IncrementFunc(ctx, userID, statCode, inc)
	}
	return nil
}

// Publisher is a mock implementation of service.Publisher for testing
type Publisher struct {
	mu sync.Mutex

	// DefaultError is returned by every Publish call when set
	DefaultError error

	// Call tracking
	Messages []PublishedMessage
}

// PublishedMessage tracks parameters for Publish calls
type PublishedMessage struct {
	Channel string
	Payload []byte
}

func (m *Publisher) Publish(ctx context.Context, channel string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DefaultError != nil {
		return m.DefaultError
	}
	m.Messages = append(m.Messages, PublishedMessage{Channel: channel, Payload: payload})
	return nil
}
