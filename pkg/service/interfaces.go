package service

import (
	"context"
	"errors"

	"github.com/AccelByte/extend-character-progression/pkg/character"
)

// Service interfaces for external dependencies that the pipeline and actions use.
// Interfaces keep the Redis and AccelByte implementations swappable with mocks in unit tests.

// ErrRecordNotFound is returned when no record is stored for a user.
var ErrRecordNotFound = errors.New("character record not found")

// ErrConflict is returned when a record kept changing underneath an update.
var ErrConflict = errors.New("character record update conflict")

// UpdateFunc receives the stored snapshot (nil for a new character) and returns
// the snapshot to store. Returning a nil snapshot leaves storage untouched;
// returning an error aborts the update.
type UpdateFunc func(current *character.Snapshot) (*character.Snapshot, error)

// RecordStore persists character progression records.
type RecordStore interface {
	GetRecord(ctx context.Context, userID string) (*character.Snapshot, error)

	// UpdateRecord runs fn as a read-modify-write that is isolated from
	// concurrent updates of the same user. fn may run more than once.
	UpdateRecord(ctx context.Context, userID string, fn UpdateFunc) error

	DeleteRecord(ctx context.Context, userID string) error
}

type EntitlementGranter interface {
	// GrantEntitlement grants an entitlement/item to a player
	GrantEntitlement(ctx context.Context, userID, itemID string, quantity int) error
}

type UserStatisticUpdater interface {
	// IncrementUserStat increments a player's statistic by inc
	IncrementUserStat(ctx context.Context, userID, statCode string, inc float64) error
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
