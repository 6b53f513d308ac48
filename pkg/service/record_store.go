// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// recordStoreKeyPrefix is the prefix for all character record keys
	recordStoreKeyPrefix = "character_progression:record:"
	// recordStoreDefaultMaxRetries bounds optimistic transaction retries
	recordStoreDefaultMaxRetries = 10
)

// RedisRecordStore implements RecordStore using Redis.
// Updates are WATCH/MULTI transactions, so concurrent writers to the same
// user from any number of replicas are serialized.
type RedisRecordStore struct {
	client redis.UniversalClient
	cfg    RedisRecordStoreConfig
}

type RedisRecordStoreConfig struct {
	// TTL of a record after its last update; zero keeps records forever.
	TTL time.Duration
	// MaxRetries is the number of retries after a transaction conflict.
	MaxRetries uint64
	// RetryInterval is the initial delay between conflicting attempts.
	RetryInterval time.Duration
}

// NewRedisRecordStore creates a new Redis-backed record store.
func NewRedisRecordStore(
	client redis.UniversalClient,
	cfg RedisRecordStoreConfig,
) *RedisRecordStore {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = recordStoreDefaultMaxRetries
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 5 * time.Millisecond
	}
	return &RedisRecordStore{
		client: client,
		cfg:    cfg,
	}
}

// makeRecordStoreKey creates a Redis key for a player
func makeRecordStoreKey(userID string) string {
	return fmt.Sprintf("%s%s", recordStoreKeyPrefix, userID)
}

// GetRecord retrieves the stored snapshot for a player.
func (s *RedisRecordStore) GetRecord(ctx context.Context, userID string) (*character.Snapshot, error) {
	return s.load(ctx, s.client, userID)
}

// UpdateRecord applies fn to the stored snapshot inside an optimistic transaction.
func (s *RedisRecordStore) UpdateRecord(ctx context.Context, userID string, fn UpdateFunc) error {
	key := makeRecordStoreKey(userID)

	txf := func(tx *redis.Tx) error {
		current, err := s.load(ctx, tx, userID)
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.cfg.TTL)
			return nil
		})
		return err
	}

	attempts := 0
	operation := func() error {
		attempts++
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			logrus.Debugf("record for user %s changed during update, retrying (attempt %d)", userID, attempts)
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.cfg.RetryInterval
	policy.MaxInterval = 50 * s.cfg.RetryInterval
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, s.cfg.MaxRetries), ctx))
	if errors.Is(err, redis.TxFailedErr) {
		logrus.Errorf("giving up updating record for user %s after %d attempts", userID, attempts)
		return fmt.Errorf("%w: user %s", ErrConflict, userID)
	}
	if err != nil {
		return err
	}

	logrus.Debugf("updated record for user %s", userID)
	return nil
}

// DeleteRecord deletes the stored record for a player.
func (s *RedisRecordStore) DeleteRecord(ctx context.Context, userID string) error {
	key := makeRecordStoreKey(userID)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		logrus.Errorf("failed to delete record for user %s: %v", userID, err)
		return fmt.Errorf("failed to delete record: %w", err)
	}

	logrus.Infof("deleted record for user %s", userID)
	return nil
}

// stringGetter is satisfied by both the client and a WATCH transaction.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisRecordStore) load(ctx context.Context, cmd stringGetter, userID string) (*character.Snapshot, error) {
	data, err := cmd.Get(ctx, makeRecordStoreKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		logrus.Errorf("failed to get record for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	var snapshot character.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logrus.Errorf("failed to unmarshal record for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &snapshot, nil
}
