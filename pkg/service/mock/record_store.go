package mock

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/service"
)

// RecordStore is an in-memory service.RecordStore for testing.
// Snapshots are stored as JSON so callers never share memory with the store.
type RecordStore struct {
	mu      sync.Mutex
	records map[string][]byte

	// UpdateError, when set, is returned by UpdateRecord before fn runs.
	UpdateError error

	// Call tracking
	UpdateCalls []string
}

func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[string][]byte)}
}

func (s *RecordStore) GetRecord(ctx context.Context, userID string) (*character.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID)
}

func (s *RecordStore) UpdateRecord(ctx context.Context, userID string, fn service.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UpdateCalls = append(s.UpdateCalls, userID)
	if s.UpdateError != nil {
		return s.UpdateError
	}

	current, err := s.get(userID)
	if err != nil && !errors.Is(err, service.ErrRecordNotFound) {
		return err
	}

	next, err := fn(current)
	if err != nil || next == nil {
		return err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	s.records[userID] = data
	return nil
}

func (s *RecordStore) DeleteRecord(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
	return nil
}

// Put stores a snapshot directly.
func (s *RecordStore) Put(snapshot character.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[snapshot.UserID] = data
	return nil
}

func (s *RecordStore) get(userID string) (*character.Snapshot, error) {
	data, ok := s.records[userID]
	if !ok {
		return nil, service.ErrRecordNotFound
	}
	var snapshot character.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
