package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestStore(t *testing.T, cfg RedisRecordStoreConfig) (*RedisRecordStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRecordStore(client, cfg), mr
}

func TestRedisRecordStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t, RedisRecordStoreConfig{})

	snapshot, err := store.GetRecord(context.Background(), "nobody")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("GetRecord() error = %v, expected ErrRecordNotFound", err)
	}
	if snapshot != nil {
		t.Errorf("GetRecord() = %+v, expected nil", snapshot)
	}
}

func TestRedisRecordStore_UpdateAndGet(t *testing.T) {
	store, mr := newTestStore(t, RedisRecordStoreConfig{TTL: time.Hour})
	ctx := context.Background()

	err := store.UpdateRecord(ctx, "user-1", func(current *character.Snapshot) (*character.Snapshot, error) {
		if current != nil {
			t.Errorf("current = %+v, expected nil for a new user", current)
		}
		s := &character.Snapshot{UserID: "user-1"}
		s.Skills[progression.Magic] = 120
		s.Stats.QuestsCompleted = 3
		s.Titles = title.State{Earned: []title.EarnedTitle{{ID: "questor"}}, Active: "questor"}
		return s, nil
	})
	if err != nil {
		t.Fatalf("UpdateRecord() error = %v", err)
	}

	key := makeRecordStoreKey("user-1")
	if !mr.Exists(key) {
		t.Fatalf("expected key %s to exist", key)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("TTL = %v, expected 1h", ttl)
	}

	got, err := store.GetRecord(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if got.Skills[progression.Magic] != 120 || got.Stats.QuestsCompleted != 3 || got.Titles.Active != "questor" {
		t.Errorf("GetRecord() = %+v", got)
	}
}

func TestRedisRecordStore_UpdateAbortLeavesRecord(t *testing.T) {
	store, _ := newTestStore(t, RedisRecordStoreConfig{})
	ctx := context.Background()

	_ = store.UpdateRecord(ctx, "user-1", func(*character.Snapshot) (*character.Snapshot, error) {
		return &character.Snapshot{UserID: "user-1", Stats: progression.Stats{Deaths: 1}}, nil
	})

	boom := errors.New("boom")
	err := store.UpdateRecord(ctx, "user-1", func(current *character.Snapshot) (*character.Snapshot, error) {
		current.Stats.Deaths = 99
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("UpdateRecord() error = %v, expected boom", err)
	}

	// nil snapshot is a no-op write
	if err := store.UpdateRecord(ctx, "user-1", func(*character.Snapshot) (*character.Snapshot, error) {
		return nil, nil
	}); err != nil {
		t.Fatalf("UpdateRecord(no-op) error = %v", err)
	}

	got, _ := store.GetRecord(ctx, "user-1")
	if got.Stats.Deaths != 1 {
		t.Errorf("Deaths = %d, expected 1", got.Stats.Deaths)
	}
}

func TestRedisRecordStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	store, _ := newTestStore(t, RedisRecordStoreConfig{MaxRetries: 1000, RetryInterval: time.Millisecond})
	ctx := context.Background()

	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				errs <- store.UpdateRecord(ctx, "user-1", func(current *character.Snapshot) (*character.Snapshot, error) {
					if current == nil {
						current = &character.Snapshot{UserID: "user-1"}
					}
					current.Stats.EnemiesDefeated++
					return current, nil
				})
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("UpdateRecord() error = %v", err)
		}
	}

	got, err := store.GetRecord(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetRecord() error = %v", err)
	}
	if got.Stats.EnemiesDefeated != workers*perWorker {
		t.Errorf("EnemiesDefeated = %d, expected %d", got.Stats.EnemiesDefeated, workers*perWorker)
	}
}

func TestRedisRecordStore_Delete(t *testing.T) {
	store, mr := newTestStore(t, RedisRecordStoreConfig{})
	ctx := context.Background()

	_ = store.UpdateRecord(ctx, "user-1", func(*character.Snapshot) (*character.Snapshot, error) {
		return &character.Snapshot{UserID: "user-1"}, nil
	})
	if err := store.DeleteRecord(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if mr.Exists(makeRecordStoreKey("user-1")) {
		t.Error("expected record to be deleted")
	}
}

func TestRedisRecordStore_CorruptRecord(t *testing.T) {
	store, mr := newTestStore(t, RedisRecordStoreConfig{})
	_ = mr.Set(makeRecordStoreKey("user-1"), "{not json")

	if _, err := store.GetRecord(context.Background(), "user-1"); err == nil {
		t.Error("expected error for corrupt record")
	}
}

func TestRedisPublisher_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, "progression:title_unlocked")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}

	publisher := NewRedisPublisher(client)
	if err := publisher.Publish(ctx, "progression:title_unlocked", []byte(`{"titleId":"questor"}`)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-sub.Channel():
		if msg.Payload != `{"titleId":"questor"}` {
			t.Errorf("Payload = %s", msg.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published message")
	}
}
