package character

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// Snapshot is the persisted form of a Record.
type Snapshot struct {
	UserID    string                      `json:"user_id"`
	Skills    progression.SkillExperience `json:"skills"`
	Stats     progression.Stats           `json:"stats"`
	Titles    title.State                 `json:"titles"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// Snapshot captures the record's current state.
func (r *Record) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		UserID:    r.userID,
		Skills:    r.tracker.Skills(),
		Stats:     r.stats,
		Titles:    r.titles.State(),
		UpdatedAt: r.updatedAt,
	}
}

// Restore rebuilds a record from a snapshot, rejecting any snapshot that
// violates the record's invariants.
func Restore(s Snapshot, mastery *progression.MasteryTable, catalog *title.Catalog, policy title.ActivePolicy) (*Record, error) {
	if s.UserID == "" {
		return nil, fmt.Errorf("%w: snapshot has no user ID", progression.ErrInvalidInput)
	}
	if err := s.Skills.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot for %s: %w", s.UserID, err)
	}
	if err := s.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot for %s: %w", s.UserID, err)
	}

	titles, err := title.RestoreRegistry(catalog, policy, s.Titles)
	if err != nil {
		return nil, fmt.Errorf("snapshot for %s: %w", s.UserID, err)
	}

	return &Record{
		userID:    s.UserID,
		tracker:   progression.RestoreTracker(s.Skills, mastery),
		stats:     s.Stats,
		titles:    titles,
		updatedAt: s.UpdatedAt,
		now:       time.Now,
	}, nil
}
