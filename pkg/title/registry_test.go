package title

import (
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
)

// mockCondition is satisfied when the chosen counter reaches min
type mockCondition struct {
	counter progression.Counter
	min     int64
}

func (m *mockCondition) Type() string { return "mock" }
func (m *mockCondition) Satisfied(p Progress) bool {
	return p.Stats.Value(m.counter) >= m.min
}
func (m *mockCondition) Describe() string { return "mock" }

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog := NewCatalog()
	titles := []Title{
		NewTitle("friend_to_all", "Friend to All", &mockCondition{counter: progression.CompanionsRecruited, min: 5}).WithPriority(10),
		NewTitle("questor", "Questor", &mockCondition{counter: progression.QuestsCompleted, min: 1}).WithPriority(1),
		NewTitle("survivor", "Survivor", &mockCondition{counter: progression.Deaths, min: 3}).WithPriority(20),
	}
	for _, ti := range titles {
		if err := catalog.Register(ti); err != nil {
			t.Fatalf("Register(%s) error = %v", ti.ID, err)
		}
	}
	return catalog
}

func earnedIDs(titles []Title) []string {
	ids := make([]string, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}
	return ids
}

func TestRegistry_EvaluateUnlocks_CompanionScenario(t *testing.T) {
	registry := NewRegistry(newTestCatalog(t), nil)

	var stats progression.Stats
	if unlocked := registry.EvaluateUnlocks(stats, progression.SkillExperience{}); len(unlocked) != 0 {
		t.Fatalf("EvaluateUnlocks() at zero = %v, expected none", earnedIDs(unlocked))
	}

	_ = stats.Increment(progression.CompanionsRecruited, 5)

	unlocked := registry.EvaluateUnlocks(stats, progression.SkillExperience{})
	if len(unlocked) != 1 || unlocked[0].ID != "friend_to_all" {
		t.Fatalf("EvaluateUnlocks() = %v, expected [friend_to_all]", earnedIDs(unlocked))
	}
	if !registry.IsEarned("friend_to_all") {
		t.Error("friend_to_all should be earned")
	}
	if registry.EarnedCount() != 1 {
		t.Errorf("EarnedCount() = %d, expected 1", registry.EarnedCount())
	}

	// manual policy keeps the sentinel until explicitly selected
	if !registry.ActiveTitle().IsNone() {
		t.Errorf("ActiveTitle() = %s, expected none", registry.ActiveTitle().ID)
	}
}

func TestRegistry_EvaluateUnlocks_Idempotent(t *testing.T) {
	registry := NewRegistry(newTestCatalog(t), nil)

	stats := progression.Stats{QuestsCompleted: 4, CompanionsRecruited: 9}
	first := registry.EvaluateUnlocks(stats, progression.SkillExperience{})
	if len(first) != 2 {
		t.Fatalf("first EvaluateUnlocks() = %v, expected 2 titles", earnedIDs(first))
	}
	// catalog order
	if first[0].ID != "friend_to_all" || first[1].ID != "questor" {
		t.Errorf("unlock order = %v", earnedIDs(first))
	}

	second := registry.EvaluateUnlocks(stats, progression.SkillExperience{})
	if len(second) != 0 {
		t.Errorf("second EvaluateUnlocks() = %v, expected none", earnedIDs(second))
	}
}

func TestRegistry_EarnedNeverShrinks(t *testing.T) {
	registry := NewRegistry(newTestCatalog(t), nil)

	sequence := []progression.Stats{
		{QuestsCompleted: 1},
		{QuestsCompleted: 1, Deaths: 3},
		// a stale view must not revoke anything
		{},
		{CompanionsRecruited: 5, QuestsCompleted: 1, Deaths: 3},
	}

	prev := 0
	for i, stats := range sequence {
		registry.EvaluateUnlocks(stats, progression.SkillExperience{})
		if registry.EarnedCount() < prev {
			t.Fatalf("step %d: earned count shrank from %d to %d", i, prev, registry.EarnedCount())
		}
		prev = registry.EarnedCount()
	}
	if prev != 3 {
		t.Errorf("final earned count = %d, expected 3", prev)
	}
}

func TestRegistry_SetActiveTitle(t *testing.T) {
	registry := NewRegistry(newTestCatalog(t), nil)

	if err := registry.SetActiveTitle("questor"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("SetActiveTitle(not earned) error = %v, expected ErrInvalidSelection", err)
	}
	if err := registry.SetActiveTitle("does_not_exist"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("SetActiveTitle(unknown) error = %v, expected ErrInvalidSelection", err)
	}

	registry.EvaluateUnlocks(progression.Stats{QuestsCompleted: 1, Deaths: 3}, progression.SkillExperience{})

	for _, id := range []string{"questor", "survivor", "questor"} {
		if err := registry.SetActiveTitle(id); err != nil {
			t.Fatalf("SetActiveTitle(%s) error = %v", id, err)
		}
		if got := registry.ActiveTitle().ID; got != id {
			t.Errorf("ActiveTitle() = %s, expected %s", got, id)
		}
	}

	// a failed selection leaves the previous choice in place
	_ = registry.SetActiveTitle("friend_to_all")
	if got := registry.ActiveTitle().ID; got != "questor" {
		t.Errorf("ActiveTitle() after failed selection = %s, expected questor", got)
	}
}

func TestRegistry_Policies(t *testing.T) {
	tests := []struct {
		name           string
		policy         ActivePolicy
		steps          []progression.Stats
		expectedActive string
	}{
		{
			name:           "manual",
			policy:         ManualPolicy{},
			steps:          []progression.Stats{{QuestsCompleted: 1}},
			expectedActive: "",
		},
		{
			name:   "first earned keeps first",
			policy: FirstEarnedPolicy{},
			steps: []progression.Stats{
				{QuestsCompleted: 1},
				{QuestsCompleted: 1, Deaths: 3},
			},
			expectedActive: "questor",
		},
		{
			name:   "highest priority upgrades",
			policy: HighestPriorityPolicy{},
			steps: []progression.Stats{
				{QuestsCompleted: 1},
				{QuestsCompleted: 1, CompanionsRecruited: 5},
				{QuestsCompleted: 1, CompanionsRecruited: 5, Deaths: 3},
			},
			expectedActive: "survivor",
		},
		{
			name:   "highest priority picks best of a batch",
			policy: HighestPriorityPolicy{},
			steps: []progression.Stats{
				{QuestsCompleted: 1, CompanionsRecruited: 5},
			},
			expectedActive: "friend_to_all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry(newTestCatalog(t), tt.policy)
			for _, stats := range tt.steps {
				registry.EvaluateUnlocks(stats, progression.SkillExperience{})
			}
			if got := registry.ActiveTitle().ID; got != tt.expectedActive {
				t.Errorf("ActiveTitle() = %q, expected %q", got, tt.expectedActive)
			}
		})
	}
}

func TestRegistry_StateRoundTrip(t *testing.T) {
	catalog := newTestCatalog(t)
	registry := NewRegistry(catalog, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry.SetClock(func() time.Time { return fixed })

	registry.EvaluateUnlocks(progression.Stats{QuestsCompleted: 1, Deaths: 3}, progression.SkillExperience{})
	_ = registry.SetActiveTitle("survivor")

	restored, err := RestoreRegistry(catalog, nil, registry.State())
	if err != nil {
		t.Fatalf("RestoreRegistry() error = %v", err)
	}
	if restored.ActiveTitle().ID != "survivor" {
		t.Errorf("restored ActiveTitle() = %s, expected survivor", restored.ActiveTitle().ID)
	}
	if restored.EarnedCount() != 2 {
		t.Errorf("restored EarnedCount() = %d, expected 2", restored.EarnedCount())
	}
	if at, ok := restored.UnlockedAt("questor"); !ok || !at.Equal(fixed) {
		t.Errorf("UnlockedAt(questor) = %v, %v", at, ok)
	}
}

func TestRestoreRegistry_Invalid(t *testing.T) {
	catalog := newTestCatalog(t)

	tests := []struct {
		name  string
		state State
	}{
		{name: "active not earned", state: State{Active: "questor"}},
		{name: "duplicate earned", state: State{Earned: []EarnedTitle{{ID: "questor"}, {ID: "questor"}}}},
		{name: "empty earned id", state: State{Earned: []EarnedTitle{{ID: ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RestoreRegistry(catalog, nil, tt.state); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRestoreRegistry_KeepsRetiredTitles(t *testing.T) {
	catalog := newTestCatalog(t)
	state := State{
		Earned: []EarnedTitle{{ID: "retired_title"}},
		Active: "retired_title",
	}

	registry, err := RestoreRegistry(catalog, nil, state)
	if err != nil {
		t.Fatalf("RestoreRegistry() error = %v", err)
	}
	if got := registry.ActiveTitle(); got.ID != "retired_title" || got.Name != "retired_title" {
		t.Errorf("ActiveTitle() = %+v", got)
	}
}

func TestRegistry_Clone(t *testing.T) {
	registry := NewRegistry(newTestCatalog(t), nil)
	clone := registry.Clone()

	clone.EvaluateUnlocks(progression.Stats{QuestsCompleted: 1}, progression.SkillExperience{})

	if registry.EarnedCount() != 0 {
		t.Errorf("original EarnedCount() = %d after clone mutation, expected 0", registry.EarnedCount())
	}
	if clone.EarnedCount() != 1 {
		t.Errorf("clone EarnedCount() = %d, expected 1", clone.EarnedCount())
	}
}
