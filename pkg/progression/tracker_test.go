package progression

import (
	"errors"
	"math"
	"testing"
)

func TestTracker_AddExperience_Accumulates(t *testing.T) {
	amounts := [][2]int64{{0, 0}, {1, 2}, {150, 200}, {999, 1}, {0, 1000}}

	for _, c := range Categories() {
		for _, a := range amounts {
			tracker := NewTracker(nil)
			if err := tracker.AddExperience(c, a[0]); err != nil {
				t.Fatalf("AddExperience(%s, %d) error = %v", c, a[0], err)
			}
			if err := tracker.AddExperience(c, a[1]); err != nil {
				t.Fatalf("AddExperience(%s, %d) error = %v", c, a[1], err)
			}
			if got := tracker.Experience(c); got != a[0]+a[1] {
				t.Errorf("Experience(%s) = %d, expected %d", c, got, a[0]+a[1])
			}
		}
	}
}

func TestTracker_AddExperience_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		category  SkillCategory
		amount    int64
		expectErr error
	}{
		{name: "negative amount", category: Combat, amount: -1, expectErr: ErrInvalidInput},
		{name: "category below range", category: SkillCategory(-1), amount: 10, expectErr: ErrUnknownCategory},
		{name: "category above range", category: SkillCategory(NumCategories), amount: 10, expectErr: ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(nil)
			err := tracker.AddExperience(tt.category, tt.amount)
			if !errors.Is(err, tt.expectErr) {
				t.Fatalf("AddExperience() error = %v, expected %v", err, tt.expectErr)
			}
			if tracker.Skills() != (SkillExperience{}) {
				t.Errorf("failed call mutated experience: %v", tracker.Skills())
			}
		})
	}
}

func TestTracker_AddExperience_Saturates(t *testing.T) {
	tracker := NewTracker(nil)
	_ = tracker.AddExperience(Magic, math.MaxInt64-5)
	if err := tracker.AddExperience(Magic, 10); err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}
	if got := tracker.Experience(Magic); got != math.MaxInt64 {
		t.Errorf("Experience(Magic) = %d, expected saturation at MaxInt64", got)
	}
}

func TestTracker_CombatScenario(t *testing.T) {
	tracker := NewTracker(DefaultMasteryTable())

	if got := tracker.Mastery(Combat).Name; got != "Novice" {
		t.Errorf("initial Mastery(Combat) = %s, expected Novice", got)
	}

	if err := tracker.AddExperience(Combat, 150); err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}
	if got := tracker.Experience(Combat); got != 150 {
		t.Errorf("Experience(Combat) = %d, expected 150", got)
	}
	if got := tracker.Mastery(Combat).Name; got != "Apprentice" {
		t.Errorf("Mastery(Combat) = %s, expected Apprentice", got)
	}

	if err := tracker.AddExperience(Combat, 200); err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}
	if got := tracker.Experience(Combat); got != 350 {
		t.Errorf("Experience(Combat) = %d, expected 350", got)
	}
	if got := tracker.Mastery(Combat).Name; got != "Adept" {
		t.Errorf("Mastery(Combat) = %s, expected Adept", got)
	}

	// other categories untouched
	for _, c := range Categories() {
		if c == Combat {
			continue
		}
		if got := tracker.Experience(c); got != 0 {
			t.Errorf("Experience(%s) = %d, expected 0", c, got)
		}
	}
}

func TestTracker_Clone(t *testing.T) {
	tracker := NewTracker(nil)
	_ = tracker.AddExperience(Stealth, 40)

	clone := tracker.Clone()
	_ = clone.AddExperience(Stealth, 60)

	if got := tracker.Experience(Stealth); got != 40 {
		t.Errorf("original Experience(Stealth) = %d, expected 40", got)
	}
	if got := clone.Experience(Stealth); got != 100 {
		t.Errorf("clone Experience(Stealth) = %d, expected 100", got)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(c.String())
		if err != nil {
			t.Fatalf("ParseCategory(%s) error = %v", c, err)
		}
		if parsed != c {
			t.Errorf("ParseCategory(%s) = %v, expected %v", c, parsed, c)
		}
	}

	if c, err := ParseCategory("  Diplomacy "); err != nil || c != Diplomacy {
		t.Errorf("ParseCategory(\"  Diplomacy \") = %v, %v", c, err)
	}

	if _, err := ParseCategory("alchemy"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("ParseCategory(alchemy) error = %v, expected ErrUnknownCategory", err)
	}
}
