package progression

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestStats_Increment(t *testing.T) {
	var stats Stats

	for _, c := range Counters() {
		if err := stats.Increment(c, 2); err != nil {
			t.Fatalf("Increment(%s) error = %v", c, err)
		}
		if err := stats.Increment(c, 3); err != nil {
			t.Fatalf("Increment(%s) error = %v", c, err)
		}
		if got := stats.Value(c); got != 5 {
			t.Errorf("Value(%s) = %d, expected 5", c, got)
		}
	}

	if err := stats.Increment(Deaths, -1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Increment(Deaths, -1) error = %v, expected ErrInvalidInput", err)
	}
	if stats.Deaths != 5 {
		t.Errorf("Deaths = %d after failed increment, expected 5", stats.Deaths)
	}

	if err := stats.Increment(Counter(42), 1); !errors.Is(err, ErrUnknownStat) {
		t.Errorf("Increment(Counter(42)) error = %v, expected ErrUnknownStat", err)
	}
}

func TestStats_AddPlaytime(t *testing.T) {
	var stats Stats

	if err := stats.AddPlaytime(1.5); err != nil {
		t.Fatalf("AddPlaytime(1.5) error = %v", err)
	}
	if err := stats.AddPlaytime(0.25); err != nil {
		t.Fatalf("AddPlaytime(0.25) error = %v", err)
	}
	if stats.PlaytimeHours != 1.75 {
		t.Errorf("PlaytimeHours = %v, expected 1.75", stats.PlaytimeHours)
	}

	for _, bad := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		if err := stats.AddPlaytime(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("AddPlaytime(%v) error = %v, expected ErrInvalidInput", bad, err)
		}
	}
	if stats.PlaytimeHours != 1.75 {
		t.Errorf("PlaytimeHours = %v after failed calls, expected 1.75", stats.PlaytimeHours)
	}

	huge := Stats{PlaytimeHours: math.MaxFloat64}
	if err := huge.AddPlaytime(math.MaxFloat64); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("AddPlaytime overflow error = %v, expected ErrInvalidInput", err)
	}
	if huge.PlaytimeHours != math.MaxFloat64 {
		t.Errorf("PlaytimeHours = %v after overflow, expected unchanged", huge.PlaytimeHours)
	}
	if err := huge.Validate(); err != nil {
		t.Errorf("Validate() after overflow = %v, expected nil", err)
	}
}

func TestParseCounter(t *testing.T) {
	c, err := ParseCounter("Companions_Recruited")
	if err != nil {
		t.Fatalf("ParseCounter() error = %v", err)
	}
	if c != CompanionsRecruited {
		t.Errorf("ParseCounter() = %v, expected CompanionsRecruited", c)
	}

	if _, err := ParseCounter("gold"); !errors.Is(err, ErrUnknownStat) {
		t.Errorf("ParseCounter(gold) error = %v, expected ErrUnknownStat", err)
	}
}

func TestSkillExperience_JSON(t *testing.T) {
	var skills SkillExperience
	skills[Combat] = 150
	skills[Exploration] = 7

	data, err := json.Marshal(skills)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded SkillExperience
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded != skills {
		t.Errorf("decoded = %v, expected %v", decoded, skills)
	}

	// absent categories decode as zero
	var partial SkillExperience
	if err := json.Unmarshal([]byte(`{"magic": 3}`), &partial); err != nil {
		t.Fatalf("Unmarshal(partial) error = %v", err)
	}
	if partial.Get(Magic) != 3 || partial.Get(Combat) != 0 {
		t.Errorf("partial = %v", partial)
	}

	var bad SkillExperience
	if err := json.Unmarshal([]byte(`{"alchemy": 3}`), &bad); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Unmarshal(unknown) error = %v, expected ErrUnknownCategory", err)
	}
	if err := json.Unmarshal([]byte(`{"combat": -3}`), &bad); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Unmarshal(negative) error = %v, expected ErrInvalidInput", err)
	}
}
