package progression

import (
	"fmt"
	"sort"
	"strings"
)

// MasteryTier is a discrete skill-proficiency label. Higher Rank means a higher tier.
type MasteryTier struct {
	Rank int
	Name string
}

// AtLeast reports whether t is the same tier as other or above it.
func (t MasteryTier) AtLeast(other MasteryTier) bool {
	return t.Rank >= other.Rank
}

func (t MasteryTier) String() string {
	return t.Name
}

// MasteryBand is one configured threshold: experience at or above MinExperience
// (and below the next band) maps to the tier called Name.
type MasteryBand struct {
	Name          string `yaml:"name" json:"name"`
	MinExperience int64  `yaml:"min_experience" json:"min_experience"`
}

// MasteryTable maps experience onto tiers through ascending threshold bands.
// A table is immutable once built.
type MasteryTable struct {
	bands []MasteryBand
}

// DefaultBands are used when no mastery tiers are configured.
var DefaultBands = []MasteryBand{
	{Name: "Novice", MinExperience: 0},
	{Name: "Apprentice", MinExperience: 100},
	{Name: "Adept", MinExperience: 300},
	{Name: "Expert", MinExperience: 600},
	{Name: "Master", MinExperience: 1000},
}

// NewMasteryTable validates bands and builds a table.
// The first band must start at 0, thresholds must be strictly increasing
// and names must be non-empty and unique.
func NewMasteryTable(bands []MasteryBand) (*MasteryTable, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("mastery table needs at least one tier")
	}
	if bands[0].MinExperience != 0 {
		return nil, fmt.Errorf("first mastery tier %q must start at 0, got %d", bands[0].Name, bands[0].MinExperience)
	}

	seen := make(map[string]bool, len(bands))
	for i, b := range bands {
		name := strings.ToLower(strings.TrimSpace(b.Name))
		if name == "" {
			return nil, fmt.Errorf("mastery tier %d has empty name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate mastery tier name: %s", b.Name)
		}
		seen[name] = true

		if i > 0 && b.MinExperience <= bands[i-1].MinExperience {
			return nil, fmt.Errorf("mastery tier %q threshold %d must be greater than %q threshold %d",
				b.Name, b.MinExperience, bands[i-1].Name, bands[i-1].MinExperience)
		}
	}

	copied := make([]MasteryBand, len(bands))
	copy(copied, bands)
	return &MasteryTable{bands: copied}, nil
}

// DefaultMasteryTable returns a table built from DefaultBands.
func DefaultMasteryTable() *MasteryTable {
	t, err := NewMasteryTable(DefaultBands)
	if err != nil {
		panic(err)
	}
	return t
}

// Tier returns the tier for an experience value. Negative input maps to the lowest tier.
func (t *MasteryTable) Tier(xp int64) MasteryTier {
	// first band whose threshold is above xp; the tier is the band before it
	idx := sort.Search(len(t.bands), func(i int) bool {
		return t.bands[i].MinExperience > xp
	})
	if idx == 0 {
		idx = 1
	}
	return t.tierAt(idx - 1)
}

// Next returns the tier after the one xp maps to and the experience still needed
// to reach it. ok is false when xp is already in the top tier.
func (t *MasteryTable) Next(xp int64) (tier MasteryTier, remaining int64, ok bool) {
	current := t.Tier(xp)
	if current.Rank+1 >= len(t.bands) {
		return MasteryTier{}, 0, false
	}
	next := t.bands[current.Rank+1]
	if xp < 0 {
		xp = 0
	}
	return t.tierAt(current.Rank + 1), next.MinExperience - xp, true
}

// Threshold returns the minimum experience for tier.
func (t *MasteryTable) Threshold(tier MasteryTier) int64 {
	if tier.Rank < 0 || tier.Rank >= len(t.bands) {
		return 0
	}
	return t.bands[tier.Rank].MinExperience
}

// TierByName resolves a configured tier name (case-insensitive).
func (t *MasteryTable) TierByName(name string) (MasteryTier, bool) {
	for i, b := range t.bands {
		if strings.EqualFold(b.Name, strings.TrimSpace(name)) {
			return t.tierAt(i), true
		}
	}
	return MasteryTier{}, false
}

// Tiers returns every tier in ascending order.
func (t *MasteryTable) Tiers() []MasteryTier {
	out := make([]MasteryTier, len(t.bands))
	for i := range t.bands {
		out[i] = t.tierAt(i)
	}
	return out
}

// Bands returns a copy of the configured bands.
func (t *MasteryTable) Bands() []MasteryBand {
	out := make([]MasteryBand, len(t.bands))
	copy(out, t.bands)
	return out
}

func (t *MasteryTable) tierAt(i int) MasteryTier {
	return MasteryTier{Rank: i, Name: t.bands[i].Name}
}
