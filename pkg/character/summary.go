package character

import (
	"time"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
)

// SkillSummary is one category's row in a progression summary.
type SkillSummary struct {
	Category   progression.SkillCategory `json:"category"`
	Experience int64                     `json:"experience"`
	Tier       string                    `json:"tier"`
	TierRank   int                       `json:"tier_rank"`
	NextTier   string                    `json:"next_tier,omitempty"`
	ToNextTier int64                     `json:"to_next_tier,omitempty"`
}

// TitleSummary describes one earned title.
type TitleSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// Summary is a read-only view of a record for reporting.
// ActiveTitle is nil until a title is selected.
type Summary struct {
	UserID       string            `json:"user_id"`
	ActiveTitle  *TitleSummary     `json:"active_title"`
	EarnedTitles []TitleSummary    `json:"earned_titles"`
	EarnedCount  int               `json:"earned_count"`
	Skills       []SkillSummary    `json:"skills"`
	Stats        progression.Stats `json:"stats"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Summary builds the reporting view. Skills are listed in category order.
func (r *Record) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		UserID:       r.userID,
		EarnedCount:  r.titles.EarnedCount(),
		EarnedTitles: make([]TitleSummary, 0, r.titles.EarnedCount()),
		Skills:       make([]SkillSummary, 0, progression.NumCategories),
		Stats:        r.stats,
		UpdatedAt:    r.updatedAt,
	}

	for _, t := range r.titles.EarnedTitles() {
		at, _ := r.titles.UnlockedAt(t.ID)
		s.EarnedTitles = append(s.EarnedTitles, TitleSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			UnlockedAt:  at,
		})
	}

	if active := r.titles.ActiveTitle(); !active.IsNone() {
		at, _ := r.titles.UnlockedAt(active.ID)
		s.ActiveTitle = &TitleSummary{
			ID:          active.ID,
			Name:        active.Name,
			Description: active.Description,
			UnlockedAt:  at,
		}
	}

	table := r.tracker.MasteryTable()
	for _, category := range progression.Categories() {
		xp := r.tracker.Experience(category)
		tier := table.Tier(xp)
		row := SkillSummary{
			Category:   category,
			Experience: xp,
			Tier:       tier.Name,
			TierRank:   tier.Rank,
		}
		if next, remaining, ok := table.Next(xp); ok {
			row.NextTier = next.Name
			row.ToNextTier = remaining
		}
		s.Skills = append(s.Skills, row)
	}

	return s
}
