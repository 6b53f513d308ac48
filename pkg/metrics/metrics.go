package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "character_progression"

// Event results.
const (
	ResultApplied  = "applied"
	ResultUnmapped = "unmapped"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Action results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	EventsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_processed_total",
			Help:      "Total number of stat update events processed",
		},
		[]string{"stat_code", "result"},
	)

	ExperienceGained = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "experience_gained_total",
			Help:      "Total experience applied per skill category",
		},
		[]string{"category"},
	)

	MasteryPromotions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mastery_promotions_total",
			Help:      "Total number of mastery tier promotions",
		},
		[]string{"category", "tier"},
	)

	TitlesUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "titles_unlocked_total",
			Help:      "Total number of title unlocks",
		},
		[]string{"title_id"},
	)

	ActionsExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_executed_total",
			Help:      "Total number of unlock action executions",
		},
		[]string{"action_id", "result"},
	)
)

// Collectors returns every collector defined by this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		EventsProcessed,
		ExperienceGained,
		MasteryPromotions,
		TitlesUnlocked,
		ActionsExecuted,
	}
}

// Register registers every collector with reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func RecordEvent(statCode, result string) {
	EventsProcessed.WithLabelValues(statCode, result).Inc()
}

func RecordExperience(category string, amount int64) {
	if amount <= 0 {
		return
	}
	ExperienceGained.WithLabelValues(category).Add(float64(amount))
}

func RecordPromotion(category, tier string) {
	MasteryPromotions.WithLabelValues(category, tier).Inc()
}

func RecordUnlock(titleID string) {
	TitlesUnlocked.WithLabelValues(titleID).Inc()
}

func RecordAction(actionID string, success bool) {
	result := ResultSuccess
	if !success {
		result = ResultFailure
	}
	ActionsExecuted.WithLabelValues(actionID, result).Inc()
}
