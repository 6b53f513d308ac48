package event

import (
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/sirupsen/logrus"
)

// Mapper kinds accepted in configuration.
const (
	KindExperience = "experience"
	KindCounter    = "counter"
	KindPlaytime   = "playtime"
)

// MapperConfig binds one stat code to a progression mutation.
type MapperConfig struct {
	StatCode string `yaml:"stat_code" json:"stat_code"`
	Kind     string `yaml:"kind" json:"kind"`
	// Target is a skill category for experience and a counter name for counter.
	Target string `yaml:"target" json:"target"`
	Mode   string `yaml:"mode" json:"mode"`
	// Unit applies to playtime only.
	Unit string `yaml:"unit" json:"unit"`
}

// CreateMapper builds a mapper from its configuration.
func CreateMapper(config MapperConfig) (Mapper, error) {
	if config.StatCode == "" {
		return nil, fmt.Errorf("mapper has no stat_code")
	}
	mode, err := ParseMode(config.Mode)
	if err != nil {
		return nil, fmt.Errorf("stat code %s: %w", config.StatCode, err)
	}

	switch config.Kind {
	case KindExperience:
		category, err := progression.ParseCategory(config.Target)
		if err != nil {
			return nil, fmt.Errorf("stat code %s: %w", config.StatCode, err)
		}
		return NewExperienceMapper(config.StatCode, category, mode), nil
	case KindCounter:
		counter, err := progression.ParseCounter(config.Target)
		if err != nil {
			return nil, fmt.Errorf("stat code %s: %w", config.StatCode, err)
		}
		return NewCounterMapper(config.StatCode, counter, mode), nil
	case KindPlaytime:
		m, err := NewPlaytimeMapper(config.StatCode, config.Unit, mode)
		if err != nil {
			return nil, fmt.Errorf("stat code %s: %w", config.StatCode, err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("stat code %s: unknown mapper kind %q", config.StatCode, config.Kind)
}

// BuildMappers creates a registry from configs. Any invalid entry fails the whole build.
func BuildMappers(configs []MapperConfig) (*MapperRegistry, error) {
	registry := NewMapperRegistry()
	for _, config := range configs {
		if registry.Get(config.StatCode) != nil {
			return nil, fmt.Errorf("duplicate stat code %s", config.StatCode)
		}
		m, err := CreateMapper(config)
		if err != nil {
			return nil, err
		}
		registry.Register(m)
		logrus.Debugf("registered mapper: stat_code=%s, kind=%s", config.StatCode, config.Kind)
	}
	logrus.Infof("registered %d stat code mappers", registry.Count())
	return registry, nil
}
