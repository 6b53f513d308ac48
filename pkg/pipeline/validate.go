package pipeline

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-character-progression/pkg/action"
	"github.com/AccelByte/extend-character-progression/pkg/event"
	"github.com/AccelByte/extend-character-progression/pkg/title"
)

// ValidateWiring validates that the pipeline is correctly wired.
// It checks that:
// - All enabled titles in config made it into the catalog
// - All stat codes in config have a mapper
// - All enabled actions in config have registered instances
//
// This catches common mistakes like:
// - Forgetting to register a condition or action type factory
// - Typos in condition parameters, which make title creation fail
// - Titles bound to actions that failed to build
func ValidateWiring(catalog *title.Catalog, mappers *event.MapperRegistry, actionRegistry *action.Registry, config *Config) error {
	var errors []string

	for _, tc := range config.Titles {
		if !tc.Enabled {
			continue
		}
		if _, ok := catalog.Get(tc.ID); !ok {
			errors = append(errors, fmt.Sprintf("title '%s' (condition=%s) is enabled in config but not in the catalog", tc.ID, tc.Condition.Type))
		}
	}

	for _, sc := range config.StatCodes {
		if mappers.Get(sc.StatCode) == nil {
			errors = append(errors, fmt.Sprintf("stat code '%s' (kind=%s) has no mapper", sc.StatCode, sc.Kind))
		}
	}

	for _, ac := range config.Actions {
		if !ac.Enabled {
			continue
		}
		if actionRegistry.Get(ac.ID) == nil {
			errors = append(errors, fmt.Sprintf("action '%s' (type=%s) is enabled in config but not registered", ac.ID, ac.Type))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("pipeline wiring validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
