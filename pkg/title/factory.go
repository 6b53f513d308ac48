package title

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ConditionFactory creates a condition from its configuration.
type ConditionFactory func(config ConditionConfig) (Condition, error)

// factories stores registered condition factories by type
var factories = make(map[string]ConditionFactory)

// RegisterConditionType registers a factory function for a condition type.
// This allows external packages to register their condition types without creating import cycles.
func RegisterConditionType(conditionType string, factory ConditionFactory) {
	factories[conditionType] = factory
	logrus.Debugf("registered condition type: %s", conditionType)
}

// CreateCondition creates a condition instance based on the configuration.
func CreateCondition(config ConditionConfig) (Condition, error) {
	factory, exists := factories[config.Type]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConditionType, config.Type)
	}
	return factory(config)
}

// CreateTitle creates a title from its configuration.
// Returns nil without error for disabled titles.
func CreateTitle(config Config) (*Title, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled title: %s", config.ID)
		return nil, nil
	}

	logrus.Infof("creating title: id=%s, condition=%s, priority=%d", config.ID, config.Condition.Type, config.Priority)

	cond, err := CreateCondition(config.Condition)
	if err != nil {
		return nil, err
	}

	t := NewTitle(config.ID, config.Name, cond).
		WithDescription(config.Description).
		WithPriority(config.Priority)
	return &t, nil
}

// CreateTitles creates multiple titles from a list of configurations.
// Returns all successfully created titles and any errors encountered.
func CreateTitles(configs []Config) ([]Title, []error) {
	var titles []Title
	var errors []error

	for _, config := range configs {
		t, err := CreateTitle(config)
		if err != nil {
			errors = append(errors, fmt.Errorf("failed to create title %s: %w", config.ID, err))
			continue
		}

		if t != nil {
			titles = append(titles, *t)
		}
	}

	return titles, errors
}

// RegisterTitles creates titles from configs and registers them with the catalog.
// Creation errors are logged and skipped; duplicate registration is fatal.
func RegisterTitles(catalog *Catalog, configs []Config) error {
	titles, errors := CreateTitles(configs)

	if len(errors) > 0 {
		logrus.Warnf("encountered %d errors while creating titles", len(errors))
		for _, err := range errors {
			logrus.Warnf("title creation error: %v", err)
		}
	}

	for _, t := range titles {
		if err := catalog.Register(t); err != nil {
			return fmt.Errorf("failed to register title %s: %w", t.ID, err)
		}
	}

	logrus.Infof("registered %d titles", len(titles))
	return nil
}

// BuildCatalog creates a catalog holding every enabled title in configs.
func BuildCatalog(configs []Config) (*Catalog, error) {
	catalog := NewCatalog()
	if err := RegisterTitles(catalog, configs); err != nil {
		return nil, err
	}
	return catalog, nil
}
