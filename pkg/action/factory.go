package action

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// ActionFactory builds an unlock action from its YAML entry.
type ActionFactory func(config ActionConfig) (Action, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]ActionFactory)
)

// RegisterActionType binds actionType to factory. A later call for the same
// type replaces the earlier factory, which lets tests swap dependencies.
func RegisterActionType(actionType string, factory ActionFactory) {
	factoriesMu.Lock()
	factories[actionType] = factory
	factoriesMu.Unlock()
	logrus.Debugf("registered action type: %s", actionType)
}

// RegisteredTypes lists the known action types, sorted.
func RegisteredTypes() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// CreateAction returns (nil, nil) for a disabled entry.
func CreateAction(config ActionConfig) (Action, error) {
	if config.ID == "" {
		return nil, fmt.Errorf("%w: action has no id", ErrInvalidConfig)
	}
	if !config.Enabled {
		logrus.Infof("skipping disabled action: %s", config.ID)
		return nil, nil
	}

	factoriesMu.RLock()
	factory, ok := factories[config.Type]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %v)", ErrUnknownActionType, config.Type, RegisteredTypes())
	}

	logrus.Infof("creating action: id=%s type=%s", config.ID, config.Type)
	return factory(config)
}

// CreateActions builds every enabled entry it can and returns the failures alongside.
func CreateActions(configs []ActionConfig) ([]Action, []error) {
	var (
		actions []Action
		errs    []error
	)
	for _, config := range configs {
		act, err := CreateAction(config)
		if err != nil {
			errs = append(errs, fmt.Errorf("action %s: %w", config.ID, err))
			continue
		}
		if act != nil {
			actions = append(actions, act)
		}
	}
	return actions, errs
}

// RegisterActions creates actions from configs and adds them to registry.
// Entries that fail to build are logged and left out; pipeline.ValidateWiring
// reports them afterwards. Only a duplicate ID is returned as an error.
func RegisterActions(registry *Registry, configs []ActionConfig) error {
	actions, errs := CreateActions(configs)
	for _, err := range errs {
		logrus.Warnf("skipping unlock action: %v", err)
	}

	for _, act := range actions {
		if err := registry.Register(act); err != nil {
			return err
		}
	}

	logrus.Infof("registered %d unlock actions (%d skipped)", len(actions), len(errs))
	return nil
}
