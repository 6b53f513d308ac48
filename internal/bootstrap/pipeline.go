// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/action"
	"github.com/AccelByte/extend-character-progression/pkg/pipeline"
	"github.com/AccelByte/extend-character-progression/pkg/service"
	"github.com/sirupsen/logrus"
)

// InitPipeline wires the stores, catalog, mappers and executor into a pipeline
// manager, and validates the wiring against the config.
//
// ============================================================
// DEVELOPER: Configure title-to-action mappings
// ============================================================
// The pipeline orchestrates the flow:
// Stat events → Record mutation → Title unlocks → Actions
//
// Title-to-action mappings are configured in config/progression.yaml:
//
// titles:
//   - id: my-title
//     condition: {type: stat_threshold, ...}
//     actions: [action1, action2]  # ← Actions to execute
//
// When a title unlocks:
// 1. The pipeline looks up the action IDs from the mapping
// 2. Executes each action in sequence
// 3. If any action fails, earlier actions are rolled back
// ============================================================
func InitPipeline(
	pipelineConfig *pipeline.Config,
	store service.RecordStore,
	actionExecutor *action.Executor,
	actionRegistry *action.Registry,
) (*pipeline.Manager, error) {
	mastery, err := pipelineConfig.MasteryTable()
	if err != nil {
		return nil, err
	}
	policy, err := pipelineConfig.Policy()
	if err != nil {
		return nil, err
	}

	catalog, err := InitTitleCatalog(pipelineConfig, mastery)
	if err != nil {
		return nil, err
	}

	mappers, err := InitMappers(pipelineConfig)
	if err != nil {
		return nil, err
	}

	if err := pipeline.ValidateWiring(catalog, mappers, actionRegistry, pipelineConfig); err != nil {
		return nil, fmt.Errorf("pipeline wiring validation failed: %w", err)
	}
	logrus.Info("pipeline wiring validation passed")

	titleActions := pipelineConfig.TitleActions()
	logrus.Infof("configured %d title-to-action mappings, active title policy %s", len(titleActions), policy.Name())

	manager := pipeline.NewManager(pipeline.Components{
		Store:        store,
		Mappers:      mappers,
		Catalog:      catalog,
		Mastery:      mastery,
		Policy:       policy,
		Executor:     actionExecutor,
		TitleActions: titleActions,
	})
	logrus.Infof("initialized pipeline manager")

	return manager, nil
}
