// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-character-progression/pkg/action/builtin"
	"github.com/AccelByte/extend-character-progression/pkg/pipeline"
	"github.com/sirupsen/logrus"
)

// InitActionExecutor creates and initializes an action executor with actions from pipeline config.
//
// ============================================================
// DEVELOPER: Register custom action types here.
// ============================================================
// Actions reward players when a title unlocks.
//
// Steps to add a new action:
// 1. Create your action in pkg/action/builtin/ (see examples)
// 2. Implement the Action interface
// 3. Register the action type in pkg/action/builtin/init.go
// 4. Add action configuration to config/progression.yaml
// 5. Bind it to titles in config/progression.yaml
//
// The builtin actions:
// - grant_item → grants entitlements/items to players
// - increment_stat → bumps an AccelByte user statistic
// - publish_unlock → announces the unlock on Redis Pub/Sub
// ============================================================
func InitActionExecutor(
	pipelineConfig *pipeline.Config,
	deps *actionBuiltin.Dependencies,
) (*action.Executor, *action.Registry, error) {
	actionBuiltin.RegisterActions(deps)

	registry := action.NewRegistry()
	if err := action.RegisterActions(registry, pipelineConfig.Actions); err != nil {
		return nil, nil, fmt.Errorf("failed to register actions: %w", err)
	}

	executor := action.NewExecutor(registry)
	logrus.Infof("initialized action executor with %d actions", registry.Count())

	return executor, registry, nil
}
