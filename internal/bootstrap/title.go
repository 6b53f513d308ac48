// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/pipeline"
	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
	titleBuiltin "github.com/AccelByte/extend-character-progression/pkg/title/builtin"
	"github.com/sirupsen/logrus"
)

// InitTitleCatalog builds the title catalog from pipeline config.
//
// ============================================================
// DEVELOPER: Register custom condition types here.
// ============================================================
// Conditions decide when a title unlocks. The builtin types are
// stat_threshold, skill_experience, skill_mastery, mastery_count
// and all_of (see pkg/title/builtin/).
//
// Custom types outside pkg/title/builtin/ register like this:
//
// title.RegisterConditionType("my_condition", func(cfg title.ConditionConfig) (title.Condition, error) {
//     return mycustom.NewMyCondition(cfg)
// })
// ============================================================
func InitTitleCatalog(pipelineConfig *pipeline.Config, mastery *progression.MasteryTable) (*title.Catalog, error) {
	titleBuiltin.RegisterConditions(&titleBuiltin.Dependencies{Mastery: mastery})

	catalog, err := title.BuildCatalog(pipelineConfig.TitleConfigs())
	if err != nil {
		return nil, fmt.Errorf("failed to build title catalog: %w", err)
	}

	logrus.Infof("initialized title catalog with %d titles", catalog.Count())
	return catalog, nil
}
