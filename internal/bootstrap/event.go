// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-character-progression/pkg/event"
	"github.com/AccelByte/extend-character-progression/pkg/pipeline"
	"github.com/sirupsen/logrus"
)

// InitMappers creates the stat code mappers from pipeline config.
//
// Stat codes that have no mapper are dropped by the pipeline, so every
// statistic the game should feed into progression needs an entry under
// stat_codes in config/progression.yaml.
func InitMappers(pipelineConfig *pipeline.Config) (*event.MapperRegistry, error) {
	mappers, err := event.BuildMappers(pipelineConfig.StatCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to build stat code mappers: %w", err)
	}

	logrus.Infof("initialized %d stat code mappers: %v", mappers.Count(), mappers.StatCodes())
	return mappers, nil
}
