package service

import (
	"context"
	"fmt"

	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclient/fulfillment"
	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclientmodels"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclient/user_statistic"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclientmodels"
)

// EntitlementService fulfills title rewards as store items through AccelByte Platform.
type EntitlementService struct {
	fulfillment *platform.FulfillmentService
	cfg         EntitlementServiceConfig
}

type EntitlementServiceConfig struct {
	Namespace string
}

func NewEntitlementService(fulfillment *platform.FulfillmentService, cfg EntitlementServiceConfig) *EntitlementService {
	return &EntitlementService{fulfillment: fulfillment, cfg: cfg}
}

// GrantEntitlement fulfills quantity of itemID for userID with source REWARD.
func (s *EntitlementService) GrantEntitlement(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("invalid reward quantity %d for item %s", quantity, itemID)
	}
	qty := int32(quantity)

	resp, err := s.fulfillment.FulfillItemShort(&fulfillment.FulfillItemParams{
		Namespace: s.cfg.Namespace,
		UserID:    userID,
		Context:   ctx,
		Body: &platformclientmodels.FulfillmentRequest{
			ItemID:   itemID,
			Quantity: &qty,
			Source:   platformclientmodels.FulfillmentRequestSourceREWARD,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fulfill item %s for user %s: %w", itemID, userID, err)
	}
	if resp == nil {
		return fmt.Errorf("empty fulfillment response for item %s user %s", itemID, userID)
	}
	return nil
}

// StatisticService mirrors unlock counts into AccelByte user statistics.
type StatisticService struct {
	statistics *social.UserStatisticService
	cfg        StatisticServiceConfig
}

type StatisticServiceConfig struct {
	Namespace string
}

func NewStatisticService(statistics *social.UserStatisticService, cfg StatisticServiceConfig) *StatisticService {
	return &StatisticService{statistics: statistics, cfg: cfg}
}

func (s *StatisticService) IncrementUserStat(ctx context.Context, userID, statCode string, inc float64) error {
	_, err := s.statistics.IncUserStatItemValueShort(&user_statistic.IncUserStatItemValueParams{
		Namespace: s.cfg.Namespace,
		UserID:    userID,
		StatCode:  statCode,
		Context:   ctx,
		Body: &socialclientmodels.StatItemInc{
			Inc: inc,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to increment user %s statistic %s: %w", userID, statCode, err)
	}
	return nil
}
