package bootstrap

import (
	"context"
	"testing"

	actionBuiltin "github.com/AccelByte/extend-character-progression/pkg/action/builtin"
	"github.com/AccelByte/extend-character-progression/pkg/event"
	"github.com/AccelByte/extend-character-progression/pkg/pipeline"
	"github.com/AccelByte/extend-character-progression/pkg/service"
	"github.com/AccelByte/extend-character-progression/pkg/service/mock"
)

const sampleConfigPath = "../../config/progression.yaml"

func TestInitPipeline_SampleConfig(t *testing.T) {
	pipelineConfig, err := pipeline.LoadConfig(sampleConfigPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	granter := &mock.EntitlementGranter{}
	publisher := &mock.Publisher{}
	executor, registry, err := InitActionExecutor(pipelineConfig, &actionBuiltin.Dependencies{
		Services: service.NewDependencies().
			WithEntitlementGranter(granter).
			WithStatisticUpdater(&mock.StatisticUpdater{}).
			WithPublisher(publisher),
		UnlockChannel: "progression:title_unlocked",
	})
	if err != nil {
		t.Fatalf("InitActionExecutor() error = %v", err)
	}
	if registry.Count() != len(pipelineConfig.Actions) {
		t.Errorf("registered %d actions, expected %d", registry.Count(), len(pipelineConfig.Actions))
	}

	manager, err := InitPipeline(pipelineConfig, mock.NewRecordStore(), executor, registry)
	if err != nil {
		t.Fatalf("InitPipeline() error = %v", err)
	}

	outcome, err := manager.HandleStatUpdate(context.Background(), event.StatUpdate{
		UserID:   "user-1",
		StatCode: "cp-companions-recruited",
		Value:    5,
	})
	if err != nil {
		t.Fatalf("HandleStatUpdate() error = %v", err)
	}
	if len(outcome.Unlocked) != 1 || outcome.Unlocked[0].ID != "friend_to_all" {
		t.Fatalf("Unlocked = %v, expected [friend_to_all]", outcome.Unlocked)
	}
	if len(granter.Calls) != 1 || granter.Calls[0].ItemID != "companion_cape" {
		t.Errorf("unexpected grant calls: %+v", granter.Calls)
	}
	if len(publisher.Messages) != 1 || publisher.Messages[0].Channel != "progression:title_unlocked" {
		t.Errorf("unexpected published messages: %+v", publisher.Messages)
	}
}

func TestInitTitleCatalog_SkipsDisabled(t *testing.T) {
	pipelineConfig, err := pipeline.LoadConfig(sampleConfigPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	mastery, _ := pipelineConfig.MasteryTable()

	catalog, err := InitTitleCatalog(pipelineConfig, mastery)
	if err != nil {
		t.Fatalf("InitTitleCatalog() error = %v", err)
	}
	if _, ok := catalog.Get("veteran"); ok {
		t.Error("disabled title veteran should not be in the catalog")
	}
	if _, ok := catalog.Get("shadow_artisan"); !ok {
		t.Error("expected composite title shadow_artisan in the catalog")
	}
}
