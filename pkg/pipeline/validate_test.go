package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/AccelByte/extend-character-progression/pkg/action"
	"github.com/AccelByte/extend-character-progression/pkg/character"
	"github.com/AccelByte/extend-character-progression/pkg/event"
	"github.com/AccelByte/extend-character-progression/pkg/title"
	titlebuiltin "github.com/AccelByte/extend-character-progression/pkg/title/builtin"
)

func TestValidateWiring(t *testing.T) {
	titlebuiltin.RegisterConditions(nil)

	config := &Config{
		StatCodes: []event.MapperConfig{
			{StatCode: "cp-quests", Kind: event.KindCounter, Target: "quests_completed"},
		},
		Titles: []TitleConfig{
			{Config: title.Config{
				ID:      "adventurer",
				Enabled: true,
				Condition: title.ConditionConfig{
					Type:       "stat_threshold",
					Parameters: map[string]interface{}{"stat": "quests_completed", "min": 1},
				},
			}},
			{Config: title.Config{ID: "retired", Enabled: false}},
		},
		Actions: []action.ActionConfig{
			{ID: "announce", Type: "publish_unlock", Enabled: true},
			{ID: "legacy", Type: "grant_item", Enabled: false},
		},
	}

	fullCatalog, err := title.BuildCatalog(config.TitleConfigs())
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	fullMappers, err := event.BuildMappers(config.StatCodes)
	if err != nil {
		t.Fatalf("BuildMappers() error = %v", err)
	}
	fullActions := action.NewRegistry()
	if err := fullActions.Register(&wiringAction{config: config.Actions[0]}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		catalog  *title.Catalog
		mappers  *event.MapperRegistry
		actions  *action.Registry
		wantErrs []string
	}{
		{
			name:    "fully wired",
			catalog: fullCatalog,
			mappers: fullMappers,
			actions: fullActions,
		},
		{
			name:     "missing title",
			catalog:  title.NewCatalog(),
			mappers:  fullMappers,
			actions:  fullActions,
			wantErrs: []string{"title 'adventurer'"},
		},
		{
			name:     "missing mapper and action",
			catalog:  fullCatalog,
			mappers:  event.NewMapperRegistry(),
			actions:  action.NewRegistry(),
			wantErrs: []string{"stat code 'cp-quests'", "action 'announce'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWiring(tt.catalog, tt.mappers, tt.actions, config)
			if len(tt.wantErrs) == 0 {
				if err != nil {
					t.Errorf("ValidateWiring() error = %v, expected nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			for _, want := range tt.wantErrs {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error = %v, expected it to mention %q", err, want)
				}
			}
			if strings.Contains(err.Error(), "legacy") || strings.Contains(err.Error(), "retired") {
				t.Errorf("disabled entries must not be reported: %v", err)
			}
		})
	}
}

type wiringAction struct {
	config action.ActionConfig
}

func (a *wiringAction) ID() string                  { return a.config.ID }
func (a *wiringAction) Name() string                { return a.config.Name }
func (a *wiringAction) Config() action.ActionConfig { return a.config }

func (a *wiringAction) Execute(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	return nil
}

func (a *wiringAction) Rollback(ctx context.Context, unlock *title.Unlock, summary *character.Summary) error {
	return action.ErrRollbackNotSupported
}
