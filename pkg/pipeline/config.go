package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/AccelByte/extend-character-progression/pkg/action"
	"github.com/AccelByte/extend-character-progression/pkg/event"
	"github.com/AccelByte/extend-character-progression/pkg/progression"
	"github.com/AccelByte/extend-character-progression/pkg/title"
	"gopkg.in/yaml.v3"
)

// Config represents the complete progression configuration.
type Config struct {
	Mastery           MasteryConfig         `yaml:"mastery"`
	ActiveTitlePolicy string                `yaml:"active_title_policy"`
	StatCodes         []event.MapperConfig  `yaml:"stat_codes"`
	Titles            []TitleConfig         `yaml:"titles"`
	Actions           []action.ActionConfig `yaml:"actions"`
}

// MasteryConfig holds the mastery tier bands. Empty means the default bands.
type MasteryConfig struct {
	Tiers []progression.MasteryBand `yaml:"tiers"`
}

// TitleConfig represents a title definition and the actions run when it unlocks.
type TitleConfig struct {
	title.Config `yaml:",inline"`
	Actions      []string `yaml:"actions,omitempty"` // Action IDs to execute when the title unlocks
}

// LoadConfig loads configuration from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses and validates YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration for common errors.
func (c *Config) Validate() error {
	if _, err := c.MasteryTable(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}

	statCodes := make(map[string]bool)
	for _, sc := range c.StatCodes {
		if sc.StatCode == "" {
			return fmt.Errorf("stat code mapping with empty stat_code found")
		}
		if statCodes[sc.StatCode] {
			return fmt.Errorf("duplicate stat code: %s", sc.StatCode)
		}
		statCodes[sc.StatCode] = true
	}

	actionIDs := make(map[string]bool)
	for _, a := range c.Actions {
		if a.ID == "" {
			return fmt.Errorf("action with empty ID found")
		}
		if actionIDs[a.ID] {
			return fmt.Errorf("duplicate action ID: %s", a.ID)
		}
		actionIDs[a.ID] = true

		if a.Type == "" {
			return fmt.Errorf("action %s has empty type", a.ID)
		}
	}

	titleIDs := make(map[string]bool)
	for _, t := range c.Titles {
		if t.ID == "" {
			return fmt.Errorf("title with empty ID found")
		}
		if titleIDs[t.ID] {
			return fmt.Errorf("duplicate title ID: %s", t.ID)
		}
		titleIDs[t.ID] = true

		if t.Condition.Type == "" {
			return fmt.Errorf("title %s has empty condition type", t.ID)
		}

		for _, actionID := range t.Actions {
			if !actionIDs[actionID] {
				return fmt.Errorf("title %s references unknown action: %s", t.ID, actionID)
			}
		}
	}

	return nil
}

// MasteryTable builds the configured mastery table.
func (c *Config) MasteryTable() (*progression.MasteryTable, error) {
	if len(c.Mastery.Tiers) == 0 {
		return progression.DefaultMasteryTable(), nil
	}
	table, err := progression.NewMasteryTable(c.Mastery.Tiers)
	if err != nil {
		return nil, fmt.Errorf("invalid mastery tiers: %w", err)
	}
	return table, nil
}

// Policy resolves the configured active-title policy.
func (c *Config) Policy() (title.ActivePolicy, error) {
	return title.ParsePolicy(c.ActiveTitlePolicy)
}

// TitleConfigs returns the title definitions without their action bindings.
func (c *Config) TitleConfigs() []title.Config {
	configs := make([]title.Config, 0, len(c.Titles))
	for _, t := range c.Titles {
		configs = append(configs, t.Config)
	}
	return configs
}

// TitleActions maps title IDs to the action IDs run when they unlock.
func (c *Config) TitleActions() map[string][]string {
	titleActions := make(map[string][]string)
	for _, t := range c.Titles {
		if len(t.Actions) > 0 {
			titleActions[t.ID] = t.Actions
		}
	}
	return titleActions
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		// Support ${VAR:default} syntax
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
