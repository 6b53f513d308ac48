package title

import (
	"fmt"
	"math"
)

// Config is the configuration of one title, typically loaded from YAML.
type Config struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Enabled     bool            `yaml:"enabled" json:"enabled"`
	Priority    int             `yaml:"priority" json:"priority"`
	Condition   ConditionConfig `yaml:"condition" json:"condition"`
}

// ConditionConfig selects a condition type and its parameters.
type ConditionConfig struct {
	Type       string                 `yaml:"type" json:"type"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// GetInt retrieves an integer parameter with a default.
// YAML and JSON decoders produce different numeric types, so all of them are accepted.
// A fractional or out-of-range value yields the default.
func (c *ConditionConfig) GetInt(key string, defaultValue int64) int64 {
	if v, ok := c.GetInteger(key); ok {
		return v
	}
	return defaultValue
}

// GetInteger reports the parameter as an int64. ok is false when it is missing,
// not a number, fractional, or outside the int64 range.
func (c *ConditionConfig) GetInteger(key string) (int64, bool) {
	switch v := c.Parameters[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

// GetNumber reports the parameter as a finite float64. ok is false for missing,
// non-numeric (including quoted numbers), NaN or infinite values.
func (c *ConditionConfig) GetNumber(key string) (float64, bool) {
	var f float64
	switch v := c.Parameters[key].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// GetString retrieves a string parameter with a default.
func (c *ConditionConfig) GetString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// Has reports whether a parameter is present.
func (c *ConditionConfig) Has(key string) bool {
	_, ok := c.Parameters[key]
	return ok
}

// GetConditions decodes a nested list of conditions (used by composite types).
func (c *ConditionConfig) GetConditions(key string) ([]ConditionConfig, error) {
	raw, ok := c.Parameters[key]
	if !ok {
		return nil, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list, got %T", ErrInvalidCondition, key, raw)
	}

	out := make([]ConditionConfig, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be a mapping, got %T", ErrInvalidCondition, key, i, item)
		}

		nested := ConditionConfig{}
		if t, ok := m["type"].(string); ok {
			nested.Type = t
		}
		if p, ok := m["parameters"].(map[string]interface{}); ok {
			nested.Parameters = p
		}
		out = append(out, nested)
	}
	return out, nil
}
