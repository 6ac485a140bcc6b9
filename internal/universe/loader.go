package universe

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/internal/scoring"
)

// File is the on-disk universe and rule-table configuration.
// Rule sections are optional; a missing section falls back to the
// built-in defaults.
type File struct {
	Universe map[string]contracts.Listing `yaml:"universe"`
	Rules    Rules                        `yaml:"rules"`
}

// Rules carries the optional per-strategy rule table overrides.
type Rules struct {
	Momentum  *scoring.MomentumRules  `yaml:"momentum"`
	Value     *scoring.ValueRules     `yaml:"value"`
	Defensive *scoring.DefensiveRules `yaml:"defensive"`
}

// Config is the resolved configuration: the universe plus one effective
// rule table per strategy. Read-only after Load.
type Config struct {
	Universe  *contracts.Universe
	Momentum  scoring.MomentumRules
	Value     scoring.ValueRules
	Defensive scoring.DefensiveRules
}

// Load reads the YAML universe file and resolves the rule tables.
// Unknown fields fail immediately so typos never silently disable a rule.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a universe file from raw bytes.
func Parse(data []byte) (*Config, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode universe file: %w", err)
	}

	cfg := &Config{
		Universe:  &contracts.Universe{Listings: file.Universe},
		Momentum:  scoring.DefaultMomentumRules(),
		Value:     scoring.DefaultValueRules(),
		Defensive: scoring.DefaultDefensiveRules(),
	}

	if file.Rules.Momentum != nil {
		cfg.Momentum = *file.Rules.Momentum
	}
	if file.Rules.Value != nil {
		cfg.Value = *file.Rules.Value
	}
	if file.Rules.Defensive != nil {
		cfg.Defensive = *file.Rules.Defensive
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
