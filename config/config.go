// SPDX-License-Identifier: MIT

// Package config loads engine settings.
//
// Values are layered, lowest precedence first:
//  1. defaults (New)
//  2. YAML file named by ROSTERFLOW_CONFIG, if set
//  3. environment variables prefixed ROSTERFLOW_ (ROSTERFLOW_TOP_CHOICES, ...)
//
// Cost tables come from the environment as comma-separated lists, e.g.
// ROSTERFLOW_PHASE1_COSTS=1,5,9. A phase1_costs table must rise strictly over
// the first top_choices ranks.
package config

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/rosterflow/cost"
	"github.com/katalvlaran/rosterflow/engine"
	"github.com/katalvlaran/rosterflow/logging"
	"github.com/katalvlaran/rosterflow/metrics"
)

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("config: invalid config")
	ErrLoadConfig    = errors.New("config: load failed")
)

// Config holds the tunable parts of an assignment run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Policy is "two_phase" or "single_pass".
	Policy string `koanf:"policy"`

	// TopChoices is how many leading preferences phase 1 offers.
	TopChoices int `koanf:"top_choices"`

	// Phase1Costs, Phase2Costs and SinglePassCosts enumerate rank costs
	// (index 0 is rank 1). Empty keeps the built-in schedule.
	Phase1Costs     []int64 `koanf:"phase1_costs"`
	Phase2Costs     []int64 `koanf:"phase2_costs"`
	SinglePassCosts []int64 `koanf:"single_pass_costs"`

	// MetricsNamespace prefixes exported Prometheus series.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Policy:           engine.TwoPhase.String(),
		TopChoices:       engine.DefaultTopChoices,
		MetricsNamespace: "rosterflow",
	}
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := engine.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.TopChoices < 1 {
		return fmt.Errorf("%w: top_choices must be ≥ 1, got %d", ErrInvalidConfig, c.TopChoices)
	}
	for name, t := range map[string][]int64{
		"phase1_costs":      c.Phase1Costs,
		"phase2_costs":      c.Phase2Costs,
		"single_pass_costs": c.SinglePassCosts,
	} {
		if len(t) == 0 {
			continue
		}
		if err := cost.CheckTable(t); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	if len(c.Phase1Costs) > 0 {
		if err := cost.ValidateStrict(cost.Table(c.Phase1Costs...), c.TopChoices); err != nil {
			return fmt.Errorf("%w: phase1_costs: %v", ErrInvalidConfig, err)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}

// EngineOptions converts a validated Config into engine options.
func (c *Config) EngineOptions() ([]engine.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy, _ := engine.ParsePolicy(c.Policy)
	opts := []engine.Option{
		engine.WithPolicy(policy),
		engine.WithTopChoices(c.TopChoices),
	}
	if len(c.Phase1Costs) > 0 {
		opts = append(opts, engine.WithPhase1Schedule(cost.Table(c.Phase1Costs...)))
	}
	if len(c.Phase2Costs) > 0 {
		opts = append(opts, engine.WithPhase2Schedule(cost.Table(c.Phase2Costs...)))
	}
	if len(c.SinglePassCosts) > 0 {
		opts = append(opts, engine.WithSinglePassSchedule(cost.Table(c.SinglePassCosts...)))
	}

	return opts, nil
}

// Logger builds the structured logger for LogLevel.
func (c *Config) Logger(outputs ...string) (*zap.Logger, error) {
	return logging.NewLogger(c.LogLevel, outputs...)
}

// Metrics builds a Prometheus collector under MetricsNamespace on reg.
func (c *Config) Metrics(reg prometheus.Registerer) *metrics.Manager {
	return metrics.NewManager(metrics.WithNamespace(c.MetricsNamespace), metrics.WithRegistry(reg))
}
