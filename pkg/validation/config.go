// Package validation loads and validates engine configuration for
// hosts that configure the engine from a YAML file rather than in
// code.
package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solvegraph/solvegraph/pkg/graph"
	"github.com/solvegraph/solvegraph/pkg/logging"
	"github.com/solvegraph/solvegraph/pkg/metrics"
)

// EngineConfig is the YAML-loadable engine configuration
type EngineConfig struct {
	// TagNamespace is the reserved prefix for engine-owned edge tags
	TagNamespace string `yaml:"tag_namespace" validate:"required,min=2"`

	// LogLevel controls engine logging (debug, info, warn, error)
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LogEnabled turns engine logging on; off means a no-op logger
	LogEnabled bool `yaml:"log_enabled"`

	// MetricsEnabled attaches a prometheus registry to the engine
	MetricsEnabled bool `yaml:"metrics_enabled"`

	// LenientResolve makes solve skip unresolved solver references
	// instead of failing
	LenientResolve bool `yaml:"lenient_resolve"`
}

// DefaultConfig returns the engine defaults
func DefaultConfig() EngineConfig {
	return EngineConfig{
		TagNamespace: graph.DefaultTagNamespace,
		LogLevel:     "info",
	}
}

// Load reads an EngineConfig from a YAML file, applying defaults for
// omitted fields, and validates it.
func Load(path string) (EngineConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration, collecting all errors
func (c EngineConfig) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}

	cv := NewConfigValidator("EngineConfig")
	cv.Required("TagNamespace", c.TagNamespace)
	cv.Custom("TagNamespace", func() error {
		if !strings.HasSuffix(c.TagNamespace, ":") {
			return errors.New("tag namespace must end with ':'")
		}
		return nil
	})
	return cv.Error()
}

// Build turns the configuration into a graph.Config. Host capabilities
// (stores, ID generation, solver resolution) are left nil for the
// caller to fill in.
func (c EngineConfig) Build() graph.Config {
	cfg := graph.Config{
		TagNamespace:   c.TagNamespace,
		LenientResolve: c.LenientResolve,
	}
	if c.LogEnabled {
		cfg.Logger = logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))
	}
	if c.MetricsEnabled {
		cfg.Metrics = metrics.NewRegistry()
	}
	return cfg
}
