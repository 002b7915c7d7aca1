package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crillab/gophercast/solver"
)

// Config is the content of the optional YAML configuration file.
// Unset cuts are enabled.
type Config struct {
	Bound          string `yaml:"bound"` // "basic" or "improved"
	OptimalityCut  *bool  `yaml:"optimalityCut"`
	FeasibilityCut *bool  `yaml:"feasibilityCut"`
	Quiet          bool   `yaml:"quiet"`
	Verify         bool   `yaml:"verify"`
	MetricsFile    string `yaml:"metricsFile"`
}

// loadConfig reads the configuration file at path. Unknown keys are errors.
func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read configuration: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("could not parse configuration %q: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig loads the configuration file, if any, then applies the flags that were explicitly set.
func resolveConfig(cmd *cobra.Command, fl flags) (Config, error) {
	var cfg Config
	if fl.configPath != "" {
		var err error
		if cfg, err = loadConfig(fl.configPath); err != nil {
			return cfg, err
		}
	}
	changed := cmd.Flags().Changed
	if changed("bound") {
		cfg.Bound = fl.bound
	}
	if changed("basic") {
		cfg.Bound = solver.Improved{}.String()
		if fl.basic {
			cfg.Bound = solver.Basic{}.String()
		}
	}
	if changed("no-optimality-cut") {
		cfg.OptimalityCut = boolPtr(!fl.noOptimCut)
	}
	if changed("no-feasibility-cut") {
		cfg.FeasibilityCut = boolPtr(!fl.noFeasCut)
	}
	if changed("quiet") {
		cfg.Quiet = fl.quiet
	}
	if changed("verify") {
		cfg.Verify = fl.verify
	}
	if changed("metrics-file") {
		cfg.MetricsFile = fl.metricsPath
	}
	return cfg, nil
}

func boolPtr(b bool) *bool {
	return &b
}

// Options returns the solver options described by cfg.
func (cfg Config) Options() (solver.Options, error) {
	opts := solver.DefaultOptions()
	bound, err := solver.ParseEstimator(cfg.Bound)
	if err != nil {
		return opts, err
	}
	opts.Bound = bound
	if cfg.OptimalityCut != nil {
		opts.OptimalityCut = *cfg.OptimalityCut
	}
	if cfg.FeasibilityCut != nil {
		opts.FeasibilityCut = *cfg.FeasibilityCut
	}
	return opts, nil
}
