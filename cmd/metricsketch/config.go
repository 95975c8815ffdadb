// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

const (
	keyDelimiter = "."
	envPrefix    = "METRICSKETCH_"

	// configPathEnv names the optional YAML configuration file. There is
	// no flag parsing; everything comes from the environment.
	configPathEnv = "METRICSKETCH_CONFIG"
)

// config drives the report: the engine's bucket resolution plus which
// statistics to print.
type config struct {
	// Base is the bucket ratio passed to the engine; 0 keeps the default.
	Base float64 `koanf:"base" validate:"omitempty,gt=1"`
	// ZeroThreshold folds small magnitudes into the zero bucket.
	ZeroThreshold float64 `koanf:"zero_threshold" validate:"gte=0"`
	// Percentiles are reported in addition to count/mean/stddev.
	Percentiles []float64 `koanf:"percentiles" validate:"dive,gte=0,lte=100"`
	// HistogramBins is the number of equal-width report bins.
	HistogramBins int `koanf:"histogram_bins" validate:"omitempty,gt=2"`
	// LogLevel controls the stderr logger.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

func defaultConfig() map[string]any {
	return map[string]any{
		"base":           0.0,
		"zero_threshold": 0.0,
		"percentiles":    []float64{50, 90, 95, 99},
		"histogram_bins": 10,
		"log_level":      "info",
	}
}

// loadConfig layers the defaults, the optional YAML file at path, and
// METRICSKETCH_* environment variables, later sources winning, then
// validates the merged result.
func loadConfig(path string) (config, error) {
	k := koanf.New(keyDelimiter)
	if err := k.Load(confmap.Provider(defaultConfig(), keyDelimiter), nil); err != nil {
		return config{}, err
	}
	if path != "" {
		fromFile, err := loadYAMLFile(path)
		if err != nil {
			return config{}, err
		}
		if err := k.Load(confmap.Provider(fromFile, keyDelimiter), nil); err != nil {
			return config{}, err
		}
	}
	if err := k.Load(env.Provider(envPrefix, keyDelimiter, envToKey), nil); err != nil {
		return config{}, err
	}

	var c config
	if err := k.Unmarshal("", &c); err != nil {
		return config{}, err
	}
	if err := validator.New().Struct(c); err != nil {
		return config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func loadYAMLFile(path string) (map[string]any, error) {
	// Clean the path before using it.
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("unable to read the file %v: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("unable to parse the file %v: %w", path, err)
	}
	return raw, nil
}

// envToKey maps METRICSKETCH_ZERO_THRESHOLD to zero_threshold. A double
// underscore would delimit nested keys; the schema here is flat.
func envToKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	return strings.ReplaceAll(key, "__", keyDelimiter)
}
