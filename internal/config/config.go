/*
	Copyright 2023 Google Inc.

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

		https://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package config loads the demo's configuration from defaults, an optional
// config file, WORDSEARCH_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Dictionary construction modes.
const (
	ModeTree     = "tree"
	ModeForest   = "forest"
	ModeNaive    = "naive"
	ModeParallel = "parallel"
	ModeSorted   = "sorted"
	ModeRadix    = "radix"
	ModeHashing  = "hashing"
)

// Modes lists every supported construction mode.
var Modes = []string{ModeTree, ModeForest, ModeNaive, ModeParallel, ModeSorted, ModeRadix, ModeHashing}

// Config holds the demo's configuration.
type Config struct {
	DictFile    string `mapstructure:"dict_file"`
	Mode        string `mapstructure:"mode"`
	Shards      int    `mapstructure:"shards"`
	Concurrency int    `mapstructure:"concurrency"`
	BatchSize   int    `mapstructure:"batch_size"`
	Incremental bool   `mapstructure:"incremental"`
	MaxResults  int    `mapstructure:"max_results"`
	LogLevel    string `mapstructure:"log_level"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// RegisterFlags defines the command-line flags understood by Load.  Flags
// left unset do not override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a config file (YAML, TOML or JSON).")
	fs.String("dict_file", "", "The filename of a dictionary with one word per line.")
	fs.String("mode", ModeTree, fmt.Sprintf("Dictionary construction mode, one of %s.", strings.Join(Modes, ", ")))
	fs.Int("shards", 0, "Number of trees in forest mode; 0 uses the number of CPUs.")
	fs.Int("concurrency", 0, "Insertion concurrency; 0 picks a default from GOMAXPROCS.")
	fs.Int("batch_size", 5000, "The size of a batch when streaming words into a tree.")
	fs.Bool("incremental", false, "Search character by character, printing the matches after each one.")
	fs.Int("max_results", 10, "Maximum number of matches printed per query; 0 prints all.")
	fs.String("log_level", "info", "Log level: debug, info, warn or error.")
	fs.String("metrics_addr", "", "If set, serve Prometheus metrics on this address.")
}

// Load builds the configuration from fs, which must have been set up with
// RegisterFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WORDSEARCH")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeTree)
	v.SetDefault("shards", 0)
	v.SetDefault("concurrency", 0)
	v.SetDefault("batch_size", 5000)
	v.SetDefault("incremental", false)
	v.SetDefault("max_results", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DictFile == "" {
		return fmt.Errorf("dict_file is required")
	}
	valid := false
	for _, mode := range Modes {
		valid = valid || c.Mode == mode
	}
	if !valid {
		return fmt.Errorf("unsupported mode %q", c.Mode)
	}
	if c.Shards < 0 {
		return fmt.Errorf("invalid shard count: %d", c.Shards)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("invalid batch size: %d", c.BatchSize)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("invalid max results: %d", c.MaxResults)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
