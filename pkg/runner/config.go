// Copyright 2026 The glstest Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package runner

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultCounterSeed is the value every worker's counter slot starts at.
	// The recognizable constant makes per-thread initialization easy to spot
	// in output and in memory dumps.
	DefaultCounterSeed int32 = 0x12345678

	// DefaultMessage is the per-worker message every worker should observe
	// unchanged, regardless of concurrent activity.
	DefaultMessage = "Hello World!"

	defaultWorkers  = 1
	defaultLogLevel = "info"
)

// Config controls a run. All fields have working defaults; a config file
// is optional.
type Config struct {
	// Workers is the number of worker goroutines to spawn. Zero is a valid
	// degenerate run: no workers, immediate completion.
	Workers int `toml:"workers"`
	// CounterSeed is the initial value of each worker's local counter.
	CounterSeed int32 `toml:"counter_seed"`
	// Message is the content of each worker's local message slot.
	Message string `toml:"message"`
	// LogLevel is the global log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers:     defaultWorkers,
		CounterSeed: DefaultCounterSeed,
		Message:     DefaultMessage,
		LogLevel:    defaultLogLevel,
	}
}

// LoadConfig reads a TOML config file on top of the defaults. An empty
// path returns the defaults unchanged. Unknown keys are rejected rather
// than silently ignored.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if filepath.Ext(path) != ".toml" {
		return nil, errors.Errorf("runner config must be a .toml file: %s", path)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Annotate(err, "decode runner config failed")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown keys in runner config: %v", undecoded)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Message == "" {
		c.Message = DefaultMessage
	}
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Message == "" {
		return errors.New("message must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Annotatef(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}
