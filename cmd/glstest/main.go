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

// glstest spawns N workers (N is the optional positional argument,
// default 1), each of which exercises its own goroutine-local counter and
// message while lifecycle callbacks log every attach and detach.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/zilo555/glstest/pkg/runner"
)

func main() {
	configPath := flag.String("config", "", "optional TOML config file")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error); overrides the config file")
	flag.Parse()

	cfg, err := buildConfig(*configPath, *logLevel, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := initLogger(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := runner.New(cfg)
	if err != nil {
		log.Error("runner setup failed", zap.Error(err))
		os.Exit(1)
	}

	report, err := r.Run(ctx)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		os.Exit(1)
	}

	codes := make([]int, 0, len(report.Workers))
	for _, w := range report.Workers {
		codes = append(codes, w.Code)
	}
	log.Info("done",
		zap.String("runID", report.RunID),
		zap.Ints("resultCodes", codes))
}

// buildConfig layers the CLI surface on top of the config file: the
// positional argument overrides the worker count, -log-level overrides the
// log level. An unparsable or negative count is an error, never a silent
// zero-worker run.
func buildConfig(configPath, logLevel string, args []string) (*runner.Config, error) {
	cfg, err := runner.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	switch len(args) {
	case 0:
	case 1:
		n, err := parseWorkerCount(args[0])
		if err != nil {
			return nil, err
		}
		cfg.Workers = n
	default:
		return nil, errors.Errorf("expected at most one argument (worker count), got %d", len(args))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseWorkerCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Errorf("worker count must be a decimal integer: %q", arg)
	}
	if n < 0 {
		return 0, errors.Errorf("worker count must be non-negative, got %d", n)
	}
	return n, nil
}

func initLogger(level string) error {
	lg, props, err := log.InitLogger(&log.Config{Level: level})
	if err != nil {
		return errors.Annotate(err, "init logger failed")
	}
	log.ReplaceGlobals(lg, props)
	return nil
}
