// Copyright 2024 PingCAP, Inc.
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

package logutil

import (
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

const (
	// constFieldJobKey is used to recognize loggers of the same job
	constFieldJobKey = "job_id"
	// constFieldComponentKey is used to recognize the owning component
	constFieldComponentKey = "component"
)

// Config defines the logging configuration of a server or tool.
type Config struct {
	// Level is the minimum enabled logging level.
	Level string `toml:"level" json:"level"`
	// File is the log file path. Leave empty to log to stderr.
	File string `toml:"file" json:"file"`
}

// InitLogger initializes the global logger and replaces the globals
// of both pingcap/log and zap.
func InitLogger(cfg *Config) error {
	pclogConfig := &log.Config{
		Level: cfg.Level,
		File: log.FileLogConfig{
			Filename: cfg.File,
		},
	}
	logger, props, err := log.InitLogger(pclogConfig)
	if err != nil {
		return err
	}
	log.ReplaceGlobals(logger, props)
	return nil
}

// NewLogger4DAGManager returns a logger for the DAG version manager
// of the given job.
func NewLogger4DAGManager(jobID string) *zap.Logger {
	return log.L().With(
		zap.String(constFieldComponentKey, "dag-manager"),
		zap.String(constFieldJobKey, jobID),
	)
}

// NewLogger4ActorSystem returns a logger for an actor system.
func NewLogger4ActorSystem(name string) *zap.Logger {
	return log.L().With(
		zap.String(constFieldComponentKey, "actor-system"),
		zap.String("system", name),
	)
}
