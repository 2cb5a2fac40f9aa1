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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/autoid"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/logutil"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dag"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dagmanager"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	addr       string
	logLevel   string
	logFile    string
)

const shutdownTimeout = 5 * time.Second

func main() {
	cmd := &cobra.Command{
		Use:          "dag-manager",
		Short:        "dag-manager manages the versioned execution graph of a streaming job",
		RunE:         run,
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&configFile, "config", "", "topology configuration file")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8590", "status and control API address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file path")
	_ = cmd.MarkFlagRequired("config")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := logutil.InitLogger(&logutil.Config{Level: logLevel, File: logFile}); err != nil {
		return err
	}

	cfg, err := LoadTopologyConfig(configFile)
	if err != nil {
		return err
	}
	initial, err := dag.FromTopology(cfg.BuildTopology())
	if err != nil {
		return err
	}

	jobID := autoid.NewUUIDAllocator().AllocID()
	log.Info("starting DAG manager",
		zap.String("jobID", jobID),
		zap.Int("processors", len(initial.Processors)),
		zap.String("addr", addr))

	registry := prometheus.NewRegistry()
	actor.InitMetrics(registry)
	dagmanager.InitMetrics(registry)

	sys := actor.NewSystem[dagmanager.Request]("dag-manager")
	mb := actor.NewMailbox[dagmanager.Request](actor.ID(1), dagmanager.DefaultMailboxCap)
	if err := sys.Spawn(mb, dagmanager.NewManager(jobID, initial)); err != nil {
		return err
	}
	client := dagmanager.NewClient(mb)

	srv := &http.Server{
		Addr:    addr,
		Handler: newRouter(client, registry),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutting down", zap.String("jobID", jobID))
	case err := <-errCh:
		log.Error("API server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("API server shutdown failed", zap.Error(err))
	}
	if err := client.Stop(shutdownCtx); err != nil {
		log.Warn("stopping DAG manager failed", zap.Error(err))
	}
	// Give the manager a moment to drain its mailbox before the actor
	// system quits.
	time.Sleep(100 * time.Millisecond)
	sys.Stop()
	return nil
}
