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

// Package dagmanager implements the DAG version manager, the
// authoritative, versioned representation of the execution graph of a
// running streaming job.
//
// The manager is an actor. All state transitions happen inside Poll,
// one message at a time, which is what makes the conflict check and
// the state update of a replace request atomic without any locking.
package dagmanager

import (
	"context"
	"sync"

	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor/message"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/autoid"
	cerrors "github.com/IsuraNimalasri/incubator-gearpump/pkg/errors"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/logutil"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/notifier"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dag"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/model"
	"go.uber.org/zap"
)

// Manager owns the ordered history of live DAG versions of one job,
// the watcher registry and the processor id allocator. At most one
// DAG mutation is pending (undeployed) at any time: the retained list
// holds the stable version plus at most one pending version.
type Manager struct {
	jobID  string
	logger *zap.Logger

	// dags are the retained versions, oldest first. Never empty.
	dags      []*dag.DAG
	allocator autoid.Allocator

	notifier *notifier.Notifier[*dag.DAG]
	watchers map[actor.ID]*notifier.Receiver[*dag.DAG]
	wg       sync.WaitGroup
}

var _ actor.Actor[Request] = (*Manager)(nil)

// NewManager creates a Manager holding initial as its single retained
// DAG. The processor id allocator is seeded so allocated ids are
// strictly greater than every id of the initial topology.
func NewManager(jobID string, initial *dag.DAG) *Manager {
	return &Manager{
		jobID:     jobID,
		logger:    logutil.NewLogger4DAGManager(jobID),
		dags:      []*dag.DAG{initial},
		allocator: autoid.NewAllocator(int64(initial.MaxProcessorID())),
		notifier:  notifier.NewNotifier[*dag.DAG](),
		watchers:  make(map[actor.ID]*notifier.Receiver[*dag.DAG]),
	}
}

// Poll implements actor.Actor. It processes each request to
// completion before the next one.
func (m *Manager) Poll(ctx context.Context, msgs []message.Message[Request]) bool {
	for _, msg := range msgs {
		switch msg.Tp {
		case message.TypeValue:
			m.handle(msg.Value)
		case message.TypeStop:
			m.stop()
			return false
		}
	}
	return true
}

func (m *Manager) handle(req Request) {
	switch req.tp {
	case typeGetLatestDAG:
		m.handleGetLatestDAG(req)
	case typeGetTaskLaunchData:
		m.handleGetTaskLaunchData(req)
	case typeReplaceProcessor:
		m.handleReplaceProcessor(req)
	case typeWatchChange:
		m.handleWatchChange(req)
	case typeNewDAGDeployed:
		m.handleNewDAGDeployed(req)
	default:
		m.logger.Warn("unknown request type", zap.Int("type", int(req.tp)))
	}
}

func (m *Manager) latest() *dag.DAG {
	return m.dags[len(m.dags)-1]
}

func (m *Manager) handleGetLatestDAG(req Request) {
	reply(m.logger, req.dagReply, m.latest())
}

func (m *Manager) handleGetTaskLaunchData(req Request) {
	for _, d := range m.dags {
		if d.Version != req.version {
			continue
		}
		data, err := d.TaskLaunchData(req.processorID, req.launchContext)
		reply(m.logger, req.launchReply, LaunchDataReply{Data: data, Err: err})
		return
	}
	err := cerrors.ErrDAGVersionNotFound.GenWithStackByArgs(req.version)
	reply(m.logger, req.launchReply, LaunchDataReply{Err: err})
}

func (m *Manager) handleReplaceProcessor(req Request) {
	if len(m.dags) > 1 {
		replaceCounter.WithLabelValues(m.jobID, "conflict").Inc()
		err := cerrors.ErrPendingDAGNotDeployed.GenWithStackByArgs(m.latest().Version)
		reply(m.logger, req.replaceReply, err)
		return
	}

	newID := model.ProcessorID(m.allocator.AllocID())
	next, err := m.latest().ReplaceProcessor(req.processorID, req.newProcessor, newID)
	if err != nil {
		replaceCounter.WithLabelValues(m.jobID, "invalid").Inc()
		reply(m.logger, req.replaceReply, err)
		return
	}

	m.dags = append(m.dags, next)
	m.notifier.Notify(next)
	m.observeRetained()
	replaceCounter.WithLabelValues(m.jobID, "success").Inc()
	m.logger.Info("processor replaced",
		zap.Int64("oldProcessorID", int64(req.processorID)),
		zap.Int64("newProcessorID", int64(newID)),
		zap.Int64("version", int64(next.Version)))
	reply(m.logger, req.replaceReply, nil)
}

func (m *Manager) handleWatchChange(req Request) {
	watcher := req.watcher
	if _, ok := m.watchers[watcher.ID()]; ok {
		// Idempotent registration, a watcher is notified once per
		// version no matter how many times it registers.
		return
	}

	receiver := m.notifier.NewReceiver()
	m.watchers[watcher.ID()] = receiver

	// Fan-out is fire and forget: one delivery attempt per watcher per
	// version, a full watcher mailbox drops the notification.
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for d := range receiver.C {
			err := watcher.Send(message.ValueMessage(Notification{LatestDAG: d}))
			if err != nil {
				m.logger.Warn("dropping DAG notification",
					zap.Uint64("watcherID", uint64(watcher.ID())),
					zap.Int64("version", int64(d.Version)),
					zap.Error(err))
			}
		}
	}()
	m.logger.Info("watcher registered", zap.Uint64("watcherID", uint64(watcher.ID())))
}

func (m *Manager) handleNewDAGDeployed(req Request) {
	retained := m.dags[:0]
	for _, d := range m.dags {
		if d.Version >= req.version {
			retained = append(retained, d)
		}
	}
	if len(retained) == 0 {
		// A confirmation beyond the latest version never retires the
		// latest DAG itself.
		retained = append(retained, m.latest())
	}
	if dropped := len(m.dags) - len(retained); dropped > 0 {
		m.logger.Info("DAG deployed, older versions retired",
			zap.Int64("version", int64(req.version)),
			zap.Int("retired", dropped))
	}
	m.dags = retained
	m.observeRetained()
}

// reply delivers a reply without ever blocking the manager. Reply
// channels are buffered with capacity one, a full channel can only
// mean a caller reused one and the reply is dropped.
func reply[T any](logger *zap.Logger, ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
		logger.Warn("reply channel is full, dropping the reply")
	}
}

func (m *Manager) stop() {
	m.notifier.Close()
	m.wg.Wait()
	m.logger.Info("DAG manager stopped",
		zap.Int64("version", int64(m.latest().Version)))
}

func (m *Manager) observeRetained() {
	retainedVersions.WithLabelValues(m.jobID).Set(float64(len(m.dags)))
	latestVersion.WithLabelValues(m.jobID).Set(float64(m.latest().Version))
}
