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

package dagmanager

import (
	"context"
	"testing"
	"time"

	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor/message"
	cerrors "github.com/IsuraNimalasri/incubator-gearpump/pkg/errors"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/graph"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/leakutil"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dag"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/model"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	leakutil.SetUpLeakTest(m)
}

var hashPartitioner = model.PartitionerDescription{ClassName: "hash"}

// newManager builds a manager over the initial DAG
//
//	1(A, parallelism 2) -> 2(B, parallelism 3)
//
// and registers a cleanup that shuts the manager down.
func newManager(t *testing.T) *Manager {
	a := model.ProcessorDescription{ID: 1, TaskClass: "A", Parallelism: 2, Life: model.Immortal}
	b := model.ProcessorDescription{ID: 2, TaskClass: "B", Parallelism: 3, Life: model.Immortal}
	topo := graph.New[model.ProcessorDescription, model.PartitionerDescription]()
	topo.AddEdge(a, b, hashPartitioner)
	initial, err := dag.FromTopology(topo)
	require.NoError(t, err)

	m := NewManager("job-test", initial)
	t.Cleanup(func() {
		running := m.Poll(context.Background(), []message.Message[Request]{
			message.StopMessage[Request](),
		})
		require.False(t, running)
	})
	return m
}

// poll feeds one request into the manager synchronously.
func poll(t *testing.T, m *Manager, req Request) {
	running := m.Poll(context.Background(), []message.Message[Request]{
		message.ValueMessage(req),
	})
	require.True(t, running)
}

func getLatestDAG(t *testing.T, m *Manager) *dag.DAG {
	replyCh := make(chan *dag.DAG, 1)
	poll(t, m, GetLatestDAGRequest(replyCh))
	select {
	case d := <-replyCh:
		return d
	default:
		t.Fatal("expected a reply")
		return nil
	}
}

func replaceProcessor(t *testing.T, m *Manager, oldID model.ProcessorID, desc model.ProcessorDescription) error {
	replyCh := make(chan error, 1)
	poll(t, m, ReplaceProcessorRequest(oldID, desc, replyCh))
	select {
	case err := <-replyCh:
		return err
	default:
		t.Fatal("expected a reply")
		return nil
	}
}

func TestGetLatestDAG(t *testing.T) {
	m := newManager(t)

	d := getLatestDAG(t, m)
	require.Equal(t, model.DAGVersion(0), d.Version)
	require.Len(t, d.Processors, 2)
}

func TestReplaceProcessorScenario(t *testing.T) {
	m := newManager(t)

	// ReplaceProcessor(1, C): C gets id 3, born at version 1.
	err := replaceProcessor(t, m, 1, model.ProcessorDescription{TaskClass: "C", Parallelism: 2})
	require.NoError(t, err)

	d := getLatestDAG(t, m)
	require.Equal(t, model.DAGVersion(1), d.Version)
	require.Len(t, d.Processors, 3)
	require.Equal(t, model.LifeTime{Birth: 0, Death: 1}, d.Processors[1].Life)
	require.Equal(t, "C", d.Processors[3].TaskClass)
	require.Equal(t, model.NewLifeTime(1), d.Processors[3].Life)

	// Edge 1->2 became 3->2.
	require.Equal(t, []model.Subscriber{
		{ProcessorID: 2, Partitioner: hashPartitioner, Parallelism: 3, Life: model.Immortal},
	}, d.Subscribers(3))
	require.Empty(t, d.Subscribers(1))

	// Launch data at version 0 still reflects the old wiring.
	replyCh := make(chan LaunchDataReply, 1)
	poll(t, m, GetTaskLaunchDataRequest(0, 1, nil, replyCh))
	r := <-replyCh
	require.NoError(t, r.Err)
	require.Equal(t, model.ProcessorID(1), r.Data.Processor.ID)
	require.Len(t, r.Data.Subscribers, 1)

	// Launch data at version 1 reflects the replacement.
	replyCh = make(chan LaunchDataReply, 1)
	poll(t, m, GetTaskLaunchDataRequest(1, 3, "opaque", replyCh))
	r = <-replyCh
	require.NoError(t, r.Err)
	require.Equal(t, model.ProcessorID(3), r.Data.Processor.ID)
	require.Equal(t, "opaque", r.Data.Context)
	require.Len(t, r.Data.Subscribers, 1)
}

func TestReplaceProcessorConflict(t *testing.T) {
	m := newManager(t)

	err := replaceProcessor(t, m, 1, model.ProcessorDescription{TaskClass: "C"})
	require.NoError(t, err)
	require.Len(t, m.dags, 2)

	// A second replacement without an intervening deployment
	// confirmation fails with a non-empty reason and leaves the
	// retained set unchanged.
	err = replaceProcessor(t, m, 2, model.ProcessorDescription{TaskClass: "D"})
	require.True(t, cerrors.ErrPendingDAGNotDeployed.Equal(err))
	require.NotEmpty(t, err.Error())
	require.Len(t, m.dags, 2)

	// Deployment confirmation re-opens the gate.
	poll(t, m, NewDAGDeployedRequest(1))
	require.Len(t, m.dags, 1)
	require.Equal(t, model.DAGVersion(1), m.latest().Version)

	err = replaceProcessor(t, m, 2, model.ProcessorDescription{TaskClass: "D"})
	require.NoError(t, err)
	require.Equal(t, model.DAGVersion(2), m.latest().Version)
}

func TestReplaceProcessorUnknownTarget(t *testing.T) {
	m := newManager(t)

	err := replaceProcessor(t, m, 42, model.ProcessorDescription{TaskClass: "C"})
	require.True(t, cerrors.ErrProcessorNotFound.Equal(err))
	require.Len(t, m.dags, 1)
	require.Equal(t, model.DAGVersion(0), m.latest().Version)
}

func TestNewProcessorIDsNeverReused(t *testing.T) {
	m := newManager(t)

	var allocated []model.ProcessorID
	target := model.ProcessorID(2)
	for i := 0; i < 3; i++ {
		err := replaceProcessor(t, m, target, model.ProcessorDescription{TaskClass: "B2"})
		require.NoError(t, err)
		d := m.latest()
		target = d.MaxProcessorID()
		allocated = append(allocated, target)
		poll(t, m, NewDAGDeployedRequest(d.Version))
	}
	// Ids are strictly increasing, even across retired versions.
	require.Equal(t, []model.ProcessorID{3, 4, 5}, allocated)
}

func TestGetTaskLaunchDataUnknownVersion(t *testing.T) {
	m := newManager(t)

	replyCh := make(chan LaunchDataReply, 1)
	poll(t, m, GetTaskLaunchDataRequest(7, 1, nil, replyCh))
	r := <-replyCh
	require.True(t, cerrors.ErrDAGVersionNotFound.Equal(r.Err))

	// A retired version is gone as well.
	err := replaceProcessor(t, m, 1, model.ProcessorDescription{TaskClass: "C"})
	require.NoError(t, err)
	poll(t, m, NewDAGDeployedRequest(1))

	replyCh = make(chan LaunchDataReply, 1)
	poll(t, m, GetTaskLaunchDataRequest(0, 1, nil, replyCh))
	r = <-replyCh
	require.True(t, cerrors.ErrDAGVersionNotFound.Equal(r.Err))
}

func TestNewDAGDeployedBeyondLatest(t *testing.T) {
	m := newManager(t)

	// Confirming a version newer than anything retained never drops
	// the latest DAG.
	poll(t, m, NewDAGDeployedRequest(100))
	require.Len(t, m.dags, 1)
	require.Equal(t, model.DAGVersion(0), m.latest().Version)
}

func TestWatchChangeNotifiesOncePerVersion(t *testing.T) {
	m := newManager(t)

	watcher := actor.NewMailbox[Notification](actor.ID(7), 16)
	// Registering the same watcher twice must not duplicate
	// notifications.
	poll(t, m, WatchChangeRequest(watcher))
	poll(t, m, WatchChangeRequest(watcher))
	require.Len(t, m.watchers, 1)

	err := replaceProcessor(t, m, 1, model.ProcessorDescription{TaskClass: "C"})
	require.NoError(t, err)

	var got Notification
	require.Eventually(t, func() bool {
		msg, ok := watcher.Receive()
		if !ok {
			return false
		}
		got = msg.Value
		return true
	}, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, model.DAGVersion(1), got.LatestDAG.Version)

	// Drain the notifier, then make sure no duplicate arrived.
	require.NoError(t, m.notifier.Flush(context.Background()))
	time.Sleep(50 * time.Millisecond)
	_, ok := watcher.Receive()
	require.False(t, ok)
}

func TestWatcherConflictNotifiedOnlyForSuccess(t *testing.T) {
	m := newManager(t)

	watcher := actor.NewMailbox[Notification](actor.ID(7), 16)
	poll(t, m, WatchChangeRequest(watcher))

	require.NoError(t, replaceProcessor(t, m, 1, model.ProcessorDescription{TaskClass: "C"}))
	err := replaceProcessor(t, m, 2, model.ProcessorDescription{TaskClass: "D"})
	require.True(t, cerrors.ErrPendingDAGNotDeployed.Equal(err))

	// Exactly one notification, for the first replacement.
	require.Eventually(t, func() bool {
		_, ok := watcher.Receive()
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, m.notifier.Flush(context.Background()))
	time.Sleep(50 * time.Millisecond)
	_, ok := watcher.Receive()
	require.False(t, ok)
}
