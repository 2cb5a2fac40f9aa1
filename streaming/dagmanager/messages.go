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
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/actor"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dag"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/model"
)

type requestType int

const (
	typeGetLatestDAG requestType = iota + 1
	typeGetTaskLaunchData
	typeReplaceProcessor
	typeWatchChange
	typeNewDAGDeployed
)

// Notification is pushed to registered watchers whenever a new DAG
// version is computed.
type Notification struct {
	LatestDAG *dag.DAG
}

// LaunchDataReply is the reply of a GetTaskLaunchData request.
type LaunchDataReply struct {
	Data model.TaskLaunchData
	Err  error
}

// Request is the union of all messages understood by the Manager.
// It has a concrete type with per-operation fields instead of an
// interface to save memory allocation on the hot path.
//
// Reply channels must have capacity of at least one, the manager
// never blocks on a reply.
type Request struct {
	tp requestType

	version       model.DAGVersion
	processorID   model.ProcessorID
	launchContext any
	newProcessor  model.ProcessorDescription
	watcher       actor.Mailbox[Notification]

	dagReply     chan *dag.DAG
	launchReply  chan LaunchDataReply
	replaceReply chan error
}

// GetLatestDAGRequest asks for the most recent retained DAG.
func GetLatestDAGRequest(reply chan *dag.DAG) Request {
	return Request{
		tp:       typeGetLatestDAG,
		dagReply: reply,
	}
}

// GetTaskLaunchDataRequest asks for the launch data of one processor
// at one retained DAG version. launchContext is handed back opaquely
// in the reply.
func GetTaskLaunchDataRequest(
	version model.DAGVersion, pid model.ProcessorID, launchContext any,
	reply chan LaunchDataReply,
) Request {
	return Request{
		tp:            typeGetTaskLaunchData,
		version:       version,
		processorID:   pid,
		launchContext: launchContext,
		launchReply:   reply,
	}
}

// ReplaceProcessorRequest asks to retire oldID and let newProcessor
// take over its position in the topology.
func ReplaceProcessorRequest(
	oldID model.ProcessorID, newProcessor model.ProcessorDescription,
	reply chan error,
) Request {
	return Request{
		tp:           typeReplaceProcessor,
		processorID:  oldID,
		newProcessor: newProcessor,
		replaceReply: reply,
	}
}

// WatchChangeRequest registers a watcher mailbox for new-DAG
// notifications. Registration is idempotent on the mailbox id and has
// no reply.
func WatchChangeRequest(watcher actor.Mailbox[Notification]) Request {
	return Request{
		tp:      typeWatchChange,
		watcher: watcher,
	}
}

// NewDAGDeployedRequest confirms that the DAG of the given version has
// been fully rolled out. All strictly older versions are retired. It
// has no reply.
func NewDAGDeployedRequest(version model.DAGVersion) Request {
	return Request{
		tp:      typeNewDAGDeployed,
		version: version,
	}
}
