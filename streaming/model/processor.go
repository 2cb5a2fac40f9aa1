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

package model

import "math"

type (
	// ProcessorID identifies a logical processing stage of a streaming
	// job. Ids are unique within a job and are never reused.
	ProcessorID int64

	// DAGVersion is the version number of a DAG snapshot. Versions are
	// strictly increasing, starting from the version of the topology
	// submitted with the job.
	DAGVersion int64
)

// UnboundedDeath marks a processor that is still the current instance
// for its position in the topology.
const UnboundedDeath DAGVersion = math.MaxInt64

// LifeTime is the half-open interval [Birth, Death) of DAG versions
// during which a processor is active.
type LifeTime struct {
	Birth DAGVersion `json:"birth"`
	Death DAGVersion `json:"death"`
}

// NewLifeTime creates a LifeTime starting at birth with no death
// version yet.
func NewLifeTime(birth DAGVersion) LifeTime {
	return LifeTime{Birth: birth, Death: UnboundedDeath}
}

// Immortal is the lifetime of processors of the initial topology.
var Immortal = LifeTime{Birth: 0, Death: UnboundedDeath}

// Terminate returns a copy of the lifetime with the death version
// bounded at death. The receiver is unchanged.
func (l LifeTime) Terminate(death DAGVersion) LifeTime {
	return LifeTime{Birth: l.Birth, Death: death}
}

// IsAliveAt reports whether the lifetime covers version v.
func (l LifeTime) IsAliveAt(v DAGVersion) bool {
	return l.Birth <= v && v < l.Death
}

// ProcessorDescription describes one logical stage of the streaming
// topology. It is an immutable value: replacement produces a new
// description with a new id instead of modifying an existing one.
type ProcessorDescription struct {
	ID          ProcessorID `json:"id"`
	TaskClass   string      `json:"task_class"`
	Parallelism int         `json:"parallelism"`
	Description string      `json:"description"`
	Life        LifeTime    `json:"life"`
}

// PartitionerDescription describes how data is partitioned between an
// upstream and a downstream processor. It is opaque to the control
// plane and is only carried along during graph surgery.
type PartitionerDescription struct {
	ClassName string `json:"class_name"`
}

// Subscriber is a downstream processor's subscription to one upstream
// processor. It is derived from a DAG on demand and never stored.
type Subscriber struct {
	ProcessorID ProcessorID            `json:"processor_id"`
	Partitioner PartitionerDescription `json:"partitioner"`
	Parallelism int                    `json:"parallelism"`
	Life        LifeTime               `json:"life"`
}

// TaskLaunchData bundles everything a worker needs to instantiate and
// wire the task instances of one processor at one DAG version.
type TaskLaunchData struct {
	Processor   ProcessorDescription `json:"processor"`
	Subscribers []Subscriber         `json:"subscribers"`
	// Context is an opaque caller-supplied value handed back with the
	// launch data.
	Context any `json:"context,omitempty"`
}
