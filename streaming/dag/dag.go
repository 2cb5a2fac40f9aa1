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

package dag

import (
	cerrors "github.com/IsuraNimalasri/incubator-gearpump/pkg/errors"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/graph"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/model"
)

// Graph is the processor topology of one DAG snapshot.
type Graph = graph.Graph[model.ProcessorID, model.PartitionerDescription]

// Topology is the construction-time input of a job: processor
// descriptions connected by partitioner edges.
type Topology = graph.Graph[model.ProcessorDescription, model.PartitionerDescription]

// DAG is an immutable snapshot of the logical execution graph of a
// streaming job. A DAG is created once at job submission and
// thereafter only derived by ReplaceProcessor. Never modify a DAG
// after construction, snapshots are shared read-only across
// concurrent callers.
type DAG struct {
	Version    model.DAGVersion                                 `json:"version"`
	Processors map[model.ProcessorID]model.ProcessorDescription `json:"processors"`
	Graph      *Graph                                           `json:"-"`
}

// FromTopology builds the initial DAG (version 0) from a submitted
// topology.
func FromTopology(topo *Topology) (*DAG, error) {
	processors := make(map[model.ProcessorID]model.ProcessorDescription)
	g := graph.New[model.ProcessorID, model.PartitionerDescription]()
	for _, desc := range topo.Vertices() {
		if _, ok := processors[desc.ID]; ok {
			return nil, cerrors.ErrInvalidTopology.GenWithStackByArgs(
				"duplicated processor id")
		}
		processors[desc.ID] = desc
		g.AddVertex(desc.ID)
	}
	for _, e := range topo.Edges() {
		g.AddEdge(e.From.ID, e.To.ID, e.Label)
	}
	return &DAG{
		Version:    0,
		Processors: processors,
		Graph:      g,
	}, nil
}

// ReplaceProcessor derives the next DAG version in which the
// processor oldID is retired and newDesc, under the fresh id newID,
// takes over its position in the topology.
//
// The retired processor stays in the processor map with its death
// version bounded at the replacement's birth, so downstream consumers
// that are still draining its output can resolve its description. Its
// vertex stays in the graph but all its edges are handed, labels
// untouched, to the replacement. Everything else is carried over
// unchanged. Inputs are not mutated.
func (d *DAG) ReplaceProcessor(
	oldID model.ProcessorID, newDesc model.ProcessorDescription, newID model.ProcessorID,
) (*DAG, error) {
	old, ok := d.Processors[oldID]
	if !ok {
		return nil, cerrors.ErrProcessorNotFound.GenWithStackByArgs(oldID, d.Version)
	}

	nextVersion := d.Version + 1
	newDesc.ID = newID
	newDesc.Life = model.NewLifeTime(nextVersion)
	old.Life = old.Life.Terminate(newDesc.Life.Birth)

	processors := make(map[model.ProcessorID]model.ProcessorDescription, len(d.Processors)+1)
	for id, desc := range d.Processors {
		processors[id] = desc
	}
	processors[oldID] = old
	processors[newID] = newDesc

	// Move the retired processor's edges onto the replacement: cut the
	// sub-graph around the old vertex, rewrite the vertex id in the cut,
	// then union it back into the remainder of the original graph.
	moved := d.Graph.SubGraph(oldID).ReplaceVertex(oldID, newID)
	g := d.Graph.WithoutVertex(oldID).Union(moved)
	g.AddVertex(oldID)

	return &DAG{
		Version:    nextVersion,
		Processors: processors,
		Graph:      g,
	}, nil
}

// Subscribers derives the downstream consumers of the processor pid
// from the graph's outgoing edges. The order follows the graph's edge
// order and is deterministic, it affects task wiring.
func (d *DAG) Subscribers(pid model.ProcessorID) []model.Subscriber {
	var subscribers []model.Subscriber
	for _, e := range d.Graph.OutEdges(pid) {
		downstream := d.Processors[e.To]
		subscribers = append(subscribers, model.Subscriber{
			ProcessorID: e.To,
			Partitioner: e.Label,
			Parallelism: downstream.Parallelism,
			Life:        downstream.Life,
		})
	}
	return subscribers
}

// TaskLaunchData bundles the description of processor pid, its
// subscribers and an opaque caller context. It is built fresh per
// request and never cached.
func (d *DAG) TaskLaunchData(
	pid model.ProcessorID, context any,
) (model.TaskLaunchData, error) {
	desc, ok := d.Processors[pid]
	if !ok {
		return model.TaskLaunchData{}, cerrors.ErrProcessorNotFound.GenWithStackByArgs(pid, d.Version)
	}
	return model.TaskLaunchData{
		Processor:   desc,
		Subscribers: d.Subscribers(pid),
		Context:     context,
	}, nil
}

// MaxProcessorID returns the largest processor id in the DAG. It
// seeds the id allocator so replacement ids never collide with the
// submitted topology.
func (d *DAG) MaxProcessorID() model.ProcessorID {
	var maxID model.ProcessorID
	for id := range d.Processors {
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}
