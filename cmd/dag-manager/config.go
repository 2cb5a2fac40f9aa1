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
	"github.com/BurntSushi/toml"
	"github.com/IsuraNimalasri/incubator-gearpump/pkg/graph"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dag"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/model"
	"github.com/pingcap/errors"

	cerrors "github.com/IsuraNimalasri/incubator-gearpump/pkg/errors"
)

// ProcessorConfig declares one processing stage of the submitted
// topology.
type ProcessorConfig struct {
	ID          int64  `toml:"id"`
	TaskClass   string `toml:"task_class"`
	Parallelism int    `toml:"parallelism"`
	Description string `toml:"description"`
}

// EdgeConfig connects two declared processors with a partitioner.
type EdgeConfig struct {
	From        int64  `toml:"from"`
	To          int64  `toml:"to"`
	Partitioner string `toml:"partitioner"`
}

// TopologyConfig is the TOML file handed to the binary at startup.
type TopologyConfig struct {
	Processors []ProcessorConfig `toml:"processor"`
	Edges      []EdgeConfig      `toml:"edge"`
}

// LoadTopologyConfig decodes and validates the topology file.
func LoadTopologyConfig(path string) (*TopologyConfig, error) {
	cfg := new(TopologyConfig)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Trace(err)
	}
	if len(cfg.Processors) == 0 {
		return nil, cerrors.ErrInvalidTopology.GenWithStackByArgs("no processors declared")
	}
	declared := make(map[int64]struct{}, len(cfg.Processors))
	for _, p := range cfg.Processors {
		if p.Parallelism <= 0 {
			return nil, cerrors.ErrInvalidTopology.GenWithStackByArgs("parallelism must be positive")
		}
		if _, ok := declared[p.ID]; ok {
			return nil, cerrors.ErrInvalidTopology.GenWithStackByArgs("duplicated processor id")
		}
		declared[p.ID] = struct{}{}
	}
	for _, e := range cfg.Edges {
		if _, ok := declared[e.From]; !ok {
			return nil, cerrors.ErrInvalidTopology.GenWithStackByArgs("edge from undeclared processor")
		}
		if _, ok := declared[e.To]; !ok {
			return nil, cerrors.ErrInvalidTopology.GenWithStackByArgs("edge to undeclared processor")
		}
	}
	return cfg, nil
}

// BuildTopology turns the configuration into the construction-time
// topology of the version-0 DAG.
func (c *TopologyConfig) BuildTopology() *dag.Topology {
	descs := make(map[int64]model.ProcessorDescription, len(c.Processors))
	topo := graph.New[model.ProcessorDescription, model.PartitionerDescription]()
	for _, p := range c.Processors {
		desc := model.ProcessorDescription{
			ID:          model.ProcessorID(p.ID),
			TaskClass:   p.TaskClass,
			Parallelism: p.Parallelism,
			Description: p.Description,
			Life:        model.Immortal,
		}
		descs[p.ID] = desc
		topo.AddVertex(desc)
	}
	for _, e := range c.Edges {
		topo.AddEdge(descs[e.From], descs[e.To],
			model.PartitionerDescription{ClassName: e.Partitioner})
	}
	return topo
}
