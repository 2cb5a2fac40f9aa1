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
	"github.com/prometheus/client_golang/prometheus"
)

var (
	retainedVersions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "gearpump",
			Subsystem: "dag_manager",
			Name:      "retained_dag_versions",
			Help:      "The number of currently retained DAG versions.",
		}, []string{"job_id"})
	latestVersion = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "gearpump",
			Subsystem: "dag_manager",
			Name:      "latest_dag_version",
			Help:      "The version number of the most recent retained DAG.",
		}, []string{"job_id"})
	replaceCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gearpump",
			Subsystem: "dag_manager",
			Name:      "replace_processor_total",
			Help:      "Total number of replace processor requests by result.",
		}, []string{"job_id", "result"})
)

// InitMetrics registers all metrics in this file
func InitMetrics(registry *prometheus.Registry) {
	registry.MustRegister(retainedVersions)
	registry.MustRegister(latestVersion)
	registry.MustRegister(replaceCounter)
}
