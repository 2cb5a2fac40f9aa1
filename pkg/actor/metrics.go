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

package actor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	totalActors = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "gearpump",
			Subsystem: "actor",
			Name:      "number_of_actors",
			Help:      "The total number of actors in an actor system.",
		}, []string{"name"})
	polledMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gearpump",
			Subsystem: "actor",
			Name:      "polled_messages_total",
			Help:      "Total number of messages polled by actors.",
		}, []string{"name"})
	pollDuration = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gearpump",
			Subsystem: "actor",
			Name:      "poll_cpu_seconds_total",
			Help:      "Total polling time spent in seconds.",
		}, []string{"name"})
)

// InitMetrics registers all metrics in this file
func InitMetrics(registry *prometheus.Registry) {
	registry.MustRegister(totalActors)
	registry.MustRegister(polledMessages)
	registry.MustRegister(pollDuration)
}
