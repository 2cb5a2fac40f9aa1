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
	"io"
	"net/http"
	"strconv"

	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dag"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/dagmanager"
	"github.com/IsuraNimalasri/incubator-gearpump/streaming/model"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type edgeResp struct {
	From        model.ProcessorID `json:"from"`
	To          model.ProcessorID `json:"to"`
	Partitioner string            `json:"partitioner"`
}

type dagResp struct {
	Version    model.DAGVersion                                 `json:"version"`
	Processors map[model.ProcessorID]model.ProcessorDescription `json:"processors"`
	Edges      []edgeResp                                       `json:"edges"`
}

func renderDAG(d *dag.DAG) dagResp {
	resp := dagResp{
		Version:    d.Version,
		Processors: d.Processors,
	}
	for _, e := range d.Graph.Edges() {
		resp.Edges = append(resp.Edges, edgeResp{
			From:        e.From,
			To:          e.To,
			Partitioner: e.Label.ClassName,
		})
	}
	return resp
}

type replaceReq struct {
	TaskClass   string `json:"task_class" binding:"required"`
	Parallelism int    `json:"parallelism" binding:"required"`
	Description string `json:"description"`
}

type deployedReq struct {
	Version model.DAGVersion `json:"version"`
}

// newRouter creates the HTTP status and control surface of the DAG
// manager.
func newRouter(client *dagmanager.Client, registry *prometheus.Registry) *gin.Engine {
	// discard gin default log output
	gin.DefaultWriter = io.Discard

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/dag", func(c *gin.Context) {
			d, err := client.GetLatestDAG(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, renderDAG(d))
		})

		v1.GET("/dag/:version/processors/:id/launch", func(c *gin.Context) {
			version, err := strconv.ParseInt(c.Param("version"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid version"})
				return
			}
			pid, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid processor id"})
				return
			}
			launch, err := client.GetTaskLaunchData(c.Request.Context(),
				model.DAGVersion(version), model.ProcessorID(pid), nil)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, launch)
		})

		v1.POST("/processors/:id/replace", func(c *gin.Context) {
			pid, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid processor id"})
				return
			}
			var req replaceReq
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			err = client.ReplaceProcessor(c.Request.Context(),
				model.ProcessorID(pid), model.ProcessorDescription{
					TaskClass:   req.TaskClass,
					Parallelism: req.Parallelism,
					Description: req.Description,
				})
			if err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			d, err := client.GetLatestDAG(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, renderDAG(d))
		})

		v1.POST("/dag/deployed", func(c *gin.Context) {
			var req deployedReq
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := client.NewDAGDeployed(req.Version); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
		})
	}
	return router
}
