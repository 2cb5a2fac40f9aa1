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

package graph

// Edge is a directed edge carrying an opaque label.
type Edge[V comparable, L any] struct {
	From  V
	To    V
	Label L
}

// Graph is a directed multigraph over comparable vertices and opaque
// edge labels. Vertices and edges keep their insertion order, so all
// iteration is deterministic.
//
// AddVertex and AddEdge are meant for building a graph before it is
// shared. The derivation operations (SubGraph, ReplaceVertex,
// WithoutVertex, Union, Clone) never modify their receiver, they
// return new graphs, so a graph that is only derived from stays safe
// to read concurrently.
type Graph[V comparable, L any] struct {
	vertices  []V
	vertexSet map[V]struct{}
	edges     []Edge[V, L]
}

// New creates an empty graph.
func New[V comparable, L any]() *Graph[V, L] {
	return &Graph[V, L]{
		vertexSet: make(map[V]struct{}),
	}
}

// AddVertex adds a vertex. Adding an existing vertex is a no-op.
func (g *Graph[V, L]) AddVertex(v V) {
	if _, ok := g.vertexSet[v]; ok {
		return
	}
	g.vertexSet[v] = struct{}{}
	g.vertices = append(g.vertices, v)
}

// AddEdge adds a directed edge and both of its endpoints.
func (g *Graph[V, L]) AddEdge(from, to V, label L) {
	g.AddVertex(from)
	g.AddVertex(to)
	g.edges = append(g.edges, Edge[V, L]{From: from, To: to, Label: label})
}

// HasVertex reports whether v is in the graph.
func (g *Graph[V, L]) HasVertex(v V) bool {
	_, ok := g.vertexSet[v]
	return ok
}

// Vertices returns all vertices in insertion order.
func (g *Graph[V, L]) Vertices() []V {
	return append([]V(nil), g.vertices...)
}

// Edges returns all edges in insertion order.
func (g *Graph[V, L]) Edges() []Edge[V, L] {
	return append([]Edge[V, L](nil), g.edges...)
}

// OutEdges returns the edges whose source is v, in insertion order.
func (g *Graph[V, L]) OutEdges(v V) []Edge[V, L] {
	var out []Edge[V, L]
	for _, e := range g.edges {
		if e.From == v {
			out = append(out, e)
		}
	}
	return out
}

// InEdges returns the edges whose target is v, in insertion order.
func (g *Graph[V, L]) InEdges(v V) []Edge[V, L] {
	var in []Edge[V, L]
	for _, e := range g.edges {
		if e.To == v {
			in = append(in, e)
		}
	}
	return in
}

// VertexCount returns the number of vertices.
func (g *Graph[V, L]) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of edges.
func (g *Graph[V, L]) EdgeCount() int {
	return len(g.edges)
}

// Clone returns a copy of the graph.
func (g *Graph[V, L]) Clone() *Graph[V, L] {
	ret := New[V, L]()
	for _, v := range g.vertices {
		ret.AddVertex(v)
	}
	ret.edges = append(ret.edges, g.edges...)
	return ret
}

// SubGraph returns the induced sub-graph around v: the vertex itself,
// every edge incident to it and the endpoints of those edges.
func (g *Graph[V, L]) SubGraph(v V) *Graph[V, L] {
	ret := New[V, L]()
	if g.HasVertex(v) {
		ret.AddVertex(v)
	}
	for _, e := range g.edges {
		if e.From == v || e.To == v {
			ret.AddEdge(e.From, e.To, e.Label)
		}
	}
	return ret
}

// ReplaceVertex returns a new graph with oldV rewritten to newV in the
// vertex set and in every edge endpoint. Edge labels are untouched.
func (g *Graph[V, L]) ReplaceVertex(oldV, newV V) *Graph[V, L] {
	ret := New[V, L]()
	for _, v := range g.vertices {
		if v == oldV {
			v = newV
		}
		ret.AddVertex(v)
	}
	for _, e := range g.edges {
		if e.From == oldV {
			e.From = newV
		}
		if e.To == oldV {
			e.To = newV
		}
		ret.edges = append(ret.edges, e)
	}
	return ret
}

// WithoutVertex returns a new graph with v and all its incident
// edges removed.
func (g *Graph[V, L]) WithoutVertex(v V) *Graph[V, L] {
	ret := New[V, L]()
	for _, u := range g.vertices {
		if u != v {
			ret.AddVertex(u)
		}
	}
	for _, e := range g.edges {
		if e.From != v && e.To != v {
			ret.edges = append(ret.edges, e)
		}
	}
	return ret
}

// Union returns a new graph merging g and other. Vertices present in
// both appear once; edge lists are concatenated, g's edges first.
// Callers that need a set union must supply edge-disjoint operands.
func (g *Graph[V, L]) Union(other *Graph[V, L]) *Graph[V, L] {
	ret := g.Clone()
	for _, v := range other.vertices {
		ret.AddVertex(v)
	}
	ret.edges = append(ret.edges, other.edges...)
	return ret
}
