// SPDX-License-Identifier: MPL-2.0

// Package dag orders the producers of a pipeline. Nodes are producer keys and
// an edge from A to B means A must be computed before B reads it.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError reports producers that read each other, directly or through
	// a chain, so no realization order exists.
	CycleError[K comparable] struct {
		Cycle []K
	}

	// Graph is a directed graph with deterministic ordering: ties are broken
	// by first insertion.
	Graph[K comparable] struct {
		adjacency map[K][]K
		nodes     []K
		nodeSet   map[K]struct{}
	}
)

func (e *CycleError[K]) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, k := range e.Cycle {
		parts[i] = fmt.Sprint(k)
	}
	return "producer cycle detected: " + strings.Join(parts, " -> ")
}

// New creates an empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		adjacency: make(map[K][]K),
		nodeSet:   make(map[K]struct{}),
	}
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int { return len(g.nodes) }

// Has reports whether k is a node of the graph.
func (g *Graph[K]) Has(k K) bool {
	_, ok := g.nodeSet[k]
	return ok
}

// AddNode adds k. Adding an existing node is a no-op.
func (g *Graph[K]) AddNode(k K) {
	if g.Has(k) {
		return
	}
	g.nodeSet[k] = struct{}{}
	g.nodes = append(g.nodes, k)
}

// AddEdge records that from must be ordered before to. Both nodes are added
// if missing; repeated edges are ignored.
func (g *Graph[K]) AddEdge(from, to K) {
	g.AddNode(from)
	g.AddNode(to)
	for _, n := range g.adjacency[from] {
		if n == to {
			return
		}
	}
	g.adjacency[from] = append(g.adjacency[from], to)
}

// TopologicalSort returns the nodes in dependency order using Kahn's
// algorithm, or a *CycleError naming the nodes left unordered.
func (g *Graph[K]) TopologicalSort() ([]K, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[K]int, len(g.nodes))
	for _, neighbors := range g.adjacency {
		for _, n := range neighbors {
			inDegree[n]++
		}
	}

	queue := make([]K, 0, len(g.nodes))
	for _, k := range g.nodes {
		if inDegree[k] == 0 {
			queue = append(queue, k)
		}
	}

	result := make([]K, 0, len(g.nodes))
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		result = append(result, k)
		for _, n := range g.adjacency[k] {
			inDegree[n]--
			if inDegree[n] == 0 {
				queue = append(queue, n)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycle []K
		for _, k := range g.nodes {
			if inDegree[k] > 0 {
				cycle = append(cycle, k)
			}
		}
		return nil, &CycleError[K]{Cycle: cycle}
	}
	return result, nil
}
