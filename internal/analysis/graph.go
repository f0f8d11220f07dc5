// Package analysis builds the dependency graph between a program's
// bindings and topologically sorts it for evaluation.
package analysis

import (
	"fmt"
	"sort"
)

// Graph represents the flow of data between nodes (binding names) in a
// sheetscript program: an edge from -> to means "from" is referenced by
// "to"'s expression and so must be evaluated first.
type Graph struct {
	nodes map[string]struct{}
	order []string // insertion order, for deterministic iteration
	edges map[string][]string
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[string][]string),
	}
}

func (g *Graph) AddNode(name string) {
	if _, exists := g.nodes[name]; !exists {
		g.nodes[name] = struct{}{}
		g.order = append(g.order, name)
	}
}

func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges[from] = append(g.edges[from], to)
}

// Nodes returns every node name in the order it was first added.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// HasCycle detects if there is a cycle in the graph using DFS.
// Returns true if cycle found, and the DFS path from the start node to
// the node that closes the cycle; that path can begin with nodes that
// only lead into the cycle.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)

	for _, node := range g.order {
		if !visited[node] {
			if found, path := g.dfs(node, visited, recursionStack); found {
				return true, path
			}
		}
	}
	return false, nil
}

func (g *Graph) dfs(node string, visited, recursionStack map[string]bool) (bool, []string) {
	visited[node] = true
	recursionStack[node] = true

	for _, neighbor := range g.edges[node] {
		if !visited[neighbor] {
			if found, path := g.dfs(neighbor, visited, recursionStack); found {
				return true, append([]string{node}, path...)
			}
		} else if recursionStack[neighbor] {
			return true, []string{node, neighbor}
		}
	}

	recursionStack[node] = false
	return false, nil
}

// TopoSort returns nodes in an order where every "from" precedes every
// "to" it points to (Kahn's algorithm), breaking ties by node name so
// the result is reproducible regardless of edge insertion order. ok is
// false when the graph contains a cycle, in which case the returned
// slice holds whatever was sorted before the stall.
func (g *Graph) TopoSort() (sorted []string, ok bool) {
	indegree := make(map[string]int, len(g.order))
	for _, n := range g.order {
		indegree[n] = 0
	}
	for _, tos := range g.edges {
		for _, to := range tos {
			indegree[to]++
		}
	}

	var ready []string
	for _, n := range g.order {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		sorted = append(sorted, n)

		var newlyReady []string
		for _, to := range g.edges[n] {
			indegree[to]--
			if indegree[to] == 0 {
				newlyReady = append(newlyReady, to)
			}
		}
		sort.Strings(newlyReady)
		ready = append(ready, newlyReady...)
		sort.Strings(ready)
	}

	return sorted, len(sorted) == len(g.order)
}

func (g *Graph) String() string {
	out := "Graph:\n"
	for _, from := range g.order {
		if tos, ok := g.edges[from]; ok {
			out += fmt.Sprintf("  %s -> %v\n", from, tos)
		}
	}
	return out
}
