package analysis

import (
	"testing"
)

func TestGraphCycleDetection(t *testing.T) {
	// Case 1: No Cycle
	g1 := NewGraph()
	g1.AddEdge("A", "B")
	g1.AddEdge("B", "C")

	if hasCycle, path := g1.HasCycle(); hasCycle {
		t.Errorf("g1 should not have a cycle, but got one: %v", path)
	}

	// Case 2: Simple Cycle A -> B -> A
	g2 := NewGraph()
	g2.AddEdge("A", "B")
	g2.AddEdge("B", "A") // Cycle!

	if hasCycle, _ := g2.HasCycle(); !hasCycle {
		t.Error("g2 should have a cycle A->B->A, but none detected")
	}

	// Case 3: Indirect Cycle A -> B -> C -> A
	g3 := NewGraph()
	g3.AddEdge("A", "B")
	g3.AddEdge("B", "C")
	g3.AddEdge("C", "A") // Cycle!

	if hasCycle, _ := g3.HasCycle(); !hasCycle {
		t.Error("g3 should have a cycle A->B->C->A, but none detected")
	}

	// Case 4: Disconnected components with cycle
	g4 := NewGraph()
	g4.AddEdge("A", "B")
	g4.AddEdge("X", "Y")
	g4.AddEdge("Y", "X") // Cycle in component 2

	if hasCycle, _ := g4.HasCycle(); !hasCycle {
		t.Error("g4 should have a cycle in X-Y component")
	}
}

func TestGraphTopoSort(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b") // a must come before b
	g.AddEdge("a", "c")
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")

	sorted, ok := g.TopoSort()
	if !ok {
		t.Fatalf("expected a valid topo order, got none: %v", sorted)
	}

	pos := make(map[string]int, len(sorted))
	for i, n := range sorted {
		pos[n] = i
	}
	if pos["a"] > pos["b"] || pos["a"] > pos["c"] || pos["b"] > pos["d"] || pos["c"] > pos["d"] {
		t.Errorf("topo order violates an edge: %v", sorted)
	}
}

func TestGraphTopoSortCycle(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	if _, ok := g.TopoSort(); ok {
		t.Error("expected TopoSort to report failure on a cyclic graph")
	}
}

func TestGraphTopoSortDeterministic(t *testing.T) {
	g1 := NewGraph()
	g1.AddEdge("z", "y")
	g1.AddNode("a")

	g2 := NewGraph()
	g2.AddNode("a")
	g2.AddEdge("z", "y")

	s1, _ := g1.TopoSort()
	s2, _ := g2.TopoSort()
	if len(s1) != len(s2) {
		t.Fatalf("length mismatch: %v vs %v", s1, s2)
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Errorf("insertion order should not affect tie-breaking: %v vs %v", s1, s2)
		}
	}
}
