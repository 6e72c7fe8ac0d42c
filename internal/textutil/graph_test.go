package textutil

import (
	"errors"
	"testing"
)

func TestTsort_DAG(t *testing.T) {
	order, err := Tsort([]string{"a b", "b c", "a c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTopological(t, order, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
}

func TestTsort_DisconnectedComponents(t *testing.T) {
	order, err := Tsort([]string{"a b", "x y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("expected 4 nodes, got %d: %v", len(order), order)
	}
	assertTopological(t, order, [][2]string{{"a", "b"}, {"x", "y"}})
}

func TestTsort_CycleDetected(t *testing.T) {
	_, err := Tsort([]string{"a b", "b c", "c a"})
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestTsort_SelfLoop(t *testing.T) {
	_, err := Tsort([]string{"a a"})
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle for self loop, got %v", err)
	}
}

func TestTsort_MalformedEdge(t *testing.T) {
	if _, err := Tsort([]string{"a b c"}); err == nil {
		t.Fatal("expected error for three-token line")
	}
	// Blank lines are skipped.
	order, err := Tsort([]string{"a b", "", "b c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 3 {
		t.Errorf("expected 3 nodes, got %v", order)
	}
}

func assertTopological(t *testing.T, order []string, edges [][2]string) {
	t.Helper()
	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	for _, e := range edges {
		pu, ok1 := pos[e[0]]
		pv, ok2 := pos[e[1]]
		if !ok1 || !ok2 {
			t.Fatalf("node missing from order %v: edge %v", order, e)
		}
		if pu >= pv {
			t.Errorf("edge %s->%s violated by order %v", e[0], e[1], order)
		}
	}
}
