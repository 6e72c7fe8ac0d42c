package textutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is returned by Tsort when the input graph is not a DAG.
var ErrCycle = errors.New("input contains a cycle")

// Tsort reads one edge per line (two whitespace-separated tokens, u v,
// meaning u precedes v), then returns a topological ordering of all
// nodes: a depth-first traversal's postorder, reversed. Nodes and edges
// are visited in first-appearance order so output is deterministic.
// A cyclic input returns ErrCycle instead of an arbitrary order.
func Tsort(lines []string) ([]string, error) {
	adj := make(map[string][]string)
	var nodes []string
	known := make(map[string]struct{})

	addNode := func(n string) {
		if _, ok := known[n]; !ok {
			known[n] = struct{}{}
			nodes = append(nodes, n)
		}
	}

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed edge %q: want two tokens", line)
		}
		u, v := fields[0], fields[1]
		addNode(u)
		addNode(v)
		adj[u] = append(adj[u], v)
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // finished
	)
	color := make(map[string]int, len(nodes))
	var post []string

	var visit func(n string) error
	visit = func(n string) error {
		switch color[n] {
		case gray:
			return ErrCycle
		case black:
			return nil
		}
		color[n] = gray
		for _, m := range adj[n] {
			if err := visit(m); err != nil {
				return err
			}
		}
		color[n] = black
		post = append(post, n)
		return nil
	}

	for _, n := range nodes {
		if err := visit(n); err != nil {
			return nil, err
		}
	}

	out := make([]string, len(post))
	for i, n := range post {
		out[len(post)-1-i] = n
	}
	return out, nil
}
