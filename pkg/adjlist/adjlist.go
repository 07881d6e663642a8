package adjlist

import (
	"io"
	"strings"
)

// Graph is an ordered mapping from vertex name to its neighbor list.
// The zero value is an empty graph ready for use.
type Graph struct {
	order     []string
	neighbors map[string][]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{neighbors: make(map[string][]string)}
}

// Set records the neighbors of v. If v is already present its neighbor list
// is replaced and its position is kept.
func (g *Graph) Set(v string, neighbors []string) {
	if g.neighbors == nil {
		g.neighbors = make(map[string][]string)
	}
	if _, ok := g.neighbors[v]; !ok {
		g.order = append(g.order, v)
	}
	g.neighbors[v] = neighbors
}

// Has reports whether v was declared as a vertex (appears left of a colon).
func (g *Graph) Has(v string) bool {
	_, ok := g.neighbors[v]
	return ok
}

// Vertices returns the declared vertices in first-seen order.
func (g *Graph) Vertices() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Neighbors returns the neighbor list of v, or nil if v is not declared.
func (g *Graph) Neighbors(v string) []string {
	return g.neighbors[v]
}

// Len returns the number of declared vertices.
func (g *Graph) Len() int { return len(g.order) }

// EdgeCount returns the total number of neighbor entries, counting duplicates.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, v := range g.order {
		n += len(g.neighbors[v])
	}
	return n
}

// Each calls fn for every vertex in order.
func (g *Graph) Each(fn func(v string, neighbors []string)) {
	for _, v := range g.order {
		fn(v, g.neighbors[v])
	}
}

// Parse reads an adjacency list. It never fails.
func Parse(text string) *Graph {
	g := New()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		vertex, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		// A line such as ": B" has no vertex to attach neighbors to.
		if vertex = strings.TrimSpace(vertex); vertex == "" {
			continue
		}
		g.Set(vertex, splitNeighbors(rest))
	}
	return g
}

// ParseReader reads all of r and parses it with [Parse].
func ParseReader(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

func splitNeighbors(s string) []string {
	s = strings.TrimSpace(s)
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
