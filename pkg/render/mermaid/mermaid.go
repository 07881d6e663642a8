package mermaid

import (
	"strings"

	"github.com/axiome/firstprinciples/pkg/adjlist"
)

const (
	// Header opens every generated diagram.
	Header = "graph TD"

	indent          = "    "
	arrowDirected   = " --> "
	arrowUndirected = " --- "
)

// Convert parses an adjacency list and renders it as directed or undirected
// markup.
func Convert(text string, directed bool) string {
	g := adjlist.Parse(text)
	if directed {
		return Directed(g)
	}
	return Undirected(g)
}

// Directed renders one edge per neighbor entry in input order.
func Directed(g *adjlist.Graph) string {
	var edges []string
	g.Each(func(v string, neighbors []string) {
		for _, n := range neighbors {
			edges = append(edges, v+arrowDirected+n)
		}
	})
	return assemble(edges, g)
}

// Undirected renders each unordered pair once, endpoints in sorted order.
// Edges appear in the order their canonical form was first seen.
func Undirected(g *adjlist.Graph) string {
	var edges []string
	seen := make(map[string]struct{})
	g.Each(func(v string, neighbors []string) {
		for _, n := range neighbors {
			e := CanonicalEdge(v, n)
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	})
	return assemble(edges, g)
}

// CanonicalEdge joins a and b in [adjlist.CompareNames] order with the
// undirected arrow.
func CanonicalEdge(a, b string) string {
	if adjlist.CompareNames(b, a) < 0 {
		a, b = b, a
	}
	return a + arrowUndirected + b
}

// NodeDeclaration returns the node statement for v, without indentation.
func NodeDeclaration(v string) string {
	return v + "[[" + v + "]]"
}

func assemble(edges []string, g *adjlist.Graph) string {
	var b strings.Builder
	b.WriteString(Header)
	for _, e := range edges {
		b.WriteString("\n" + indent + e)
	}
	for _, v := range g.Vertices() {
		b.WriteString("\n" + indent + NodeDeclaration(v))
	}
	return b.String()
}
