// Package nodelink renders adjacency-list graphs as Graphviz node-link diagrams.
//
// # Overview
//
// This is the headless counterpart of the browser canvas: the same graph the
// Mermaid generator describes is laid out by Graphviz and written as SVG,
// PDF or PNG.
//
// # Usage
//
//	g := adjlist.Parse(text)
//	dot := nodelink.ToDOT(g, nodelink.Options{Directed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] emits a "digraph" with "->" edges when Directed is set, otherwise
// a "graph" with "--" edges de-duplicated in the same way as
// mermaid.Undirected. Vertices that are only referenced as neighbors are
// declared with a dashed grey style.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
