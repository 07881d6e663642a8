// Package mermaid renders adjacency-list graphs as Mermaid flowchart markup.
//
// # Output
//
// Both generators emit a "graph TD" header, then edge statements, then one
// node declaration per declared vertex, each indented by four spaces:
//
//	graph TD
//	    A --> B
//	    A[[A]]
//
// [Directed] emits one "-->" edge per neighbor entry, duplicates included.
// [Undirected] emits "---" edges with both endpoints sorted, so A→B and B→A
// collapse into a single "A --- B" line.
//
// Vertices that only ever appear as neighbors are not declared as nodes.
// Mermaid still draws them from the edge statements, using the bare name as
// the label instead of the [[subroutine]] shape.
//
// # Usage
//
//	markup := mermaid.Convert("A: B, C\nB: A", false)
package mermaid
