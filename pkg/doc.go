// Package pkg holds the reusable libraries behind firstprinciples.
//
// # Overview
//
// The packages are grouped by concern:
//
//  1. [adjlist] - parsing of "vertex: n1, n2" adjacency lists
//  2. [render] - Mermaid markup, Graphviz DOT/SVG and PDF/PNG conversion
//  3. [pipeline] - convert and render jobs with cached artifacts
//  4. [concepts] - first-principles concept explanations and their HTTP client
//  5. [store] - saved graph documents (memory, file, MongoDB)
//  6. [cache] - artifact caching (file, Redis, null)
//
// Shared infrastructure lives in [errors], [httputil], [observability] and
// [buildinfo].
//
// # Data Flow
//
//	adjacency list text
//	         ↓
//	    [adjlist] package (parse, last write wins)
//	         ↓
//	    [render/mermaid] or [render/nodelink]
//	         ↓
//	    Mermaid / DOT / SVG / PDF / PNG
//
// # Quick Start
//
//	import "github.com/axiome/firstprinciples/pkg/render/mermaid"
//
//	markup := mermaid.Convert("A: B, C\nB: C", true)
//	// graph TD
//	//     A --> B
//	//     A --> C
//	//     B --> C
//	//     A[[A]]
//	//     B[[B]]
//
// [adjlist]: github.com/axiome/firstprinciples/pkg/adjlist
// [render]: github.com/axiome/firstprinciples/pkg/render
// [render/mermaid]: github.com/axiome/firstprinciples/pkg/render/mermaid
// [render/nodelink]: github.com/axiome/firstprinciples/pkg/render/nodelink
// [pipeline]: github.com/axiome/firstprinciples/pkg/pipeline
// [concepts]: github.com/axiome/firstprinciples/pkg/concepts
// [store]: github.com/axiome/firstprinciples/pkg/store
// [cache]: github.com/axiome/firstprinciples/pkg/cache
// [errors]: github.com/axiome/firstprinciples/pkg/errors
// [httputil]: github.com/axiome/firstprinciples/pkg/httputil
// [observability]: github.com/axiome/firstprinciples/pkg/observability
// [buildinfo]: github.com/axiome/firstprinciples/pkg/buildinfo
package pkg
