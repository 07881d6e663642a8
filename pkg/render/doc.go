// Package render turns adjacency-list graphs into diagram output.
//
// # Overview
//
// Rendering is split by target:
//
//   - [mermaid]: Mermaid flowchart markup for the browser editor
//   - [nodelink]: Graphviz DOT and in-process SVG rendering
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG produced by nodelink using the external
// rsvg-convert tool. When it is missing they return [ErrNoConverter].
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(svg, 2)
package render
