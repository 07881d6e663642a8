package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/axiome/firstprinciples/pkg/adjlist"
)

// Options configures node-link diagram generation.
type Options struct {
	// Directed emits a digraph with arrows. When false, a plain graph is
	// produced and edges are de-duplicated regardless of direction.
	Directed bool

	// RankDir is the Graphviz layout direction. Empty means "TB", which
	// matches Mermaid's "graph TD".
	RankDir string
}

// header holds the graph-wide statements written before any vertex.
var header = []string{
	`bgcolor="transparent"`,
	`node [shape=box, style="rounded,filled", fillcolor=white, fontsize=24, margin="0.2,0.1"]`,
	`ranksep=0.5`,
	`nodesep=0.3`,
}

const undeclaredStyle = `style="rounded,filled,dashed", fillcolor=lightgrey`

// ToDOT converts an adjacency-list graph to Graphviz DOT.
//
// Declared vertices are drawn as rounded boxes. Vertices that only appear as
// neighbors get a dashed outline so the gap in the source is visible.
func ToDOT(g *adjlist.Graph, opts Options) string {
	kind, arrow := "graph", "--"
	if opts.Directed {
		kind, arrow = "digraph", "->"
	}
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s G {\n  rankdir=%s;\n", kind, rankdir)
	for _, stmt := range header {
		b.WriteString("  " + stmt + ";\n")
	}
	b.WriteByte('\n')

	for _, v := range g.Vertices() {
		id := dotQuote(v)
		fmt.Fprintf(&b, "  %s [label=%s];\n", id, id)
	}
	for _, v := range undeclared(g) {
		id := dotQuote(v)
		fmt.Fprintf(&b, "  %s [label=%s, %s];\n", id, id, undeclaredStyle)
	}
	b.WriteByte('\n')
	for _, e := range edges(g, opts.Directed) {
		fmt.Fprintf(&b, "  %s %s %s;\n", dotQuote(e[0]), arrow, dotQuote(e[1]))
	}
	b.WriteString("}\n")
	return b.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotQuote returns s as a DOT double-quoted string. Only backslash and the
// quote are escaped; every other byte is passed through as-is.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// edges lists edge endpoints in input order. Undirected edges are reduced to
// one sorted pair each.
func edges(g *adjlist.Graph, directed bool) [][2]string {
	var out [][2]string
	seen := make(map[[2]string]bool)
	g.Each(func(v string, neighbors []string) {
		for _, n := range neighbors {
			e := [2]string{v, n}
			if !directed {
				if adjlist.CompareNames(n, v) < 0 {
					e = [2]string{n, v}
				}
				if seen[e] {
					continue
				}
				seen[e] = true
			}
			out = append(out, e)
		}
	})
	return out
}

// undeclared returns neighbors that are never declared as vertices, in
// first-seen order.
func undeclared(g *adjlist.Graph) []string {
	var out []string
	seen := make(map[string]bool)
	g.Each(func(_ string, neighbors []string) {
		for _, n := range neighbors {
			if g.Has(n) || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	})
	return out
}

// RenderSVG lays out dot with the embedded Graphviz and returns SVG whose
// root element has a zero-origin viewBox, so it scales with its container.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("graphviz: parse: %w", err)
	}
	defer graph.Close()

	var svg bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &svg); err != nil {
		return nil, fmt.Errorf("graphviz: render: %w", err)
	}
	return normalizeViewBox(svg.Bytes()), nil
}

var (
	rootTag = regexp.MustCompile(`<svg[^>]*>`)
	viewBox = regexp.MustCompile(`viewBox="[0-9.]+\s+[0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	m := viewBox.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[1]), 64)
	h, errH := strconv.ParseFloat(string(m[2]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}
	root := fmt.Appendf(nil, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return rootTag.ReplaceAllLiteral(svg, root)
}
