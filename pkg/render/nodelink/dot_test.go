package nodelink

import (
	"strings"
	"testing"

	"github.com/axiome/firstprinciples/pkg/adjlist"
)

func TestToDOT_Directed(t *testing.T) {
	g := adjlist.Parse("a: b\nb: a")

	dot := ToDOT(g, Options{Directed: true})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"a" -> "b"`) {
		t.Error("ToDOT() output missing edge a -> b")
	}
	if !strings.Contains(dot, `"b" -> "a"`) {
		t.Error("ToDOT() output missing edge b -> a")
	}
}

func TestToDOT_UndirectedDedupes(t *testing.T) {
	g := adjlist.Parse("b: a\na: b")

	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if got := strings.Count(dot, " -- "); got != 1 {
		t.Errorf("edge count = %d, want 1\n%s", got, dot)
	}
	if !strings.Contains(dot, `"a" -- "b"`) {
		t.Error("ToDOT() undirected edge should be sorted")
	}
}

func TestToDOT_UndeclaredNeighbor(t *testing.T) {
	g := adjlist.Parse("a: b, c\nb: a")

	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, `"c" [label="c", style="rounded,filled,dashed"`) {
		t.Errorf("ToDOT() should mark undeclared neighbor c\n%s", dot)
	}
	if strings.Contains(dot, `"b" [label="b", style`) {
		t.Error("declared vertex b should use the default style")
	}
}

func TestToDOT_Quoting(t *testing.T) {
	g := adjlist.Parse(`say "hi": there`)
	dot := ToDOT(g, Options{Directed: true})
	if !strings.Contains(dot, `"say \"hi\"" -> "there"`) {
		t.Errorf("ToDOT() should escape quotes\n%s", dot)
	}
}

func TestUndeclared_Order(t *testing.T) {
	g := adjlist.Parse("a: z, y, z\nb: x, a")
	got := strings.Join(undeclared(g), ",")
	if got != "z,y,x" {
		t.Errorf("undeclared() = %s, want z,y,x", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 10.00 20.00" width="10" height="20"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() should leave SVG without viewBox untouched")
	}
}

func TestToDOT_RankDir(t *testing.T) {
	g := adjlist.Parse("a: b")
	if dot := ToDOT(g, Options{}); !strings.Contains(dot, "rankdir=TB;") {
		t.Errorf("default rankdir should be TB\n%s", dot)
	}
	if dot := ToDOT(g, Options{RankDir: "LR"}); !strings.Contains(dot, "rankdir=LR;") {
		t.Errorf("RankDir option ignored\n%s", dot)
	}
}

func TestDotQuote(t *testing.T) {
	tests := map[string]string{
		"plain":      `"plain"`,
		`say "hi"`:   `"say \"hi\""`,
		`C:\tmp`:     `"C:\\tmp"`,
		"bell\x01":   "\"bell\x01\"",
		"nbsp\u00a0": "\"nbsp\u00a0\"",
		"café":       `"café"`,
	}
	for in, want := range tests {
		if got := dotQuote(in); got != want {
			t.Errorf("dotQuote(%q) = %s, want %s", in, got, want)
		}
	}

	dot := ToDOT(adjlist.Parse("a\x01: é"), Options{Directed: true})
	if strings.Contains(dot, `\x01`) || strings.Contains(dot, `\u00e9`) {
		t.Errorf("ToDOT() should not emit Go escapes\n%s", dot)
	}
}
