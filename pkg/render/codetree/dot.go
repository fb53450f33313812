package codetree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/metrics"
)

// Options configures code tree rendering.
type Options struct {
	// Places rounds probabilities in labels; 0 means metrics.DefaultPlaces.
	Places int

	// HideProbabilities drops probabilities from all labels.
	HideProbabilities bool
}

// ToDOT converts a code tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(root *fano.Node, opts Options) string {
	if opts.Places == 0 {
		opts.Places = metrics.DefaultPlaces
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("\n")

	if root == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	root.Walk(func(n *fano.Node) {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n), strings.Join(attrs(n, opts), ", "))
	})
	buf.WriteString("\n")
	root.Walk(func(n *fano.Node) {
		for _, child := range []*fano.Node{n.One, n.Zero} {
			if child == nil {
				continue
			}
			bit := child.Code[len(child.Code)-1:]
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", nodeID(n), nodeID(child), bit)
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(n *fano.Node) string {
	return "n" + n.Code
}

func attrs(n *fano.Node, opts Options) []string {
	if n.Symbol == nil {
		label := ""
		if !opts.HideProbabilities {
			label = strconv.FormatFloat(metrics.Round(n.Probability, opts.Places), 'f', -1, 64)
		}
		return []string{fmt.Sprintf("label=%q", label), "shape=point", "width=0.15"}
	}

	parts := []string{displayName(n.Symbol.Name), n.Code}
	if !opts.HideProbabilities {
		parts = append(parts, strconv.FormatFloat(metrics.Round(n.Probability, opts.Places), 'f', -1, 64))
	}
	return []string{
		fmt.Sprintf("label=%q", strings.Join(parts, "\n")),
		"shape=box",
		"style=\"rounded,filled\"",
		"fillcolor=\"#e8f0fe\"",
	}
}

// displayName makes whitespace-only names visible.
func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return strings.Repeat("␣", len([]rune(name)))
	}
	return name
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a
// zero origin. Graphviz emits pt units and a translated viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
