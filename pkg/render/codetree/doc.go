// Package codetree renders a Fano code table as a binary tree diagram.
//
// Every code is a path from the root: a 1 follows the left edge and a 0
// the right edge, so the high group of each split is drawn first, the way
// the partition visited it. Leaves are the coded symbols; inner nodes are
// splits and carry the probability mass below them.
//
// # Usage
//
//	root := fano.Tree(res.Codes)
//	dot := codetree.ToDOT(root, codetree.Options{Places: 3})
//	svg, err := codetree.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package codetree
