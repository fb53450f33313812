// Package render provides output rendering for code trees.
//
// The [codetree] subpackage draws the binary tree of a code table with
// Graphviz. This package holds the format conversion shared by renderers:
// [ToPDF] and [ToPNG] turn any SVG into another format using the external
// rsvg-convert tool (from librsvg).
//
//	dot := codetree.ToDOT(fano.Tree(codes), codetree.Options{})
//	svg, err := codetree.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [codetree]: github.com/matzehuels/shannonfano/pkg/render/codetree
package render
