package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/pipeline"
	"github.com/matzehuels/shannonfano/pkg/render"
	"github.com/matzehuels/shannonfano/pkg/render/codetree"
)

// Tree output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

type treeFlags struct {
	file      string
	text      string
	gap       bool
	places    int
	hideProbs bool
	scale     float64
	output    string
	noCache   bool
}

// treeCommand creates the tree command, which draws the code tree.
func (c *CLI) treeCommand() *cobra.Command {
	var flags treeFlags

	cmd := &cobra.Command{
		Use:   "tree [NAME=PROB ...]",
		Short: "Draw the code tree",
		Long: `Draw the binary code tree of an alphabet or text.

Without --output the tree is printed as Graphviz DOT. The output format is
taken from the file extension: .dot, .svg, .png or .pdf. PNG and PDF need
rsvg-convert on the PATH.

Examples:
  shannonfano tree A=0.5 B=0.25 C=0.25 -o tree.svg
  shannonfano tree --text "abracadabra" -o tree.png
  shannonfano tree -f alphabet.json | dot -Tsvg > tree.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("gap") {
				flags.gap = c.Config.Defaults.ConsiderGap
			}
			return c.runTree(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "alphabet file (.json or .toml)")
	cmd.Flags().StringVar(&flags.text, "text", "", "derive the alphabet from this text")
	cmd.Flags().BoolVar(&flags.gap, "gap", false, "code spaces of --text as the gap symbol")
	cmd.Flags().IntVar(&flags.places, "places", 0, "decimal places for probabilities in labels")
	cmd.Flags().BoolVar(&flags.hideProbs, "no-probabilities", false, "omit probabilities from labels")
	cmd.Flags().Float64Var(&flags.scale, "scale", 2, "PNG scale factor")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (.dot, .svg, .png, .pdf)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, args []string, flags treeFlags) error {
	ctx := cmd.Context()

	format := formatDOT
	if flags.output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(flags.output)), ".")
		switch format {
		case formatDOT, formatSVG, formatPNG, formatPDF:
		default:
			return fmt.Errorf("unsupported output format %q (want .dot, .svg, .png or .pdf)", filepath.Ext(flags.output))
		}
	}

	opts := c.Config.Options()
	if cmd.Flags().Changed("places") {
		opts.Places = flags.places
	}
	opts.Logger = loggerFromContext(ctx)

	res, err := c.treeResult(ctx, args, flags, opts)
	if err != nil {
		return err
	}

	dot := codetree.ToDOT(fano.Tree(res.Codes), codetree.Options{
		Places:            opts.Places,
		HideProbabilities: flags.hideProbs,
	})
	if flags.output == "" {
		fmt.Print(dot)
		return nil
	}

	prog := newProgress(loggerFromContext(ctx))
	data, err := renderTree(ctx, dot, format, flags.scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	prog.done("rendered code tree", "format", format)
	printFile(flags.output)
	return nil
}

func (c *CLI) treeResult(ctx context.Context, args []string, flags treeFlags, opts pipeline.Options) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if flags.text != "" {
		if flags.file != "" || len(args) > 0 {
			return nil, fmt.Errorf("--text cannot be combined with symbols")
		}
		return runner.Text(ctx, flags.text, flags.gap, opts)
	}

	symbols, err := loadSymbols(flags.file, args)
	if err != nil {
		return nil, err
	}
	return runner.Codes(ctx, symbols, opts)
}

// renderTree converts DOT source to the requested format.
func renderTree(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	if format == formatDOT {
		return []byte(dot), nil
	}

	sp := newSpinner(ctx, os.Stderr, "Rendering code tree...")
	sp.Start()
	defer sp.Stop()

	svg, err := codetree.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	if format == formatSVG {
		return svg, nil
	}
	return render.Convert(ctx, svg, render.Format(format), scale)
}
