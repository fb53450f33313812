package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/fano"
	sfio "github.com/matzehuels/shannonfano/pkg/io"
	"github.com/matzehuels/shannonfano/pkg/pipeline"
)

// resultFlags are the computation and display flags shared by codes and
// text.
type resultFlags struct {
	places      int
	parallel    bool
	lenient     bool
	steps       bool
	sort        bool
	json        bool
	interactive bool
	noCache     bool
	refresh     bool
	output      string
}

func (f *resultFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.places, "places", 0, "decimal places for probabilities and metrics (default from config, 3)")
	cmd.Flags().BoolVar(&f.parallel, "parallel", false, "evaluate large branches concurrently")
	cmd.Flags().BoolVar(&f.lenient, "lenient", false, "clamp degenerate splits instead of failing")
	cmd.Flags().BoolVar(&f.steps, "steps", false, "show every split of the partition")
	cmd.Flags().BoolVar(&f.sort, "sort", false, "list symbols by descending probability")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "browse the codes in a terminal viewer")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the result as JSON to this file")
}

// options merges config defaults with the flags the user set.
func (c *CLI) options(cmd *cobra.Command, f resultFlags) pipeline.Options {
	opts := c.Config.Options()
	flags := cmd.Flags()
	if flags.Changed("places") {
		opts.Places = f.places
	}
	if flags.Changed("parallel") {
		opts.Parallel = f.parallel
	}
	if flags.Changed("lenient") {
		opts.Lenient = f.lenient
	}
	opts.Steps = f.steps
	opts.Refresh = f.refresh
	opts.Logger = loggerFromContext(cmd.Context())
	return opts
}

// codesCommand creates the codes command for explicit alphabets.
func (c *CLI) codesCommand() *cobra.Command {
	var (
		flags resultFlags
		file  string
	)

	cmd := &cobra.Command{
		Use:   "codes [NAME=PROB ...]",
		Short: "Compute Shannon–Fano codes for an alphabet",
		Long: `Compute Shannon–Fano codes for an alphabet.

Symbols are given as NAME=PROBABILITY arguments, where the probability is a
decimal or a fraction, or read from a JSON or TOML alphabet file with -f.
Probabilities must sum to 1 within 0.005. Symbols with probability 0 are
accepted but receive no code.

Examples:
  shannonfano codes A=0.5 B=0.25 C=0.25
  shannonfano codes A=1/2 B=1/4 C=1/4 --steps
  shannonfano codes -f alphabet.toml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols, err := loadSymbols(file, args)
			if err != nil {
				return err
			}
			return c.runCodes(cmd.Context(), symbols, c.options(cmd, flags), flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "alphabet file (.json or .toml)")
	return cmd
}

// loadSymbols reads the alphabet from file and/or NAME=PROB arguments.
func loadSymbols(file string, args []string) ([]alphabet.Symbol, error) {
	if file == "" && len(args) == 0 {
		return nil, fmt.Errorf("no symbols: pass NAME=PROB arguments or --file")
	}

	var symbols []alphabet.Symbol
	if file != "" {
		s, err := sfio.ImportAlphabet(file)
		if err != nil {
			return nil, err
		}
		symbols = s
	}
	parsed, err := alphabet.ParseAll(args)
	if err != nil {
		return nil, err
	}
	return append(symbols, parsed...), nil
}

func (c *CLI) runCodes(ctx context.Context, symbols []alphabet.Symbol, opts pipeline.Options, flags resultFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Codes(ctx, symbols, opts)
	if err != nil {
		return err
	}
	return c.present(res, opts.Places, flags)
}

// present writes a result in the format the flags select.
func (c *CLI) present(res *pipeline.Result, places int, flags resultFlags) error {
	if flags.output != "" {
		if err := sfio.ExportJSON(res, flags.output); err != nil {
			return err
		}
	}

	codes := displayOrder(res.Codes, flags.sort)

	switch {
	case flags.json:
		return sfio.WriteJSON(res, os.Stdout)
	case flags.interactive:
		return runViewer(codes, res.Metrics, places)
	}

	fmt.Println(renderCodeTable(codes, places))
	fmt.Println(renderMetrics(res.Metrics))
	if flags.steps && len(res.Steps) > 0 {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Partition"))
		fmt.Println(renderSteps(res.Steps, places))
	}
	if res.Encoded != "" {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Encoded") + " " + StyleDim.Render(fmt.Sprintf("(%d bits)", len(res.Encoded))))
		fmt.Println(StyleCode.Render(res.Encoded))
	}
	fmt.Println(renderStats(res))
	if flags.output != "" {
		printFile(flags.output)
	}
	return nil
}

// displayOrder returns codes in partition order, or by descending
// probability when sorted is set. The result's slice is not modified.
func displayOrder(codes []fano.Coded, sorted bool) []fano.Coded {
	if !sorted {
		return codes
	}
	out := slices.Clone(codes)
	alphabet.SortByProbability(out)
	return out
}
