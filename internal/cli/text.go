package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shannonfano/pkg/pipeline"
)

// textCommand creates the text command for frequency-derived codes.
func (c *CLI) textCommand() *cobra.Command {
	var (
		flags  resultFlags
		gap    bool
		encode bool
		file   string
	)

	cmd := &cobra.Command{
		Use:   "text [TEXT]",
		Short: "Compute Shannon–Fano codes from character frequencies",
		Long: `Compute Shannon–Fano codes from the character frequencies of a text.

Letters are counted case-insensitively. Only Latin and Cyrillic letters,
digits and spaces are accepted. Spaces are ignored unless --gap is set, in
which case they are coded as the gap symbol.

The text is the argument, or read from --file ("-" for stdin).

Examples:
  shannonfano text "abracadabra"
  shannonfano text "to be or not to be" --gap --encode
  cat message.txt | shannonfano text -f - --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(file, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("gap") {
				gap = c.Config.Defaults.ConsiderGap
			}
			return c.runText(cmd.Context(), text, gap, encode, c.options(cmd, flags), flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&gap, "gap", false, "code spaces as the gap symbol")
	cmd.Flags().BoolVar(&encode, "encode", false, "print the text encoded with its codes")
	cmd.Flags().StringVarP(&file, "file", "f", "", `read the text from a file ("-" for stdin)`)
	return cmd
}

// readText returns the text argument or the contents of file.
func readText(file string, args []string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", fmt.Errorf("pass the text as an argument or with --file, not both")
	case file == "-":
		data, err := io.ReadAll(os.Stdin)
		return strings.TrimRight(string(data), "\r\n"), err
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case len(args) == 1:
		return args[0], nil
	}
	return "", fmt.Errorf("no text: pass TEXT or --file")
}

func (c *CLI) runText(ctx context.Context, text string, gap, encode bool, opts pipeline.Options, flags resultFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Text(ctx, text, gap, opts)
	if err != nil {
		return err
	}
	if !encode && !flags.json {
		res.Encoded = ""
	}
	return c.present(res, opts.Places, flags)
}
