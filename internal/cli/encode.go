package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shannonfano/pkg/fano"
	sfio "github.com/matzehuels/shannonfano/pkg/io"
)

// encodeCommand creates the encode command, which applies a saved code
// table to a text.
func (c *CLI) encodeCommand() *cobra.Command {
	var (
		file  string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "encode TEXT -f codes.json",
		Short: "Encode text with a saved code table",
		Long: `Encode text with a code table written by "codes -o" or "text -o".

Characters are upper-cased before lookup. Characters without a code are
skipped.

Example:
  shannonfano text "abracadabra" -o codes.json
  shannonfano encode "cadabra" -f codes.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("no code table: pass --file")
			}
			codes, err := sfio.ImportCodes(file)
			if err != nil {
				return err
			}

			encoded := fano.Encode(args[0], codes)
			if quiet {
				fmt.Println(encoded)
				return nil
			}
			fmt.Println(StyleCode.Render(encoded))
			printDetail("%d bits", len(encoded))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "code table (JSON)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the bit string")
	return cmd
}
