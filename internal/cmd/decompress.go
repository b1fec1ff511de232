package cmd

import (
	"fmt"

	"github.com/logicossoftware/go-hrc"
	"github.com/spf13/cobra"
)

// newDecompressCmd creates the decompress subcommand.
func newDecompressCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "decompress FILE",
		Short: "Restore the document stored in a .hrc container",
		Long: `Decompress FILE and write the document next to it.

The output extension comes from the format recorded in the header, so
config.hrc holding YAML is restored as config.yaml. An existing file with
that name is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := append(g.cfg.ReadOptions(), hrc.WithReadLogger(g.logger))
			out, err := hrc.DecompressFile(args[0], opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "File decompressed successfully! New file: %s\n", out)
			return nil
		},
	}
}
