package cmd

import (
	"fmt"
	"strings"

	"github.com/logicossoftware/go-hrc"
	"github.com/spf13/cobra"
)

func compressionNames() string {
	var names []string
	for _, c := range hrc.Compressions() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

// newCompressCmd creates the compress subcommand.
func newCompressCmd(g *globals) *cobra.Command {
	var (
		method      string
		lenientJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compress FILE",
		Short: "Compress a JSON, JSONL or YAML file into a .hrc container",
		Long: `Compress FILE into <stem>.hrc in the same directory.

The format is chosen by the file extension (.json, .jsonl, .yaml, .yml).
The method comes from --method, then the config file, then zlib.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.cfg.WriteOptions()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("method") {
				comp, err := hrc.ParseCompression(method)
				if err != nil {
					return err
				}
				opts = append(opts, hrc.WithCompression(comp))
			}
			if cmd.Flags().Changed("lenient-json") {
				opts = append(opts, hrc.WithLenientJSON(lenientJSON))
			}
			opts = append(opts, hrc.WithLogger(g.logger))

			res, err := hrc.CompressFile(args[0], opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File compressed successfully! New file: %s\n", res.Path)
			fmt.Fprintf(out, "%s, %s: %d -> %d bytes, saved %d bytes (%.1f%%)\n",
				res.Format, res.Compression, res.OriginalSize, res.CompressedSize,
				res.Saved(), res.SavedPercent())
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", hrc.DefaultCompression.String(),
		"compression method: "+compressionNames())
	cmd.Flags().BoolVar(&lenientJSON, "lenient-json", false, "allow comments and trailing commas in .json sources")

	return cmd
}
