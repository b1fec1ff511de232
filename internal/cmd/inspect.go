package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/logicossoftware/go-hrc"
	"github.com/spf13/cobra"
)

type inspectReport struct {
	Path          string `json:"path"`
	Format        string `json:"format"`
	Compression   string `json:"compression"`
	FileSize      int64  `json:"file_size"`
	PayloadSize   int    `json:"payload_size"`
	CanonicalSize int    `json:"canonical_size"`
}

// newInspectCmd creates the inspect subcommand.
func newInspectCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the header and sizes of a .hrc container",
		Long: `Inspect reads the container header and decompresses the payload to
verify it, without writing anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := inspectFile(args[0], append(g.cfg.ReadOptions(), hrc.WithReadLogger(g.logger)))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintf(out, "File:        %s\n", report.Path)
			fmt.Fprintf(out, "Format:      %s\n", report.Format)
			fmt.Fprintf(out, "Compression: %s\n", report.Compression)
			fmt.Fprintf(out, "File size:   %d bytes\n", report.FileSize)
			fmt.Fprintf(out, "Payload:     %d bytes\n", report.PayloadSize)
			fmt.Fprintf(out, "Canonical:   %d bytes\n", report.CanonicalSize)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func inspectFile(path string, opts []hrc.ReadOption) (inspectReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return inspectReport{}, fmt.Errorf("%w: %w", hrc.ErrIO, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return inspectReport{}, fmt.Errorf("%w: %w", hrc.ErrIO, err)
	}
	info, err := hrc.Inspect(f, opts...)
	if err != nil {
		return inspectReport{}, fmt.Errorf("%s: %w", path, err)
	}
	return inspectReport{
		Path:          path,
		Format:        info.Header.Format.String(),
		Compression:   info.Header.Compression.String(),
		FileSize:      st.Size(),
		PayloadSize:   info.PayloadSize,
		CanonicalSize: info.CanonicalSize,
	}, nil
}
