package cmd

import (
	"io"
	"log/slog"

	"github.com/logicossoftware/go-hrc/internal/config"
	"github.com/logicossoftware/go-hrc/internal/version"
	"github.com/spf13/cobra"
)

// globals carries the persistent flags and the state derived from them.
// It is filled in by the root command's PersistentPreRunE.
type globals struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func (g *globals) setup(stderr io.Writer) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	g.cfg = cfg
	g.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// NewRootCmd creates and returns the root cobra command for the hrc CLI.
// It sets up all subcommands, command groups and the persistent flags.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "hrc",
		Short: "hrc - compress human-readable documents into .hrc containers",
		Long: `hrc compresses JSON, JSONL and YAML documents into .hrc containers and
restores them again.

A container starts with a 10-byte ASCII header naming the document format
and the compression method, followed by the compressed canonical text.

Use subcommands to perform different operations:
  - compress: Compress a document next to itself as <stem>.hrc
  - decompress: Restore the document stored in a container
  - inspect: Show the header and sizes of a container`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "",
		"path to a YAML config file (default $"+config.EnvVar+")")
	rootCmd.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "log every pipeline stage to stderr")

	groupCodec := "codec"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupCodec,
		Title: "Container Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	compressCmd := newCompressCmd(g)
	decompressCmd := newDecompressCmd(g)
	inspectCmd := newInspectCmd(g)

	compressCmd.GroupID = groupCodec
	decompressCmd.GroupID = groupCodec
	inspectCmd.GroupID = groupUtilities

	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(decompressCmd)
	rootCmd.AddCommand(inspectCmd)

	return rootCmd
}
