// Package main provides the CLI entrypoint for autojson-generator.
//
// autojson-generator reads value-type schemas, from Go source marked with
// //autojson:deserialize or from a YAML config, and writes two artifacts per
// type: a fluent builder and a streaming JSON decoder.
//
// Commands: analyze | gen | check | watch
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// options holds the global flags.
type options struct {
	configPath string
	outDir     string
	workDir    string
	verbose    bool

	logger *zap.Logger
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "autojson-generator",
		Short: "Generate builders and streaming JSON decoders for value types",
		Long: `autojson-generator discovers value types, either marked in Go source with

	//autojson:deserialize

or declared in a YAML config, and writes for each a fluent builder
(<type>_builder.go) and a streaming JSON decoder (<type>_decoder.go) next to it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}

			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			opts.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	root.SetOut(stdout)

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVarP(&opts.outDir, "out", "o", "", "Write artifacts here instead of next to each type")
	root.PersistentFlags().StringVarP(&opts.workDir, "dir", "C", "", "Directory package patterns are resolved in (default: current)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newGenCmd(opts),
		newCheckCmd(opts),
		newWatchCmd(opts),
	)

	return root
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
