package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"autojson-generator/internal/analyze"
	"autojson-generator/internal/config"
	"autojson-generator/internal/diagnostic"
	"autojson-generator/internal/driver"
	"autojson-generator/internal/sink"
	"autojson-generator/internal/watch"
)

// session is the state shared by the generation commands.
type session struct {
	opts     *options
	file     *config.File
	provider driver.SchemaProvider
	diags    *diagnostic.Diagnostics
}

// newSession loads the config and builds the schema provider. Positional
// arguments replace the configured package patterns.
func newSession(opts *options, args []string) (*session, error) {
	file := config.Default()
	if opts.configPath != "" {
		var err error

		file, err = config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	patterns := []string(file.Packages)
	if len(args) > 0 {
		patterns = args
	}

	workDir := opts.workDir
	if workDir == "" && opts.configPath != "" && len(args) == 0 {
		// Patterns from the file are relative to it.
		workDir = filepath.Dir(opts.configPath)
	}

	if len(patterns) == 0 && len(file.Schemas) == 0 {
		return nil, errors.New("nothing to do: give package patterns or a config with packages or schemas")
	}

	return &session{
		opts: opts,
		file: file,
		provider: driver.Providers{
			analyze.Provider{Dir: workDir, Patterns: patterns, Logger: opts.logger},
			config.Provider{File: file},
		},
		diags: &diagnostic.Diagnostics{},
	}, nil
}

func (s *session) outputDir() string {
	if s.opts.outDir != "" {
		return s.opts.outDir
	}

	return s.file.Output.Dir
}

func (s *session) driver(out sink.CodeSink) *driver.Driver {
	cfg := driver.Config{
		ValuePrefix:   s.file.ValuePrefix,
		RuntimeImport: s.file.RuntimeImport,
		BuilderSuffix: s.file.Output.BuilderSuffix,
		DecoderSuffix: s.file.Output.DecoderSuffix,
	}

	reporter := diagnostic.Tee{s.diags, diagnostic.LogReporter{Logger: s.opts.logger}}

	return driver.New(cfg, out, reporter, s.opts.logger)
}

// pass runs one generation pass and returns an error when any schema failed.
func (s *session) pass(ctx context.Context, out sink.CodeSink) ([]driver.EmissionResult, error) {
	results, err := s.driver(out).Pass(ctx, s.provider)
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d schema(s) failed", failed, len(results))
	}

	return results, nil
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		dump   bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "analyze [packages...]",
		Short: "Print the discovered schemas as a YAML config",
		Long: `Print the discovered schemas as YAML, in the config file's schemas format,
so they can be reviewed or pinned. With --dump the raw schema model is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts, args)
			if err != nil {
				return err
			}

			schemas, err := s.provider.Discover(cmd.Context())
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(cmd.OutOrStdout(), schemas)
				return nil
			}

			pinned := *s.file
			pinned.Packages = nil
			pinned.Schemas = nil

			for _, sc := range schemas {
				pinned.Schemas = append(pinned.Schemas, config.FromSchema(sc))
			}

			if output != "" {
				return config.WriteFile(&pinned, output)
			}

			data, err := config.Marshal(&pinned)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the schema model with go-spew")
	cmd.Flags().StringVarP(&output, "write", "w", "", "Write the YAML to a file instead of stdout")

	return cmd
}

func newGenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Generate builders and decoders",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts, args)
			if err != nil {
				return err
			}

			results, err := s.pass(cmd.Context(), sink.FileSink{OutputDir: s.outputDir()})
			printResults(cmd, results)

			return err
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages...]",
		Short: "Verify generated files are up to date",
		Long:  `Regenerate in memory and compare with the files on disk. Exits non-zero when any file is missing or stale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts, args)
			if err != nil {
				return err
			}

			_, err = s.pass(cmd.Context(), sink.CheckSink{OutputDir: s.outputDir()})
			if err != nil {
				for _, d := range s.diags.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), d.String())
				}

				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "generated files are up to date")

			return nil
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	var debounce = watch.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "watch [packages...]",
		Short: "Regenerate whenever sources change",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dirs, err := s.watchDirs(ctx)
			if err != nil {
				return err
			}

			w := &watch.Watcher{
				Dirs:     dirs,
				Debounce: debounce,
				Logger:   opts.logger,
				Ignore:   s.watchIgnore(),
				Pass: func(ctx context.Context) error {
					_, err := s.pass(ctx, sink.FileSink{OutputDir: s.outputDir()})
					return err
				},
			}

			opts.logger.Info("watching for changes", zap.Strings("dirs", dirs))

			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "Quiet period before a pass")

	return cmd
}

// watchIgnore matches the files a pass writes itself, so a pass never
// triggers the next one.
func (s *session) watchIgnore() func(string) bool {
	return watch.IgnoreSuffixes(s.file.Output.BuilderSuffix, s.file.Output.DecoderSuffix, sink.UnformattedSuffix)
}

// watchDirs returns the directories of the discovered schemas plus the
// config file's directory, sorted.
func (s *session) watchDirs(ctx context.Context) ([]string, error) {
	schemas, err := s.provider.Discover(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	add := func(dir string) {
		if dir == "" {
			return
		}

		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}

		seen[dir] = true
	}

	for _, sc := range schemas {
		add(sc.Dir)
	}

	if s.opts.configPath != "" {
		add(filepath.Dir(s.opts.configPath))
	}

	if len(seen) == 0 {
		add(".")
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}

	sort.Strings(dirs)

	return dirs, nil
}

func printResults(cmd *cobra.Command, results []driver.EmissionResult) {
	for _, r := range results {
		if !r.OK() {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", r.Schema, r.Err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d files)\n", r.Schema, len(r.Artifacts))
	}
}

