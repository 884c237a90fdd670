package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/buildergen/compiler/gen"
	"github.com/syssam/buildergen/compiler/load"
)

// defaultConfigFile is read from the working directory when --config is
// not given.
const defaultConfigFile = ".buildergen.yaml"

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// settings are the resolved generation settings of one invocation.
type settings struct {
	load     *load.Config
	opts     []gen.Option
	patterns []string
	dryRun   bool
	watch    bool
	logger   *slog.Logger
}

func generateExecution(cmd *cobra.Command, args []string) error {
	s, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	if err := generate(cmd.Context(), cmd, s); err != nil {
		if !s.watch {
			return err
		}
		printError(cmd.ErrOrStderr(), err)
	}
	if s.watch {
		return watch(cmd.Context(), cmd, s)
	}
	return nil
}

// resolve merges the configuration file with the flags. Flags that were set
// explicitly win over file values.
func resolve(cmd *cobra.Command, args []string) (*settings, error) {
	flags := cmd.Flags()
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	s := &settings{
		load:     &load.Config{},
		patterns: args,
		logger:   slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})),
	}
	if s.dryRun, err = flags.GetBool("dry-run"); err != nil {
		return nil, err
	}
	if s.watch, err = flags.GetBool("watch"); err != nil {
		return nil, err
	}

	fc, err := readConfig(cmd)
	if err != nil {
		return nil, err
	}
	if fc != nil {
		s.opts = append(s.opts, fc.Options()...)
		s.load.Types = fc.Types
		s.load.Directive = fc.Directive
	}

	if flags.Changed("type") {
		if s.load.Types, err = flags.GetStringSlice("type"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("tags") {
		tags, err := flags.GetString("tags")
		if err != nil {
			return nil, err
		}
		s.load.BuildFlags = []string{"-tags=" + tags}
	}
	for name, option := range map[string]func(string) gen.Option{
		"suffix":      gen.WithSuffix,
		"header":      gen.WithHeader,
		"file-suffix": gen.WithFileSuffix,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		s.opts = append(s.opts, option(v))
	}
	if flags.Changed("feature") {
		names, err := flags.GetStringSlice("feature")
		if err != nil {
			return nil, err
		}
		s.opts = append(s.opts, gen.WithFeatureNames(names...))
	}
	if flags.Changed("workers") {
		n, err := flags.GetInt("workers")
		if err != nil {
			return nil, err
		}
		s.opts = append(s.opts, gen.WithWorkers(n))
	}
	s.opts = append(s.opts, gen.WithLogger(s.logger))
	return s, nil
}

// readConfig reads the file named by --config, or the default file when it
// exists. It returns nil when there is no file to read.
func readConfig(cmd *cobra.Command) (*gen.FileConfig, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	fc, err := gen.ReadConfigFile(path)
	switch {
	case err == nil:
		return fc, nil
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return nil, nil
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
}

// generate runs one load and generation pass. In watch mode, builder files
// whose source lost its last record are removed afterwards.
func generate(ctx context.Context, cmd *cobra.Command, s *settings) error {
	records, err := s.load.Load(ctx, s.patterns...)
	if err != nil {
		return err
	}
	var outputs []string
	if len(records) == 0 {
		warnColor.Fprintln(cmd.ErrOrStderr(), "no annotated types found")
	} else if outputs, err = s.run(ctx, cmd, records); err != nil {
		return err
	}
	if !s.watch || s.dryRun || len(s.load.Types) > 0 {
		return nil
	}
	return s.prune(ctx, cmd, outputs)
}

// run generates the builders of the records and returns the paths of the
// generated files.
func (s *settings) run(ctx context.Context, cmd *cobra.Command, records []*load.Record) ([]string, error) {
	var (
		files  = gen.NewFileWriter(s.logger)
		writer gen.Writer = files
		paths  []string
	)
	if s.dryRun {
		writer = gen.NewStreamWriter(cmd.OutOrStdout())
	}
	opts := append(slices.Clip(s.opts), gen.WithGenerator(gen.GenerateFunc(func(g *gen.Graph) error {
		for _, f := range g.Files() {
			paths = append(paths, f.Path)
		}
		return gen.NewJenniferGenerator(g).WithWriter(writer).Generate(ctx)
	})))
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	graph, err := gen.NewGraph(cfg, records...)
	if err != nil {
		return nil, err
	}
	if err := graph.Gen(); err != nil {
		return nil, err
	}
	if s.dryRun {
		return paths, nil
	}
	m := files.Metrics()
	successColor.Fprintf(cmd.ErrOrStderr(), "generated %d builders in %d files (%d written, %d unchanged)\n",
		len(graph.Nodes), len(paths), m.FilesGenerated, m.FilesUnchanged)
	s.logger.Debug("writer metrics",
		slog.Int64("bytes", m.TotalBytes),
		slog.Duration("format", time.Duration(m.FormatTime)),
		slog.Duration("write", time.Duration(m.WriteTime)),
	)
	return paths, nil
}

// prune removes the stale builder files of the loaded packages.
func (s *settings) prune(ctx context.Context, cmd *cobra.Command, keep []string) error {
	cfg, err := gen.NewConfig(s.opts...)
	if err != nil {
		return err
	}
	dirs, err := s.load.PackageDirs(ctx, s.patterns...)
	if err != nil {
		return err
	}
	removed, err := cfg.Prune(dirs, keep)
	for _, path := range removed {
		warnColor.Fprintf(cmd.ErrOrStderr(), "removed %s\n", path)
	}
	return err
}

// printError prints err, one joined error per line.
func printError(w io.Writer, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		errorColor.Fprint(w, "error: ")
		fmt.Fprintln(w, line)
	}
}
