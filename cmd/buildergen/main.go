// Command buildergen generates builders for annotated Go structs.
//
//	//go:generate go run github.com/syssam/buildergen/cmd/buildergen
//
// Without arguments the package in the current directory is processed.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// version is set by the release build.
var version = "devel"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildergen [flags] [packages]",
		Short: "Generate builders for annotated Go structs",
		Long: `buildergen writes a <file>_builder.go next to every source file declaring
structs marked with //buildergen:builder (or selected with --type). Each
builder has one chained setter per field and a Build method failing on the
first required field that was not set.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          generateExecution,
	}

	flags := cmd.Flags()
	flags.StringSlice("type", nil, "generate builders for the named types instead of annotated ones")
	flags.String("suffix", "", "suffix appended to record names (default \"Builder\")")
	flags.String("header", "", "header comment of generated files")
	flags.String("file-suffix", "", "suffix of generated file names (default \"_builder.go\")")
	flags.StringSlice("feature", nil, "enable a codegen feature (constructor, buildx, reset)")
	flags.String("config", "", "path of the configuration file (default .buildergen.yaml if present)")
	flags.Int("workers", 0, "number of files rendered concurrently (default GOMAXPROCS)")
	flags.String("tags", "", "comma separated build tags used to load packages")
	flags.Bool("dry-run", false, "print generated files to stdout instead of writing them")
	flags.Bool("watch", false, "regenerate when source files change")
	flags.BoolP("verbose", "v", false, "log debug information")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(cmd.ErrOrStderr(), err)
		stop()
		os.Exit(1)
	}
}
