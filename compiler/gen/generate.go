package gen

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

// JenniferGenerator renders the builders of a graph with jennifer, one
// file per source file, and hands the output to a Writer.
type JenniferGenerator struct {
	graph   *Graph
	workers int
	writer  Writer
}

// NewJenniferGenerator creates a new Jennifer-based generator writing next
// to the source files.
//
// Example:
//
//	graph, err := gen.NewGraph(cfg, records...)
//	if err != nil {
//		return err
//	}
//	err = gen.NewJenniferGenerator(graph).WithWorkers(4).Generate(ctx)
func NewJenniferGenerator(g *Graph) *JenniferGenerator {
	return &JenniferGenerator{
		graph:   g,
		workers: g.Workers,
		writer:  NewFileWriter(g.Logger),
	}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithWriter sets the destination of the generated files.
func (g *JenniferGenerator) WithWriter(w Writer) *JenniferGenerator {
	if w != nil {
		g.writer = w
	}
	return g
}

// Generate renders all files with parallel execution. The first failure
// cancels the files not yet started.
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, file := range g.graph.Files() {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := g.Render(g.GenFile(file))
			if err != nil {
				return NewGenerationError("render", file.Path, "", err)
			}
			g.graph.Logger.Debug("rendered builders",
				slog.String("file", file.Path),
				slog.Int("types", len(file.Types)),
				slog.Int("bytes", len(src)),
			)
			return g.writer.Write(ctx, file.Path, src)
		})
	}
	return errg.Wait()
}

// GenFile builds the jennifer file holding the builders of the given file.
func (g *JenniferGenerator) GenFile(file *File) *jen.File {
	rec := file.Types[0].Record()
	var f *jen.File
	if rec.PkgPath != "" {
		f = jen.NewFilePathName(rec.PkgPath, rec.PkgName)
	} else {
		f = jen.NewFile(rec.PkgName)
	}
	f.HeaderComment(g.graph.Header)
	f.ImportName(RuntimePkg, "buildergen")
	f.ImportName(OptionPkg, "option")
	for name, path := range rec.Imports {
		if _, ok := reserved[name]; ok && path != RuntimePkg && path != OptionPkg {
			continue
		}
		if rec.Aliased(name) {
			f.ImportAlias(path, name)
		} else {
			f.ImportName(path, name)
		}
	}
	for _, t := range file.Types {
		genBuilder(f, t)
	}
	return f
}

// Render renders and formats the jennifer file.
func (g *JenniferGenerator) Render(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
