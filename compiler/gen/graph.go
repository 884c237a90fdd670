package gen

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/syssam/buildergen/compiler/load"
)

type (
	// Generator is the interface that wraps the Generate method.
	Generator interface {
		// Generate generates the builders of the given graph.
		Generate(*Graph) error
	}

	// The GenerateFunc type is an adapter to allow the use of ordinary
	// function as Generator. If f is a function with the appropriate signature,
	// GenerateFunc(f) is a Generator that calls f.
	GenerateFunc func(*Graph) error

	// Hook defines the "generate middleware". A function that gets a Generator
	// and returns a Generator. For example:
	//
	//	hook := func(next gen.Generator) gen.Generator {
	//		return gen.GenerateFunc(func(g *Graph) error {
	//			fmt.Println("Graph:", g)
	//			return next.Generate(g)
	//		})
	//	}
	//
	Hook func(Generator) Generator

	// Graph holds the record types of one generation run.
	Graph struct {
		*Config
		// Nodes are the classified records, in load order.
		Nodes []*Type
	}

	// File groups the types rendered into one generated file.
	File struct {
		// Source is the path of the file declaring the records.
		Source string
		// Path is the path of the generated file.
		Path string
		// Types are the records of the source file, in declaration order.
		Types []*Type
	}
)

// Generate calls f(g).
func (f GenerateFunc) Generate(g *Graph) error {
	return f(g)
}

// NewGraph creates a new Graph for the code generation from the given
// records. Declaration errors of all records are reported together.
func NewGraph(c *Config, records ...*load.Record) (*Graph, error) {
	if c == nil {
		c = &Config{}
	}
	if err := c.defaults(); err != nil {
		return nil, err
	}
	g := &Graph{Config: c}
	var errs []error
	for _, r := range records {
		t, err := NewType(c, r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		g.Nodes = append(g.Nodes, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

// Gen generates the builders of the graph. The default generator writes
// one file next to each source file; hooks wrap it from last to first.
func (g *Graph) Gen() error {
	var gen Generator = GenerateFunc(generate)
	if g.Generator != nil {
		gen = g.Generator
	}
	for i := len(g.Hooks) - 1; i >= 0; i-- {
		gen = g.Hooks[i](gen)
	}
	return gen.Generate(g)
}

// generate is the default Generator.
func generate(g *Graph) error {
	return NewJenniferGenerator(g).Generate(context.Background())
}

// Files groups the nodes by source file, in order of first appearance.
func (g *Graph) Files() []*File {
	var (
		files []*File
		index = make(map[string]*File)
	)
	for _, t := range g.Nodes {
		src := t.File()
		f, ok := index[src]
		if !ok {
			f = &File{Source: src, Path: g.OutputPath(src)}
			index[src] = f
			files = append(files, f)
		}
		f.Types = append(f.Types, t)
	}
	return files
}

// OutputPath returns the path of the file generated for the given source.
func (g *Graph) OutputPath(src string) string {
	base := strings.TrimSuffix(filepath.Base(src), ".go")
	return filepath.Join(filepath.Dir(src), base+g.FileSuffix)
}
