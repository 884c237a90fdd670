package gen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Prune removes the builder files in dirs that are not listed in keep.
// Only files named with the file suffix and carrying the generated header
// are candidates, so hand-written files are never touched. It returns the
// removed paths.
//
// Prune is meant to run after a generation pass over whole packages: a
// builder file left without its records no longer compiles.
func (c *Config) Prune(dirs, keep []string) ([]string, error) {
	suffix, header := c.FileSuffix, c.Header
	if suffix == "" {
		suffix = DefaultFileSuffix
	}
	if header == "" {
		header = DefaultHeader
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var removed []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return removed, NewGenerationError("prune", dir, "", err)
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) || slices.Contains(keep, path) {
				continue
			}
			if !generatedBy(path, header) {
				continue
			}
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return removed, NewGenerationError("prune", path, "", err)
			}
			logger.Debug("removed stale builder file", slog.String("file", path))
			removed = append(removed, path)
		}
	}
	return removed, nil
}

// generatedBy reports whether the Go file at path is marked as generated
// and its header comment holds header.
func generatedBy(path, header string) bool {
	f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil || !ast.IsGenerated(f) {
		return false
	}
	for _, cg := range f.Comments {
		if cg.Pos() < f.Package && strings.Contains(cg.Text(), header) {
			return true
		}
	}
	return false
}
