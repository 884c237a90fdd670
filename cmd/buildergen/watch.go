package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/buildergen/compiler/gen"
)

// debounce groups the bursts of events editors and formatters produce.
const debounce = 200 * time.Millisecond

// watch regenerates the builders whenever a Go source file of the loaded
// packages changes, until the context is canceled.
func watch(ctx context.Context, cmd *cobra.Command, s *settings) error {
	cfg, err := gen.NewConfig(s.opts...)
	if err != nil {
		return err
	}
	suffix := cfg.FileSuffix
	if suffix == "" {
		suffix = gen.DefaultFileSuffix
	}
	dirs, err := s.load.PackageDirs(ctx, s.patterns...)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	s.logger.Info("watching for changes", slog.Int("dirs", len(dirs)))

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !sourceChange(ev, suffix) {
				continue
			}
			s.logger.Debug("source changed", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", slog.Any("error", err))
		case <-timer.C:
			if err := generate(ctx, cmd, s); err != nil {
				printError(cmd.ErrOrStderr(), err)
			}
		}
	}
}

// sourceChange reports whether the event touches a non-generated Go source
// file.
func sourceChange(ev fsnotify.Event, suffix string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	switch {
	case !strings.HasSuffix(name, ".go"):
		return false
	case strings.HasSuffix(name, suffix), strings.HasSuffix(name, "_test.go"):
		return false
	case strings.HasPrefix(name, "."), strings.HasPrefix(name, "_"):
		return false
	}
	return true
}
