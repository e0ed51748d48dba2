package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mikeartee/kiro-steering-docs/document"
	"github.com/mikeartee/kiro-steering-docs/report"
	"github.com/mikeartee/kiro-steering-docs/validator"
	"github.com/mikeartee/kiro-steering-docs/watch"
)

// runOptions collects the root command's flags.
type runOptions struct {
	schemaPath string
	format     string
	pattern    string
	repoRoot   string
	watch      bool
	logLevel   string
}

// run performs one validation pass over the target and, in watch mode,
// keeps re-validating documents as they change.
func run(ctx context.Context, target string, opts runOptions) error {
	logger := newLogger(opts.logLevel)

	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (expected text or json)", opts.format)
	}

	s, err := loadSchema(opts.schemaPath)
	if err != nil {
		return err
	}

	v := validator.New(s, validator.Options{
		RepoRoot: opts.repoRoot,
		Pattern:  opts.pattern,
		Logger:   logger,
	})

	start := time.Now()
	results, err := v.ValidatePath(target)
	if err != nil {
		return err
	}

	rep := report.New(target, results, time.Since(start))
	if err := writeReport(rep, opts.format); err != nil {
		return err
	}

	if opts.watch {
		return runWatch(ctx, target, v, results, logger)
	}

	if !rep.Passed() {
		return errValidationFailed
	}
	return nil
}

func writeReport(rep *report.Report, format string) error {
	if format == "json" {
		return rep.WriteJSON(os.Stdout)
	}
	return rep.WriteText(os.Stdout)
}

// runWatch re-validates documents as they change until interrupted.
// The exit code reflects the watch loop, not the last validation pass.
func runWatch(ctx context.Context, target string, v *validator.Validator, initial []validator.FileResult, logger *slog.Logger) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("--watch requires a directory target")
	}

	signalCtx, cancel := signalContext(ctx)
	defer cancel()

	w, err := watch.New(watch.Config{}, target, logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Stop() }()

	// Seed content hashes so untouched files don't re-trigger.
	for _, result := range initial {
		content, readErr := os.ReadFile(result.File)
		if readErr != nil {
			continue
		}
		rel, relErr := filepath.Rel(target, result.File)
		if relErr != nil {
			rel = result.File
		}
		w.SetHash(rel, document.ContentHash(content))
	}

	if err := w.Start(signalCtx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for {
		select {
		case <-signalCtx.Done():
			logger.Info("Watch stopped")
			return nil

		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			handleWatchEvent(v, event, logger)
		}
	}
}

func handleWatchEvent(v *validator.Validator, event watch.Event, logger *slog.Logger) {
	if event.Operation == watch.OpDelete {
		logger.Info("Document removed", "path", event.Path)
		return
	}

	result, err := v.ValidateFile(event.AbsPath)
	if err != nil {
		logger.Warn("Failed to re-validate document", "path", event.Path, "error", err)
		return
	}

	if result.Valid() {
		fmt.Printf("✓ %s is valid\n", result.File)
		return
	}

	fmt.Printf("Validation errors in %s:\n", result.File)
	for _, finding := range result.Findings {
		fmt.Printf("  %s\n", finding)
	}
}
