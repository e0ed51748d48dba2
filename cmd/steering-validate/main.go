// Package main provides the steering-validate binary entry point.
// It validates steering document frontmatter, file references, and
// required body sections against the steering documentation standards.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mikeartee/kiro-steering-docs/schema"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "steering-validate"
)

// errValidationFailed signals a run that completed but found problems.
// Findings are already printed; main only needs the exit code.
var errValidationFailed = errors.New("validation failed")

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   appName + " <file-or-directory>",
		Short: "Validate steering documents",
		Long: `Validates steering documents for proper frontmatter, field values,
file references, and required body sections.

Given a file, validates that one document. Given a directory, validates
every Markdown file in it recursively (README files are skipped).
Exits 0 when all files pass and 1 when any finding is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), args[0], opts)
			if errors.Is(err, errValidationFailed) {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.schemaPath, "schema", "", "Schema override file path (YAML)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format (text, json)")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "Glob filter for directory targets (e.g. 'security/**/*.md')")
	cmd.Flags().StringVar(&opts.repoRoot, "repo-root", "", "Repository root for file reference resolution (default: auto-detect via .git)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Keep running and re-validate documents as they change")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// newLogger configures the process logger on stderr; stdout is reserved
// for validation output.
func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadSchema builds the validation schema, layering an override file
// over the defaults when one is supplied.
func loadSchema(schemaPath string) (*schema.Schema, error) {
	s := schema.Default()
	if schemaPath != "" {
		override, err := schema.LoadFromFile(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		s.Merge(override)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return s, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
