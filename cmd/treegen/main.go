// Package main provides the treegen binary entry point.
// Treegen turns a declarative tree specification into an on-disk
// project structure and keeps the two in sync.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/treegen/commands"
	"github.com/c360studio/treegen/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "treegen"
)

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
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		dir      string
		logLevel string
	)
	app := &commands.App{
		In:  os.Stdin,
		Out: os.Stdout,
	}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Declarative project-tree scaffolder",
		Long: `Treegen materializes a YAML tree specification into directories and
files with language-appropriate scaffolding, and keeps the
specification in sync with the filesystem as the project evolves.

Developer code is never overwritten: code files are created only when
absent, module manifests are rewritten only between marker comments,
and project manifests are created exactly once.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel)
			slog.SetDefault(logger)

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			info, err := os.Stat(absDir)
			if err != nil {
				return fmt.Errorf("stat working directory: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", absDir)
			}

			cfg, err := config.NewLoader(logger).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			app.Config = cfg
			app.Logger = logger
			app.BaseDir = absDir
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "Working directory to operate on")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&app.Yes, "yes", "y", false, "Answer yes to all prompts")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colored diff output")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	commands.Register(cmd, app)
	return cmd
}

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
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
