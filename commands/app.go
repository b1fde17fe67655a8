// Package commands implements the treegen subcommands. Each command is
// a thin composition of the spec, edit, generate, and scan packages
// around a shared App context.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360studio/treegen/config"
	"github.com/c360studio/treegen/diffview"
	"github.com/c360studio/treegen/generate"
	"github.com/c360studio/treegen/gitrun"
	"github.com/c360studio/treegen/scan"
	"github.com/c360studio/treegen/spec"
)

// App carries the shared state every command needs: resolved
// configuration, logger, working directory, and the streams prompts and
// reports go through.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	BaseDir string
	In      io.Reader
	Out     io.Writer
	// Yes skips interactive confirmation prompts.
	Yes bool
	// NoColor disables ANSI colors in diff previews.
	NoColor bool
}

// SpecPath returns the path of the specification document.
func (a *App) SpecPath() string {
	return filepath.Join(a.BaseDir, a.Config.Spec.File)
}

// LoadSpecText reads the raw specification document.
func (a *App) LoadSpecText() (string, error) {
	data, err := os.ReadFile(a.SpecPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no %s found (run 'treegen init' first)", a.Config.Spec.File)
		}
		return "", fmt.Errorf("read specification: %w", err)
	}
	return string(data), nil
}

// ParseSpec parses and validates specification text.
func (a *App) ParseSpec(text string) (*spec.Config, error) {
	cfg, err := spec.ParseString(text)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteSpecText writes the specification document back to disk.
func (a *App) WriteSpecText(text string) error {
	if err := os.WriteFile(a.SpecPath(), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write specification: %w", err)
	}
	return nil
}

// ScanOptions builds scanner options from the tool configuration.
func (a *App) ScanOptions() scan.Options {
	return scan.Options{
		ExcludeDirs:     a.Config.Scan.ExcludeDirs,
		ExcludeFiles:    a.Config.Scan.ExcludeFiles,
		ExcludePatterns: a.Config.Scan.ExcludePatterns,
	}
}

// Generator builds the generation engine with the configured git
// runner.
func (a *App) Generator() *generate.Generator {
	return generate.New(generate.Options{
		BaseDir: a.BaseDir,
		Cloner:  gitrun.New(a.Config.Git.Binary, a.Logger),
		Logger:  a.Logger,
	})
}

// ShowDiff prints a diff of a pending specification edit.
func (a *App) ShowDiff(before, after string) {
	fmt.Fprint(a.Out, diffview.Render(before, after, diffview.Options{Color: !a.NoColor}))
}
