package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/treegen/scan"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the working tree and keep the specification in sync",
		Long: `Watches every project directory and re-runs the sync reconciliation
after changes settle. Changes are applied without prompting; stop with
Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			if err := watchTree(watcher, app); err != nil {
				return err
			}

			// Watch mode cannot stop to ask questions.
			auto := *app
			auto.Yes = true

			debounce := app.Config.Watch.Debounce
			timer := time.NewTimer(debounce)
			if !timer.Stop() {
				<-timer.C
			}

			app.Logger.Info("watching for changes", "dir", app.BaseDir, "debounce", debounce)
			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&fsnotify.Create != 0 {
						if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
							if !excludedDir(app, filepath.Base(event.Name)) {
								_ = watcher.Add(event.Name)
							}
						}
					}
					timer.Reset(debounce)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					app.Logger.Warn("watcher error", "error", err)
				case <-timer.C:
					if err := runSync(&auto); err != nil {
						app.Logger.Error("sync failed", "error", err)
					}
				}
			}
		},
	}
}

// watchTree registers the base directory and every non-excluded
// subdirectory with the watcher.
func watchTree(watcher *fsnotify.Watcher, app *App) error {
	return filepath.WalkDir(app.BaseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != app.BaseDir && excludedDir(app, d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func excludedDir(app *App, name string) bool {
	if scan.IsExcludedDir(name) {
		return true
	}
	for _, d := range app.Config.Scan.ExcludeDirs {
		if d == name {
			return true
		}
	}
	return false
}
