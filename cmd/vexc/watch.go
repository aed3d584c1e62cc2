package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/recera/vexc/cmd/vexc/internal/config"
	"github.com/recera/vexc/cmd/vexc/internal/template"
	"github.com/recera/vexc/cmd/vexc/internal/ui"
)

const debounceDelay = 100 * time.Millisecond

func newWatchCommand() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Compile templates and recompile them on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			p := newProcessor(cfg, flags.noCache)
			return runWatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, p)
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "Source directory to watch")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output directory (default: next to each source)")
	cmd.Flags().BoolVar(&flags.production, "production", false, "Suppress diagnostics")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Compile every template without the result cache")

	return cmd
}

// runWatch compiles everything once, then recompiles changed templates until
// ctx is cancelled or the process is interrupted.
func runWatch(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, p *template.Processor) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	// strict mode only applies to one-shot builds
	watchCfg := *cfg
	watchCfg.Strict = false
	if err := runCompile(ctx, stdout, stderr, &watchCfg, p, nil); err != nil {
		log.Printf("⚠️  Initial compile failed: %v", err)
	}

	w, err := newTemplateWatcher(cfg.SrcDir, p, stdout, stderr)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(stdout, "👀 Watching %s for changes...\n", cfg.SrcDir)
	w.run(ctx, debounceDelay)
	return nil
}

type templateWatcher struct {
	watcher *fsnotify.Watcher
	p       *template.Processor
	stdout  io.Writer
	stderr  io.Writer
}

func newTemplateWatcher(dir string, p *template.Processor, stdout, stderr io.Writer) (*templateWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &templateWatcher{watcher: watcher, p: p, stdout: stdout, stderr: stderr}
	if err := w.addTree(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return w, nil
}

func (w *templateWatcher) Close() error {
	return w.watcher.Close()
}

// addTree watches dir and its subdirectories, skipping hidden directories and
// node_modules.
func (w *templateWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *templateWatcher) run(ctx context.Context, delay time.Duration) {
	// armed by the first relevant event
	debounce := time.NewTimer(delay)
	debounce.Stop()
	defer debounce.Stop()

	pending := make(map[string]fsnotify.Op)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Printf("⚠️  Failed to watch %s: %v", event.Name, err)
					}
					// templates may have been written before the watch was added
					w.queueTree(event.Name, pending)
					debounce.Reset(delay)
					continue
				}
			}
			if !strings.HasSuffix(event.Name, template.SourceExt) {
				continue
			}
			pending[event.Name] |= event.Op
			debounce.Reset(delay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			if len(pending) > 0 {
				w.handleChanges(pending)
				pending = make(map[string]fsnotify.Op)
			}
		}
	}
}

func (w *templateWatcher) queueTree(dir string, pending map[string]fsnotify.Op) {
	files, err := template.FindTemplates(dir)
	if err != nil {
		return
	}
	for _, file := range files {
		pending[file] |= fsnotify.Create
	}
}

func (w *templateWatcher) handleChanges(changes map[string]fsnotify.Op) {
	files := make([]string, 0, len(changes))
	for file := range changes {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			w.removeOutput(file)
			continue
		}

		startTime := time.Now()
		res, err := w.p.ProcessTemplateFile(file)
		if err != nil {
			log.Printf("⚠️  %v", err)
			continue
		}
		if d := ui.Diagnostics(res.Source, res.Errors, res.Tips); d != "" {
			fmt.Fprint(w.stderr, d)
		}
		fmt.Fprintf(w.stdout, "🔄 Recompiled %s in %v\n", file, time.Since(startTime).Round(time.Millisecond))
	}
}

// removeOutput deletes the module generated from a deleted template.
func (w *templateWatcher) removeOutput(file string) {
	output, err := w.p.OutputPath(file)
	if err != nil {
		return
	}
	if err := os.Remove(output); err == nil {
		fmt.Fprintf(w.stdout, "🗑  Removed %s\n", output)
	}
}
