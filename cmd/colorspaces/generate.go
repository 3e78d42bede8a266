package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/jsvensson/colorspaces/internal/engine"
	"github.com/jsvensson/colorspaces/internal/parser"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		file      string
		templates string
		out       string
		only      []string
		gradients []string
		watchFile bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render templates against a gradient file",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &engine.Engine{
				TemplatesDir: templates,
				OutputDir:    out,
				Templates:    only,
				Gradients:    gradients,
			}

			generate := func() error {
				doc, err := parser.Parse(file)
				if err != nil {
					return fmt.Errorf("loading gradients: %w", err)
				}
				if err := e.Run(doc); err != nil {
					return fmt.Errorf("generating: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Generated files in %s\n", out)
				return nil
			}

			if err := generate(); err != nil {
				if !watchFile {
					return err
				}
				log.Errorf("%s", err)
			}
			if !watchFile {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			watcher, err := newWatcher(file)
			if err != nil {
				return err
			}
			defer watcher.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", file)
			watchLoop(ctx, watcher, file, func() {
				if err := generate(); err != nil {
					log.Errorf("%s", err)
				}
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "gradients.grad", "path to gradient file")
	cmd.Flags().StringVar(&templates, "templates", "templates", "templates directory")
	cmd.Flags().StringVar(&out, "out", "output", "output directory")
	cmd.Flags().StringArrayVar(&only, "template", nil, "render only specific templates by basename (can be repeated)")
	cmd.Flags().StringArrayVar(&gradients, "gradient", nil, "expose only specific gradients (can be repeated)")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "re-render whenever the gradient file changes")
	return cmd
}

// newWatcher watches the directory holding path. Editors often replace a
// file on save, which a watch on the file itself would lose.
func newWatcher(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return watcher, nil
}

// watchLoop calls fn whenever path is written or recreated, until ctx is
// done or the watcher is closed.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, fn func()) {
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				log.Debugf("%s changed", event.Name)
				fn()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch error: %s", err)
		}
	}
}
