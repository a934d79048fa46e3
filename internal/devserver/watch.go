// Package devserver serves templates with widget tags over HTTP and reloads
// them when files change on disk.
package devserver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch reports files under dir with the given extension as they are written
// or created, passing the path relative to dir. It blocks until ctx is done or
// the watcher fails.
func Watch(ctx context.Context, dir, ext string, changed func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("devserver: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("devserver: watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if ext != "" && filepath.Ext(event.Name) != ext {
				continue
			}
			rel, err := filepath.Rel(dir, event.Name)
			if err != nil {
				rel = event.Name
			}
			changed(strings.ReplaceAll(rel, "\\", "/"))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("devserver: watch %s: %w", dir, err)
		}
	}
}
