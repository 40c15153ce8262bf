package config

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path for changes and calls onChange with the newly loaded
// Config each time the file is saved. It runs until ctx is cancelled.
//
// The directory is watched rather than the file, so atomic saves (write a
// temp file, rename it over path) and a file created after Watch starts are
// both picked up. The directory must exist. A reload that fails is logged and
// the previous config stays active.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	log.Printf("Watching config %s for changes", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Renamed away or not yet replaced
			if _, err := os.Stat(path); err != nil {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				log.Printf("Config reload failed, keeping previous config: %v", err)
				continue
			}

			log.Printf("Config reloaded from %s", path)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}
