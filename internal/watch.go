package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-folds JavaScript files as they change on disk. Each event
// gets its own Engine, so concurrent writes never share one instance.
type Watcher struct {
	watcher    *fsnotify.Watcher
	isWatching bool
	watchDirs  []string
	newEngine  func() *Engine
}

// NewWatcher prepares a watcher over the given directories. newEngine
// supplies a fresh Engine per processed file.
func NewWatcher(dirs []string, newEngine func() *Engine) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}
	return &Watcher{
		watcher:   fsw,
		watchDirs: dirs,
		newEngine: newEngine,
	}, nil
}

func (w *Watcher) StartWatching() error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}

	for _, dir := range w.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.isWatching = true
	go w.watchLoop()
	return nil
}

func (w *Watcher) StopWatching() error {
	if !w.isWatching {
		log.Println("not watching")
	}

	w.isWatching = false
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !HasScriptExtension(event.Name) {
		return
	}
	// wait a moment so editors that write in bursts produce one run
	time.Sleep(100 * time.Millisecond)

	content, err := os.ReadFile(event.Name)
	if err != nil {
		log.Printf("error reading %s: %v", event.Name, err)
		return
	}
	report, err := w.newEngine().Evaluate(string(content))
	if err != nil {
		log.Printf("error folding %s: %v", event.Name, err)
		return
	}
	report.Filename = event.Name

	if report.Replacements == 0 {
		log.Printf("nothing to fold in %s", event.Name)
		return
	}
	log.Printf("folded %d replacement(s) in %s (%d passes)", report.Replacements, event.Name, report.Passes)
	for _, change := range report.Changes {
		log.Printf("- %s: %s => %s", change.Rule, change.Before, change.After)
	}
}

// HasScriptExtension reports whether path names a JavaScript source
// file the tool processes.
func HasScriptExtension(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".mjs", ".cjs":
		return true
	}
	return false
}
