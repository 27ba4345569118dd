// Package watch re-runs the stylesheet pipeline whenever a watched file
// changes on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/obinexus/stylecore"
)

// Watcher drives the pipeline from filesystem events. The watching flag is
// read by the event loop goroutine and written by Start/Stop, so it is
// atomic.
type Watcher struct {
	watcher    *fsnotify.Watcher
	logger     *zap.Logger
	config     stylecore.Config
	onReport   func(stylecore.FileReport)
	isWatching atomic.Bool
}

// New builds a Watcher that invokes onReport for every re-processed file.
func New(logger *zap.Logger, config stylecore.Config, onReport func(stylecore.FileReport)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		watcher:  fsWatcher,
		logger:   logger,
		config:   config,
		onReport: onReport,
	}, nil
}

// Start registers the given directories (recursively) and begins the event
// loop in a goroutine.
func (w *Watcher) Start(dirs []string) error {
	if w.isWatching.Load() {
		return fmt.Errorf("already watching")
	}

	for _, dir := range dirs {
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

	w.isWatching.Store(true)
	go w.watchLoop()
	return nil
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	if !w.isWatching.Swap(false) {
		w.logger.Warn("not watching")
	}
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching.Load() {
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
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".css") {
		return
	}

	// editors fire bursts of writes; let them settle
	time.Sleep(100 * time.Millisecond)

	report, err := stylecore.ProcessFile(w.config, event.Name)
	if err != nil {
		w.logger.Error("error processing file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.logger.Info("reprocessed",
		zap.String("file", event.Name),
		zap.Int("diagnostics", len(report.Errors)))
	if w.onReport != nil {
		w.onReport(report)
	}
}
