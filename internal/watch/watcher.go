// Package watch reports changes of a single file, such as a roster file that
// is edited while a screening session is open.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

type Watcher struct {
	fw       *fsnotify.Watcher
	logger   *zap.Logger
	Debounce time.Duration
}

func New(logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{fw: fw, logger: logger, Debounce: defaultDebounce}, nil
}

// Watch blocks until ctx is done, calling onChange each time path is written,
// created, renamed or removed. The parent directory is watched so editors that
// replace the file on save are still seen. onChange runs on the calling
// goroutine, one call at a time; bursts inside Debounce collapse into one call.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := w.fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %q: %w", filepath.Dir(abs), err)
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.logger.Debug("file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			onChange()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}
