// Package watch recolors SVG files as soon as they are created or
// modified in a directory.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/benoitkugler/chemsvg/batch"
	errUtils "github.com/benoitkugler/chemsvg/errors"
)

// DefaultDebounce groups the bursts of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher converts the SVG files of Source into Output, or in place
// when Output is empty or equal to Source.
type Watcher struct {
	Runner *batch.Runner
	Source string
	Output string
	// Debounce is the quiet period required after the last event on a
	// file before it is converted.
	Debounce time.Duration
	// Initial converts every existing file before watching.
	Initial bool
	// OnConvert, when set, is called after each conversion attempt.
	OnConvert func(path string, err error)
	Logger    *log.Logger
}

// Run blocks until ctx is cancelled or the watch fails.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = log.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	output := w.Output
	if output == "" {
		output = w.Source
	}
	inPlace := filepath.Clean(output) == filepath.Clean(w.Source)

	if !inPlace {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return errors.Mark(errors.Wrapf(err, "create %s", output), errUtils.ErrDestination)
		}
	}
	if w.Initial {
		if _, err := w.Runner.Run(ctx, w.Source, output); err != nil {
			logger.Warn("initial conversion incomplete", "error", err)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "start watcher")
	}
	defer fw.Close()
	if err := fw.Add(w.Source); err != nil {
		return errors.Wrapf(err, "watch %s", w.Source)
	}
	logger.Info("watching", "source", w.Source, "output", output)

	quiet := newDebouncer(debounce)
	defer quiet.stop()
	// files we wrote ourselves, with the time of the write
	written := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			name := ev.Name
			if !batch.IsSVG(name) {
				continue
			}
			if at, self := written[name]; self && time.Since(at) < debounce+time.Second {
				continue
			}
			quiet.touch(ctx, name)
		case f := <-quiet.ready:
			if !quiet.accept(f) {
				continue
			}
			name := f.name
			dst := filepath.Join(output, filepath.Base(name))
			_, err := w.Runner.ConvertFile(ctx, name, dst)
			if err != nil {
				logger.Error("conversion failed", "file", name, "error", err)
			} else {
				logger.Info("converted", "file", name, "output", dst)
				if inPlace {
					written[name] = time.Now()
				}
			}
			if w.OnConvert != nil {
				w.OnConvert(name, err)
			}
		}
	}
}
