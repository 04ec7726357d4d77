package watch

import (
	"context"
	"time"
)

// debouncer runs one timer per file. A file is reported on ready once no
// event touched it for delay. Only the goroutine owning the debouncer
// may call its methods; timers only send on ready.
type debouncer struct {
	delay      time.Duration
	ready      chan fired
	pending    map[string]debounced
	generation uint64
}

type debounced struct {
	generation uint64
	timer      *time.Timer
}

type fired struct {
	name       string
	generation uint64
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		ready:   make(chan fired),
		pending: make(map[string]debounced),
	}
}

// touch (re)starts the quiet period of name. A timer of name that already
// fired keeps its old generation and is rejected by accept.
func (d *debouncer) touch(ctx context.Context, name string) {
	if p, ok := d.pending[name]; ok {
		p.timer.Stop()
	}
	d.generation++
	f := fired{name: name, generation: d.generation}
	d.pending[name] = debounced{generation: f.generation, timer: time.AfterFunc(d.delay, func() {
		select {
		case d.ready <- f:
		case <-ctx.Done():
		}
	})}
}

// accept reports whether f is the latest timer of its file, and forgets
// the file when it is.
func (d *debouncer) accept(f fired) bool {
	p, ok := d.pending[f.name]
	if !ok || p.generation != f.generation {
		return false
	}
	delete(d.pending, f.name)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}
