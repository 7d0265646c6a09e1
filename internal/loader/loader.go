// Package loader runs one background load at a time and delivers its result
// to a callback.
package loader

import (
	"context"
	"sync"
)

// Func performs a load. It should return promptly once ctx is cancelled.
type Func[A comparable, T any] func(ctx context.Context, args A) T

// Loader runs Func on a background goroutine. Starting a new load cancels the
// previous one; results of cancelled loads are not delivered.
type Loader[A comparable, T any] struct {
	load    Func[A, T]
	deliver func(T)

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	args    A
	started bool
	done    bool
	result  T

	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// New returns an idle Loader. deliver runs on the load goroutine, one call at
// a time; it may call Restart but not Init, Wait or Close.
func New[A comparable, T any](load Func[A, T], deliver func(T)) *Loader[A, T] {
	return &Loader[A, T]{load: load, deliver: deliver}
}

// Init starts a load for args. If a load for the same args is already running
// nothing happens; if it has finished, its result is delivered again.
// Different args behave like Restart.
func (l *Loader[A, T]) Init(args A) {
	l.mu.Lock()
	if l.started && l.args == args {
		done, result := l.done, l.result
		l.mu.Unlock()
		if done {
			l.deliverMu.Lock()
			l.deliver(result)
			l.deliverMu.Unlock()
		}
		return
	}
	l.startLocked(args)
	l.mu.Unlock()
}

// Restart cancels any running load and starts a new one for args.
func (l *Loader[A, T]) Restart(args A) {
	l.mu.Lock()
	l.startLocked(args)
	l.mu.Unlock()
}

func (l *Loader[A, T]) startLocked(args A) {
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.args = args
	l.started = true
	l.done = false
	var zero T
	l.result = zero

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()
		result := l.load(ctx, args)

		l.deliverMu.Lock()
		defer l.deliverMu.Unlock()
		l.mu.Lock()
		if gen != l.gen {
			l.mu.Unlock()
			return
		}
		l.done = true
		l.result = result
		l.mu.Unlock()
		l.deliver(result)
	}()
}

// Wait blocks until no load is running, including loads started by the
// deliver callback.
func (l *Loader[A, T]) Wait() {
	l.wg.Wait()
}

// Close cancels the running load, discards its result and waits for it to return.
func (l *Loader[A, T]) Close() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	l.started = false
	l.mu.Unlock()
	l.wg.Wait()
}
