package lifetime

import (
	"context"
	"sync"
)

// Disposable is the synchronous release contract produced instances may
// implement.
type Disposable interface {
	Close() error
}

// AsyncDisposable is the context-aware release contract produced
// instances may implement. An instance implementing both is preferred
// via its async path when disposal is asynchronous, and its sync path
// when disposal is synchronous (spec.md §6).
type AsyncDisposable interface {
	CloseContext(ctx context.Context) error
}

// Disposer tracks disposable instances in creation order and releases
// them in reverse (LIFO), matching the ownership rule that whichever
// owner (provider or scope) created an instance is responsible for
// disposing it.
type Disposer struct {
	mu       sync.Mutex
	tracked  []any
	disposed bool

	// OnError is invoked for every disposal failure so a catch-and-continue
	// policy can still surface problems to a host application; it may be
	// nil. This is the ambient-observability seam spec.md leaves external
	// (see SPEC_FULL.md AMBIENT STACK).
	OnError func(instance any, err error)
}

// NewDisposer creates an empty Disposer.
func NewDisposer() *Disposer {
	return &Disposer{}
}

// Track records instance for later disposal if it implements Disposable
// or AsyncDisposable. Non-disposable instances are ignored.
func (d *Disposer) Track(instance any) {
	switch instance.(type) {
	case Disposable, AsyncDisposable:
	default:
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracked = append(d.tracked, instance)
}

// Close disposes all tracked instances in reverse insertion order,
// calling only their synchronous Close. It is idempotent: a second call
// is a no-op. Failures are caught and reported via OnError so that one
// failing disposal never strands the instances created before it.
func (d *Disposer) Close() error {
	items := d.takeAll()

	var firstErr error
	for i := len(items) - 1; i >= 0; i-- {
		if disp, ok := items[i].(Disposable); ok {
			if err := disp.Close(); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				if d.OnError != nil {
					d.OnError(items[i], err)
				}
			}
		}
	}

	return firstErr
}

// CloseContext disposes all tracked instances in reverse insertion
// order, preferring AsyncDisposable.CloseContext when an instance
// implements it and falling back to Disposable.Close otherwise.
func (d *Disposer) CloseContext(ctx context.Context) error {
	items := d.takeAll()

	var firstErr error
	for i := len(items) - 1; i >= 0; i-- {
		var err error
		switch disp := items[i].(type) {
		case AsyncDisposable:
			err = disp.CloseContext(ctx)
		case Disposable:
			err = disp.Close()
		}

		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if d.OnError != nil {
				d.OnError(items[i], err)
			}
		}
	}

	return firstErr
}

func (d *Disposer) takeAll() []any {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return nil
	}
	d.disposed = true

	items := d.tracked
	d.tracked = nil
	return items
}

// IsDisposed reports whether Close or CloseContext has already run.
func (d *Disposer) IsDisposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}
