package ioc

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"github.com/coriolis-labs/ioc/internal/lifetime"
)

// Scope owns the Scoped instance cache and disposer for one logical unit
// of work (one HTTP request, one job execution — spec.md §3's Scope).
// Scoped lookups are cached per Scope; Singleton lookups delegate to the
// owning ServiceProvider so every Scope observes the same singletons;
// Transient lookups always construct fresh and are disposed by whichever
// Scope resolved them.
//
// Scopes do not nest: there is no Scope.CreateScope, matching spec.md
// §3's single-level scope model.
type Scope struct {
	id       string
	ctx      context.Context
	provider *ServiceProvider
	scoped   *lifetime.Cache
	disposer *lifetime.Disposer
}

// newScope opens a Scope against provider. Unexported: callers go
// through ServiceProvider.CreateScope.
func newScope(provider *ServiceProvider, ctx context.Context) *Scope {
	return &Scope{
		id:       uuid.NewString(),
		ctx:      ctx,
		provider: provider,
		scoped:   lifetime.NewCache(),
		disposer: lifetime.NewDisposer(),
	}
}

// ID returns this scope's unique identifier.
func (s *Scope) ID() string { return s.id }

// Context returns the context this scope was created with.
func (s *Scope) Context() context.Context { return s.ctx }

func (s *Scope) collection() *Collection { return s.provider.coll }

func (s *Scope) trackDisposable(instance any) { s.disposer.Track(instance) }

// Resolve implements Provider.
func (s *Scope) Resolve(key reflect.Type) (any, error) {
	if s.IsDisposed() {
		return nil, &ObjectDisposedError{What: "scope"}
	}
	if key == nil {
		return nil, &NotRegisteredError{}
	}
	return resolveWithStack(s, key, newResolutionStack())
}

// resolveDescriptor dispatches d's lifetime from this scope's point of
// view: Transient constructs fresh and is disposed by this scope,
// Scoped constructs at most once per descriptor identity within this
// scope, Singleton delegates to the owning provider so every scope
// shares the same singleton instances and disposal ownership.
func (s *Scope) resolveDescriptor(d *Descriptor, stack *resolutionStack) (any, error) {
	switch d.Lifetime {
	case Transient:
		return constructDescriptor(s, d, stack, true)
	case Scoped:
		return s.scoped.GetOrCreate(d.id, func() (any, error) {
			return constructDescriptor(s, d, stack, true)
		})
	case Singleton:
		return s.provider.resolveDescriptor(d, stack)
	default:
		return nil, &LifetimeError{Value: d.Lifetime}
	}
}

// IsDisposed implements Provider.
func (s *Scope) IsDisposed() bool {
	return s.disposer.IsDisposed()
}

// Close disposes every instance this scope constructed (Scoped and
// Transient alike), in LIFO order. It never closes the owning
// provider's singletons.
func (s *Scope) Close() error {
	return s.disposer.Close()
}

// CloseContext is Close's context-aware counterpart.
func (s *Scope) CloseContext(ctx context.Context) error {
	return s.disposer.CloseContext(ctx)
}
