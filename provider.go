package ioc

import (
	"context"
	"reflect"

	"github.com/coriolis-labs/ioc/internal/lifetime"
)

// Provider is the resolve-only surface shared by the root ServiceProvider
// and every Scope (spec.md §3's Provider/Scope split): Resolve for a
// single service or, given a slice type, the canonical "sequence-of-T"
// shape, and IsDisposed for the closed state.
// Factory and GenericFactory closures are handed a Provider rather than
// a concrete *ServiceProvider or *Scope so they cannot tell, or rely on,
// which one is resolving them.
type Provider interface {
	// Resolve returns a constructed instance of key, applying key's
	// registered lifetime (spec.md §4.3's construction algorithm).
	Resolve(key reflect.Type) (any, error)

	// IsDisposed reports whether this Provider (or, for a Scope, this
	// Scope) has already been closed.
	IsDisposed() bool
}

// ServiceProvider is the root Provider returned by Collection.BuildProvider.
// It owns the Singleton instance cache and the disposer that closes
// Singletons, in LIFO order, when Close or CloseContext is called.
//
// Resolving a Scoped service directly from ServiceProvider returns a
// ScopedFromRootError: Scoped services only make sense relative to a
// Scope (spec.md §3 invariant I4).
type ServiceProvider struct {
	coll       *Collection
	singletons *lifetime.Cache
	disposer   *lifetime.Disposer
}

// newProvider builds the root ServiceProvider for coll. Unexported:
// callers go through Collection.BuildProvider so a Collection never has
// more than one root provider (spec.md §4.5's bootstrap invariant needs
// exactly one root provider per collection to self-register against).
func newProvider(coll *Collection) *ServiceProvider {
	return &ServiceProvider{
		coll:       coll,
		singletons: lifetime.NewCache(),
		disposer:   lifetime.NewDisposer(),
	}
}

func (p *ServiceProvider) collection() *Collection { return p.coll }

func (p *ServiceProvider) trackDisposable(instance any) { p.disposer.Track(instance) }

// Resolve implements Provider.
func (p *ServiceProvider) Resolve(key reflect.Type) (any, error) {
	if p.IsDisposed() {
		return nil, &ObjectDisposedError{What: "provider"}
	}
	if key == nil {
		return nil, &NotRegisteredError{}
	}
	return resolveWithStack(p, key, newResolutionStack())
}

// resolveDescriptor dispatches d's lifetime from the root provider's
// point of view: Transient constructs fresh every call and is never
// tracked for disposal (spec.md §3 Ownership: "the framework does not
// track" a Transient resolved directly from the root), Singleton
// constructs at most once (per descriptor identity), caches, and is
// tracked so Close disposes it, Scoped is not resolvable here at all.
func (p *ServiceProvider) resolveDescriptor(d *Descriptor, stack *resolutionStack) (any, error) {
	switch d.Lifetime {
	case Transient:
		return constructDescriptor(p, d, stack, false)
	case Singleton:
		return p.singletons.GetOrCreate(d.id, func() (any, error) {
			return constructDescriptor(p, d, stack, true)
		})
	case Scoped:
		return nil, &ScopedFromRootError{Key: d.ServiceKey}
	default:
		return nil, &LifetimeError{Value: d.Lifetime}
	}
}

// CreateScope opens a new Scope against this provider. ctx may be nil,
// in which case context.Background() is used (mirroring the teacher's
// own CreateScope).
func (p *ServiceProvider) CreateScope(ctx context.Context) *Scope {
	if ctx == nil {
		ctx = context.Background()
	}
	return newScope(p, ctx)
}

// IsDisposed implements Provider.
func (p *ServiceProvider) IsDisposed() bool {
	return p.disposer.IsDisposed()
}

// Close disposes every tracked Singleton, in LIFO order, catching and
// continuing past individual disposal errors and returning the first
// one encountered (spec.md §6's disposal contract).
func (p *ServiceProvider) Close() error {
	return p.disposer.Close()
}

// CloseContext is Close's context-aware counterpart, used when any
// tracked instance implements AsyncDisposable.
func (p *ServiceProvider) CloseContext(ctx context.Context) error {
	return p.disposer.CloseContext(ctx)
}
