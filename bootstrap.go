package ioc

import (
	"context"
	"reflect"
)

// ProviderFactory is a thin singleton wrapper around the already-built
// root Provider, registered by Bootstrap so it is itself resolvable
// (spec.md §4.5). Resolving Provider or context.Context directly no
// longer goes through a factory like this one — see resolveWithStack's
// interception — but ProviderFactory itself remains a requestable
// dependency for code that wants to obtain the root Provider
// explicitly rather than have one injected.
type ProviderFactory struct {
	coll *Collection
}

// Create returns the collection's root Provider, building it on first
// call exactly as Collection.BuildProvider does.
func (f *ProviderFactory) Create() Provider {
	return f.coll.BuildProvider()
}

// ScopeFactory is a thin singleton wrapper that opens new Scopes against
// the root provider (spec.md §4.5).
type ScopeFactory struct {
	coll *Collection
}

// Create opens a new Scope against the collection's root provider.
func (f *ScopeFactory) Create(ctx context.Context) *Scope {
	return f.coll.BuildProvider().CreateScope(ctx)
}

// ResolverFactory is a thin singleton wrapper around the resolution path
// any Provider already exposes (spec.md §4.5); it exists so the
// bootstrap's "the container is resolvable from itself" guarantee
// extends to the resolver itself, not only to the container and the
// provider/scope factories.
type ResolverFactory struct {
	coll *Collection
}

// Resolve resolves key against the collection's root provider.
func (f *ResolverFactory) Resolve(key reflect.Type) (any, error) {
	return f.coll.BuildProvider().Resolve(key)
}

// Bootstrap registers the container's own moving parts into c so that
// constructors resolved through c can themselves ask for the Collection,
// ProviderFactory, ScopeFactory or ResolverFactory (spec.md §4.5,
// scenario S1: "the container is resolvable from itself"). Provider and
// context.Context are deliberately NOT registered here: resolveWithStack
// intercepts both directly, so root resolution returns the root and
// scope resolution returns that scope without ever consulting a
// descriptor — see resolver.go.
func Bootstrap(c *Collection) error {
	if err := c.AddInstance(reflect.TypeOf(c), c); err != nil {
		return err
	}
	if err := c.AddInstance(reflect.TypeOf(&ProviderFactory{}), &ProviderFactory{coll: c}); err != nil {
		return err
	}
	if err := c.AddInstance(reflect.TypeOf(&ScopeFactory{}), &ScopeFactory{coll: c}); err != nil {
		return err
	}
	if err := c.AddInstance(reflect.TypeOf(&ResolverFactory{}), &ResolverFactory{coll: c}); err != nil {
		return err
	}

	return nil
}
