package ioc

import (
	"context"
	"reflect"
)

// providerType and contextType are the two types resolveWithStack
// special-cases: neither is ever looked up in the Collection, so neither
// needs a Bootstrap-registered descriptor to be resolvable (spec.md
// §4.5, scenario S1: "the container is resolvable from itself").
var (
	providerType = reflect.TypeOf((*Provider)(nil)).Elem()
	contextType  = reflect.TypeOf((*context.Context)(nil)).Elem()
)

// resolutionStack is the explicit cycle-detection stack spec.md §5
// describes. Go has no goroutine-local storage to stash an implicit
// per-resolution stack in (unlike the thread-local the spec's reference
// runtime can assume), and a pre-built static dependency graph cannot see
// edges a Factory closure creates dynamically at call time — so the
// stack is threaded explicitly through every recursive resolve call
// instead.
type resolutionStack struct {
	path []reflect.Type
}

func newResolutionStack() *resolutionStack {
	return &resolutionStack{}
}

// push records key as in-flight, returning a CircularDependencyError if
// key is already on the stack.
func (s *resolutionStack) push(key reflect.Type) error {
	for _, seen := range s.path {
		if seen == key {
			path := make([]reflect.Type, len(s.path), len(s.path)+1)
			copy(path, s.path)
			path = append(path, key)
			return &CircularDependencyError{ImplType: key, Path: path}
		}
	}
	s.path = append(s.path, key)
	return nil
}

func (s *resolutionStack) pop() {
	s.path = s.path[:len(s.path)-1]
}

// requester is implemented by both *ServiceProvider and *Scope. It lets
// the shared resolution logic below stay agnostic to which one is
// hosting the current resolve: each host dispatches a descriptor's
// lifetime its own way (root caches Singletons and rejects Scoped; a
// Scope caches Scoped and delegates Singletons to its owning provider).
type requester interface {
	Provider
	collection() *Collection
	resolveDescriptor(d *Descriptor, stack *resolutionStack) (any, error)
	trackDisposable(instance any)
}

// resolveWithStack is the entry point shared by Provider.Resolve and
// Scope.Resolve: it intercepts the two self-referential types (Provider,
// context.Context) before ever consulting the Collection, expands the
// canonical enumerable ("sequence-of-T") shape into one resolution per
// registered descriptor, and otherwise resolves the single
// last-registered (or synthesized open-generic) descriptor for key.
func resolveWithStack(host requester, key reflect.Type, stack *resolutionStack) (any, error) {
	if key == providerType {
		// host already satisfies Provider, whether it is the root
		// ServiceProvider or a Scope — returning it directly is what
		// makes both p.Resolve(Provider) == p and scope.Resolve(Provider)
		// == scope true without routing through a cached descriptor.
		return host, nil
	}

	if key == contextType {
		if scope, ok := host.(*Scope); ok {
			return scope.ctx, nil
		}
		// No scope is open yet: there is no request-scoped context to
		// return, so fall back to the background context rather than
		// rejecting the resolution the way a registered Scoped
		// descriptor would.
		return context.Background(), nil
	}

	if elem, ok := isEnumerableShape(key); ok {
		descs, err := host.collection().DescriptorsFor(elem)
		if err != nil {
			if IsNotRegistered(err) {
				return reflect.MakeSlice(reflect.SliceOf(elem), 0, 0).Interface(), nil
			}
			return nil, err
		}

		out := reflect.MakeSlice(reflect.SliceOf(elem), 0, len(descs))
		for _, d := range descs {
			// Reject a cycle before entering a lifetime cache: a Singleton
			// or Scoped construction already in flight for d on this stack
			// would otherwise wait on itself inside the cache.
			if err := stack.push(d.ServiceKey); err != nil {
				return nil, err
			}
			stack.pop()
			v, err := host.resolveDescriptor(d, stack)
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, valueForArg(elem, v))
		}
		return out.Interface(), nil
	}

	d, err := host.collection().DescriptorFor(key)
	if err != nil {
		return nil, err
	}
	// Same cycle check as above, before any lifetime cache is entered.
	if err := stack.push(d.ServiceKey); err != nil {
		return nil, err
	}
	stack.pop()
	return host.resolveDescriptor(d, stack)
}

// constructDescriptor builds a fresh instance for d, regardless of its
// lifetime — callers (resolveDescriptor implementations) are responsible
// for caching. It pushes d.ServiceKey onto stack for the duration of
// construction so a dependency cycle reached through d is caught.
//
// track controls whether the constructed instance, if disposable, is
// handed to host.trackDisposable: spec.md §3's ownership rule only
// tracks a Transient instance when a Scope resolved it (the scope is
// then responsible for disposing it); a Transient resolved directly
// from the root ServiceProvider is owned by the caller and must not be
// tracked at all. Singleton and Scoped instances built by the Type or
// Factory strategy are always tracked by whichever host cached them; a
// StrategyInstance value is returned as registered and never tracked.
func constructDescriptor(host requester, d *Descriptor, stack *resolutionStack, track bool) (any, error) {
	if err := stack.push(d.ServiceKey); err != nil {
		return nil, err
	}
	defer stack.pop()

	switch d.Strategy {
	case StrategyInstance:
		return d.instance, nil

	case StrategyFactory:
		v, err := d.factory(host)
		if err != nil {
			return nil, &FactoryFailedError{Key: d.ServiceKey, Cause: err}
		}
		if track {
			host.trackDisposable(v)
		}
		return v, nil

	case StrategyType:
		args := make([]reflect.Value, len(d.Dependencies))
		for i, depType := range d.Dependencies {
			v, err := resolveWithStack(host, depType, stack)
			if err != nil {
				return nil, err
			}
			args[i] = valueForArg(depType, v)
		}

		result, err := d.ctorInfo.Invoke(args)
		if err != nil {
			return nil, &ConstructionFailedError{ImplType: d.ServiceKey, Cause: err}
		}
		if track {
			host.trackDisposable(result)
		}
		return result, nil

	default:
		return nil, &NoConstructorError{ImplType: d.ServiceKey}
	}
}

// valueForArg converts v (boxed as any, possibly nil) into a
// reflect.Value assignable to t, the parameter or element type it is
// destined for.
func valueForArg(t reflect.Type, v any) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}
