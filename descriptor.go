package ioc

import (
	"reflect"
	"sync/atomic"

	"github.com/coriolis-labs/ioc/internal/reflection"
)

// descriptorCounter assigns each Descriptor a unique id, used as the
// lifetime-cache key instead of the bare ServiceKey. Two descriptors can
// share a ServiceKey (multi-registration, spec.md §9's "accept and
// overlay" policy): enumerable resolution constructs and — if cached —
// caches each one independently, which a cache keyed purely by
// ServiceKey could not represent.
var descriptorCounter uint64

func nextDescriptorID() uint64 {
	return atomic.AddUint64(&descriptorCounter, 1)
}

// Strategy is how a Descriptor produces its instances.
type Strategy int

const (
	// StrategyType constructs by invoking a reflected constructor
	// function over the implementation type's dependencies.
	StrategyType Strategy = iota

	// StrategyFactory constructs by invoking a caller-supplied closure.
	StrategyFactory

	// StrategyInstance returns a pre-built value; always Singleton.
	StrategyInstance
)

// Descriptor is an immutable record of one registration: the service key
// clients ask for, how to construct it, and its lifetime. Descriptors
// are never mutated after registration (spec.md §3's "Lifecycle"
// invariant); that includes the constructor analysis described below,
// which is computed once when the descriptor is built.
type Descriptor struct {
	// id uniquely identifies this registration for lifetime-cache
	// purposes; see descriptorCounter.
	id uint64

	// ServiceKey is the type clients resolve.
	ServiceKey reflect.Type

	// Strategy selects which of ctorInfo / factory / instance is used.
	Strategy Strategy

	// Lifetime governs caching behavior.
	Lifetime Lifetime

	// Dependencies lists the types this descriptor's constructor needs,
	// in parameter order. Empty for Factory and Instance strategies,
	// whose dependency resolution (if any) happens inside the closure
	// rather than being declared up front.
	Dependencies []reflect.Type

	// ctorInfo is spec.md §3's "cached_ctor": the selected constructor
	// and its parameter list. Go constructors are supplied directly at
	// registration (there is no set of candidate constructors to search
	// among — see SPEC_FULL.md §4.1), so unlike a reflective OOP runtime
	// this module must analyze the constructor eagerly, at registration
	// time, simply to learn the ServiceKey (the constructor's return
	// type) to index the descriptor under. ctorInfo therefore holds that
	// one-time analysis result; it is written once in newTypeDescriptor
	// and never mutated afterward.
	ctorInfo *reflection.ConstructorInfo

	// factory is the StrategyFactory closure.
	factory func(Provider) (any, error)

	// instance is the StrategyInstance value.
	instance any
}

// newTypeDescriptor validates constructor and builds a StrategyType
// descriptor for it. constructor must be func(deps...) T or
// func(deps...) (T, error); its dependency and service types are
// discovered by reflection.Analyze.
func newTypeDescriptor(lifetime Lifetime, constructor any) (*Descriptor, error) {
	if constructor == nil {
		return nil, &ValidationError{Cause: ErrConstructorNil}
	}

	info, err := reflection.Analyze(constructor)
	if err != nil {
		return nil, &ValidationError{Cause: err}
	}

	return &Descriptor{
		id:           nextDescriptorID(),
		ServiceKey:   info.ServiceType,
		Strategy:     StrategyType,
		Lifetime:     lifetime,
		Dependencies: info.Dependencies,
		ctorInfo:     info,
	}, nil
}

// newFactoryDescriptor builds a StrategyFactory descriptor. key is the
// service type the factory produces, supplied explicitly because Go
// cannot infer a closure's logical return type from reflection alone
// once it is stored as `func(Provider) (any, error)`.
func newFactoryDescriptor(key reflect.Type, lifetime Lifetime, factory func(Provider) (any, error)) (*Descriptor, error) {
	if key == nil {
		return nil, &ValidationError{Cause: ErrDescriptorNil}
	}
	if factory == nil {
		return nil, &ValidationError{ServiceType: key, Cause: ErrConstructorNil}
	}

	return &Descriptor{
		id:         nextDescriptorID(),
		ServiceKey: key,
		Strategy:   StrategyFactory,
		Lifetime:   lifetime,
		factory:    factory,
	}, nil
}

// newInstanceDescriptor builds a StrategyInstance descriptor. Per
// spec.md invariant I1, an Instance descriptor is always Singleton.
func newInstanceDescriptor(key reflect.Type, value any) (*Descriptor, error) {
	if key == nil {
		return nil, &ValidationError{Cause: ErrDescriptorNil}
	}
	if value == nil {
		return nil, &ValidationError{ServiceType: key, Cause: ErrConstructorNil}
	}

	return &Descriptor{
		id:         nextDescriptorID(),
		ServiceKey: key,
		Strategy:   StrategyInstance,
		Lifetime:   Singleton,
		instance:   value,
	}, nil
}

// Validate checks descriptor invariants (spec.md §3 I1-I3, restricted to
// the checks meaningful without open-generic impl_key support, which is
// handled separately by genericRegistration).
func (d *Descriptor) Validate() error {
	if d.ServiceKey == nil {
		return &ValidationError{Cause: ErrDescriptorNil}
	}
	if !d.Lifetime.IsValid() {
		return &LifetimeError{Value: d.Lifetime}
	}
	if d.Strategy == StrategyInstance && d.Lifetime != Singleton {
		return &ValidationError{ServiceType: d.ServiceKey, Cause: ErrConstructorNil}
	}
	return nil
}
