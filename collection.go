package ioc

import (
	"reflect"
	"sync"
)

// Collection is the registry of service descriptors: an append-only,
// per-key ordered list with "last registered wins" override semantics
// for singular lookup, and "all registered, in order" semantics for
// enumerable lookup (spec.md §3's registry entry model, §9's adopted
// duplicate-registration policy).
//
// A Collection is safe for concurrent registration and lookup.
// Registrations made after BuildProvider has already returned the root
// Provider remain visible to subsequent resolutions, because the
// Provider holds a reference to this Collection rather than a snapshot.
type Collection struct {
	mu          sync.RWMutex
	descriptors map[reflect.Type][]*Descriptor
	generics    map[GenericKey]genericRegistration

	providerOnce sync.Once
	provider     *ServiceProvider
}

type genericRegistration struct {
	lifetime Lifetime
	factory  GenericFactory
}

// New creates an empty Collection.
func New() *Collection {
	return &Collection{
		descriptors: make(map[reflect.Type][]*Descriptor),
		generics:    make(map[GenericKey]genericRegistration),
	}
}

// Register appends descriptor to the registry. Registration never
// rejects duplicates: a second registration for the same ServiceKey
// overrides the first for DescriptorFor (singular lookup) and adds a
// second element for DescriptorsFor (enumerable lookup) — spec.md §9.
func (c *Collection) Register(d *Descriptor) (*Collection, error) {
	if d == nil {
		return c, &ValidationError{Cause: ErrDescriptorNil}
	}
	if err := d.Validate(); err != nil {
		return c, err
	}

	c.mu.Lock()
	c.descriptors[d.ServiceKey] = append(c.descriptors[d.ServiceKey], d)
	c.mu.Unlock()

	return c, nil
}

// AddSingleton registers constructor with Singleton lifetime.
func (c *Collection) AddSingleton(constructor any) error {
	return c.addType(Singleton, constructor)
}

// AddScoped registers constructor with Scoped lifetime.
func (c *Collection) AddScoped(constructor any) error {
	return c.addType(Scoped, constructor)
}

// AddTransient registers constructor with Transient lifetime.
func (c *Collection) AddTransient(constructor any) error {
	return c.addType(Transient, constructor)
}

func (c *Collection) addType(lifetime Lifetime, constructor any) error {
	d, err := newTypeDescriptor(lifetime, constructor)
	if err != nil {
		return err
	}
	_, err = c.Register(d)
	return err
}

// AddFactory registers a caller-supplied factory for key with the given
// lifetime.
func (c *Collection) AddFactory(key reflect.Type, lifetime Lifetime, factory func(Provider) (any, error)) error {
	d, err := newFactoryDescriptor(key, lifetime, factory)
	if err != nil {
		return err
	}
	_, err = c.Register(d)
	return err
}

// AddInstance registers a pre-built value under key as a Singleton.
func (c *Collection) AddInstance(key reflect.Type, value any) error {
	d, err := newInstanceDescriptor(key, value)
	if err != nil {
		return err
	}
	_, err = c.Register(d)
	return err
}

// AddOpenGeneric registers factory against the generic family sample
// belongs to (e.g. a sample of Repo[string] registers the Repo family).
// Resolving any closed instantiation of that family (Repo[User],
// Repo[Product], ...) with no more specific registration synthesizes a
// descriptor on demand via factory — see GenericFactory and
// SPEC_FULL.md §3 for why Go needs this indirection instead of true
// open-generic reflection.
func (c *Collection) AddOpenGeneric(sample reflect.Type, lifetime Lifetime, factory GenericFactory) error {
	key, ok := genericKeyOf(sample)
	if !ok {
		return &ValidationError{ServiceType: sample, Cause: ErrDescriptorNil}
	}
	if factory == nil {
		return &ValidationError{ServiceType: sample, Cause: ErrConstructorNil}
	}
	if !lifetime.IsValid() {
		return &LifetimeError{Value: lifetime}
	}

	c.mu.Lock()
	c.generics[key] = genericRegistration{lifetime: lifetime, factory: factory}
	c.mu.Unlock()

	return nil
}

// DescriptorsFor returns every descriptor registered for key, in
// registration order, synthesizing a closed-generic descriptor from a
// matching open-generic registration on demand. Returns NotRegisteredError
// if key has no descriptor and no open generic can close to it.
func (c *Collection) DescriptorsFor(key reflect.Type) ([]*Descriptor, error) {
	c.mu.RLock()
	existing := c.descriptors[key]
	c.mu.RUnlock()

	if len(existing) > 0 {
		out := make([]*Descriptor, len(existing))
		copy(out, existing)
		return out, nil
	}

	d, err := c.synthesizeGeneric(key)
	if err != nil {
		return nil, err
	}

	return []*Descriptor{d}, nil
}

// DescriptorFor returns the last-registered descriptor for key (the
// "override" rule of spec.md §3), synthesizing from an open generic if
// needed.
func (c *Collection) DescriptorFor(key reflect.Type) (*Descriptor, error) {
	c.mu.RLock()
	list := c.descriptors[key]
	c.mu.RUnlock()

	if len(list) > 0 {
		return list[len(list)-1], nil
	}

	return c.synthesizeGeneric(key)
}

// synthesizeGeneric builds and memoizes a closed descriptor for key from
// a matching open-generic registration, or returns NotRegisteredError.
func (c *Collection) synthesizeGeneric(key reflect.Type) (*Descriptor, error) {
	familyKey, ok := genericKeyOf(key)
	if !ok {
		return nil, &NotRegisteredError{Key: key}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under the write lock: another goroutine may have
	// synthesized (and memoized) this exact closed key already, or this
	// call may be racing the very first registration of the family.
	if list := c.descriptors[key]; len(list) > 0 {
		return list[len(list)-1], nil
	}

	reg, ok := c.generics[familyKey]
	if !ok {
		return nil, &NotRegisteredError{Key: key}
	}

	factory := reg.factory
	d := &Descriptor{
		id:         nextDescriptorID(),
		ServiceKey: key,
		Strategy:   StrategyFactory,
		Lifetime:   reg.lifetime,
		factory: func(p Provider) (any, error) {
			return factory(key, p)
		},
	}

	c.descriptors[key] = append(c.descriptors[key], d)
	return d, nil
}

// BuildProvider constructs the root Provider lazily and idempotently:
// repeated calls return the same Provider instance.
func (c *Collection) BuildProvider() *ServiceProvider {
	c.providerOnce.Do(func() {
		c.provider = newProvider(c)
	})
	return c.provider
}
