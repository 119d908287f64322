package ioc

import (
	"fmt"
	"reflect"

	"github.com/coriolis-labs/ioc/internal/typecache"
)

// Resolve is generic sugar over Provider.Resolve: it derives T's
// reflect.Type and asserts the resolved value back to T, so call sites
// never juggle reflect.Type or `any` directly (grounded on the
// teacher's container_helpers.go Resolve[T]).
func Resolve[T any](p Provider) (T, error) {
	var zero T

	t := reflect.TypeOf((*T)(nil)).Elem()
	v, err := p.Resolve(t)
	if err != nil {
		return zero, err
	}

	result, ok := v.(T)
	if !ok {
		return zero, &ValidationError{
			ServiceType: t,
			Cause:       fmt.Errorf("resolved value of type %T is not assignable to %s", v, typecache.FormattedName(t)),
		}
	}
	return result, nil
}

// MustResolve is Resolve, panicking on error.
func MustResolve[T any](p Provider) T {
	v, err := Resolve[T](p)
	if err != nil {
		panic(err)
	}
	return v
}

// ResolveAll resolves every descriptor registered for T, in registration
// order, as the canonical "sequence-of-T" shape (spec.md §3's
// enumerable lookup).
func ResolveAll[T any](p Provider) ([]T, error) {
	elem := reflect.TypeOf((*T)(nil)).Elem()
	v, err := p.Resolve(reflect.SliceOf(elem))
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(v)
	out := make([]T, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface().(T)
	}
	return out, nil
}

// AddInstance registers value under T's type as a Singleton.
func AddInstance[T any](c *Collection, value T) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return c.AddInstance(t, value)
}

// AddFactory registers a type-safe factory closure for T with the given
// lifetime.
func AddFactory[T any](c *Collection, lifetime Lifetime, factory func(Provider) (T, error)) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return c.AddFactory(t, lifetime, func(p Provider) (any, error) {
		return factory(p)
	})
}

// IsRegistered reports whether T has at least one descriptor registered
// in c. This includes open-generic families: an unclosed family still
// counts, since the underlying DescriptorFor lookup closes it over T
// (and memoizes the result) as a side effect of answering the question.
func IsRegistered[T any](c *Collection) bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	_, err := c.DescriptorFor(t)
	return err == nil
}
