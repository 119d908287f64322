package ioc

import (
	"reflect"

	"github.com/coriolis-labs/ioc/internal/typecache"
)

// ServiceKey identifies a service by its runtime type. Go's reflect.Type
// values compare equal nominally and are interned by the runtime, which
// already satisfies spec.md §3's "two keys that refer to the same
// constructed generic must compare equal" invariant without any extra
// bookkeeping.
type ServiceKey = reflect.Type

// isEnumerableShape reports whether key is the canonical "sequence-of-T"
// shape (a Go slice type) and, if so, returns its element type.
func isEnumerableShape(key ServiceKey) (elem reflect.Type, ok bool) {
	if key.Kind() != reflect.Slice {
		return nil, false
	}
	return key.Elem(), true
}

// GenericKey fingerprints the open-generic family a closed instantiation
// belongs to. See internal/typecache for why this exists instead of
// reflecting directly over an "unbound" generic type.
type GenericKey = typecache.GenericKey

// genericKeyOf returns the GenericKey family for key, or ok=false if key
// is not a generic instantiation.
func genericKeyOf(key ServiceKey) (GenericKey, bool) {
	return typecache.GenericKeyOf(key)
}

// GenericFactory constructs an instance of a closed generic service type
// on demand for an open-generic registration. closed is the requested
// closed type (e.g. Repo[User]); the factory is responsible for its own
// dispatch on closed, since Go's reflect package exposes no way to
// recover a generic instantiation's type arguments (see
// internal/typecache.GenericKeyOf).
type GenericFactory func(closed reflect.Type, p Provider) (any, error)
