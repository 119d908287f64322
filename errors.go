package ioc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/coriolis-labs/ioc/internal/typecache"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrConstructorNil is returned when a nil constructor, factory or
	// instance is registered.
	ErrConstructorNil = errors.New("constructor cannot be nil")

	// ErrDescriptorNil is returned when a descriptor has no service type.
	ErrDescriptorNil = errors.New("descriptor has no service type")
)

// NotRegisteredError indicates a lookup found no descriptor for Key and
// no open generic could close to it.
type NotRegisteredError struct {
	Key reflect.Type
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("service not registered: %s", typecache.FormattedName(e.Key))
}

// NoConstructorError indicates a Type-strategy descriptor's constructor
// was never validated successfully (never reached in practice, since
// Descriptor construction validates eagerly, but retained per spec.md
// §7's error taxonomy for completeness and for factory-path analogues).
type NoConstructorError struct {
	ImplType reflect.Type
}

func (e *NoConstructorError) Error() string {
	return fmt.Sprintf("type %s has no usable constructor", typecache.FormattedName(e.ImplType))
}

// CircularDependencyError reports a dependency cycle discovered while
// constructing ImplType; Path lists every type on the cycle in visit
// order, ending with the closing (repeated) node.
type CircularDependencyError struct {
	ImplType reflect.Type
	Path     []reflect.Type
}

func (e *CircularDependencyError) Error() string {
	names := make([]string, len(e.Path))
	for i, t := range e.Path {
		names[i] = typecache.FormattedName(t)
	}
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(names, " -> "))
}

// ScopedFromRootError indicates a Scoped service was requested directly
// from the root Provider instead of from a Scope.
type ScopedFromRootError struct {
	Key reflect.Type
}

func (e *ScopedFromRootError) Error() string {
	return fmt.Sprintf("%s is registered Scoped and cannot be resolved from the root provider; create a scope", typecache.FormattedName(e.Key))
}

// ObjectDisposedError indicates Resolve was called on a Provider or
// Scope that has already been disposed.
type ObjectDisposedError struct {
	// What names the disposed object ("provider" or "scope") for
	// diagnostics.
	What string
}

func (e *ObjectDisposedError) Error() string {
	what := e.What
	if what == "" {
		what = "object"
	}
	return fmt.Sprintf("%s has been disposed", what)
}

// ConstructionFailedError wraps an error returned by a user
// constructor. A panic raised inside a constructor is not recovered; it
// propagates to the caller of Resolve.
type ConstructionFailedError struct {
	ImplType reflect.Type
	Cause    error
}

func (e *ConstructionFailedError) Error() string {
	return fmt.Sprintf("construction of %s failed: %v", typecache.FormattedName(e.ImplType), e.Cause)
}

func (e *ConstructionFailedError) Unwrap() error { return e.Cause }

// FactoryFailedError wraps an error raised by a user-supplied Factory
// closure.
type FactoryFailedError struct {
	Key   reflect.Type
	Cause error
}

func (e *FactoryFailedError) Error() string {
	return fmt.Sprintf("factory for %s failed: %v", typecache.FormattedName(e.Key), e.Cause)
}

func (e *FactoryFailedError) Unwrap() error { return e.Cause }

// ValidationError indicates a descriptor failed validation at
// registration time.
type ValidationError struct {
	ServiceType reflect.Type
	Cause       error
}

func (e *ValidationError) Error() string {
	if e.ServiceType != nil {
		return fmt.Sprintf("%s: %v", typecache.FormattedName(e.ServiceType), e.Cause)
	}
	return e.Cause.Error()
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// ModuleError wraps an error raised while applying a named Module's
// options, so the failing module is identifiable in the error chain.
type ModuleError struct {
	Module string
	Cause  error
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e *ModuleError) Unwrap() error { return e.Cause }

// LifetimeError indicates an invalid Lifetime value.
type LifetimeError struct {
	Value any
}

func (e *LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// IsNotRegistered reports whether err is (or wraps) a NotRegisteredError.
func IsNotRegistered(err error) bool {
	var e *NotRegisteredError
	return errors.As(err, &e)
}

// IsCircularDependency reports whether err is (or wraps) a
// CircularDependencyError.
func IsCircularDependency(err error) bool {
	var e *CircularDependencyError
	return errors.As(err, &e)
}

// IsDisposed reports whether err is (or wraps) an ObjectDisposedError.
func IsDisposed(err error) bool {
	var e *ObjectDisposedError
	return errors.As(err, &e)
}

// IsScopedFromRoot reports whether err is (or wraps) a
// ScopedFromRootError.
func IsScopedFromRoot(err error) bool {
	var e *ScopedFromRootError
	return errors.As(err, &e)
}
