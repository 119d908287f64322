// Package reflection analyzes constructor functions supplied to the
// container, extracting the dependency types the resolver must provide
// to invoke them.
//
// Go has no notion of "a type with several public constructors" the way
// a reflective OOP runtime does: you register the constructor function
// directly. Analyze therefore validates and describes exactly one
// candidate rather than searching among several, which is the adaptation
// SPEC_FULL.md §4.1 records for spec.md §4.3 step 2.
package reflection

import (
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// ConstructorInfo describes a validated constructor function: the types
// it depends on (its parameters) and the service type it produces (its
// first return value).
type ConstructorInfo struct {
	FuncType     reflect.Type
	FuncValue    reflect.Value
	Dependencies []reflect.Type
	ServiceType  reflect.Type
	HasError     bool // true if the constructor's second return is error
}

// Analyze validates that constructor is a func of shape
// func(deps...) T or func(deps...) (T, error) and returns its analysis.
func Analyze(constructor any) (*ConstructorInfo, error) {
	if constructor == nil {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	val := reflect.ValueOf(constructor)
	if !val.IsValid() || (val.Kind() == reflect.Func && val.IsNil()) {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	typ := val.Type()
	if typ.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %s", typ.Kind())
	}

	numOut := typ.NumOut()
	if numOut == 0 {
		return nil, fmt.Errorf("constructor must return at least one value")
	}
	if numOut > 2 {
		return nil, fmt.Errorf("constructor must return at most two values (service, error)")
	}

	hasError := false
	if numOut == 2 {
		if !typ.Out(1).Implements(errType) {
			return nil, fmt.Errorf("constructor's second return value must be error, got %s", typ.Out(1))
		}
		hasError = true
	}

	serviceType := typ.Out(0)
	if serviceType.Implements(errType) && numOut == 1 {
		return nil, fmt.Errorf("constructor must return a service value, not only an error")
	}

	deps := make([]reflect.Type, typ.NumIn())
	for i := 0; i < typ.NumIn(); i++ {
		deps[i] = typ.In(i)
	}
	if typ.IsVariadic() {
		return nil, fmt.Errorf("variadic constructors are not supported")
	}

	return &ConstructorInfo{
		FuncType:     typ,
		FuncValue:    val,
		Dependencies: deps,
		ServiceType:  serviceType,
		HasError:     hasError,
	}, nil
}

// Invoke calls the analyzed constructor with the supplied arguments (in
// dependency order) and normalizes its (value, error) results.
func (info *ConstructorInfo) Invoke(args []reflect.Value) (any, error) {
	out := info.FuncValue.Call(args)

	if info.HasError {
		if errVal := out[1].Interface(); errVal != nil {
			return nil, errVal.(error)
		}
	}

	return out[0].Interface(), nil
}
