package ioc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{ name string }

func newWidget() *widget { return &widget{name: "widget"} }

func newWidgetWithError() (*widget, error) { return nil, assert.AnError }

func newWidgetVariadic(names ...string) *widget { return &widget{} }

func TestNewTypeDescriptor(t *testing.T) {
	d, err := newTypeDescriptor(Singleton, newWidget)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(&widget{}), d.ServiceKey)
	assert.Equal(t, StrategyType, d.Strategy)
	assert.Equal(t, Singleton, d.Lifetime)
	assert.Empty(t, d.Dependencies)
	assert.NotZero(t, d.id)
}

func TestNewTypeDescriptorRejectsNilConstructor(t *testing.T) {
	_, err := newTypeDescriptor(Singleton, nil)
	assert.Error(t, err)
}

func TestNewTypeDescriptorRejectsVariadic(t *testing.T) {
	_, err := newTypeDescriptor(Singleton, newWidgetVariadic)
	assert.Error(t, err)
}

func TestNewInstanceDescriptorForcesSingleton(t *testing.T) {
	key := reflect.TypeOf(&widget{})
	d, err := newInstanceDescriptor(key, &widget{name: "x"})
	require.NoError(t, err)
	assert.Equal(t, Singleton, d.Lifetime)
	assert.Equal(t, StrategyInstance, d.Strategy)
}

func TestDescriptorIDsAreUnique(t *testing.T) {
	d1, err := newTypeDescriptor(Transient, newWidget)
	require.NoError(t, err)
	d2, err := newTypeDescriptor(Transient, newWidget)
	require.NoError(t, err)
	assert.NotEqual(t, d1.id, d2.id)
}

func TestDescriptorValidateRejectsInvalidLifetime(t *testing.T) {
	d := &Descriptor{ServiceKey: reflect.TypeOf(&widget{}), Lifetime: Lifetime(99)}
	assert.Error(t, d.Validate())
}

func TestDescriptorValidateRejectsInstanceWithNonSingletonLifetime(t *testing.T) {
	d := &Descriptor{
		ServiceKey: reflect.TypeOf(&widget{}),
		Strategy:   StrategyInstance,
		Lifetime:   Scoped,
	}
	assert.Error(t, d.Validate())
}
