package ioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReturnsTypedError(t *testing.T) {
	c := New()
	p := c.BuildProvider()

	_, err := Resolve[*counter](p)
	assert.True(t, IsNotRegistered(err))
}

func TestMustResolvePanicsOnFailure(t *testing.T) {
	c := New()
	p := c.BuildProvider()

	assert.Panics(t, func() {
		MustResolve[*counter](p)
	})
}

func TestMustResolveReturnsValueOnSuccess(t *testing.T) {
	c := New()
	require.NoError(t, c.AddSingleton(newCounter))
	p := c.BuildProvider()

	assert.NotPanics(t, func() {
		MustResolve[*counter](p)
	})
}

func TestAddInstanceRegistersUnderInterfaceType(t *testing.T) {
	c := New()
	require.NoError(t, AddInstance[greeting](c, englishGreeting{}))
	p := c.BuildProvider()

	g, err := Resolve[greeting](p)
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Hello())
}

func TestAddFactoryIsTypeSafe(t *testing.T) {
	c := New()
	require.NoError(t, AddFactory(c, Singleton, func(p Provider) (*counter, error) {
		return &counter{n: 42}, nil
	}))
	p := c.BuildProvider()

	cnt, err := Resolve[*counter](p)
	require.NoError(t, err)
	assert.Equal(t, int32(42), cnt.n)
}

func TestIsRegistered(t *testing.T) {
	c := New()
	assert.False(t, IsRegistered[*counter](c))

	require.NoError(t, c.AddSingleton(newCounter))
	assert.True(t, IsRegistered[*counter](c))
}

func TestResolveAllOnEmptyRegistrationReturnsEmptySlice(t *testing.T) {
	c := New()
	p := c.BuildProvider()

	all, err := ResolveAll[greeting](p)
	require.NoError(t, err)
	assert.Empty(t, all)
}
