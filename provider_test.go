package ioc

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int32 }

func newCounter() *counter { return &counter{} }

type counterUser struct{ c *counter }

func newCounterUser(c *counter) *counterUser { return &counterUser{c: c} }

func TestProviderSingletonIsSharedAcrossResolutions(t *testing.T) {
	c := New()
	require.NoError(t, c.AddSingleton(newCounter))
	p := c.BuildProvider()

	a, err := Resolve[*counter](p)
	require.NoError(t, err)
	b, err := Resolve[*counter](p)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestProviderTransientIsFreshEveryResolution(t *testing.T) {
	c := New()
	require.NoError(t, c.AddTransient(newCounter))
	p := c.BuildProvider()

	a, err := Resolve[*counter](p)
	require.NoError(t, err)
	b, err := Resolve[*counter](p)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestProviderScopedFromRootErrors(t *testing.T) {
	c := New()
	require.NoError(t, c.AddScoped(newCounter))
	p := c.BuildProvider()

	_, err := Resolve[*counter](p)
	assert.True(t, IsScopedFromRoot(err))
}

func TestProviderResolvesTransitiveDependencies(t *testing.T) {
	c := New()
	require.NoError(t, c.AddSingleton(newCounter))
	require.NoError(t, c.AddTransient(newCounterUser))
	p := c.BuildProvider()

	user, err := Resolve[*counterUser](p)
	require.NoError(t, err)
	assert.NotNil(t, user.c)
}

func TestProviderSingletonConstructedAtMostOnceUnderConcurrency(t *testing.T) {
	var constructions int32
	counterType := reflect.TypeOf(&counter{})
	c := New()
	require.NoError(t, c.AddFactory(
		counterType,
		Singleton,
		func(p Provider) (any, error) {
			atomic.AddInt32(&constructions, 1)
			return &counter{}, nil
		},
	))
	p := c.BuildProvider()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Resolve(counterType)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&constructions))
}

type cycleA struct{ b *cycleB }
type cycleB struct{ a *cycleA }

func newCycleA(b *cycleB) *cycleA { return &cycleA{b: b} }
func newCycleB(a *cycleA) *cycleB { return &cycleB{a: a} }

func TestProviderDetectsCircularDependency(t *testing.T) {
	c := New()
	require.NoError(t, c.AddTransient(newCycleA))
	require.NoError(t, c.AddTransient(newCycleB))
	p := c.BuildProvider()

	_, err := Resolve[*cycleA](p)
	require.True(t, IsCircularDependency(err))

	var cycleErr *CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.GreaterOrEqual(t, len(cycleErr.Path), 2)
}

type orderedDisposableA struct {
	name  string
	order *[]string
}

func (d *orderedDisposableA) Close() error {
	*d.order = append(*d.order, d.name)
	return nil
}

type orderedDisposableB struct {
	name  string
	order *[]string
}

func (d *orderedDisposableB) Close() error {
	*d.order = append(*d.order, d.name)
	return nil
}

func TestProviderClosesDisposableSingletonsInLIFOOrder(t *testing.T) {
	var order []string

	c := New()
	require.NoError(t, c.AddFactory(reflect.TypeOf(&orderedDisposableA{}), Singleton, func(p Provider) (any, error) {
		return &orderedDisposableA{name: "first", order: &order}, nil
	}))
	require.NoError(t, c.AddFactory(reflect.TypeOf(&orderedDisposableB{}), Singleton, func(p Provider) (any, error) {
		return &orderedDisposableB{name: "second", order: &order}, nil
	}))
	p := c.BuildProvider()

	_, err := Resolve[*orderedDisposableA](p)
	require.NoError(t, err)
	_, err = Resolve[*orderedDisposableB](p)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestProviderDoesNotTrackDisposableTransients(t *testing.T) {
	var order []string

	c := New()
	require.NoError(t, c.AddTransient(func() *orderedDisposableA {
		return &orderedDisposableA{name: "untracked", order: &order}
	}))
	p := c.BuildProvider()

	_, err := Resolve[*orderedDisposableA](p)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.Empty(t, order, "a Transient resolved from the root provider is owned by the caller, not the provider")
}
