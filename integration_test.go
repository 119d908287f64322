package ioc

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Three-level transient chain: each resolution walks the full
// dependency graph and every level is freshly constructed.
type repository struct{ id int }

var repoCounter int

func newRepository() *repository {
	repoCounter++
	return &repository{id: repoCounter}
}

type service struct{ repo *repository }

func newService(repo *repository) *service { return &service{repo: repo} }

type handler struct{ svc *service }

func newHandler(svc *service) *handler { return &handler{svc: svc} }

func TestThreeLevelTransientChainConstructsEveryLevel(t *testing.T) {
	repoCounter = 0
	c := New()
	require.NoError(t, c.AddTransient(newRepository))
	require.NoError(t, c.AddTransient(newService))
	require.NoError(t, c.AddTransient(newHandler))
	p := c.BuildProvider()

	h1, err := Resolve[*handler](p)
	require.NoError(t, err)
	h2, err := Resolve[*handler](p)
	require.NoError(t, err)

	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.svc.repo, h2.svc.repo)
	assert.NotEqual(t, h1.svc.repo.id, h2.svc.repo.id)
}

// Enumerable resolution of three implementations of the same interface,
// each with its own lifetime, preserved in registration order.
type plugin interface{ Name() string }

type pluginA struct{}

func (pluginA) Name() string { return "a" }

type pluginB struct{}

func (pluginB) Name() string { return "b" }

type pluginC struct{}

func (pluginC) Name() string { return "c" }

func TestEnumerableResolutionOfThreeImplementationsPreservesOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.AddSingleton(func() plugin { return pluginA{} }))
	require.NoError(t, c.AddScoped(func() plugin { return pluginB{} }))
	require.NoError(t, c.AddTransient(func() plugin { return pluginC{} }))
	p := c.BuildProvider()

	scope := p.CreateScope(context.Background())
	defer scope.Close()

	plugins, err := ResolveAll[plugin](scope)
	require.NoError(t, err)
	require.Len(t, plugins, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{plugins[0].Name(), plugins[1].Name(), plugins[2].Name()})
}

// A mix of lifetimes resolved from two scopes: the singleton is shared,
// the scoped instance is independent per scope, and the transient is
// independent per resolution.
func TestLifetimeMixAcrossTwoScopes(t *testing.T) {
	c := New()
	require.NoError(t, c.AddSingleton(newRepository))
	require.NoError(t, c.AddScoped(newService))
	require.NoError(t, c.AddTransient(newHandler))
	p := c.BuildProvider()

	scope1 := p.CreateScope(context.Background())
	defer scope1.Close()
	scope2 := p.CreateScope(context.Background())
	defer scope2.Close()

	h1a, err := Resolve[*handler](scope1)
	require.NoError(t, err)
	h1b, err := Resolve[*handler](scope1)
	require.NoError(t, err)
	h2, err := Resolve[*handler](scope2)
	require.NoError(t, err)

	assert.NotSame(t, h1a, h1b, "transient handlers are never cached")
	assert.Same(t, h1a.svc, h1b.svc, "scoped service is cached within a scope")
	assert.NotSame(t, h1a.svc, h2.svc, "scoped service is independent across scopes")
	assert.Same(t, h1a.svc.repo, h2.svc.repo, "singleton repository is shared across every scope")
}

// An open-generic registration can be overridden, for one closed type,
// by a later specific registration — last-registered-wins applies to
// synthesized descriptors exactly as it does to direct ones.
type box[T any] struct{ value T }

func TestOpenGenericCanBeOverriddenByASpecificRegistration(t *testing.T) {
	c := New()
	var sample box[string]
	require.NoError(t, c.AddOpenGeneric(reflect.TypeOf(sample), Singleton, func(closed reflect.Type, p Provider) (any, error) {
		return reflect.New(closed).Elem().Interface(), nil
	}))

	require.NoError(t, c.AddInstance(reflect.TypeOf(box[int]{}), box[int]{value: 99}))

	p := c.BuildProvider()

	generic, err := Resolve[box[int]](p)
	require.NoError(t, err)
	assert.Equal(t, 99, generic.value, "the specific registration overrides the open-generic synthesis")

	stillOpen, err := Resolve[box[bool]](p)
	require.NoError(t, err)
	assert.False(t, stillOpen.value, "a closed type with no specific registration still falls back to the open generic")
}
