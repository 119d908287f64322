package ioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleAppliesEveryOption(t *testing.T) {
	databaseModule := Module("database",
		WithSingleton(newCounter),
		WithTransient(newCounterUser),
	)

	c := New()
	require.NoError(t, c.Apply(databaseModule))

	p := c.BuildProvider()
	user, err := Resolve[*counterUser](p)
	require.NoError(t, err)
	assert.NotNil(t, user.c)
}

func TestModuleWrapsFailureWithModuleName(t *testing.T) {
	broken := Module("broken", func(c *Collection) error {
		return c.AddSingleton(nil)
	})

	c := New()
	err := c.Apply(broken)
	require.Error(t, err)

	var modErr *ModuleError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, "broken", modErr.Module)
}

func TestWithModuleNests(t *testing.T) {
	inner := Module("inner", WithSingleton(newCounter))
	outer := Module("outer", WithModule(inner))

	c := New()
	require.NoError(t, c.Apply(outer))
	assert.True(t, IsRegistered[*counter](c))
}
