package container

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProvider = errors.New("provider failed")

type greeter interface {
	Greet() string
}

type englishGreeter struct {
	name string
}

func (g *englishGreeter) Greet() string { return "hello " + g.name }

type settings struct {
	Name string
}

func TestMake_NotResolvable(t *testing.T) {
	c := New()

	_, err := Make[*settings](c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotResolvable)
	assert.Contains(t, err.Error(), "*container.settings")

	_, err = Make[*settings](nil)
	assert.ErrorIs(t, err, ErrNotResolvable)
}

func TestInstance(t *testing.T) {
	c := New()
	s := &settings{Name: "ada"}
	Instance(c, s)

	got, err := Make[*settings](c)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.True(t, Bound[*settings](c))
	assert.False(t, Bound[greeter](c))
}

func TestProvide_BuildsEveryTime(t *testing.T) {
	c := New()
	calls := 0
	Provide(c, func(*Container) (*settings, error) {
		calls++
		return &settings{}, nil
	})

	first, err := Make[*settings](c)
	require.NoError(t, err)
	second, err := Make[*settings](c)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.NotSame(t, first, second)
}

func TestSingleton_BuildsOnce(t *testing.T) {
	c := New()
	calls := 0
	Singleton(c, func(*Container) (*settings, error) {
		calls++
		return &settings{}, nil
	})

	first, err := Make[*settings](c)
	require.NoError(t, err)
	second, err := Make[*settings](c)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Same(t, first, second)
}

func TestProvide_ResolvesDependencies(t *testing.T) {
	c := New()
	Instance(c, &settings{Name: "ada"})
	Singleton(c, func(c *Container) (greeter, error) {
		s, err := Make[*settings](c)
		if err != nil {
			return nil, err
		}
		return &englishGreeter{name: s.Name}, nil
	})

	g, err := Make[greeter](c)
	require.NoError(t, err)
	assert.Equal(t, "hello ada", g.Greet())
}

func TestProvide_PropagatesErrors(t *testing.T) {
	c := New()
	Provide(c, func(*Container) (*settings, error) {
		return nil, errProvider
	})

	_, err := Make[*settings](c)
	assert.ErrorIs(t, err, errProvider)

	Singleton(c, func(c *Container) (greeter, error) {
		_, err := Make[*englishGreeter](c)
		return nil, err
	})

	_, err = Make[greeter](c)
	assert.ErrorIs(t, err, ErrNotResolvable)
}

func TestTypes(t *testing.T) {
	c := New()
	Instance(c, &settings{})
	Instance[greeter](c, &englishGreeter{})

	assert.Equal(t, []string{"*container.settings", "container.greeter"}, c.Types())
	assert.True(t, c.Has(reflect.TypeFor[greeter]()))
}

func TestRebind_ReplacesBinding(t *testing.T) {
	c := New()
	first := &settings{Name: "ada"}
	second := &settings{Name: "grace"}

	Instance(c, first)
	Instance(c, second)

	got, err := Make[*settings](c)
	require.NoError(t, err)
	assert.Same(t, second, got)

	Singleton(c, func(*Container) (*settings, error) {
		return &settings{Name: "lovelace"}, nil
	})

	got, err = Make[*settings](c)
	require.NoError(t, err)
	assert.Equal(t, "lovelace", got.Name)
	assert.Equal(t, []string{"*container.settings"}, c.Types())
}

func TestSingleton_RetriesAfterError(t *testing.T) {
	c := New()
	calls := 0
	Singleton(c, func(*Container) (*settings, error) {
		calls++
		if calls == 1 {
			return nil, errProvider
		}
		return &settings{Name: "ada"}, nil
	})

	_, err := Make[*settings](c)
	require.ErrorIs(t, err, errProvider)

	got, err := Make[*settings](c)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Name)
	assert.Equal(t, 2, calls)
}
