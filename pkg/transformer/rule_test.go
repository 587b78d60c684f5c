package transformer

import (
	"testing"

	"github.com/ethpandaops/embedapi/pkg/container"
	"github.com/ethpandaops/embedapi/pkg/fractal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRule(t *testing.T) {
	rule := TypeRule[plainTransformer]()

	assert.Equal(t, KindType, rule.Kind())
	assert.Equal(t, "*transformer.plainTransformer", rule.Name())

	tr, err := rule.Resolve(nil)
	require.NoError(t, err)
	assert.IsType(t, &plainTransformer{}, tr)

	articles := TypeRule[articleTransformer]()
	first, err := articles.Resolve(nil)
	require.NoError(t, err)
	second, err := articles.Resolve(nil)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestConstructorRule(t *testing.T) {
	rule := ConstructorRule("upper", func() fractal.Transformer {
		return &articleTransformer{prefix: "!"}
	})

	assert.Equal(t, KindType, rule.Kind())
	assert.Equal(t, "upper", rule.Name())

	tr, err := rule.Resolve(container.New())
	require.NoError(t, err)
	assert.Equal(t, "!", tr.(*articleTransformer).prefix)

	_, err = ConstructorRule("broken", nil).Resolve(nil)
	assert.ErrorIs(t, err, ErrMalformedRule)
}

func TestFactoryRule(t *testing.T) {
	c := container.New()
	container.Instance(c, &prefixConfig{Prefix: "#"})

	rule := FactoryRule(articleFactory)
	assert.Equal(t, KindFactory, rule.Kind())
	assert.Empty(t, rule.Name())

	tr, err := rule.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, "#", tr.(*articleTransformer).prefix)

	_, err = rule.Resolve(container.New())
	assert.ErrorIs(t, err, container.ErrNotResolvable)

	_, err = FactoryRule(nil).Resolve(c)
	assert.ErrorIs(t, err, ErrMalformedRule)
}
