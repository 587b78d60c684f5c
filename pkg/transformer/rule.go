package transformer

import (
	"errors"
	"reflect"

	"github.com/ethpandaops/embedapi/pkg/container"
	"github.com/ethpandaops/embedapi/pkg/fractal"
)

// ErrMalformedRule is returned when a type rule has nothing to construct.
var ErrMalformedRule = errors.New("transformation rule cannot construct a transformer")

// Kind identifies how a rule produces its transformer
type Kind string

const (
	// KindFactory rules call a function with the injection container
	KindFactory Kind = "factory"
	// KindType rules construct a transformer without arguments
	KindType Kind = "type"
)

// Factory builds a transformer, resolving what it needs from the container.
type Factory func(c *container.Container) (fractal.Transformer, error)

// Rule describes how to obtain the transformer for a registered key. Rules
// are stored as registered and only resolved when a value is transformed.
type Rule interface {
	Kind() Kind
	// Name describes the rule for listings. Factory rules have no name.
	Name() string
	Resolve(c *container.Container) (fractal.Transformer, error)
}

type factoryRule struct {
	fn Factory
}

// FactoryRule returns a rule that calls fn with the registry's container each
// time a value is transformed. Errors from fn are returned unchanged.
func FactoryRule(fn Factory) Rule {
	return &factoryRule{fn: fn}
}

func (r *factoryRule) Kind() Kind   { return KindFactory }
func (r *factoryRule) Name() string { return "" }

func (r *factoryRule) Resolve(c *container.Container) (fractal.Transformer, error) {
	if r.fn == nil {
		return nil, ErrMalformedRule
	}

	return r.fn(c)
}

type typeRule struct {
	name      string
	construct func() fractal.Transformer
}

// TypeRule returns a rule that allocates a zero T for every transformation.
func TypeRule[T any, PT interface {
	*T
	fractal.Transformer
}]() Rule {
	return &typeRule{
		name: reflect.TypeFor[PT]().String(),
		construct: func() fractal.Transformer {
			return PT(new(T))
		},
	}
}

// ConstructorRule returns a type rule backed by an explicit constructor.
func ConstructorRule(name string, construct func() fractal.Transformer) Rule {
	return &typeRule{name: name, construct: construct}
}

func (r *typeRule) Kind() Kind   { return KindType }
func (r *typeRule) Name() string { return r.name }

func (r *typeRule) Resolve(_ *container.Container) (fractal.Transformer, error) {
	if r.construct == nil {
		return nil, ErrMalformedRule
	}

	return r.construct(), nil
}
