// Package container provides a small type-keyed dependency container used to
// supply transformer factories with the services they need. Resolution and
// lifetimes are handled by samber/do; the container adds type-keyed
// lookups and the ErrNotResolvable sentinel on top.
package container

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/samber/do/v2"
)

// ErrNotResolvable is returned when no binding exists for the requested type.
var ErrNotResolvable = errors.New("type is not resolvable")

// Provider builds a value, possibly resolving other bindings from c.
type Provider[T any] func(c *Container) (T, error)

// bindings records which types have been declared on the injector.
type bindings struct {
	mu    sync.RWMutex
	types map[reflect.Type]struct{}
}

// declare runs provide, or override when t is already bound, under the lock.
func (b *bindings) declare(t reflect.Type, provide, override func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.types[t]; ok {
		override()
		return
	}

	provide()
	b.types[t] = struct{}{}
}

func (b *bindings) has(t reflect.Type) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.types[t]

	return ok
}

// Container maps types to the services that produce them.
type Container struct {
	injector do.Injector
	bindings *bindings
}

// New creates an empty container.
func New() *Container {
	return &Container{
		injector: do.New(),
		bindings: &bindings{types: make(map[reflect.Type]struct{})},
	}
}

// scoped returns a view of c that resolves through i, so nested resolutions
// made by a provider keep the injector's invocation chain.
func (c *Container) scoped(i do.Injector) *Container {
	return &Container{injector: i, bindings: c.bindings}
}

// Resolve returns an instance of t.
func (c *Container) Resolve(t reflect.Type) (any, error) {
	if !c.Has(t) {
		return nil, fmt.Errorf("%w: %s", ErrNotResolvable, t)
	}

	return do.InvokeNamed[any](c.injector, nameOf(t))
}

// Has reports whether t has a binding.
func (c *Container) Has(t reflect.Type) bool {
	return c.bindings.has(t)
}

// Types lists the bound types by name.
func (c *Container) Types() []string {
	c.bindings.mu.RLock()
	defer c.bindings.mu.RUnlock()

	names := make([]string, 0, len(c.bindings.types))
	for t := range c.bindings.types {
		names = append(names, t.String())
	}

	sort.Strings(names)

	return names
}

// Provide binds T to a provider that runs on every resolution.
func Provide[T any](c *Container, fn Provider[T]) {
	name := nameOf(reflect.TypeFor[T]())
	build := adapt(c, fn)

	c.bindings.declare(reflect.TypeFor[T](),
		func() { do.ProvideNamedTransient(c.injector, name, build) },
		func() { do.OverrideNamedTransient(c.injector, name, build) },
	)
}

// Singleton binds T to a provider that runs on first resolution. A failed
// build is retried on the next resolution.
func Singleton[T any](c *Container, fn Provider[T]) {
	name := nameOf(reflect.TypeFor[T]())
	build := adapt(c, fn)

	c.bindings.declare(reflect.TypeFor[T](),
		func() { do.ProvideNamed(c.injector, name, build) },
		func() { do.OverrideNamed(c.injector, name, build) },
	)
}

// Instance binds T to an existing value.
func Instance[T any](c *Container, value T) {
	name := nameOf(reflect.TypeFor[T]())

	c.bindings.declare(reflect.TypeFor[T](),
		func() { do.ProvideNamedValue[any](c.injector, name, value) },
		func() { do.OverrideNamedValue[any](c.injector, name, value) },
	)
}

// Make resolves T from c.
func Make[T any](c *Container) (T, error) {
	var zero T

	if c == nil {
		return zero, fmt.Errorf("%w: %s", ErrNotResolvable, reflect.TypeFor[T]())
	}

	v, err := c.Resolve(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		// nil interface values stored for interface types land here.
		return zero, nil
	}

	return typed, nil
}

// Bound reports whether T has a binding in c.
func Bound[T any](c *Container) bool {
	return c != nil && c.Has(reflect.TypeFor[T]())
}

// adapt turns fn into a do provider. Services are stored as any under the
// type's name, so Resolve can look them up by reflect.Type.
func adapt[T any](c *Container, fn Provider[T]) do.Provider[any] {
	return func(i do.Injector) (any, error) {
		v, err := fn(c.scoped(i))
		if err != nil {
			return nil, err
		}

		return v, nil
	}
}

// nameOf keys services by package path and type, so same-named types in
// different packages stay apart.
func nameOf(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	if t.Kind() == reflect.Pointer && t.Elem().PkgPath() != "" {
		return "*" + t.Elem().PkgPath() + "." + t.Elem().Name()
	}

	return t.String()
}
