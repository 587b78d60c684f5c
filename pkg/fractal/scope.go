package fractal

import (
	"fmt"
	"strings"
)

// Scope is a position in the include tree being rendered. The root scope has
// no identifier; each embedded include adds one path segment.
type Scope struct {
	manager    *Manager
	resource   Resource
	identifier string
	parents    []string
}

// Identifier returns the dotted path of the scope, empty for the root.
func (s *Scope) Identifier() string {
	segments := s.segments()

	return strings.Join(segments, ".")
}

// Depth returns how many includes deep the scope is.
func (s *Scope) Depth() int {
	return len(s.segments())
}

// Resource returns the resource rendered by the scope.
func (s *Scope) Resource() Resource {
	return s.resource
}

// IsRequested reports whether the include name was requested relative to this scope.
func (s *Scope) IsRequested(name string) bool {
	return s.manager.IsRequested(s.childPath(name))
}

func (s *Scope) segments() []string {
	if s.identifier == "" {
		return s.parents
	}

	out := make([]string, 0, len(s.parents)+1)
	out = append(out, s.parents...)

	return append(out, s.identifier)
}

func (s *Scope) childPath(name string) string {
	if id := s.Identifier(); id != "" {
		return id + "." + name
	}

	return name
}

func (s *Scope) embedChild(name string, resource Resource) *Scope {
	return &Scope{
		manager:    s.manager,
		resource:   resource,
		identifier: name,
		parents:    s.segments(),
	}
}

// ToStructure renders the scope's resource with the manager's serializer.
func (s *Scope) ToStructure() (any, error) {
	serializer := s.manager.serializer

	switch r := s.resource.(type) {
	case nil, *NullResource:
		return serializer.Null(), nil
	case *Item:
		if r == nil {
			return serializer.Null(), nil
		}

		fields, err := s.transformValue(r.transformer, r.data)
		if err != nil {
			return nil, err
		}

		return serializer.Item(fields), nil
	case *Collection:
		if r == nil {
			return serializer.Null(), nil
		}

		items := make([]map[string]any, 0, len(r.data))

		for _, value := range r.data {
			fields, err := s.transformValue(r.transformer, value)
			if err != nil {
				return nil, err
			}

			items = append(items, fields)
		}

		return serializer.Collection(items), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedResource, r)
	}
}

func (s *Scope) transformValue(transformer Transformer, data any) (map[string]any, error) {
	if transformer == nil {
		return nil, ErrNoTransformer
	}

	fields, err := transformer.Transform(data)
	if err != nil {
		return nil, err
	}

	if fields == nil {
		fields = make(map[string]any)
	}

	includer, ok := transformer.(Includer)
	if !ok || s.Depth() >= s.manager.recursionLimit {
		return fields, nil
	}

	for _, name := range s.includesFor(includer) {
		resource, err := includer.Include(name, data)
		if err != nil {
			return nil, fmt.Errorf("failed to include %q: %w", name, err)
		}

		value, err := s.embedChild(name, resource).ToStructure()
		if err != nil {
			return nil, err
		}

		fields[name] = value
	}

	return fields, nil
}

// includesFor lists defaults first, then requested available includes, without duplicates.
func (s *Scope) includesFor(includer Includer) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, name := range includer.DefaultIncludes() {
		add(name)
	}

	for _, name := range includer.AvailableIncludes() {
		if s.IsRequested(name) {
			add(name)
		}
	}

	return names
}
