package fractal

import "strings"

// DefaultRecursionLimit is the deepest include nesting a Manager will render.
const DefaultRecursionLimit = 10

// Manager holds the requested scopes for one serialization and walks
// resources into plain structures. A Manager is not safe for concurrent use;
// create one per request.
type Manager struct {
	serializer     Serializer
	recursionLimit int
	requested      []string
	requestedSet   map[string]struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithSerializer sets the serializer used for envelopes.
func WithSerializer(s Serializer) Option {
	return func(m *Manager) {
		if s != nil {
			m.serializer = s
		}
	}
}

// WithRecursionLimit caps how deep includes are followed.
func WithRecursionLimit(limit int) Option {
	return func(m *Manager) {
		if limit > 0 {
			m.recursionLimit = limit
		}
	}
}

// NewManager creates a manager with no requested scopes.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		serializer:     ArraySerializer{},
		recursionLimit: DefaultRecursionLimit,
		requestedSet:   make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// SetRequestedScopes replaces the requested scopes. Dotted scopes also request
// each of their parents, so "author.profile" requests "author" as well. Empty
// tokens are ignored and paths deeper than the recursion limit are truncated.
func (m *Manager) SetRequestedScopes(scopes []string) {
	m.requested = make([]string, 0, len(scopes))
	m.requestedSet = make(map[string]struct{}, len(scopes))

	for _, scope := range scopes {
		if scope == "" {
			continue
		}

		parts := strings.Split(scope, ".")
		if len(parts) > m.recursionLimit {
			parts = parts[:m.recursionLimit]
		}

		for i := 1; i <= len(parts); i++ {
			if parts[i-1] == "" {
				break
			}

			m.addScope(strings.Join(parts[:i], "."))
		}
	}
}

func (m *Manager) addScope(path string) {
	if _, ok := m.requestedSet[path]; ok {
		return
	}

	m.requestedSet[path] = struct{}{}
	m.requested = append(m.requested, path)
}

// RequestedScopes returns the parsed scopes in the order they were first seen.
func (m *Manager) RequestedScopes() []string {
	out := make([]string, len(m.requested))
	copy(out, m.requested)

	return out
}

// IsRequested reports whether the dotted scope path was requested.
func (m *Manager) IsRequested(path string) bool {
	_, ok := m.requestedSet[path]
	return ok
}

// Serializer returns the serializer in use.
func (m *Manager) Serializer() Serializer {
	return m.serializer
}

// RecursionLimit returns the include depth limit.
func (m *Manager) RecursionLimit() int {
	return m.recursionLimit
}

// CreateData wraps resource in a root scope.
func (m *Manager) CreateData(resource Resource) *Scope {
	return &Scope{manager: m, resource: resource}
}

// Serialize renders resource into a plain structure.
func (m *Manager) Serialize(resource Resource) (any, error) {
	return m.CreateData(resource).ToStructure()
}
