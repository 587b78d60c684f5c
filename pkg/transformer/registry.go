// Package transformer dispatches response values to the transformation rule
// registered for their type and renders them through the fractal engine,
// honouring the embeds a caller requested in the query string.
package transformer

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/ethpandaops/embedapi/pkg/container"
	"github.com/ethpandaops/embedapi/pkg/fractal"
	"github.com/ethpandaops/embedapi/pkg/observability"
	"github.com/sirupsen/logrus"
)

const (
	shapeItem       = "item"
	shapeCollection = "collection"

	statusSuccess = "success"
	statusFailed  = "failed"

	unknownKey = "none"
)

// Engine renders resources. A fresh engine is created for every
// transformation so requested scopes never leak between requests.
type Engine interface {
	SetRequestedScopes(scopes []string)
	Serialize(resource fractal.Resource) (any, error)
}

// EngineFactory creates an Engine.
type EngineFactory func() Engine

// Option configures a Registry
type Option func(*Registry)

// WithEngine replaces the default fractal engine.
func WithEngine(factory EngineFactory) Option {
	return func(r *Registry) {
		if factory != nil {
			r.newEngine = factory
		}
	}
}

// Registry maps registration keys to transformation rules
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule

	config    *Config
	container *container.Container
	newEngine EngineFactory
	log       logrus.FieldLogger
}

// NewRegistry creates a registry. A nil cfg uses DefaultConfig and a nil
// container is replaced by an empty one.
func NewRegistry(cfg *Config, c *container.Container, log logrus.FieldLogger, opts ...Option) (*Registry, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transformer configuration: %w", err)
	}

	serializer, err := fractal.SerializerByName(cfg.Serializer)
	if err != nil {
		return nil, err
	}

	if c == nil {
		c = container.New()
	}

	r := &Registry{
		rules:     make(map[string]Rule),
		config:    cfg,
		container: c,
		log:       log.WithField("component", "transformer"),
		newEngine: func() Engine {
			return fractal.NewManager(
				fractal.WithSerializer(serializer),
				fractal.WithRecursionLimit(cfg.RecursionLimit),
			)
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Register stores rule for key, replacing any earlier rule. The rule is not
// checked until a value is transformed.
func (r *Registry) Register(key string, rule Rule) *Registry {
	r.mu.Lock()
	r.rules[key] = rule
	r.mu.Unlock()

	fields := logrus.Fields{"key": key}
	if rule != nil {
		fields["kind"] = rule.Kind()
	}

	r.log.WithFields(fields).Debug("Registered transformation rule")

	return r
}

// Rule returns the rule registered for key.
func (r *Registry) Rule(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[key]

	return rule, ok
}

// Transformers returns a snapshot of the registrations.
func (r *Registry) Transformers() map[string]Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.rules)
}

// Config returns the registry configuration.
func (r *Registry) Config() Config {
	return *r.config
}

// Container returns the container passed to factory rules.
func (r *Registry) Container() *container.Container {
	return r.container
}

// IsTransformable reports whether a non-nil rule is registered for value.
func (r *Registry) IsTransformable(value any) bool {
	_, rule := r.lookup(value)
	return rule != nil
}

func (r *Registry) lookup(value any) (string, Rule) {
	key, ok := KeyOf(value)
	if !ok {
		return unknownKey, nil
	}

	rule, _ := r.Rule(key)

	return key, rule
}

// RequestedScopes parses the embeds parameter of req. A nil request yields
// nil, leaving the engine at its default of no requested scopes.
func (r *Registry) RequestedScopes(req Request) []string {
	if req == nil {
		return nil
	}

	return ParseScopes(req.Get(r.config.EmbedsKey), r.config.EmbedsSeparator)
}

// Transform renders value with its registered rule. Slices and arrays are
// rendered as collections, anything else as a single item. req may be nil.
func (r *Registry) Transform(value any, req Request) (any, error) {
	if IsSequence(value) {
		return r.TransformCollection(sequenceItems(value), req)
	}

	return r.TransformItem(value, req)
}

// TransformItem renders value as a single item.
func (r *Registry) TransformItem(value any, req Request) (any, error) {
	key, rule := r.lookup(value)

	transformer, err := r.resolve(key, rule)
	if err != nil {
		observability.RecordTransform(key, shapeItem, statusFailed, 0)
		return nil, err
	}

	engine := r.engineFor(req)

	return r.serialize(engine, key, shapeItem, fractal.NewItem(value, transformer))
}

// TransformCollection renders items as a collection using the rule of the
// first item. An empty collection renders as an empty structure.
func (r *Registry) TransformCollection(items []any, req Request) (any, error) {
	key, rule := unknownKey, Rule(nil)
	if len(items) > 0 {
		key, rule = r.lookup(items[0])
	}

	transformer, err := r.resolve(key, rule)
	if err != nil {
		observability.RecordTransform(key, shapeCollection, statusFailed, 0)
		return nil, err
	}

	engine := r.engineFor(req)

	return r.serialize(engine, key, shapeCollection, fractal.NewCollection(items, transformer))
}

// BindRequest returns a view of the registry that transforms with req. The
// registry itself holds no request state.
func (r *Registry) BindRequest(req Request) *Binding {
	return &Binding{registry: r, request: req}
}

func (r *Registry) resolve(key string, rule Rule) (fractal.Transformer, error) {
	if rule == nil {
		r.log.WithField("key", key).Debug("No transformation rule registered")
		return nil, nil
	}

	transformer, err := rule.Resolve(r.container)
	if err != nil {
		observability.RecordError("transformer", "resolve")
		r.log.WithError(err).WithFields(logrus.Fields{
			"key":  key,
			"kind": rule.Kind(),
		}).Warn("Failed to resolve transformation rule")

		return nil, err
	}

	return transformer, nil
}

func (r *Registry) engineFor(req Request) Engine {
	engine := r.newEngine()

	if scopes := r.RequestedScopes(req); scopes != nil {
		engine.SetRequestedScopes(scopes)
	}

	return engine
}

func (r *Registry) serialize(engine Engine, key, shape string, resource fractal.Resource) (any, error) {
	start := time.Now()

	out, err := engine.Serialize(resource)

	status := statusSuccess
	if err != nil {
		status = statusFailed
		observability.RecordError("transformer", "serialize")
	}

	observability.RecordTransform(key, shape, status, time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Binding is a registry view tied to one request.
type Binding struct {
	registry *Registry
	request  Request
}

// Request returns the bound request.
func (b *Binding) Request() Request { return b.request }

// RequestedScopes returns the scopes parsed from the bound request.
func (b *Binding) RequestedScopes() []string {
	return b.registry.RequestedScopes(b.request)
}

// Transform renders value using the bound request.
func (b *Binding) Transform(value any) (any, error) {
	return b.registry.Transform(value, b.request)
}

// TransformItem renders value as an item using the bound request.
func (b *Binding) TransformItem(value any) (any, error) {
	return b.registry.TransformItem(value, b.request)
}

// TransformCollection renders items as a collection using the bound request.
func (b *Binding) TransformCollection(items []any) (any, error) {
	return b.registry.TransformCollection(items, b.request)
}
