package fractal

import "errors"

var (
	// ErrNoTransformer is returned when a non-empty resource has no transformer bound.
	ErrNoTransformer = errors.New("no transformer bound to resource")
	// ErrUnsupportedResource is returned for resource implementations the manager cannot walk.
	ErrUnsupportedResource = errors.New("unsupported resource")
	// ErrUnknownSerializer is returned when a serializer name is not recognised.
	ErrUnknownSerializer = errors.New("unknown serializer")
)
