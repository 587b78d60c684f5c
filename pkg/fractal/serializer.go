package fractal

import "fmt"

const (
	// SerializerArray is the name of ArraySerializer.
	SerializerArray = "array"
	// SerializerData is the name of DataSerializer.
	SerializerData = "data"
)

// Serializer decides the envelope around transformed output.
type Serializer interface {
	Item(data map[string]any) any
	Collection(data []map[string]any) any
	Null() any
}

// ArraySerializer renders items as bare maps and collections as bare slices.
type ArraySerializer struct{}

// Item returns data unchanged.
func (ArraySerializer) Item(data map[string]any) any { return data }

// Collection returns the items as a slice.
func (ArraySerializer) Collection(data []map[string]any) any {
	out := make([]any, len(data))
	for i, item := range data {
		out[i] = item
	}

	return out
}

// Null returns nil.
func (ArraySerializer) Null() any { return nil }

// DataSerializer wraps every item, collection and null under a "data" key.
type DataSerializer struct{}

// Item wraps data under "data".
func (DataSerializer) Item(data map[string]any) any {
	return map[string]any{"data": data}
}

// Collection wraps the items under "data".
func (DataSerializer) Collection(data []map[string]any) any {
	return map[string]any{"data": ArraySerializer{}.Collection(data)}
}

// Null returns {"data": nil}.
func (DataSerializer) Null() any {
	return map[string]any{"data": nil}
}

// SerializerByName returns the serializer registered under name.
func SerializerByName(name string) (Serializer, error) {
	switch name {
	case "", SerializerArray:
		return ArraySerializer{}, nil
	case SerializerData:
		return DataSerializer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSerializer, name)
	}
}
