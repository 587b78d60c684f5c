package fractal

// Resource wraps data together with the transformer that renders it.
type Resource interface {
	// Transformer returns the transformer bound to the resource, which may be nil.
	Transformer() Transformer

	resource()
}

// Item is a resource holding a single value.
type Item struct {
	data        any
	transformer Transformer
}

// NewItem creates an item resource.
func NewItem(data any, transformer Transformer) *Item {
	return &Item{data: data, transformer: transformer}
}

// Data returns the wrapped value.
func (i *Item) Data() any { return i.data }

// Transformer returns the transformer bound to the item.
func (i *Item) Transformer() Transformer { return i.transformer }

func (*Item) resource() {}

// Collection is a resource holding an ordered sequence of values that all use
// the same transformer.
type Collection struct {
	data        []any
	transformer Transformer
}

// NewCollection creates a collection resource.
func NewCollection(data []any, transformer Transformer) *Collection {
	return &Collection{data: data, transformer: transformer}
}

// Data returns the wrapped values.
func (c *Collection) Data() []any { return c.data }

// Len returns the number of values in the collection.
func (c *Collection) Len() int { return len(c.data) }

// Transformer returns the transformer bound to the collection.
func (c *Collection) Transformer() Transformer { return c.transformer }

func (*Collection) resource() {}

// NullResource renders as the serializer's null value.
type NullResource struct{}

// Null returns a resource with nothing to render. Includes use it when the
// related value is absent.
func Null() *NullResource { return &NullResource{} }

// Transformer always returns nil.
func (*NullResource) Transformer() Transformer { return nil }

func (*NullResource) resource() {}
