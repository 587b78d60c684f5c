package transformer

import (
	"fmt"
	"reflect"
)

// maxPointerDepth bounds how many pointers KeyOf follows.
const maxPointerDepth = 32

// Keyer is implemented by values that name their own registration key.
type Keyer interface {
	TransformKey() string
}

// KeyOf derives the registration key for value. Sequences use their first
// element; Keyer values name themselves; structs and maps use their
// type name with pointers removed; other values are used literally. The
// boolean is false when no key can be derived, such as for nil or an empty
// sequence.
func KeyOf(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map:
		if rv.IsNil() {
			return "", false
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return "", false
	}

	// Sequences are keyed by their first element even when the sequence type
	// names itself, matching how Transform renders them.
	if IsSequence(value) {
		if rv.Len() == 0 {
			return "", false
		}

		return KeyOf(rv.Index(0).Interface())
	}

	if keyer, ok := value.(Keyer); ok {
		return keyer.TransformKey(), true
	}

	for depth := 0; rv.Kind() == reflect.Pointer; depth++ {
		// Self-referencing pointer types never reach a non-pointer.
		if rv.IsNil() || depth == maxPointerDepth {
			return "", false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		return rv.Type().String(), true
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		return "", false
	default:
		return fmt.Sprint(rv.Interface()), true
	}
}

// IsSequence reports whether value is rendered as a collection: any slice or
// array except byte slices.
func IsSequence(value any) bool {
	if value == nil {
		return false
	}

	t := reflect.TypeOf(value)
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}

// Items copies a typed slice into the []any form collections take.
func Items[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

func sequenceItems(value any) []any {
	rv := reflect.ValueOf(value)
	out := make([]any, rv.Len())

	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out
}
