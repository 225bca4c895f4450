package schema

import (
	"reflect"
	"sync"

	"record-loader/convert"
)

// Binder caches one schema per record type for the lifetime of a loading
// session. Schemas are derived from csv tags on first use unless one was
// registered for the type beforehand.
type Binder struct {
	mu       sync.Mutex
	registry *convert.Registry
	opts     []Option
	schemas  map[reflect.Type]any
}

// NewBinder creates a Binder drawing converters from r. A nil r gets a fresh
// registry. opts apply to every tag-derived schema.
func NewBinder(r *convert.Registry, opts ...Option) *Binder {
	if r == nil {
		r = convert.NewRegistry()
	}

	return &Binder{
		registry: r,
		opts:     opts,
		schemas:  make(map[reflect.Type]any),
	}
}

// Registry returns the converter registry shared by the bound schemas.
func (b *Binder) Registry() *convert.Registry {
	return b.registry
}

// Bind returns the schema of T, binding it on first use. Failed bindings are
// not cached; every call reports the same error.
func Bind[T any](b *Binder) (*Schema[T], error) {
	t := reflect.TypeFor[T]()

	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.schemas[t]; ok {
		return s.(*Schema[T]), nil
	}

	s, err := FromTags[T](b.registry, b.opts...)
	if err != nil {
		return nil, err
	}

	b.schemas[t] = s

	return s, nil
}

// Register installs s as the schema of T, replacing a cached one.
func Register[T any](b *Binder, s *Schema[T]) {
	if s == nil {
		panic("schema: registered schema cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.schemas[reflect.TypeFor[T]()] = s
}
