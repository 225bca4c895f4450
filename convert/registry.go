package convert

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"record-loader/options"
)

// ErrUnsupportedType is returned when no converter can be built for a type.
var ErrUnsupportedType = errors.New("no text converter for type")

// Func parses text into V. The boolean result is false when the text is not
// a valid V; the returned value is then meaningless.
type Func[V any] func(text string) (V, bool)

// Dynamic is the reflection-level form of Func, used when the target type is
// only known at run time.
type Dynamic func(text string) (reflect.Value, bool)

type entry struct {
	dynamic Dynamic
	typed   any // Func[V] for the entry type, built on first For
	custom  bool
}

// Registry caches one converter per target type. Entries are created on first
// request and never evicted.
type Registry struct {
	mu         sync.Mutex
	categories options.CategoryEnum
	entries    map[reflect.Type]*entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithCategories limits the textual forms accepted by built-in converters.
func WithCategories(categories options.CategoryEnum) Option {
	return func(r *Registry) {
		r.categories = categories
	}
}

// NewRegistry creates an empty Registry accepting all text categories by default.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		categories: options.CategoryAll,
		entries:    make(map[reflect.Type]*entry),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Categories returns the text categories enabled for built-in converters.
func (r *Registry) Categories() options.CategoryEnum {
	return r.categories
}

// Lookup returns the converter for t, building and caching it on first use.
func (r *Registry) Lookup(t reflect.Type) (Dynamic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.entryLocked(t)
	if err != nil {
		return nil, err
	}

	return e.dynamic, nil
}

// Len returns the number of cached converters.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

func (r *Registry) entryLocked(t reflect.Type) (*entry, error) {
	if e, ok := r.entries[t]; ok {
		return e, nil
	}

	dynamic, err := r.build(t)
	if err != nil {
		return nil, err
	}

	e := &entry{dynamic: dynamic}
	r.entries[t] = e

	return e, nil
}

// For returns the typed converter for V, building and caching it on first use.
// Repeated calls return the same converter.
func For[V any](r *Registry) (Func[V], error) {
	t := reflect.TypeFor[V]()

	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.entryLocked(t)
	if err != nil {
		return nil, err
	}

	if e.typed == nil {
		fn, ok := builtin[V](r.categories)
		if !ok || e.custom {
			fn = fromDynamic[V](e.dynamic)
		}
		e.typed = fn
	}

	return e.typed.(Func[V]), nil
}

// Register installs fn as the converter for V, replacing any cached one.
// Schemas built earlier keep the converter they captured.
func Register[V any](r *Registry, fn Func[V]) {
	if fn == nil {
		panic("convert: registered converter cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[reflect.TypeFor[V]()] = &entry{
		dynamic: toDynamic(fn),
		typed:   fn,
		custom:  true,
	}
}

func fromDynamic[V any](dynamic Dynamic) Func[V] {
	return func(text string) (V, bool) {
		v, ok := dynamic(text)
		if !ok {
			var zero V
			return zero, false
		}

		return v.Interface().(V), true
	}
}

func toDynamic[V any](fn Func[V]) Dynamic {
	t := reflect.TypeFor[V]()

	return func(text string) (reflect.Value, bool) {
		v, ok := fn(text)
		if !ok {
			return reflect.Value{}, false
		}

		// reflect.ValueOf loses the static type for interface-typed V
		out := reflect.New(t).Elem()
		out.Set(reflect.ValueOf(&v).Elem())

		return out, true
	}
}

func unsupported(t reflect.Type) error {
	return fmt.Errorf("%w %s", ErrUnsupportedType, t)
}
