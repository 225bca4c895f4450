package record

import (
	"record-loader/schema"
	"record-loader/source"
)

// Loader is a loading session: it binds each record type once and reads
// tables through a source provider.
type Loader struct {
	provider source.Provider
	binder   *schema.Binder
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithBinder shares b, and the schemas registered on it, with the loader.
func WithBinder(b *schema.Binder) LoaderOption {
	return func(l *Loader) {
		l.binder = b
	}
}

// NewLoader creates a loader reading tables from p.
func NewLoader(p source.Provider, opts ...LoaderOption) *Loader {
	l := &Loader{provider: p}

	for _, opt := range opts {
		opt(l)
	}

	if l.binder == nil {
		l.binder = schema.NewBinder(nil)
	}

	return l
}

// Binder returns the binder caching the session schemas.
func (l *Loader) Binder() *schema.Binder {
	return l.binder
}

// Open binds T and opens a stream over the table at path. Binding errors are
// reported before the source is touched; source errors are returned as is.
func Open[T any](l *Loader, path string, skipFirstLine bool) (*Stream[T], error) {
	s, err := schema.Bind[T](l.binder)
	if err != nil {
		return nil, err
	}

	text, err := l.provider.Load(path)
	if err != nil {
		return nil, err
	}

	return OpenText(s, text, skipFirstLine), nil
}

// LoadList reads the whole table at path into a new list.
func LoadList[T any](l *Loader, path string, skipFirstLine bool) (*List[T], error) {
	s, err := Open[T](l, path, skipFirstLine)
	if err != nil {
		return nil, err
	}

	return NewListFrom(s)
}
