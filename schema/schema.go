package schema

import (
	"reflect"
	"slices"
)

// Failure describes a cell that did not convert. The bound member received
// Default instead.
type Failure struct {
	Type    string
	Member  string
	Column  int
	Raw     string
	Default any
}

// Binding ties one column index to one member of T.
type Binding[T any] struct {
	Index      int
	Member     string
	Type       reflect.Type
	HasDefault bool
	Default    any // configured default, for inspection only

	typeName string
	set      func(rec *T, raw string) bool
	reset    func(rec *T)
	observer func(Failure)
}

// Apply converts raw and stores it into the member of rec. When raw does not
// convert, the configured default (or the zero value) is stored instead.
func (b Binding[T]) Apply(rec *T, raw string) {
	if b.set(rec, raw) || b.observer == nil {
		return
	}

	b.observer(Failure{
		Type:    b.typeName,
		Member:  b.Member,
		Column:  b.Index,
		Raw:     raw,
		Default: b.Default,
	})
}

// Schema is the immutable column binding table of one record type.
type Schema[T any] struct {
	typeName string
	bindings []Binding[T] // ascending by Index
	defaults []int        // positions in bindings with a configured default
	newFn    func() *T
}

func newSchema[T any](typeName string, bindings []Binding[T], newFn func() *T) *Schema[T] {
	bindings = slices.Clone(bindings)
	slices.SortStableFunc(bindings, func(a, b Binding[T]) int { return a.Index - b.Index })

	s := &Schema[T]{
		typeName: typeName,
		bindings: bindings,
		newFn:    newFn,
	}

	for i, b := range bindings {
		if b.HasDefault {
			s.defaults = append(s.defaults, i)
		}
	}

	return s
}

// TypeName returns the name of the bound record type.
func (s *Schema[T]) TypeName() string {
	return s.typeName
}

// Len returns the number of bound columns.
func (s *Schema[T]) Len() int {
	return len(s.bindings)
}

// Columns returns the bound column indexes in ascending order.
func (s *Schema[T]) Columns() []int {
	cols := make([]int, len(s.bindings))
	for i, b := range s.bindings {
		cols[i] = b.Index
	}

	return cols
}

// MaxColumn returns the highest bound column index, or -1 for an empty schema.
func (s *Schema[T]) MaxColumn() int {
	if len(s.bindings) == 0 {
		return -1
	}

	return s.bindings[len(s.bindings)-1].Index
}

// Binding returns the binding of column index.
func (s *Schema[T]) Binding(index int) (Binding[T], bool) {
	i, found := slices.BinarySearchFunc(s.bindings, index, func(b Binding[T], index int) int {
		return b.Index - index
	})
	if !found {
		return Binding[T]{}, false
	}

	return s.bindings[i], true
}

// Bindings returns a copy of all bindings ordered by column index.
func (s *Schema[T]) Bindings() []Binding[T] {
	return slices.Clone(s.bindings)
}

// NewRecord constructs a default-initialized record: T is created by the
// configured constructor (or new) and every member with a configured default
// receives it.
func (s *Schema[T]) NewRecord() *T {
	var rec *T
	if s.newFn != nil {
		rec = s.newFn()
	} else {
		rec = new(T)
	}

	for _, i := range s.defaults {
		s.bindings[i].reset(rec)
	}

	return rec
}

// Populate applies the bound columns present in fields to rec. Fields without
// a binding are ignored and bound columns past the end of fields are left
// untouched.
func (s *Schema[T]) Populate(rec *T, fields []string) {
	for _, b := range s.bindings {
		if b.Index >= len(fields) {
			return
		}

		b.Apply(rec, fields[b.Index])
	}
}

// Decode returns a new record populated from fields.
func (s *Schema[T]) Decode(fields []string) *T {
	rec := s.NewRecord()
	s.Populate(rec, fields)

	return rec
}

// Without returns a copy of the schema with the binding of column index removed.
func (s *Schema[T]) Without(index int) *Schema[T] {
	kept := make([]Binding[T], 0, len(s.bindings))
	for _, b := range s.bindings {
		if b.Index != index {
			kept = append(kept, b)
		}
	}

	return newSchema(s.typeName, kept, s.newFn)
}
