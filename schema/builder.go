package schema

import (
	"errors"
	"fmt"
	"reflect"

	"record-loader/convert"
	"record-loader/internal/diagnostic"
)

// Builder declares the columns of T one by one. Errors are collected and
// reported together by Build.
type Builder[T any] struct {
	registry *convert.Registry
	typeName string
	bindings []Binding[T]
	diags    diagnostic.Diagnostics
	newFn    func() *T
	observer func(Failure)
}

// NewBuilder starts a schema for T whose converters come from r.
func NewBuilder[T any](r *convert.Registry) *Builder[T] {
	return &Builder[T]{
		registry: r,
		typeName: reflect.TypeFor[T]().String(),
	}
}

// New sets the constructor used for every record. The default is new(T).
func (b *Builder[T]) New(fn func() *T) *Builder[T] {
	b.newFn = fn
	return b
}

// OnConvertFailed registers an observer called for every cell that falls
// back to its default.
func (b *Builder[T]) OnConvertFailed(fn func(Failure)) *Builder[T] {
	b.observer = fn
	return b
}

// Column binds column index to the member returned by field. Cells that do not
// convert leave the member at its zero value.
func Column[T, V any](b *Builder[T], index int, member string, field func(*T) *V) *Builder[T] {
	var zero V
	return bindTyped(b, index, member, field, zero, false)
}

// ColumnDefault binds column index like Column, falling back to def.
func ColumnDefault[T, V any](b *Builder[T], index int, member string, field func(*T) *V, def V) *Builder[T] {
	return bindTyped(b, index, member, field, def, true)
}

// ColumnDefaultText binds column index like ColumnDefault, with the default
// given as cell text and converted once, now.
func ColumnDefaultText[T, V any](b *Builder[T], index int, member string, field func(*T) *V, def string) *Builder[T] {
	conv, err := convert.For[V](b.registry)
	if err != nil {
		b.fail(diagnostic.CodeUnsupportedType, member, index, err)
		return b
	}

	v, ok := conv(def)
	if !ok {
		b.fail(diagnostic.CodeBadDefault, member, index, fmt.Errorf("%w: %q", ErrBadDefault, def))
		return b
	}

	return bindTyped(b, index, member, field, v, true)
}

func bindTyped[T, V any](b *Builder[T], index int, member string, field func(*T) *V, def V, hasDefault bool) *Builder[T] {
	if index < 0 {
		b.fail(diagnostic.CodeNegativeColumn, member, index, ErrNegativeColumn)
		return b
	}

	conv, err := convert.For[V](b.registry)
	if err != nil {
		b.fail(diagnostic.CodeUnsupportedType, member, index, err)
		return b
	}

	binding := Binding[T]{
		Index:      index,
		Member:     member,
		Type:       reflect.TypeFor[V](),
		HasDefault: hasDefault,
		set: func(rec *T, raw string) bool {
			p := field(rec)

			v, ok := conv(raw)
			if !ok {
				*p = def
				return false
			}

			*p = v
			return true
		},
		reset: func(rec *T) {
			*field(rec) = def
		},
	}

	if hasDefault {
		binding.Default = def
	}

	b.bindings = append(b.bindings, binding)

	return b
}

func (b *Builder[T]) fail(code, member string, index int, err error) {
	b.diags.AddError(code, b.bindingError(member, index, err), b.typeName, member)
}

func (b *Builder[T]) bindingError(member string, index int, err error) *BindingError {
	return &BindingError{
		Type:   b.typeName,
		Member: member,
		Column: index,
		Err:    err,
	}
}

// Build checks the declared columns and returns the schema. Duplicate column
// indexes are rejected: the first declaration wins the report, every later
// one is an error.
func (b *Builder[T]) Build() (*Schema[T], error) {
	var diags diagnostic.Diagnostics
	diags.Merge(b.diags)

	seen := make(map[int]string, len(b.bindings))
	for _, binding := range b.bindings {
		first, dup := seen[binding.Index]
		if !dup {
			seen[binding.Index] = binding.Member
			continue
		}

		err := fmt.Errorf("%w: already bound to %s", ErrDuplicateColumn, first)
		diags.AddError(diagnostic.CodeDuplicateColumn, b.bindingError(binding.Member, binding.Index, err),
			b.typeName, binding.Member)
	}

	if err := diags.Error(); err != nil {
		return nil, err
	}

	bindings := make([]Binding[T], len(b.bindings))
	for i, binding := range b.bindings {
		binding.typeName = b.typeName
		binding.observer = b.observer
		bindings[i] = binding
	}

	return newSchema(b.typeName, bindings, b.newFn), nil
}

// Diagnostics returns the problems collected so far.
func (b *Builder[T]) Diagnostics() diagnostic.Diagnostics {
	return b.diags
}

// AsBindingErrors unpacks the binding errors contained in err.
func AsBindingErrors(err error) []*BindingError {
	switch e := err.(type) {
	case nil:
		return nil
	case *BindingError:
		return []*BindingError{e}
	case interface{ Unwrap() []error }:
		var out []*BindingError
		for _, inner := range e.Unwrap() {
			out = append(out, AsBindingErrors(inner)...)
		}

		return out
	}

	return AsBindingErrors(errors.Unwrap(err))
}
