package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	"record-loader/convert"
	"record-loader/internal/diagnostic"
)

// TagName is the struct tag holding column declarations:
//
//	Name string `csv:"0"`
//	HP   int    `csv:"1,default=100"`
const TagName = "csv"

const defaultOption = "default="

// ColumnSpec declares one column by field name. Default is cell text
// converted at bind time; nil means the zero value.
type ColumnSpec struct {
	Index   int
	Field   string
	Default *string
}

// Option configures schemas derived from tags or specs.
type Option func(*config)

type config struct {
	observer func(Failure)
}

// WithFailureObserver registers an observer called for every cell that falls
// back to its default.
func WithFailureObserver(fn func(Failure)) Option {
	return func(c *config) {
		c.observer = fn
	}
}

// ParseTag parses the value of a csv struct tag. The second result is false
// for "-" and empty tags.
func ParseTag(tag string) (spec ColumnSpec, ok bool, err error) {
	if tag == "" || tag == "-" {
		return ColumnSpec{}, false, nil
	}

	indexText, rest, hasRest := strings.Cut(tag, ",")

	index, err := strconv.Atoi(strings.TrimSpace(indexText))
	if err != nil {
		return ColumnSpec{}, false, fmt.Errorf("%w: %q", ErrMalformedTag, tag)
	}

	spec.Index = index

	if hasRest {
		def, found := strings.CutPrefix(strings.TrimLeft(rest, " \t"), defaultOption)
		if !found {
			return ColumnSpec{}, false, fmt.Errorf("%w: unknown option in %q", ErrMalformedTag, tag)
		}

		spec.Default = &def
	}

	return spec, true, nil
}

// TagSpecs lists the column specs declared by csv tags on T, descending into
// embedded structs. Both exported and unexported fields are considered.
func TagSpecs[T any]() ([]ColumnSpec, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, &BindingError{Type: rt.String(), Err: ErrNotStruct}
	}

	var diags diagnostic.Diagnostics

	specs := tagSpecs(rt, rt, "", &diags)

	return specs, diags.Error()
}

func tagSpecs(root, rt reflect.Type, prefix string, diags *diagnostic.Diagnostics) []ColumnSpec {
	var specs []ColumnSpec

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := prefix + sf.Name

		tag, tagged := sf.Tag.Lookup(TagName)
		if !tagged {
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				specs = append(specs, tagSpecs(root, sf.Type, name+".", diags)...)
			}
			continue
		}

		spec, ok, err := ParseTag(tag)
		if err != nil {
			diags.AddError(diagnostic.CodeMalformedTag, &BindingError{
				Type:   root.String(),
				Member: name,
				Column: -1,
				Err:    err,
			}, root.String(), name)
			continue
		}

		if !ok {
			continue
		}

		spec.Field = name
		specs = append(specs, spec)
	}

	return specs
}

// FromTags binds T using its csv struct tags.
func FromTags[T any](r *convert.Registry, opts ...Option) (*Schema[T], error) {
	specs, err := TagSpecs[T]()
	if err != nil {
		return nil, err
	}

	return FromSpecs[T](r, specs, opts...)
}

// FromSpecs binds T using column specs that name its fields. Nested fields
// of embedded structs are written as "Embedded.Field".
func FromSpecs[T any](r *convert.Registry, specs []ColumnSpec, opts ...Option) (*Schema[T], error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, &BindingError{Type: rt.String(), Err: ErrNotStruct}
	}

	b := NewBuilder[T](r).OnConvertFailed(cfg.observer)

	for _, spec := range specs {
		bindDynamic(b, rt, spec)
	}

	return b.Build()
}

func bindDynamic[T any](b *Builder[T], rt reflect.Type, spec ColumnSpec) {
	if spec.Index < 0 {
		b.fail(diagnostic.CodeNegativeColumn, spec.Field, spec.Index, ErrNegativeColumn)
		return
	}

	path, ft, ok := fieldPath(rt, spec.Field)
	if !ok {
		b.fail(diagnostic.CodeUnknownField, spec.Field, spec.Index, ErrUnknownField)
		return
	}

	conv, err := b.registry.Lookup(ft)
	if err != nil {
		b.fail(diagnostic.CodeUnsupportedType, spec.Field, spec.Index, err)
		return
	}

	def := reflect.Zero(ft)
	if spec.Default != nil {
		v, ok := conv(*spec.Default)
		if !ok {
			b.fail(diagnostic.CodeBadDefault, spec.Field, spec.Index, fmt.Errorf("%w: %q", ErrBadDefault, *spec.Default))
			return
		}

		def = v
	}

	binding := Binding[T]{
		Index:      spec.Index,
		Member:     spec.Field,
		Type:       ft,
		HasDefault: spec.Default != nil,
		set: func(rec *T, raw string) bool {
			f := settable(rec, path)

			v, ok := conv(raw)
			if !ok {
				f.Set(def)
				return false
			}

			f.Set(v)
			return true
		},
		reset: func(rec *T) {
			settable(rec, path).Set(def)
		},
	}

	if binding.HasDefault {
		binding.Default = def.Interface()
	}

	b.bindings = append(b.bindings, binding)
}

// fieldPath resolves a dotted field name to its index path. Embedded pointers
// are rejected since records are populated without allocating them.
func fieldPath(rt reflect.Type, name string) ([]int, reflect.Type, bool) {
	var path []int

	cur := rt
	for _, part := range strings.Split(name, ".") {
		if cur.Kind() != reflect.Struct {
			return nil, nil, false
		}

		sf, ok := cur.FieldByName(part)
		if !ok {
			return nil, nil, false
		}

		// promoted fields carry the full index through embedded structs
		walk := cur
		for _, i := range sf.Index[:len(sf.Index)-1] {
			walk = walk.Field(i).Type
			if walk.Kind() != reflect.Struct {
				return nil, nil, false
			}
		}

		path = append(path, sf.Index...)
		cur = sf.Type
	}

	return path, cur, true
}

// settable returns the field at path inside rec, writable even when unexported.
func settable[T any](rec *T, path []int) reflect.Value {
	f := reflect.ValueOf(rec).Elem().FieldByIndex(path)
	if f.CanSet() {
		return f
	}

	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}
