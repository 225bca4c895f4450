package convert

import (
	"errors"
	"path"
	"reflect"
	"runtime"
	"strings"

	"record-loader/utils"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
	ErrCasterSource         = errors.New("caster function must accept a single string argument")
)

var errorType = reflect.TypeFor[error]()

// Caster describes a plain parse function such as strconv.Atoi.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool
}

// ParseCaster inspects the provided function and returns a Caster if it can
// turn a cell into a value.
//
// Supports interfaces:
//   - func(text string) (dst Type)
//   - func(text string) (dst Type, bool)
//   - func(text string) (dst Type, error)
//   - func(text string) (dst Type, bool, error)
func ParseCaster(fn any) (Caster, error) {
	if fn == nil {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if src.Kind() != reflect.String {
		return Caster{}, ErrCasterSource
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Pointer && dst.Elem().Kind() == reflect.Pointer {
		return Caster{}, ErrDoublePointer
	}

	fnPC := runtime.FuncForPC(fnVal.Pointer())
	alias, name := utils.Unpack2(strings.SplitN(fnPC.Name(), ".", 2))

	caster := Caster{
		Src:          src,
		Dst:          dst,
		Name:         name,
		PackageAlias: utils.Second(path.Split(alias)),
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}
		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true
		return caster, nil
	}
}

// isError accepts error and interfaces embedding it; results must be nillable.
func isError(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.Implements(errorType)
}

// RegisterCaster installs fn as the converter for its result type.
// A false flag, a non-nil error or a panic inside fn all count as a failed conversion.
func RegisterCaster(r *Registry, fn any) error {
	caster, err := ParseCaster(fn)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[caster.Dst] = &entry{dynamic: caster.dynamic(reflect.ValueOf(fn)), custom: true}

	return nil
}

func (c Caster) dynamic(fnVal reflect.Value) Dynamic {
	return func(text string) (out reflect.Value, ok bool) {
		defer func() {
			if recover() != nil {
				out, ok = fail()
			}
		}()

		res := fnVal.Call([]reflect.Value{reflect.ValueOf(text).Convert(c.Src)})

		if c.HasBool && !res[1].Bool() {
			return fail()
		}

		if c.HasErr && !res[len(res)-1].IsNil() {
			return fail()
		}

		return res[0], true
	}
}
