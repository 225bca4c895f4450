package convert

import (
	"encoding"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"record-loader/options"
	"record-loader/primitive"
)

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	validatorType       = reflect.TypeFor[interface{ IsValid() bool }]()
)

var datetimeLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly}

// Unix timestamps are limited to the years RFC 3339 can write.
var (
	minTimestamp = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxTimestamp = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

func fail() (reflect.Value, bool) { return reflect.Value{}, false }

// build creates the converter for t. Callers hold r.mu.
func (r *Registry) build(t reflect.Type) (Dynamic, error) {
	if t == nil {
		return nil, unsupported(t)
	}

	kind := primitive.FromReflectType(t)

	switch {
	case kind == primitive.KindTime || kind == primitive.KindDuration:
		return r.buildKind(t, kind)

	case reflect.PointerTo(t).Implements(textUnmarshalerType):
		return textUnmarshal(t), nil

	case t.Kind() == reflect.Pointer:
		if t.Elem().Kind() == reflect.Pointer {
			return nil, unsupported(t)
		}

		elem, err := r.entryLocked(t.Elem())
		if err != nil {
			return nil, unsupported(t)
		}

		return pointerTo(t.Elem(), elem.dynamic), nil

	case kind != 0:
		return r.buildKind(t, kind)
	}

	return nil, unsupported(t)
}

func (r *Registry) buildKind(t reflect.Type, kind primitive.KindEnum) (Dynamic, error) {
	cat := r.categories
	under := primitive.Underlying(t)

	var fn Dynamic

	switch {
	case under.IsSigned():
		if !cat.Has(options.CategoryTextNumber) {
			return nil, unsupported(t)
		}

		bits := under.Bits()
		fn = func(text string) (reflect.Value, bool) {
			n, ok := parseSigned(text, bits)
			if !ok {
				return fail()
			}

			v := reflect.New(t).Elem()
			v.SetInt(n)

			return v, true
		}

	case under.IsUnsigned():
		if !cat.Has(options.CategoryTextNumber) {
			return nil, unsupported(t)
		}

		bits := under.Bits()
		fn = func(text string) (reflect.Value, bool) {
			n, ok := parseUnsigned(text, bits)
			if !ok {
				return fail()
			}

			v := reflect.New(t).Elem()
			v.SetUint(n)

			return v, true
		}

	case under.IsFloat():
		if !cat.Has(options.CategoryTextNumber) {
			return nil, unsupported(t)
		}

		bits := under.Bits()
		fn = func(text string) (reflect.Value, bool) {
			f, ok := parseFloat(text, bits)
			if !ok {
				return fail()
			}

			return reflect.ValueOf(f).Convert(t), true
		}

	case under == primitive.KindBool:
		fn = func(text string) (reflect.Value, bool) {
			b, ok := parseBool(text, cat)
			if !ok {
				return fail()
			}

			return reflect.ValueOf(b), true
		}

	case under == primitive.KindString:
		fn = func(text string) (reflect.Value, bool) {
			v := reflect.New(t).Elem()
			v.SetString(strings.Clone(text))

			return v, true
		}

	case kind == primitive.KindTime:
		if !cat.Has(options.CategoryDatetime) && !cat.Has(options.CategoryTimestamp) {
			return nil, unsupported(t)
		}

		fn = func(text string) (reflect.Value, bool) {
			tm, ok := parseTime(text, cat)
			if !ok {
				return fail()
			}

			return reflect.ValueOf(tm), true
		}

	case kind == primitive.KindDuration:
		if !cat.Has(options.CategoryDuration) && !cat.Has(options.CategorySeconds) {
			return nil, unsupported(t)
		}

		fn = func(text string) (reflect.Value, bool) {
			d, ok := parseDuration(text, cat)
			if !ok {
				return fail()
			}

			return reflect.ValueOf(d), true
		}

	default:
		return nil, unsupported(t)
	}

	if kind != primitive.KindPrimitiveEnum {
		return fn, nil
	}

	if under == primitive.KindString && !cat.Has(options.CategoryEnumString) {
		return nil, unsupported(t)
	}

	if !t.Implements(validatorType) {
		return fn, nil
	}

	return func(text string) (reflect.Value, bool) {
		v, ok := fn(text)
		if !ok || !v.Interface().(interface{ IsValid() bool }).IsValid() {
			return fail()
		}

		return v, true
	}, nil
}

func textUnmarshal(t reflect.Type) Dynamic {
	return func(text string) (reflect.Value, bool) {
		ptr := reflect.New(t)

		err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
		if err != nil {
			return fail()
		}

		return ptr.Elem(), true
	}
}

func pointerTo(elem reflect.Type, convert Dynamic) Dynamic {
	return func(text string) (reflect.Value, bool) {
		v, ok := convert(text)
		if !ok {
			return fail()
		}

		ptr := reflect.New(elem)
		ptr.Elem().Set(v)

		return ptr, true
	}
}

// builtin returns a converter free of reflection when V is one of the exact
// primitive types; named types and everything else go through Dynamic.
func builtin[V any](cat options.CategoryEnum) (Func[V], bool) {
	var fn any

	switch any(*new(V)).(type) {
	default:
		return nil, false
	case int:
		fn = signed[int](primitive.KindInt.Bits())
	case int8:
		fn = signed[int8](8)
	case int16:
		fn = signed[int16](16)
	case int32:
		fn = signed[int32](32)
	case int64:
		fn = signed[int64](64)
	case uint:
		fn = unsigned[uint](primitive.KindUint.Bits())
	case uint8:
		fn = unsigned[uint8](8)
	case uint16:
		fn = unsigned[uint16](16)
	case uint32:
		fn = unsigned[uint32](32)
	case uint64:
		fn = unsigned[uint64](64)
	case float32:
		fn = float[float32](32)
	case float64:
		fn = float[float64](64)
	case string:
		// copied so records do not pin the whole source text
		fn = Func[string](func(text string) (string, bool) { return strings.Clone(text), true })
	case bool:
		fn = Func[bool](func(text string) (bool, bool) { return parseBool(text, cat) })
	case time.Time:
		fn = Func[time.Time](func(text string) (time.Time, bool) { return parseTime(text, cat) })
	case time.Duration:
		fn = Func[time.Duration](func(text string) (time.Duration, bool) { return parseDuration(text, cat) })
	}

	return fn.(Func[V]), true
}

func signed[V ~int | ~int8 | ~int16 | ~int32 | ~int64](bits int) Func[V] {
	return func(text string) (V, bool) {
		n, ok := parseSigned(text, bits)
		return V(n), ok
	}
}

func unsigned[V ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) Func[V] {
	return func(text string) (V, bool) {
		n, ok := parseUnsigned(text, bits)
		return V(n), ok
	}
}

func float[V ~float32 | ~float64](bits int) Func[V] {
	return func(text string) (V, bool) {
		f, ok := parseFloat(text, bits)
		return V(f), ok
	}
}

func parseSigned(text string, bits int) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, bits)
	return n, err == nil
}

func parseUnsigned(text string, bits int) (uint64, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, bits)
	return n, err == nil
}

func parseFloat(text string, bits int) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), bits)
	return f, err == nil
}

func parseBool(text string, cat options.CategoryEnum) (bool, bool) {
	text = strings.TrimSpace(text)

	b, err := strconv.ParseBool(text)
	if err == nil {
		return b, true
	}

	if !cat.Has(options.CategoryTextualBool) {
		return false, false
	}

	switch strings.ToLower(text) {
	case "yes", "y", "on":
		return true, true
	case "no", "n", "off":
		return false, true
	}

	return false, false
}

func parseTime(text string, cat options.CategoryEnum) (time.Time, bool) {
	text = strings.TrimSpace(text)

	if cat.Has(options.CategoryDatetime) {
		for _, layout := range datetimeLayouts {
			tm, err := time.Parse(layout, text)
			if err == nil {
				return tm, true
			}
		}
	}

	if cat.Has(options.CategoryTimestamp) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil && n >= minTimestamp && n <= maxTimestamp {
			return time.Unix(n, 0).UTC(), true
		}
	}

	return time.Time{}, false
}

func parseDuration(text string, cat options.CategoryEnum) (time.Duration, bool) {
	text = strings.TrimSpace(text)

	if cat.Has(options.CategoryDuration) {
		d, err := time.ParseDuration(text)
		if err == nil {
			return d, true
		}
	}

	if cat.Has(options.CategorySeconds) {
		f, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return secondsToDuration(f)
		}
	}

	return 0, false
}

// secondsToDuration fails for NaN, infinities and values outside the int64
// nanosecond range instead of wrapping around.
func secondsToDuration(seconds float64) (time.Duration, bool) {
	ns := seconds * float64(time.Second)

	// float64(math.MaxInt64) rounds up to 2^63, itself out of range
	if math.IsNaN(ns) || ns < math.MinInt64 || ns >= math.MaxInt64 {
		return 0, false
	}

	return time.Duration(ns), true
}
