package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"record-loader/primitive"
)

func Example() {
	type Element string
	type Rank uint8
	type Ratio float64
	type Stats struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeFor[int]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[string]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[Element]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[Rank]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[time.Duration]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[time.Time]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[Ratio]()))
	fmt.Println(primitive.FromReflectType(reflect.TypeFor[Stats]()))
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindEnum(0)
	// KindEnum(0)
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.KindInt8.IsSigned())
	assert.True(t, primitive.KindUint16.IsUnsigned())
	assert.True(t, primitive.KindFloat32.IsFloat())
	assert.True(t, primitive.KindUint64.IsNumber())
	assert.False(t, primitive.KindBool.IsNumber())
	assert.False(t, primitive.KindString.IsInteger())

	assert.Equal(t, 8, primitive.KindInt8.Bits())
	assert.Equal(t, 32, primitive.KindFloat32.Bits())
	assert.Equal(t, 64, primitive.KindUint64.Bits())
	assert.Panics(t, func() { primitive.KindString.Bits() })
}

func TestUnderlying(t *testing.T) {
	t.Parallel()

	type Element string
	type Tier int16

	assert.Equal(t, primitive.KindString, primitive.Underlying(reflect.TypeFor[Element]()))
	assert.Equal(t, primitive.KindInt16, primitive.Underlying(reflect.TypeFor[Tier]()))
	assert.Equal(t, primitive.KindBool, primitive.Underlying(reflect.TypeFor[bool]()))
}
