package seqlock

import (
	"errors"
	"reflect"
	"testing"
	"unsafe"

	"github.com/zeebo/assert"
)

func TestCheckTrivial(t *testing.T) {
	type inner struct {
		A [4]uint16
		B complex64
	}
	type nested struct {
		In  [2]inner
		Ptr *int
	}

	for _, typ := range []reflect.Type{
		reflect.TypeOf((*bool)(nil)).Elem(),
		reflect.TypeOf((*uintptr)(nil)).Elem(),
		reflect.TypeOf((*float32)(nil)).Elem(),
		reflect.TypeOf((*[3]int64)(nil)).Elem(),
		reflect.TypeOf((*inner)(nil)).Elem(),
		reflect.TypeOf((*testData)(nil)).Elem(),
		reflect.TypeOf((*struct{})(nil)).Elem(),
	} {
		assert.NoError(t, checkTrivial(typ))
	}

	for _, typ := range []reflect.Type{
		reflect.TypeOf((**int)(nil)).Elem(),
		reflect.TypeOf((*unsafe.Pointer)(nil)).Elem(),
		reflect.TypeOf((*string)(nil)).Elem(),
		reflect.TypeOf((*[]byte)(nil)).Elem(),
		reflect.TypeOf((*map[int]int)(nil)).Elem(),
		reflect.TypeOf((*chan int)(nil)).Elem(),
		reflect.TypeOf((*func())(nil)).Elem(),
		reflect.TypeOf((*error)(nil)).Elem(),
		reflect.TypeOf((*[2]string)(nil)).Elem(),
		reflect.TypeOf((*nested)(nil)).Elem(),
	} {
		err := checkTrivial(typ)
		assert.Error(t, err)
		assert.That(t, errors.Is(err, ErrNotTrivial))
	}
}

func TestCheckTrivialPath(t *testing.T) {
	type nested struct {
		N   int
		Ptr *int
	}
	type outer struct {
		Inner [2]nested
	}

	err := checkTrivial(reflect.TypeOf((*outer)(nil)).Elem())
	assert.Error(t, err)
	assert.Equal(t, err.Error(), "seqlock: type is not safely byte-copyable: seqlock.outer.Inner[].Ptr (ptr)")
}
