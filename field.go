package seqlock

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Field selects one member of type F inside a T by its byte offset. It lets
// readers and writers touch only that member's bytes. Fields must be built
// with NewField or MustField; using the zero Field panics.
type Field[T, F any] struct {
	off uintptr
	ok  bool
}

// NewField builds a Field from an accessor returning the address of a
// member inside the *T it is given, for example
//
//	seqlock.NewField(func(v *Config) *int32 { return &v.Limit })
//
// The accessor is called once on a probe value and must not retain it.
func NewField[T, F any](sel func(*T) *F) (Field[T, F], error) {
	if err := checkTrivial(reflect.TypeOf((*F)(nil)).Elem()); err != nil {
		return Field[T, F]{}, err
	}

	var probe T
	base := uintptr(unsafe.Pointer(&probe))
	ptr := uintptr(unsafe.Pointer(sel(&probe)))
	size := unsafe.Sizeof(*new(F))

	if ptr < base || ptr-base+size > unsafe.Sizeof(probe) {
		return Field[T, F]{}, fmt.Errorf("%w: %s in %s",
			ErrFieldRange, reflect.TypeOf((*F)(nil)).Elem(), reflect.TypeOf((*T)(nil)).Elem())
	}
	return Field[T, F]{off: ptr - base, ok: true}, nil
}

// MustField is like NewField but panics on error.
func MustField[T, F any](sel func(*T) *F) Field[T, F] {
	f, err := NewField(sel)
	if err != nil {
		panic(err)
	}
	return f
}

// offset returns the byte offset of the member, panicking if the Field was
// not built by NewField.
func (f Field[T, F]) offset() uintptr {
	if !f.ok {
		panic("seqlock: use of Field not built by NewField")
	}
	return f.off
}

// Offset returns the byte offset of the member within T.
func (f Field[T, F]) Offset() uintptr { return f.off }

// Size returns the byte size of the member.
func (f Field[T, F]) Size() uintptr { return unsafe.Sizeof(*new(F)) }

// Load returns a validated snapshot of just this member.
func (f Field[T, F]) Load(l *SeqLock[T]) (v F) {
	off := f.offset()
	l.readSection(func() {
		v = atomicRead[F](l.words, off)
	})
	return v
}

// Get reads the member through a held Writer, observing anything the
// writer has already stored.
func (f Field[T, F]) Get(w *Writer[T]) F {
	return atomicRead[F](w.held().words, f.offset())
}

// Set stores v into the member through a held Writer. Readers do not see
// it until the Writer is released.
func (f Field[T, F]) Set(w *Writer[T], v F) {
	atomicWrite(w.held().words, f.offset(), v)
}

// Into binds dst as the destination of this member for LoadMembers.
func (f Field[T, F]) Into(dst *F) Target[T] {
	return target[T, F]{off: f.offset(), dst: dst}
}

// Target is a member bound to a destination, filled in by LoadMembers.
type Target[T any] interface {
	load(l *SeqLock[T])
}

type target[T, F any] struct {
	off uintptr
	dst *F
}

func (t target[T, F]) load(l *SeqLock[T]) {
	*t.dst = atomicRead[F](l.words, t.off)
}
