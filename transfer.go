package seqlock

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"
)

// wordSize is the width of the smallest atomic unit sync/atomic offers.
const wordSize = 4

// newWords allocates enough words to hold size bytes.
func newWords(size uintptr) []atomic.Uint32 {
	return make([]atomic.Uint32, (size+wordSize-1)/wordSize)
}

// loadBytes fills dst with the bytes starting at byte offset off of words,
// using exactly one atomic load for every word it touches.
func loadBytes(words []atomic.Uint32, off uintptr, dst []byte) {
	for len(dst) > 0 {
		i, shift := off/wordSize, off%wordSize

		var buf [wordSize]byte
		binary.NativeEndian.PutUint32(buf[:], words[i].Load())

		n := copy(dst, buf[shift:])
		dst = dst[n:]
		off += uintptr(n)
	}
}

// storeBytes writes src into words starting at byte offset off. A word that
// src only partially covers is merged with its current contents, which is
// only sound while the caller is the single writer.
func storeBytes(words []atomic.Uint32, off uintptr, src []byte) {
	for len(src) > 0 {
		i, shift := off/wordSize, off%wordSize

		var buf [wordSize]byte
		if shift != 0 || len(src) < wordSize {
			binary.NativeEndian.PutUint32(buf[:], words[i].Load())
		}

		n := copy(buf[shift:], src)
		words[i].Store(binary.NativeEndian.Uint32(buf[:]))
		src = src[n:]
		off += uintptr(n)
	}
}

// bytesOf views the memory of *v as a byte slice.
func bytesOf[V any](v *V) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// atomicRead returns the V stored at byte offset off of words.
func atomicRead[V any](words []atomic.Uint32, off uintptr) (v V) {
	loadBytes(words, off, bytesOf(&v))
	return v
}

// atomicWrite stores v at byte offset off of words.
func atomicWrite[V any](words []atomic.Uint32, off uintptr, v V) {
	storeBytes(words, off, bytesOf(&v))
}
