package seqlock

import (
	"reflect"
	"sync/atomic"
	"unsafe"
)

// SeqLock protects a value of type T that is read far more often than it
// is written. Readers never block writers: they copy the value and retry
// if a writer was active. Writers exclude each other with a single compare
// and swap on the sequence counter.
//
// T must not contain pointers, strings, slices, maps, channels, functions
// or interfaces.
type SeqLock[T any] struct {
	seq   sequence
	words []atomic.Uint32
	read  ConflictPolicy
	write ConflictPolicy
}

// New returns a SeqLock holding initial. The returned lock must be
// published to other goroutines through some synchronizing operation.
func New[T any](initial T, opts ...Option) (*SeqLock[T], error) {
	if err := checkTrivial(reflect.TypeOf((*T)(nil)).Elem()); err != nil {
		return nil, err
	}
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	l := &SeqLock[T]{
		words: newWords(unsafe.Sizeof(initial)),
		read:  cfg.read,
		write: cfg.write,
	}
	l.seq.mask = ^uint64(0) >> (64 - cfg.width)
	atomicWrite(l.words, 0, initial)
	return l, nil
}

// Must is like New but panics on error.
func Must[T any](initial T, opts ...Option) *SeqLock[T] {
	l, err := New(initial, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// Size returns the byte size of the protected value.
func (l *SeqLock[T]) Size() uintptr { return unsafe.Sizeof(*new(T)) }

// Generation returns the current sequence counter. It is even when no
// writer is active and advances by two on every commit.
func (l *SeqLock[T]) Generation() uint64 { return l.seq.load() }

// readSection runs fn until it completes without a writer becoming active
// and returns the generation it observed. fn must only perform atomic
// transfers and must tolerate being run many times.
func (l *SeqLock[T]) readSection(fn func()) uint64 {
	for {
		seq := l.seq.load()
		if seq&1 != 0 {
			l.read.OnConflict()
			continue
		}

		fn()

		// sync/atomic operations are sequentially consistent, so this load
		// cannot be ordered before the word loads in fn.
		if l.seq.load() == seq {
			return seq
		}
	}
}

// Load returns a consistent copy of the value.
func (l *SeqLock[T]) Load() T {
	v, _ := l.LoadGeneration()
	return v
}

// LoadGeneration returns a consistent copy of the value along with the
// generation it belongs to.
func (l *SeqLock[T]) LoadGeneration() (v T, gen uint64) {
	gen = l.readSection(func() {
		v = atomicRead[T](l.words, 0)
	})
	return v, gen
}

// TryLoad makes a single attempt at reading the value. It returns false if
// a writer was active at any point during the attempt. Callers that need a
// bounded wait can loop on it with their own budget.
func (l *SeqLock[T]) TryLoad() (v T, ok bool) {
	seq := l.seq.load()
	if seq&1 != 0 {
		return v, false
	}
	v = atomicRead[T](l.words, 0)
	if l.seq.load() != seq {
		var zero T
		return zero, false
	}
	return v, true
}

// LoadMembers fills every target from the same generation of the value and
// returns that generation.
func (l *SeqLock[T]) LoadMembers(targets ...Target[T]) uint64 {
	return l.readSection(func() {
		for _, t := range targets {
			t.load(l)
		}
	})
}

// LoadMembers2 returns two members read from the same generation.
func LoadMembers2[T, A, B any](l *SeqLock[T], fa Field[T, A], fb Field[T, B]) (a A, b B) {
	offa, offb := fa.offset(), fb.offset()
	l.readSection(func() {
		a = atomicRead[A](l.words, offa)
		b = atomicRead[B](l.words, offb)
	})
	return a, b
}

// LoadMembers3 returns three members read from the same generation.
func LoadMembers3[T, A, B, C any](l *SeqLock[T], fa Field[T, A], fb Field[T, B], fc Field[T, C]) (a A, b B, c C) {
	offa, offb, offc := fa.offset(), fb.offset(), fc.offset()
	l.readSection(func() {
		a = atomicRead[A](l.words, offa)
		b = atomicRead[B](l.words, offb)
		c = atomicRead[C](l.words, offc)
	})
	return a, b, c
}

// Write replaces the whole value.
func (l *SeqLock[T]) Write(v T) {
	w := l.Acquire()
	w.Write(v)
	w.Release()
}

// Acquire returns a Writer holding the write slot, spinning with the write
// policy while another writer holds it. The Writer must be Released.
func (l *SeqLock[T]) Acquire() Writer[T] {
	seq := l.seq.load()
	for {
		for seq&1 != 0 {
			l.write.OnConflict()
			seq = l.seq.load()
		}
		if l.seq.tryBegin(seq) {
			return Writer[T]{lock: l, seq: seq}
		}
		l.write.OnConflict()
		seq = l.seq.load()
	}
}

// TryAcquire makes a single attempt at taking the write slot.
func (l *SeqLock[T]) TryAcquire() (Writer[T], bool) {
	seq := l.seq.load()
	if seq&1 != 0 || !l.seq.tryBegin(seq) {
		return Writer[T]{}, false
	}
	return Writer[T]{lock: l, seq: seq}, true
}

// Update runs fn while holding the write slot and commits when fn returns
// or panics. If fn moves the Writer, the new owner is responsible for
// releasing it.
func (l *SeqLock[T]) Update(fn func(w *Writer[T])) {
	w := l.Acquire()
	defer w.Release()
	fn(&w)
}
