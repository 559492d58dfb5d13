package seqlock

// noCopy lets go vet's copylocks check flag copies of a Writer.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Writer holds the write slot of a SeqLock. Stores made through it are
// invisible to readers until Release, which must be called exactly once
// by whoever owns the Writer. Move hands ownership to a new Writer and
// leaves the old one inert; releasing an inert Writer does nothing.
//
// A Writer must not be copied. A copy shares the write slot without the
// bookkeeping Move does, so releasing both commits twice and corrupts the
// sequence. go vet reports such copies; nothing catches them at run time.
type Writer[T any] struct {
	_    noCopy
	lock *SeqLock[T]
	seq  uint64
}

// held returns the lock the Writer holds, panicking if it holds none.
func (w *Writer[T]) held() *SeqLock[T] {
	if w.lock == nil {
		panic("seqlock: use of released or moved Writer")
	}
	return w.lock
}

// Held reports whether the Writer still owns the write slot.
func (w *Writer[T]) Held() bool { return w.lock != nil }

// Gen returns the generation the Writer started from. Its commit
// publishes the generation after it.
func (w *Writer[T]) Gen() uint64 { return w.seq }

// Read returns the whole value as currently stored, including any stores
// already made through the Writer.
func (w *Writer[T]) Read() T {
	return atomicRead[T](w.held().words, 0)
}

// Write replaces the whole value.
func (w *Writer[T]) Write(v T) {
	atomicWrite(w.held().words, 0, v)
}

// Move transfers ownership of the write slot to the returned Writer.
func (w *Writer[T]) Move() Writer[T] {
	lock := w.lock
	w.lock = nil
	return Writer[T]{lock: lock, seq: w.seq}
}

// Release commits the Writer's stores and frees the write slot. It is a
// no-op on a Writer that was already released or moved.
func (w *Writer[T]) Release() {
	if w.lock == nil {
		return
	}
	w.lock.seq.end(w.seq)
	w.lock = nil
}
