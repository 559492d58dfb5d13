// package seqlock provides a writer-first sequence lock around a small value.
//
// Consider some configuration that many goroutines consult on every request
// and that is replaced every so often. A sync.RWMutex makes every reader
// write to shared memory, and an atomic.Pointer allocates on every update.
// A SeqLock does neither: readers copy the value and check that no writer
// was active while they did, retrying if one was.
//
//	type Limits struct {
//		Rate  float64
//		Burst int32
//		Epoch uint32
//	}
//
//	var (
//		limits = seqlock.Must(Limits{Rate: 100, Burst: 10})
//		burst  = seqlock.MustField(func(l *Limits) *int32 { return &l.Burst })
//	)
//
//	func Allow() bool {
//		cur := limits.Load()
//		return take(cur.Rate, cur.Burst)
//	}
//
//	func Raise() {
//		w := limits.Acquire()
//		defer w.Release()
//		burst.Set(&w, burst.Get(&w)+1)
//	}
//
// Writers never wait for readers, and readers never wait for each other.
// The cost of contention is paid by readers, which may retry for as long
// as writers keep committing. Every byte of the value is moved with atomic
// loads and stores so that the racing copies a reader throws away are
// still well defined under the Go memory model and the race detector.
//
// The protected type must be safe to copy byte for byte: no pointers,
// strings, slices, maps, channels, functions or interfaces. New rejects
// anything else.
package seqlock
