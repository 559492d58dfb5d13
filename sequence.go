package seqlock

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// sequence is the counter guarding the protected value. Its low bit is set
// while a writer holds the lock and every commit advances it by two. It
// wraps modulo 2^width.
type sequence struct {
	_    cpu.CacheLinePad
	v    atomic.Uint64
	mask uint64
	_    cpu.CacheLinePad
}

// load returns the current counter value.
func (s *sequence) load() uint64 { return s.v.Load() }

// tryBegin attempts to move the counter from the even value seq to seq+1,
// claiming the write slot.
func (s *sequence) tryBegin(seq uint64) bool {
	return s.v.CompareAndSwap(seq, seq+1)
}

// end publishes the commit of a writer that began at seq.
func (s *sequence) end(seq uint64) {
	s.v.Store((seq + 2) & s.mask)
}
