package seqlock

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestSequence(t *testing.T) {
	s := sequence{mask: ^uint64(0)}
	assert.Equal(t, s.load(), uint64(0))

	assert.That(t, s.tryBegin(0))
	assert.Equal(t, s.load(), uint64(1))
	assert.That(t, !s.tryBegin(0))

	s.end(0)
	assert.Equal(t, s.load(), uint64(2))

	for i := 0; i < 10; i++ {
		seq := s.load()
		assert.That(t, s.tryBegin(seq))
		s.end(seq)
	}
	assert.Equal(t, s.load(), uint64(22))
}

func TestSequenceWraparound(t *testing.T) {
	for _, width := range []int{8, 16} {
		l := Must(uint32(0), WithCounterWidth(width))
		commits := 1 << (width - 1)

		for i := 0; i < commits-1; i++ {
			l.Write(uint32(i))
		}
		assert.Equal(t, l.Generation(), uint64(1)<<width-2)

		l.Write(7)
		assert.Equal(t, l.Generation(), uint64(0))
		assert.Equal(t, l.Load(), uint32(7))
	}
}
