package seqlock

import (
	"fmt"
	"math/bits"
)

// Option configures a SeqLock at construction.
type Option func(*config)

type config struct {
	read  ConflictPolicy
	write ConflictPolicy
	width int
}

// WithReadPolicy sets the policy readers run when they observe a writer or
// fail validation. Defaults to Auto.
func WithReadPolicy(p ConflictPolicy) Option {
	return func(c *config) {
		c.read = p
	}
}

// WithWritePolicy sets the policy writers run while another writer holds
// the lock. Defaults to Auto.
func WithWritePolicy(p ConflictPolicy) Option {
	return func(c *config) {
		c.write = p
	}
}

// WithCounterWidth sets the width in bits of the sequence counter. It must
// be one of 8, 16, 32 or 64 and defaults to the machine word size. A wider
// counter makes a reader missing a full wraparound of commits less likely.
func WithCounterWidth(width int) Option {
	return func(c *config) {
		c.width = width
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := config{read: Auto, write: Auto, width: bits.UintSize}
	for _, o := range opts {
		o(&cfg)
	}
	switch cfg.width {
	case 8, 16, 32, 64:
	default:
		return cfg, fmt.Errorf("%w: %d", ErrCounterWidth, cfg.width)
	}
	if cfg.read == nil {
		cfg.read = Auto
	}
	if cfg.write == nil {
		cfg.write = Auto
	}
	return cfg, nil
}
