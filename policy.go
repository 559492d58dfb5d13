package seqlock

import (
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sys/cpu"
)

// pauseCycles is how many pause instructions a single Pause conflict issues.
const pauseCycles = 30

// ConflictPolicy is the backoff run each time a reader or writer has to
// retry because of another writer.
type ConflictPolicy interface {
	OnConflict()
}

// ConflictFunc adapts a function to a ConflictPolicy.
type ConflictFunc func()

// OnConflict calls f.
func (f ConflictFunc) OnConflict() { f() }

type pausePolicy struct{}

func (pausePolicy) OnConflict() { procyield(pauseCycles) }

type yieldPolicy struct{}

func (yieldPolicy) OnConflict() { runtime.Gosched() }

type retryPolicy struct{}

func (retryPolicy) OnConflict() {}

var (
	// Pause spins using the processor's pause hint. It has the lowest
	// latency and burns the most CPU.
	Pause ConflictPolicy = pausePolicy{}

	// Yield gives up the processor to the scheduler.
	Yield ConflictPolicy = yieldPolicy{}

	// RetryImmediately does nothing and retries at once.
	RetryImmediately ConflictPolicy = retryPolicy{}

	// Auto is Pause when the processor has a spin hint and Yield otherwise.
	Auto ConflictPolicy = autoPolicy()
)

func hasPause() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasSSE2
	case "arm64":
		return true
	}
	return false
}

func autoPolicy() ConflictPolicy {
	if hasPause() {
		return Pause
	}
	return Yield
}

// LogConflicts wraps policy so that every every'th conflict emits a debug
// event on logger with the running total. A zero every logs each conflict.
func LogConflicts(policy ConflictPolicy, logger zerolog.Logger, every uint64) ConflictPolicy {
	if policy == nil {
		policy = Auto
	}
	if every == 0 {
		every = 1
	}
	return &loggedPolicy{policy: policy, logger: logger, every: every}
}

type loggedPolicy struct {
	count  atomic.Uint64
	policy ConflictPolicy
	logger zerolog.Logger
	every  uint64
}

func (p *loggedPolicy) OnConflict() {
	if n := p.count.Add(1); n%p.every == 0 {
		p.logger.Debug().Uint64("conflicts", n).Msg("seqlock conflicts")
	}
	p.policy.OnConflict()
}
