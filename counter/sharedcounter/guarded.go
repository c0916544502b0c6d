// Package sharedcounter runs a fixed number of goroutines that all increment
// one integer behind a sync.Mutex, then joins them and reads the total.
//
// The value lives in a Guarded cell. Go mutexes have no notion of poisoning,
// so Guarded adds it: a holder that panics inside the critical section marks
// the cell as poisoned, and later holders either see ErrPoisoned
// (PoisonPropagate) or carry on with the value as it was left (PoisonRecover).
package sharedcounter

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Sentinel errors returned by the package.
var (
	ErrPoisoned      = errors.New("lock poisoned: a previous holder panicked")
	ErrUnitPanicked  = errors.New("unit panicked")
	ErrInvalidConfig = errors.New("invalid config")
)

// PoisonPolicy decides what happens when a poisoned cell is locked again.
type PoisonPolicy int

const (
	// PoisonPropagate refuses access to a poisoned cell with ErrPoisoned.
	PoisonPropagate PoisonPolicy = iota
	// PoisonRecover ignores the poison flag and hands out the value as the
	// panicking holder left it.
	PoisonRecover
)

func (p PoisonPolicy) String() string {
	switch p {
	case PoisonPropagate:
		return "propagate"
	case PoisonRecover:
		return "recover"
	default:
		return fmt.Sprintf("PoisonPolicy(%d)", int(p))
	}
}

// Stats is a snapshot of the instrumentation kept by a Guarded cell.
type Stats struct {
	Acquisitions int64 // successful Lock calls
	Contended    int64 // acquisitions that had to wait for another holder
	PeakHolders  int32 // highest number of goroutines seen inside the lock at once
	Violations   int64 // acquisitions that observed another holder (must stay 0)
	Poisoned     bool
}

// Option configures a Guarded cell.
type Option func(*options)

type options struct {
	policy PoisonPolicy
}

// WithPoisonPolicy sets the policy applied once the cell is poisoned.
func WithPoisonPolicy(p PoisonPolicy) Option {
	return func(o *options) { o.policy = p }
}

// Guarded is a value of type T that may only be touched while holding its
// mutex. Share it by pointer: every goroutine holding the pointer keeps the
// value alive, and the garbage collector frees it after the last one is gone.
type Guarded[T any] struct {
	mu     sync.Mutex
	value  T
	policy PoisonPolicy

	// poisoned is written under mu but read by Poisoned without it.
	poisoned atomic.Bool

	holders      atomic.Int32
	peakHolders  atomic.Int32
	acquisitions atomic.Int64
	contended    atomic.Int64
	violations   atomic.Int64
}

// New wraps v in a Guarded cell.
func New[T any](v T, opts ...Option) *Guarded[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Guarded[T]{value: v, policy: o.policy}
}

// Do locks the cell, runs fn against the value and unlocks it. It blocks
// until the lock is available; there is no timeout.
//
// If fn panics the cell is poisoned, the lock is released and the panic
// continues up the calling goroutine. Under PoisonPropagate, Do on a
// poisoned cell returns ErrPoisoned without calling fn.
func (g *Guarded[T]) Do(fn func(v *T)) error {
	g.lock()
	defer g.unlock()

	if g.poisoned.Load() && g.policy == PoisonPropagate {
		return ErrPoisoned
	}

	panicking := true
	defer func() {
		if panicking {
			g.poisoned.Store(true)
		}
	}()
	fn(&g.value)
	panicking = false
	return nil
}

// Load returns a copy of the value read under the lock. On a poisoned cell
// under PoisonPropagate it returns the value together with ErrPoisoned, so
// the caller can still inspect what the panicking holder left behind.
func (g *Guarded[T]) Load() (T, error) {
	g.lock()
	defer g.unlock()

	if g.poisoned.Load() && g.policy == PoisonPropagate {
		return g.value, ErrPoisoned
	}
	return g.value, nil
}

// Poisoned reports whether a holder has panicked inside the lock.
func (g *Guarded[T]) Poisoned() bool {
	return g.poisoned.Load()
}

// ClearPoison marks the cell healthy again. Use it after the caller has
// checked (or repaired) the value.
func (g *Guarded[T]) ClearPoison() {
	g.lock()
	defer g.unlock()
	g.poisoned.Store(false)
}

// Stats returns a snapshot of the lock instrumentation. Fields are read one
// by one, so they are only mutually consistent once all holders are gone.
func (g *Guarded[T]) Stats() Stats {
	return Stats{
		Acquisitions: g.acquisitions.Load(),
		Contended:    g.contended.Load(),
		PeakHolders:  g.peakHolders.Load(),
		Violations:   g.violations.Load(),
		Poisoned:     g.poisoned.Load(),
	}
}

func (g *Guarded[T]) lock() {
	if !g.mu.TryLock() {
		g.contended.Add(1)
		g.mu.Lock()
	}
	g.acquisitions.Add(1)

	n := g.holders.Add(1)
	if n > 1 {
		g.violations.Add(1)
	}
	for {
		peak := g.peakHolders.Load()
		if n <= peak || g.peakHolders.CompareAndSwap(peak, n) {
			break
		}
	}
}

func (g *Guarded[T]) unlock() {
	g.holders.Add(-1)
	g.mu.Unlock()
}
