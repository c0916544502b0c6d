package sharedcounter

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Defaults of the counter program: 4 units × 100 000 increments.
const (
	DefaultUnits      = 4
	DefaultIncrements = 100_000
)

// Step is the operation a unit performs while holding the lock. The default
// adds one to the counter.
type Step func(unit, iteration int, value *int)

// Config holds Run parameters.
type Config struct {
	// Units is the number of goroutines launched. Zero is valid: nothing is
	// launched and the counter stays at 0.
	Units int

	// Increments is the number of lock-increment-unlock cycles per unit.
	Increments int

	// Poison is the policy applied after a unit panics inside the lock.
	Poison PoisonPolicy

	// Logger receives unit and coordinator state changes. If nil, logging
	// is disabled.
	Logger *zap.Logger

	// Step overrides the increment. Tests use it to inject panics.
	Step Step
}

// DefaultConfig returns the configuration of the reference program.
func DefaultConfig() Config {
	return Config{
		Units:      DefaultUnits,
		Increments: DefaultIncrements,
	}
}

func (c *Config) validate() error {
	if c.Units < 0 {
		return fmt.Errorf("%w: units = %d, must be >= 0", ErrInvalidConfig, c.Units)
	}
	if c.Increments < 0 {
		return fmt.Errorf("%w: increments = %d, must be >= 0", ErrInvalidConfig, c.Increments)
	}
	switch c.Poison {
	case PoisonPropagate, PoisonRecover:
	default:
		return fmt.Errorf("%w: unknown poison policy %s", ErrInvalidConfig, c.Poison)
	}
	return nil
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	if out.Step == nil {
		out.Step = increment
	}
	return out
}

func increment(_, _ int, v *int) { *v++ }

// Result is what the coordinator observed after every unit joined.
type Result struct {
	Value   int // counter value read after the last join
	Stats   Stats
	Elapsed time.Duration
}

// Run launches cfg.Units goroutines, each doing cfg.Increments
// lock-increment-unlock cycles on one shared counter. It then joins the
// units in launch order and reads the counter under the lock.
//
// Units cannot be cancelled once launched. Errors from units (panics,
// poisoned lock) and from the final read are joined in launch order; the
// Result is filled in as far as the read allowed.
func Run(cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	cfg = cfg.withDefaults()
	log := cfg.Logger

	counter := New(0, WithPoisonPolicy(cfg.Poison))
	start := time.Now()

	log.Debug("coordinator spawning",
		zap.Int("units", cfg.Units),
		zap.Int("increments", cfg.Increments),
		zap.Stringer("poison", cfg.Poison))

	units := make([]*unit, 0, cfg.Units)
	for id := range cfg.Units {
		units = append(units, spawn(id, func() error {
			return work(counter, id, &cfg)
		}))
	}

	log.Debug("coordinator waiting for all units")

	var errs []error
	for _, u := range units {
		if err := u.join(); err != nil {
			log.Warn("unit failed", zap.Int("unit", u.id), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		log.Debug("unit joined", zap.Int("unit", u.id))
	}

	log.Debug("coordinator reading result")

	value, err := counter.Load()
	if err != nil {
		errs = append(errs, fmt.Errorf("read counter: %w", err))
	}

	res := Result{
		Value:   value,
		Stats:   counter.Stats(),
		Elapsed: time.Since(start),
	}

	log.Debug("coordinator terminated",
		zap.Int("value", res.Value),
		zap.Int64("acquisitions", res.Stats.Acquisitions),
		zap.Int64("contended", res.Stats.Contended),
		zap.Duration("elapsed", res.Elapsed))

	return res, errors.Join(errs...)
}

// work is the body of one unit.
func work(counter *Guarded[int], id int, cfg *Config) error {
	cfg.Logger.Debug("unit running", zap.Int("unit", id))
	for i := range cfg.Increments {
		if err := counter.Do(func(v *int) { cfg.Step(id, i, v) }); err != nil {
			return fmt.Errorf("unit %d iteration %d: %w", id, i, err)
		}
	}
	cfg.Logger.Debug("unit done", zap.Int("unit", id))
	return nil
}
