// Package smells is an ordered registry of independent code-smell
// detectors. Detectors share no state and may run in parallel; the final
// record order always follows canonical registry order regardless of
// completion order, so grouping in the response stays deterministic.
package smells

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/debtlens/debtlens/pkg/models"
)

// Registry runs a fixed, ordered set of detectors.
type Registry struct {
	detectors []Detector
	workers   int
	logger    *zap.Logger
}

// Option is a functional option for configuring Registry.
type Option func(*Registry)

// WithDetectors replaces the detector set.
func WithDetectors(detectors []Detector) Option {
	return func(r *Registry) {
		r.detectors = detectors
	}
}

// WithWorkers caps detector parallelism (0 means one goroutine per detector).
func WithWorkers(n int) Option {
	return func(r *Registry) {
		r.workers = n
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a registry with the given detectors in order.
func NewRegistry(detectors []Detector, opts ...Option) *Registry {
	r := &Registry{
		detectors: detectors,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Detectors returns the registered detectors in canonical order.
func (r *Registry) Detectors() []Detector {
	return r.detectors
}

// Detect runs every detector against the source and returns all records in
// canonical registry order. Results are collected keyed by detector index
// and merged in order, so parallel completion order never leaks into the
// output. A panicking detector contributes nothing; the failure is logged
// and the remaining detectors are unaffected.
func (r *Registry) Detect(ctx context.Context, src *Source) []models.CodeSmell {
	if len(r.detectors) == 0 {
		return nil
	}

	results := make([][]models.CodeSmell, len(r.detectors))

	p := pool.New()
	if r.workers > 0 {
		p = p.WithMaxGoroutines(r.workers)
	}
	for i, d := range r.detectors {
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			results[i] = r.scanOne(d, src)
		})
	}
	p.Wait()

	var merged []models.CodeSmell
	for _, records := range results {
		merged = append(merged, records...)
	}
	return merged
}

// scanOne isolates a single detector run behind a recover.
func (r *Registry) scanOne(d Detector, src *Source) (records []models.CodeSmell) {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Warn("smell detector failed, skipping",
				zap.String("detector", d.Name()),
				zap.Any("error", err),
			)
			records = nil
		}
	}()
	return d.Scan(src)
}
