// Package analyzer orchestrates the debt-profiling pipeline: preprocess,
// estimate complexity and duplication, detect smells, aggregate. The
// engine is stateless and deterministic per input; one call processes one
// string to completion with no state shared across calls.
package analyzer

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/debtlens/debtlens/pkg/analyzer/complexity"
	"github.com/debtlens/debtlens/pkg/analyzer/duplication"
	"github.com/debtlens/debtlens/pkg/analyzer/preprocess"
	"github.com/debtlens/debtlens/pkg/analyzer/score"
	"github.com/debtlens/debtlens/pkg/analyzer/smells"
	"github.com/debtlens/debtlens/pkg/analyzer/structure"
	"github.com/debtlens/debtlens/pkg/config"
	"github.com/debtlens/debtlens/pkg/models"
)

// Diagnostics counts fail-soft recoveries so the silent-defaulting policy
// stays observable in production. Counters only ever grow.
type Diagnostics struct {
	StructureRecoveries  atomic.Uint64
	ComplexityFallbacks  atomic.Uint64
	DuplicationFallbacks atomic.Uint64
}

// Analyzer runs the full pipeline. Safe for concurrent use: all per-call
// state lives on the stack of Analyze.
type Analyzer struct {
	policy   score.Policy
	scanner  structure.Scanner
	registry *smells.Registry
	logger   *zap.Logger
	diag     Diagnostics
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithPolicy overrides the scoring policy.
func WithPolicy(p score.Policy) Option {
	return func(a *Analyzer) {
		a.policy = p.Normalize()
	}
}

// WithStructureScanner swaps the structural boundary scanner.
func WithStructureScanner(s structure.Scanner) Option {
	return func(a *Analyzer) {
		a.scanner = s
	}
}

// WithRegistry replaces the smell detector registry.
func WithRegistry(r *smells.Registry) Option {
	return func(a *Analyzer) {
		a.registry = r
	}
}

// WithLogger sets the diagnostics logger (zap.NewNop by default).
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an analyzer from a config, applying any options on top.
// A nil config means defaults.
func New(cfg *config.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	a := &Analyzer{
		policy:  cfg.Scoring.Normalize(),
		scanner: structure.NewRegexScanner(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = smells.NewRegistry(smells.DefaultDetectors(cfg.Detectors), smells.WithLogger(a.logger))
	}
	return a
}

// Analyze produces the complete debt profile for one input string.
//
// The three estimators run concurrently; none share mutable state and none
// depend on another's output. Sub-component failures recover to safe
// defaults (complexity 1, duplication 0, no structure) and are counted in
// Diagnostics; only a failure escaping those recoveries returns an error,
// and then without a partial result.
func (a *Analyzer) Analyze(ctx context.Context, code string) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("analysis failed: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := preprocess.Clean(code)
	src := a.buildSource(code, clean)

	var (
		cyclomatic int
		dupRatio   float64
		found      []models.CodeSmell
	)

	p := pool.New().WithMaxGoroutines(3)
	p.Go(func() {
		cyclomatic = complexity.Estimate(clean)
	})
	p.Go(func() {
		dupRatio = duplication.Ratio(code)
	})
	p.Go(func() {
		found = a.registry.Detect(ctx, src)
	})
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groups := models.NewSmellGroups()
	for _, s := range found {
		groups.Add(s)
	}

	debt := a.policy.Debt(cyclomatic, dupRatio, len(found))

	return &models.AnalysisResult{
		CyclomaticComplexity: cyclomatic,
		DuplicationRatio:     dupRatio,
		LinesOfCode:          src.Lines,
		CodeSmells:           groups,
		SmellsCount:          len(found),
		TechnicalDebtRatio:   debt,
		Assessment:           a.policy.Assess(debt),
	}, nil
}

// buildSource assembles the shared detector input. Structure scanning is
// best-effort: a panicking scanner leaves the structural fields empty and
// bumps the recovery counter, and lexical detectors still run.
func (a *Analyzer) buildSource(raw, clean string) *smells.Source {
	src := &smells.Source{
		Raw:          raw,
		Clean:        clean,
		Lines:        duplication.LineCount(raw),
		CommentSpans: preprocess.CountCommentSpans(raw),
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				a.diag.StructureRecoveries.Add(1)
				a.logger.Warn("structure scan failed, detectors see no boundaries", zap.Any("error", r))
			}
		}()
		src.Methods = a.scanner.Methods(clean)
		src.Classes = a.scanner.Classes(clean)
		src.Extends = a.scanner.ExtendsCount(clean)
	}()

	return src
}

// Policy returns the active scoring policy.
func (a *Analyzer) Policy() score.Policy {
	return a.policy
}

// Diag exposes the fail-soft recovery counters.
func (a *Analyzer) Diag() *Diagnostics {
	return &a.diag
}
