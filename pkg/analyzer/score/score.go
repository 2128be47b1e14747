// Package score combines the heterogeneous debt signals into a single
// normalized ratio. The ratio is framed as a health score: higher
// complexity, higher duplication and more smells each pull it down.
package score

import "github.com/debtlens/debtlens/pkg/models"

// Policy holds the scoring weights and cutoffs. These are deliberate
// policy constants, surfaced here (and in configuration) instead of being
// buried as inline literals, so the scoring can be audited and tested in
// isolation from detection.
type Policy struct {
	// Weights must sum to 1.0 for the ratio to stay in [0,1].
	ComplexityWeight  float64 `koanf:"complexity_weight" json:"complexity_weight" toml:"complexity_weight"`
	DuplicationWeight float64 `koanf:"duplication_weight" json:"duplication_weight" toml:"duplication_weight"`
	SmellsWeight      float64 `koanf:"smells_weight" json:"smells_weight" toml:"smells_weight"`

	// ComplexityCeiling is the complexity at which the complexity term
	// bottoms out; SmellsCeiling plays the same role for the smell count.
	ComplexityCeiling float64 `koanf:"complexity_ceiling" json:"complexity_ceiling" toml:"complexity_ceiling"`
	SmellsCeiling     float64 `koanf:"smells_ceiling" json:"smells_ceiling" toml:"smells_ceiling"`

	// HighDebtCutoff: a ratio below this is assessed as high debt.
	HighDebtCutoff float64 `koanf:"high_debt_cutoff" json:"high_debt_cutoff" toml:"high_debt_cutoff"`
}

// DefaultPolicy returns the documented default scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		ComplexityWeight:  0.3,
		DuplicationWeight: 0.3,
		SmellsWeight:      0.4,
		ComplexityCeiling: 10,
		SmellsCeiling:     10,
		HighDebtCutoff:    0.70,
	}
}

// Normalize fills in zero or invalid fields with defaults so a partially
// configured policy still produces a sane score.
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.ComplexityWeight <= 0 {
		p.ComplexityWeight = def.ComplexityWeight
	}
	if p.DuplicationWeight <= 0 {
		p.DuplicationWeight = def.DuplicationWeight
	}
	if p.SmellsWeight <= 0 {
		p.SmellsWeight = def.SmellsWeight
	}
	if p.ComplexityCeiling <= 0 {
		p.ComplexityCeiling = def.ComplexityCeiling
	}
	if p.SmellsCeiling <= 0 {
		p.SmellsCeiling = def.SmellsCeiling
	}
	if p.HighDebtCutoff <= 0 || p.HighDebtCutoff > 1 {
		p.HighDebtCutoff = def.HighDebtCutoff
	}
	return p
}

// Debt computes the technical-debt ratio:
//
//	debt = Wc * (ceil - min(complexity, ceil)) / ceil
//	     + Wd * (1 - duplication)
//	     + Ws * (1 - min(smells/ceil, 1))
//
// Each term is clamped into [0,1] before weighting, so the result stays in
// [0,1] as long as the weights sum to 1.
func (p Policy) Debt(complexity int, duplication float64, smellCount int) float64 {
	complexityTerm := (p.ComplexityCeiling - min(float64(complexity), p.ComplexityCeiling)) / p.ComplexityCeiling
	duplicationTerm := 1 - duplication
	smellsTerm := 1 - min(float64(smellCount)/p.SmellsCeiling, 1)

	debt := p.ComplexityWeight*clamp01(complexityTerm) +
		p.DuplicationWeight*clamp01(duplicationTerm) +
		p.SmellsWeight*clamp01(smellsTerm)

	return clamp01(debt)
}

// Assess maps a debt ratio to the binary assessment label.
func (p Policy) Assess(debt float64) models.Assessment {
	if debt < p.HighDebtCutoff {
		return models.AssessmentHighDebt
	}
	return models.AssessmentLowDebt
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
