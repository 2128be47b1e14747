package score

import (
	"math"
	"testing"

	"github.com/debtlens/debtlens/pkg/models"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.ComplexityWeight != 0.3 {
		t.Errorf("ComplexityWeight = %f, want 0.3", p.ComplexityWeight)
	}
	if p.DuplicationWeight != 0.3 {
		t.Errorf("DuplicationWeight = %f, want 0.3", p.DuplicationWeight)
	}
	if p.SmellsWeight != 0.4 {
		t.Errorf("SmellsWeight = %f, want 0.4", p.SmellsWeight)
	}
	if p.HighDebtCutoff != 0.70 {
		t.Errorf("HighDebtCutoff = %f, want 0.70", p.HighDebtCutoff)
	}
}

func TestDebtCleanInput(t *testing.T) {
	// complexity 1, no duplication, no smells:
	// 0.3*(10-1)/10 + 0.3*1 + 0.4*1 = 0.97
	got := DefaultPolicy().Debt(1, 0, 0)
	if math.Abs(got-0.97) > 1e-9 {
		t.Errorf("Debt(1, 0, 0) = %f, want 0.97", got)
	}
}

func TestDebtWorstInput(t *testing.T) {
	// complexity at ceiling, full duplication, smells at ceiling: 0
	got := DefaultPolicy().Debt(10, 1.0, 10)
	if got != 0 {
		t.Errorf("Debt(10, 1, 10) = %f, want 0", got)
	}
}

func TestDebtComplexityCapped(t *testing.T) {
	p := DefaultPolicy()
	if p.Debt(10, 0, 0) != p.Debt(500, 0, 0) {
		t.Error("complexity above the ceiling should not lower the score further")
	}
}

func TestDebtSmellsCapped(t *testing.T) {
	p := DefaultPolicy()
	if p.Debt(1, 0, 10) != p.Debt(1, 0, 99) {
		t.Error("smells above the ceiling should not lower the score further")
	}
}

func TestDebtMixedSignals(t *testing.T) {
	// 0.3*(10-5)/10 + 0.3*(1-0.5) + 0.4*(1-2/10)
	// = 0.15 + 0.15 + 0.32 = 0.62
	got := DefaultPolicy().Debt(5, 0.5, 2)
	if math.Abs(got-0.62) > 1e-9 {
		t.Errorf("Debt(5, 0.5, 2) = %f, want 0.62", got)
	}
}

func TestDebtStaysInUnitInterval(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		complexity int
		dup        float64
		smells     int
	}{
		{1, 0, 0}, {0, 0, 0}, {1000, 1, 1000}, {7, 0.33, 4}, {1, 2.0, 0},
	}
	for _, c := range cases {
		got := p.Debt(c.complexity, c.dup, c.smells)
		if got < 0 || got > 1 {
			t.Errorf("Debt(%d, %f, %d) = %f, want in [0,1]", c.complexity, c.dup, c.smells, got)
		}
	}
}

func TestAssess(t *testing.T) {
	p := DefaultPolicy()

	if got := p.Assess(0.69); got != models.AssessmentHighDebt {
		t.Errorf("Assess(0.69) = %q, want high debt", got)
	}
	if got := p.Assess(0.70); got != models.AssessmentLowDebt {
		t.Errorf("Assess(0.70) = %q, want low debt", got)
	}
	if got := p.Assess(1.0); got != models.AssessmentLowDebt {
		t.Errorf("Assess(1.0) = %q, want low debt", got)
	}
}

func TestNormalizeFillsInvalidFields(t *testing.T) {
	p := Policy{}.Normalize()
	def := DefaultPolicy()
	if p != def {
		t.Errorf("Normalize() on zero policy = %+v, want defaults %+v", p, def)
	}

	p = Policy{ComplexityWeight: 0.5, HighDebtCutoff: 1.5}.Normalize()
	if p.ComplexityWeight != 0.5 {
		t.Errorf("Normalize() overwrote a valid weight: %f", p.ComplexityWeight)
	}
	if p.HighDebtCutoff != def.HighDebtCutoff {
		t.Errorf("Normalize() kept an out-of-range cutoff: %f", p.HighDebtCutoff)
	}
}
