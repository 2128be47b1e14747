package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/debtlens/debtlens/pkg/models"
)

// ResultView renders one AnalysisResult: a metric block followed by the
// detected smells grouped by category in detector order.
type ResultView struct {
	Label  string // optional source label (file path, "stdin")
	Result *models.AnalysisResult
}

func (v *ResultView) RenderData() any {
	return v.Result
}

func (v *ResultView) RenderText(w io.Writer, colored bool) error {
	r := v.Result

	if v.Label != "" {
		if colored {
			color.New(color.Bold).Fprintln(w, v.Label)
		} else {
			fmt.Fprintln(w, v.Label)
		}
		fmt.Fprintln(w, strings.Repeat("-", len(v.Label)))
	}

	fmt.Fprintf(w, "Cyclomatic complexity: %d\n", r.CyclomaticComplexity)
	fmt.Fprintf(w, "Duplication ratio:     %.2f\n", r.DuplicationRatio)
	fmt.Fprintf(w, "Lines of code:         %d\n", r.LinesOfCode)
	fmt.Fprintf(w, "Code smells:           %d\n", r.SmellsCount)
	fmt.Fprintf(w, "Debt ratio:            %.2f\n", r.TechnicalDebtRatio)

	assessment := string(r.Assessment)
	if colored {
		if r.Assessment == models.AssessmentHighDebt {
			assessment = color.RedString(assessment)
		} else {
			assessment = color.GreenString(assessment)
		}
	}
	fmt.Fprintf(w, "Assessment:            %s\n", assessment)

	for _, category := range r.CodeSmells.Categories() {
		fmt.Fprintf(w, "\n%s\n", category)
		for _, s := range r.CodeSmells.Get(category) {
			fmt.Fprintf(w, "  - %s: %s\n", s.Name, s.Description)
		}
	}
	fmt.Fprintln(w)
	return nil
}

func (v *ResultView) RenderMarkdown(w io.Writer) error {
	r := v.Result

	title := v.Label
	if title == "" {
		title = "Analysis"
	}
	fmt.Fprintf(w, "## %s\n\n", title)
	fmt.Fprintf(w, "| Metric | Value |\n| --- | --- |\n")
	fmt.Fprintf(w, "| Cyclomatic complexity | %d |\n", r.CyclomaticComplexity)
	fmt.Fprintf(w, "| Duplication ratio | %.2f |\n", r.DuplicationRatio)
	fmt.Fprintf(w, "| Lines of code | %d |\n", r.LinesOfCode)
	fmt.Fprintf(w, "| Code smells | %d |\n", r.SmellsCount)
	fmt.Fprintf(w, "| Debt ratio | %.2f |\n", r.TechnicalDebtRatio)
	fmt.Fprintf(w, "| Assessment | %s |\n\n", r.Assessment)

	for _, category := range r.CodeSmells.Categories() {
		fmt.Fprintf(w, "### %s\n\n", category)
		for _, s := range r.CodeSmells.Get(category) {
			fmt.Fprintf(w, "- **%s**: %s\n", s.Name, s.Description)
		}
		fmt.Fprintln(w)
	}
	return nil
}
