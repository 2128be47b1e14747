// Package complexity approximates cyclomatic complexity by counting
// decision-point tokens in preprocessed source text. No control-flow graph
// is built; the count deliberately over-approximates (every return counts,
// regardless of position).
package complexity

import (
	"regexp"
	"strings"
)

// Keyword tokens are matched on word boundaries so identifiers such as
// "ifx" or "performance" never count.
var (
	reElseIf = regexp.MustCompile(`\belse\s+if\b`)
	reIf     = regexp.MustCompile(`\bif\b`)
	reWhile  = regexp.MustCompile(`\bwhile\b`)
	reFor    = regexp.MustCompile(`\bfor\b`)
	reCase   = regexp.MustCompile(`\bcase\b`)
	reCatch  = regexp.MustCompile(`\bcatch\b`)
	reReturn = regexp.MustCompile(`\breturn\b`)
)

// Estimate returns 1 plus one point per decision token found in clean text:
// if, else if, while, for, case, catch, return, ternary ?, && and ||.
// An "if" that is part of an "else if" counts once, as the else-if token.
//
// The minimum return value is 1: straight-line code has one path. Any
// internal failure also yields 1 so complexity estimation can never abort
// the rest of the pipeline.
func Estimate(clean string) (score int) {
	defer func() {
		if recover() != nil {
			score = 1
		}
	}()

	score = 1

	elseIfs := len(reElseIf.FindAllStringIndex(clean, -1))
	ifs := len(reIf.FindAllStringIndex(clean, -1)) - elseIfs
	if ifs < 0 {
		ifs = 0
	}

	score += ifs
	score += elseIfs
	score += len(reWhile.FindAllStringIndex(clean, -1))
	score += len(reFor.FindAllStringIndex(clean, -1))
	score += len(reCase.FindAllStringIndex(clean, -1))
	score += len(reCatch.FindAllStringIndex(clean, -1))
	score += len(reReturn.FindAllStringIndex(clean, -1))
	score += strings.Count(clean, "?")
	score += strings.Count(clean, "&&")
	score += strings.Count(clean, "||")

	if score < 1 {
		score = 1
	}
	return score
}
