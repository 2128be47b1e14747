package smells

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/debtlens/debtlens/pkg/config"
	"github.com/debtlens/debtlens/pkg/models"
)

// DefaultDetectors returns the full detector set in canonical order,
// honoring the disabled list. Registry order determines category order in
// the final grouping, so this is the single place that fixes it.
func DefaultDetectors(cfg config.DetectorConfig) []Detector {
	t := cfg.Thresholds

	all := []Detector{
		&LongMethod{MaxLines: t.MethodLines},
		&LongParameterList{MaxParameters: t.Parameters},
		&LargeClass{MaxLines: t.ClassLines},
		&SwitchStatements{},
		&TemporaryField{MinUses: t.FieldUses},
		&ParallelInheritance{MaxExtends: t.ExtendsLimit},
		&Comments{MaxRatio: t.CommentRatio},
		&DuplicateCode{WindowLines: t.DuplicateWindow, MinChars: t.DuplicateMinChars},
		&FeatureEnvy{MaxCalls: t.ReceiverCalls},
	}

	detectors := make([]Detector, 0, len(all))
	for _, d := range all {
		if !cfg.IsDisabled(d.Name()) {
			detectors = append(detectors, d)
		}
	}
	return detectors
}

// LongMethod flags method bodies spanning more than MaxLines lines.
type LongMethod struct {
	MaxLines int
}

func (d *LongMethod) Name() string     { return "Long Method" }
func (d *LongMethod) Category() string { return CategoryBloaters }

func (d *LongMethod) Scan(src *Source) []models.CodeSmell {
	var out []models.CodeSmell
	for _, m := range src.Methods {
		if m.Lines > d.MaxLines {
			out = append(out, smell(d.Category(), d.Name(),
				fmt.Sprintf("Method %q spans %d lines; bodies over %d lines are hard to follow", m.Name, m.Lines, d.MaxLines)))
		}
	}
	return out
}

// LongParameterList flags methods whose parameter text splits into more
// than MaxParameters comma-separated segments.
type LongParameterList struct {
	MaxParameters int
}

func (d *LongParameterList) Name() string     { return "Long Parameter List" }
func (d *LongParameterList) Category() string { return CategoryBloaters }

func (d *LongParameterList) Scan(src *Source) []models.CodeSmell {
	var out []models.CodeSmell
	for _, m := range src.Methods {
		if countParameters(m.Params) > d.MaxParameters {
			out = append(out, smell(d.Category(), d.Name(),
				fmt.Sprintf("Method %q takes %d parameters; more than %d suggests a missing parameter object", m.Name, countParameters(m.Params), d.MaxParameters)))
		}
	}
	return out
}

// countParameters splits parenthesized parameter text on commas. Empty or
// missing parameter text is zero parameters, never an error.
func countParameters(params string) int {
	if strings.TrimSpace(params) == "" {
		return 0
	}
	return len(strings.Split(params, ","))
}

// LargeClass flags class bodies spanning more than MaxLines lines.
type LargeClass struct {
	MaxLines int
}

func (d *LargeClass) Name() string     { return "Large Class" }
func (d *LargeClass) Category() string { return CategoryBloaters }

func (d *LargeClass) Scan(src *Source) []models.CodeSmell {
	var out []models.CodeSmell
	for _, c := range src.Classes {
		if c.Lines > d.MaxLines {
			out = append(out, smell(d.Category(), d.Name(),
				fmt.Sprintf("Class %q spans %d lines; classes over %d lines accumulate too many responsibilities", c.Name, c.Lines, d.MaxLines)))
		}
	}
	return out
}

var switchRe = regexp.MustCompile(`\bswitch\s*\(`)

// SwitchStatements flags the presence of a switch construct, a classic
// sign of type-based dispatch that polymorphism would handle better.
type SwitchStatements struct{}

func (d *SwitchStatements) Name() string     { return "Switch Statements" }
func (d *SwitchStatements) Category() string { return CategoryOOAbusers }

func (d *SwitchStatements) Scan(src *Source) []models.CodeSmell {
	if !switchRe.MatchString(src.Clean) {
		return nil
	}
	return []models.CodeSmell{smell(d.Category(), d.Name(),
		"Switch statement found; consider replacing type-based branching with polymorphism")}
}

var fieldRe = regexp.MustCompile(`(?m)^[ \t]*(?:(?:public|private|protected)\s+)?(?:static\s+)?(?:final\s+)?([A-Za-z_$][\w$]*)\s+([A-Za-z_$][\w$]*)\s*;`)

// fieldKeywords are tokens the field pattern would otherwise mistake for a
// type name ("return total;" is not a declaration).
var fieldKeywords = map[string]bool{
	"return": true, "throw": true, "new": true, "typeof": true,
	"delete": true, "break": true, "continue": true, "goto": true,
	"case": true, "in": true, "of": true, "yield": true, "await": true,
}

// TemporaryField flags declared fields whose identifier appears fewer than
// MinUses times in the whole raw text: a field barely referenced is likely
// only set in special circumstances.
type TemporaryField struct {
	MinUses int
}

func (d *TemporaryField) Name() string     { return "Temporary Field" }
func (d *TemporaryField) Category() string { return CategoryOOAbusers }

func (d *TemporaryField) Scan(src *Source) []models.CodeSmell {
	var out []models.CodeSmell
	seen := make(map[string]bool)

	for _, m := range fieldRe.FindAllStringSubmatch(src.Clean, -1) {
		typ, ident := m[1], m[2]
		if fieldKeywords[typ] || seen[ident] {
			continue
		}
		seen[ident] = true

		uses := len(regexp.MustCompile(`\b`+regexp.QuoteMeta(ident)+`\b`).FindAllStringIndex(src.Raw, -1))
		if uses < d.MinUses {
			out = append(out, smell(d.Category(), d.Name(),
				fmt.Sprintf("Field %q is referenced only %d time(s); it may only matter in special cases", ident, uses)))
		}
	}
	return out
}

// ParallelInheritance flags source with more than one class and more than
// MaxExtends extends occurrences, a hint that two hierarchies grow in
// lockstep.
type ParallelInheritance struct {
	MaxExtends int
}

func (d *ParallelInheritance) Name() string     { return "Parallel Inheritance Hierarchies" }
func (d *ParallelInheritance) Category() string { return CategoryChangePreventers }

func (d *ParallelInheritance) Scan(src *Source) []models.CodeSmell {
	if len(src.Classes) > 1 && src.Extends > d.MaxExtends {
		return []models.CodeSmell{smell(d.Category(), d.Name(),
			fmt.Sprintf("%d classes with %d extends clauses; subclassing one hierarchy seems to force subclassing another", len(src.Classes), src.Extends))}
	}
	return nil
}

// Comments flags sources where comment spans exceed MaxRatio of the total
// line count. Heavy commenting often deodorizes code that should instead
// be clarified.
type Comments struct {
	MaxRatio float64
}

func (d *Comments) Name() string     { return "Comments" }
func (d *Comments) Category() string { return CategoryDispensables }

func (d *Comments) Scan(src *Source) []models.CodeSmell {
	if float64(src.CommentSpans) <= d.MaxRatio*float64(src.Lines) {
		return nil
	}
	return []models.CodeSmell{smell(d.Category(), d.Name(),
		fmt.Sprintf("%d comment spans across %d lines; the code may be compensating for unclear structure", src.CommentSpans, src.Lines))}
}

// DuplicateCode flags the first WindowLines-consecutive-line block longer
// than MinChars that recurs verbatim elsewhere in the raw text. A single
// record is emitted regardless of how many duplicate blocks exist; the
// scan stops at the first hit.
type DuplicateCode struct {
	WindowLines int
	MinChars    int
}

func (d *DuplicateCode) Name() string     { return "Duplicate Code" }
func (d *DuplicateCode) Category() string { return CategoryDispensables }

func (d *DuplicateCode) Scan(src *Source) []models.CodeSmell {
	lines := strings.Split(src.Raw, "\n")
	if len(lines) < d.WindowLines {
		return nil
	}

	for start := 0; start+d.WindowLines <= len(lines); start++ {
		window := strings.Join(lines[start:start+d.WindowLines], "\n")
		if len(window) <= d.MinChars {
			continue
		}
		first := strings.Index(src.Raw, window)
		if first >= 0 && strings.Index(src.Raw[first+1:], window) >= 0 {
			return []models.CodeSmell{smell(d.Category(), d.Name(),
				fmt.Sprintf("A %d-line block repeats verbatim; extract it into a shared function", d.WindowLines))}
		}
	}
	return nil
}

var receiverCallRe = regexp.MustCompile(`\b([A-Za-z_$][\w$]*)\s*\.\s*[A-Za-z_$][\w$]*\s*\(`)

// FeatureEnvy flags receivers that are the target of more than MaxCalls
// method calls: code that keeps reaching into one object probably belongs
// on that object. One record per offending receiver.
type FeatureEnvy struct {
	MaxCalls int
}

func (d *FeatureEnvy) Name() string     { return "Feature Envy" }
func (d *FeatureEnvy) Category() string { return CategoryCouplers }

func (d *FeatureEnvy) Scan(src *Source) []models.CodeSmell {
	counts := make(map[string]int)
	var order []string

	for _, m := range receiverCallRe.FindAllStringSubmatch(src.Clean, -1) {
		receiver := m[1]
		if counts[receiver] == 0 {
			order = append(order, receiver)
		}
		counts[receiver]++
	}

	var out []models.CodeSmell
	for _, receiver := range order {
		if counts[receiver] > d.MaxCalls {
			out = append(out, smell(d.Category(), d.Name(),
				fmt.Sprintf("Object %q is the target of %d method calls; the calling code envies its features", receiver, counts[receiver])))
		}
	}
	return out
}
