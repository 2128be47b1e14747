package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Assessment is the qualitative verdict attached to an analysis.
type Assessment string

const (
	AssessmentHighDebt Assessment = "High technical debt detected"
	AssessmentLowDebt  Assessment = "Low technical debt detected"
)

// CodeSmell is a single positive detection emitted by a smell detector.
// Records are immutable once created; Detected is always true in practice
// but kept in the wire format for downstream consumers.
type CodeSmell struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Detected    bool   `json:"detected"`
}

// SmellGroups maps category names to their smells while preserving the
// order in which categories were first seen. A plain map would lose that
// order (encoding/json sorts map keys), and the response contract requires
// categories in detector execution order.
type SmellGroups struct {
	order  []string
	groups map[string][]CodeSmell
}

// NewSmellGroups creates an empty grouping.
func NewSmellGroups() SmellGroups {
	return SmellGroups{groups: make(map[string][]CodeSmell)}
}

// Add appends a smell to its category, creating the category on first sight.
func (g *SmellGroups) Add(smell CodeSmell) {
	if g.groups == nil {
		g.groups = make(map[string][]CodeSmell)
	}
	if _, ok := g.groups[smell.Category]; !ok {
		g.order = append(g.order, smell.Category)
	}
	g.groups[smell.Category] = append(g.groups[smell.Category], smell)
}

// Categories returns category names in insertion order.
func (g SmellGroups) Categories() []string {
	return g.order
}

// Get returns the smells recorded under a category.
func (g SmellGroups) Get(category string) []CodeSmell {
	return g.groups[category]
}

// Len returns the total number of smells across all categories.
func (g SmellGroups) Len() int {
	n := 0
	for _, smells := range g.groups {
		n += len(smells)
	}
	return n
}

// MarshalJSON emits categories as an object in insertion order.
func (g SmellGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range g.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(g.groups[category])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON rebuilds the grouping, preserving the key order of the
// incoming object.
func (g *SmellGroups) UnmarshalJSON(data []byte) error {
	*g = NewSmellGroups()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("codeSmells: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		category, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("codeSmells: expected string key, got %v", keyTok)
		}
		var smells []CodeSmell
		if err := dec.Decode(&smells); err != nil {
			return err
		}
		g.order = append(g.order, category)
		g.groups[category] = smells
	}

	_, err = dec.Token() // closing brace
	return err
}

// AnalysisResult is the complete debt profile for one input. It is built
// once per analysis call and never mutated afterwards.
type AnalysisResult struct {
	CyclomaticComplexity int         `json:"cyclomaticComplexity"`
	DuplicationRatio     float64     `json:"duplicationRatio"`
	LinesOfCode          int         `json:"linesOfCode"`
	CodeSmells           SmellGroups `json:"codeSmells"`
	SmellsCount          int         `json:"smellsCount"`
	TechnicalDebtRatio   float64     `json:"technicalDebtRatio"`
	Assessment           Assessment  `json:"assessment"`
}

// resultWire is the serialized shape: the two ratios go out as strings
// fixed to two decimal places.
type resultWire struct {
	CyclomaticComplexity int         `json:"cyclomaticComplexity"`
	DuplicationRatio     string      `json:"duplicationRatio"`
	LinesOfCode          int         `json:"linesOfCode"`
	CodeSmells           SmellGroups `json:"codeSmells"`
	SmellsCount          int         `json:"smellsCount"`
	TechnicalDebtRatio   string      `json:"technicalDebtRatio"`
	Assessment           Assessment  `json:"assessment"`
}

// MarshalJSON renders ratios with two decimal places, per the response
// contract.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultWire{
		CyclomaticComplexity: r.CyclomaticComplexity,
		DuplicationRatio:     fmt.Sprintf("%.2f", r.DuplicationRatio),
		LinesOfCode:          r.LinesOfCode,
		CodeSmells:           r.CodeSmells,
		SmellsCount:          r.SmellsCount,
		TechnicalDebtRatio:   fmt.Sprintf("%.2f", r.TechnicalDebtRatio),
		Assessment:           r.Assessment,
	})
}

// UnmarshalJSON parses the wire shape back into numeric ratios.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var wire resultWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var dup, debt float64
	if wire.DuplicationRatio != "" {
		if _, err := fmt.Sscanf(wire.DuplicationRatio, "%f", &dup); err != nil {
			return fmt.Errorf("duplicationRatio: %w", err)
		}
	}
	if wire.TechnicalDebtRatio != "" {
		if _, err := fmt.Sscanf(wire.TechnicalDebtRatio, "%f", &debt); err != nil {
			return fmt.Errorf("technicalDebtRatio: %w", err)
		}
	}

	*r = AnalysisResult{
		CyclomaticComplexity: wire.CyclomaticComplexity,
		DuplicationRatio:     dup,
		LinesOfCode:          wire.LinesOfCode,
		CodeSmells:           wire.CodeSmells,
		SmellsCount:          wire.SmellsCount,
		TechnicalDebtRatio:   debt,
		Assessment:           wire.Assessment,
	}
	return nil
}
