package smells

import (
	"github.com/debtlens/debtlens/pkg/analyzer/structure"
	"github.com/debtlens/debtlens/pkg/models"
)

// Smell categories, in the order the default detectors emit them.
const (
	CategoryBloaters         = "Bloaters"
	CategoryOOAbusers        = "Object-Orientation Abusers"
	CategoryChangePreventers = "Change Preventers"
	CategoryDispensables     = "Dispensables"
	CategoryCouplers         = "Couplers"
)

// Source is the shared, read-only input handed to every detector. It is
// computed once per analysis so detectors stay independent and stateless.
type Source struct {
	Raw   string // original text, line structure intact
	Clean string // literals and comments stripped

	Lines        int // raw line count, blank lines included
	CommentSpans int

	Methods []structure.Method
	Classes []structure.Class
	Extends int
}

// Detector scans for exactly one category/pattern of code smell.
// Implementations hold no mutable state and may run concurrently.
type Detector interface {
	Name() string
	Category() string
	Scan(src *Source) []models.CodeSmell
}

// smell builds a positive detection record.
func smell(category, name, description string) models.CodeSmell {
	return models.CodeSmell{
		Category:    category,
		Name:        name,
		Description: description,
		Detected:    true,
	}
}
