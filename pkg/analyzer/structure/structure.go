// Package structure locates method and class bodies in cleaned source text
// using a regular-expression approximation of brace matching. It exists as
// its own capability so the regex scan can later be swapped for a real
// bracket-depth tokenizer without touching detector logic.
package structure

import (
	"regexp"
	"strings"
)

// Method is a lexically-matched function or method body.
type Method struct {
	Name   string
	Params string // raw parenthesized parameter text, may be empty
	Body   string
	Lines  int // lines spanned by the body
}

// Class is a lexically-matched class body.
type Class struct {
	Name  string
	Body  string
	Lines int
}

// Scanner resolves structural boundaries from clean text. Implementations
// must degrade gracefully: source without brace-delimited bodies yields no
// matches, never an error.
type Scanner interface {
	Methods(clean string) []Method
	Classes(clean string) []Class
	ExtendsCount(clean string) int
}

// RegexScanner is the default pattern-based Scanner. The closing brace of a
// body is approximated by the first subsequent line containing only "}":
// nested braces make it stop early, which under-reports and never crashes.
type RegexScanner struct{}

// NewRegexScanner returns the default scanner.
func NewRegexScanner() *RegexScanner {
	return &RegexScanner{}
}

var (
	// Two header shapes: "function name(params) {" and
	// "[visibility] [static] type name(params) {".
	methodRe = regexp.MustCompile(`(?ms)(?:\bfunction\s+([A-Za-z_$][\w$]*)|\b(?:(?:public|private|protected)\s+)?(?:static\s+)?[A-Za-z_$][\w$]*\s+([A-Za-z_$][\w$]*))\s*\(([^)]*)\)\s*\{(.*?)\n[ \t]*\}`)

	classRe = regexp.MustCompile(`(?ms)\bclass\s+([A-Za-z_$][\w$]*)[^{\n]*\{(.*?)\n[ \t]*\}`)

	extendsRe = regexp.MustCompile(`\bextends\b`)

	// Control keywords that the type+name header shape would otherwise
	// mistake for declarations ("else if (x)", "return foo(y)").
	headerKeywords = map[string]bool{
		"if": true, "else": true, "for": true, "while": true, "switch": true,
		"catch": true, "return": true, "new": true, "throw": true, "do": true,
	}
)

// Methods returns every matched function/method body in order of appearance.
func (s *RegexScanner) Methods(clean string) []Method {
	var methods []Method
	for _, m := range methodRe.FindAllStringSubmatch(clean, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if headerKeywords[name] {
			continue
		}
		body := m[4]
		methods = append(methods, Method{
			Name:   name,
			Params: strings.TrimSpace(m[3]),
			Body:   body,
			Lines:  strings.Count(body, "\n"),
		})
	}
	return methods
}

// Classes returns every matched class body in order of appearance.
func (s *RegexScanner) Classes(clean string) []Class {
	var classes []Class
	for _, m := range classRe.FindAllStringSubmatch(clean, -1) {
		body := m[2]
		classes = append(classes, Class{
			Name:  m[1],
			Body:  body,
			Lines: strings.Count(body, "\n"),
		})
	}
	return classes
}

// ExtendsCount counts extends keywords in the clean text.
func (s *RegexScanner) ExtendsCount(clean string) int {
	return len(extendsRe.FindAllStringIndex(clean, -1))
}
