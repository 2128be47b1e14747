// Package preprocess strips string literals and comments from raw source
// text so downstream detectors never match inside literal content. It is a
// lexical heuristic, not a parser: malformed input degrades to a best-effort
// partial clean instead of an error.
package preprocess

import "strings"

type lexState int

const (
	stateCode lexState = iota
	stateDoubleQuote
	stateSingleQuote
	stateLineComment
	stateBlockComment
)

// Clean removes single- and double-quoted literals, // line comments and
// /* */ block comments in a single pass. Because literals and comments are
// consumed by the same scan, a comment delimiter inside a literal (or a
// quote inside a comment) is never reinterpreted. Newlines inside stripped
// regions are preserved so line counts stay aligned with the raw text.
//
// Unterminated literals or comments fail soft: the scan stays in the open
// state to the end of input and returns the partially-cleaned prefix.
// Clean is idempotent on its own output.
func Clean(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	state := stateCode
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch state {
		case stateCode:
			switch {
			case c == '"':
				state = stateDoubleQuote
			case c == '\'':
				state = stateSingleQuote
			case c == '/' && i+1 < len(text) && text[i+1] == '/':
				state = stateLineComment
				i++
			case c == '/' && i+1 < len(text) && text[i+1] == '*':
				state = stateBlockComment
				i++
			default:
				out.WriteByte(c)
			}

		case stateDoubleQuote, stateSingleQuote:
			if escaped {
				escaped = false
				break
			}
			switch {
			case c == '\\':
				escaped = true
			case c == '"' && state == stateDoubleQuote:
				state = stateCode
			case c == '\'' && state == stateSingleQuote:
				state = stateCode
			case c == '\n':
				out.WriteByte('\n')
			}

		case stateLineComment:
			if c == '\n' {
				out.WriteByte('\n')
				state = stateCode
			}

		case stateBlockComment:
			if c == '\n' {
				out.WriteByte('\n')
			} else if c == '*' && i+1 < len(text) && text[i+1] == '/' {
				state = stateCode
				i++
			}
		}
	}

	return out.String()
}

// CountCommentSpans counts // and /* */ comment spans using the same
// literal-aware scan as Clean, so delimiters inside strings are not counted.
func CountCommentSpans(text string) int {
	state := stateCode
	escaped := false
	spans := 0

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch state {
		case stateCode:
			switch {
			case c == '"':
				state = stateDoubleQuote
			case c == '\'':
				state = stateSingleQuote
			case c == '/' && i+1 < len(text) && text[i+1] == '/':
				state = stateLineComment
				spans++
				i++
			case c == '/' && i+1 < len(text) && text[i+1] == '*':
				state = stateBlockComment
				spans++
				i++
			}

		case stateDoubleQuote, stateSingleQuote:
			if escaped {
				escaped = false
				break
			}
			switch {
			case c == '\\':
				escaped = true
			case c == '"' && state == stateDoubleQuote:
				state = stateCode
			case c == '\'' && state == stateSingleQuote:
				state = stateCode
			}

		case stateLineComment:
			if c == '\n' {
				state = stateCode
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(text) && text[i+1] == '/' {
				state = stateCode
				i++
			}
		}
	}

	return spans
}
