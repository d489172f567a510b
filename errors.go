// Package pseudocode converts algorithmic pseudocode written in a small
// TeX-like markup into HTML. Input is tokenized, parsed into a tree and
// rendered by walking that tree; any failure aborts the whole call.
package pseudocode

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind classifies an Error so callers can branch on the failure
// class programmatically.
type ErrorKind string

const (
	// KindLexical is an unrecognizable character sequence in the input.
	KindLexical ErrorKind = "lexical"

	// KindSyntax is a grammar violation: a missing or unexpected symbol,
	// an unmatched begin/end pair or a mismatched closing keyword.
	KindSyntax ErrorKind = "syntax"

	// KindConfig is a malformed option value.
	KindConfig ErrorKind = "config"

	// KindInternal signals a node the emitter does not know, which means
	// parser and builder disagree about the tree vocabulary.
	KindInternal ErrorKind = "internal"
)

// Error is a structured render failure. Lexical and syntax errors carry
// the byte offset of the failure and an excerpt of the input around it
// with the failure position marked.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Pos     int       `json:"pos,omitempty"`
	Excerpt string    `json:"excerpt,omitempty"`
}

func (e *Error) Error() string {
	if e.Excerpt != "" {
		return fmt.Sprintf("%s error at %d: %s\n%s", e.Kind, e.Pos, e.Message, e.Excerpt)
	}

	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// excerptRadius is the number of bytes shown on each side of the
// failure position, snapped outwards to rune boundaries.
const excerptRadius = 30

// marker is inserted in the excerpt right before the offending
// character.
const marker = "<<here>>"

// excerpt renders a window of the input centered on pos with the
// failure position marked inline.
func excerpt(input string, pos int) string {
	if pos < 0 {
		pos = 0
	}

	if pos > len(input) {
		pos = len(input)
	}

	from := pos - excerptRadius
	if from < 0 {
		from = 0
	}

	for from > 0 && !utf8.RuneStart(input[from]) {
		from--
	}

	to := pos + excerptRadius
	if to > len(input) {
		to = len(input)
	}

	for to < len(input) && !utf8.RuneStart(input[to]) {
		to++
	}

	var sb strings.Builder
	if from > 0 {
		sb.WriteString("...")
	}

	sb.WriteString(input[from:pos])
	sb.WriteString(marker)
	sb.WriteString(input[pos:to])

	if to < len(input) {
		sb.WriteString("...")
	}

	return sb.String()
}

func lexicalError(input string, pos int, format string, args ...any) *Error {
	return &Error{Kind: KindLexical, Message: fmt.Sprintf(format, args...), Pos: pos, Excerpt: excerpt(input, pos)}
}

func syntaxError(input string, pos int, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Message: fmt.Sprintf(format, args...), Pos: pos, Excerpt: excerpt(input, pos)}
}

func configError(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

func internalError(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}
