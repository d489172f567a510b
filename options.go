package pseudocode

import (
	"html"
	"regexp"
	"strconv"
)

// MathRenderer renders the raw source of one math fragment into markup
// which is spliced into the output verbatim. Injecting it keeps the
// core free of any typesetting engine; tests stub it out.
type MathRenderer func(source string) (string, error)

// Options configure rendering. The zero value of every field selects
// its default.
type Options struct {
	// IndentSize is the left margin added per nesting level. The value
	// must carry the "em" unit suffix. Default "1.4em".
	IndentSize string

	// CommentSymbol is reserved for comment prefixes. Default "//".
	CommentSymbol string

	// LineNumber enables a running per-line counter inside every
	// algorithmic environment.
	LineNumber bool

	// LineNumberPunc is appended after a line number. Default ":".
	LineNumberPunc string

	// MathRenderer renders math fragments. Defaults to an escaping
	// placeholder renderer.
	MathRenderer MathRenderer
}

// config is one render call's resolved configuration.
type config struct {
	indent         float64
	commentSymbol  string
	lineNumber     bool
	lineNumberPunc string
	math           MathRenderer
}

var emLength = regexp.MustCompile(`^(-?[0-9]*\.?[0-9]+)em$`)

// parseIndent parses a length with a mandatory "em" unit suffix.
func parseIndent(raw string) (float64, *Error) {
	match := emLength.FindStringSubmatch(raw)
	if len(match) == 0 {
		return 0, configError("indent size %q must be a number with an \"em\" suffix", raw)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, configError("indent size %q must be a number with an \"em\" suffix", raw)
	}

	return value, nil
}

// resolve validates options and fills in defaults. Option errors are
// raised here, before any input is read.
func (o *Options) resolve() (*config, *Error) {
	c := &config{
		indent:         1.4,
		commentSymbol:  "//",
		lineNumberPunc: ":",
		math:           renderMathPlaceholder,
	}

	if o == nil {
		return c, nil
	}

	if o.IndentSize != "" {
		indent, err := parseIndent(o.IndentSize)
		if err != nil {
			return nil, err
		}

		c.indent = indent
	}

	if o.CommentSymbol != "" {
		c.commentSymbol = o.CommentSymbol
	}

	if o.LineNumberPunc != "" {
		c.lineNumberPunc = o.LineNumberPunc
	}

	if o.MathRenderer != nil {
		c.math = o.MathRenderer
	}

	c.lineNumber = o.LineNumber

	return c, nil
}

// renderMathPlaceholder is the default math renderer: it escapes the
// source and tags it so a client-side typesetter can pick it up.
func renderMathPlaceholder(source string) (string, error) {
	return `<span class="ps-math">` + html.EscapeString(source) + `</span>`, nil
}
