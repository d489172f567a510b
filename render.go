package pseudocode

import (
	"io"
)

// Parse parses the input and returns the document root. The tree can
// be kept for diagnostics or serialized with encoding/json.
func Parse(input string) (*Node, error) {
	return NewParser(input).Parse()
}

// RenderString converts pseudocode markup into HTML. On failure it
// returns a *Error and no output.
func RenderString(input string, options *Options) (string, error) {
	conf, cerr := options.resolve()
	if cerr != nil {
		return "", cerr
	}

	root, err := Parse(input)
	if err != nil {
		return "", err
	}

	markup, berr := newBuilder(conf).build(root)
	if berr != nil {
		return "", berr
	}

	return markup, nil
}

// Render converts pseudocode markup and writes the result to w. It is
// a thin wrapper over RenderString, nothing is written on failure.
func Render(w io.Writer, input string, options *Options) error {
	markup, err := RenderString(input, options)
	if err != nil {
		return err
	}

	_, werr := io.WriteString(w, markup)
	return werr
}
