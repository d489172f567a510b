package pseudocode

import (
	"regexp"
	"strconv"
	"strings"
)

// rule is one entry of the ordered recognizer table. A rule matches
// either with a pattern (group selects the captured text to keep) or
// with a scan function for shapes a pattern cannot express.
type rule struct {
	kind    TokenKind
	pattern *regexp.Regexp
	group   int
	scan    func(s string) (size int, text string, ok bool)
}

// rules are tried in order at every token boundary; the first match
// wins. Ordinary text excludes every character that starts another
// rule, so the order only matters for the backslash-prefixed shapes.
var rules = []rule{
	{kind: SpecialToken, pattern: regexp.MustCompile(`^\\([\\{}$&#%_])`), group: 1},
	{kind: CommandToken, pattern: regexp.MustCompile(`^\\([a-zA-Z]+)`), group: 1},
	{kind: OpenToken, pattern: regexp.MustCompile(`^\{`)},
	{kind: CloseToken, pattern: regexp.MustCompile(`^\}`)},
	{kind: TextToken, pattern: regexp.MustCompile(`^[^\\{}$&#%_]+`)},
	{kind: MathToken, scan: scanMath},
}

// scanMath reads an inline math span delimited by $...$. The closing
// delimiter is the first $ not immediately preceded by a backslash,
// which a fixed pattern cannot track.
func scanMath(s string) (int, string, bool) {
	if len(s) == 0 || s[0] != '$' {
		return 0, "", false
	}

	for i := 1; i < len(s); i++ {
		if s[i] == '$' && s[i-1] != '\\' {
			return i + 1, s[1:i], true
		}
	}

	return 0, "", false
}

// Lexer produces tokens over the full input text on demand. A failed
// scan is sticky: the cursor stops and the error surfaces through
// Expect.
type Lexer struct {
	input string
	pos   int
	cur   Token
	err   *Error
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.next()
	return l
}

// Current returns the token under the cursor without consuming it.
func (l *Lexer) Current() Token {
	return l.cur
}

// Accept consumes the current token and returns its text iff the kind
// matches and, when given, the text equals one of texts. Otherwise the
// cursor is left untouched.
func (l *Lexer) Accept(kind TokenKind, texts ...string) (string, bool) {
	if l.err != nil || !l.match(kind, texts...) {
		return "", false
	}

	text := l.cur.Text
	l.next()

	return text, true
}

// Expect is Accept that fails with a positioned error when the current
// token does not match.
func (l *Lexer) Expect(kind TokenKind, texts ...string) (string, *Error) {
	if l.err != nil {
		return "", l.err
	}

	if !l.match(kind, texts...) {
		want := kind.String()
		if len(texts) > 0 {
			want += " " + quoteList(texts)
		}

		return "", syntaxError(l.input, l.cur.Pos, "expected %s, got %s %q", want, l.cur.Kind, l.cur.Text)
	}

	text := l.cur.Text
	l.next()

	return text, nil
}

func (l *Lexer) match(kind TokenKind, texts ...string) bool {
	if l.cur.Kind != kind {
		return false
	}

	if len(texts) == 0 {
		return true
	}

	for _, text := range texts {
		if l.cur.Text == text {
			return true
		}
	}

	return false
}

// next scans the following token. Whitespace before a token is skipped;
// input that no rule recognizes stops the lexer with a lexical error.
func (l *Lexer) next() {
	for l.pos < len(l.input) && isWhitespace(l.input[l.pos]) {
		l.pos++
	}

	if l.pos >= len(l.input) {
		l.cur = Token{Kind: EOFToken, Pos: l.pos}
		return
	}

	rest := l.input[l.pos:]
	for _, r := range rules {
		if r.pattern != nil {
			match := r.pattern.FindStringSubmatch(rest)
			if match == nil {
				continue
			}

			l.cur = Token{Kind: r.kind, Text: match[r.group], Pos: l.pos}
			l.pos += len(match[0])

			return
		}

		if size, text, ok := r.scan(rest); ok {
			l.cur = Token{Kind: r.kind, Text: text, Pos: l.pos}
			l.pos += size

			return
		}
	}

	l.err = lexicalError(l.input, l.pos, "unrecognizable character sequence")
	l.cur = Token{Kind: EOFToken, Pos: l.pos}
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func quoteList(texts []string) string {
	quoted := make([]string, len(texts))
	for i, t := range texts {
		quoted[i] = strconv.Quote(t)
	}

	return strings.Join(quoted, " or ")
}
