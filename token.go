package pseudocode

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	EOFToken     TokenKind = iota // end of input
	CommandToken                  // backslash-prefixed name, text holds the name without the prefix
	OpenToken                     // {
	CloseToken                    // }
	TextToken                     // maximal run of ordinary characters
	SpecialToken                  // one of the fixed escape sequences, text holds the escaped character
	MathToken                     // $...$ span, text holds the body without delimiters
)

func (k TokenKind) String() string {
	switch k {
	case EOFToken:
		return "end of input"
	case CommandToken:
		return "command"
	case OpenToken:
		return "open brace"
	case CloseToken:
		return "close brace"
	case TextToken:
		return "text"
	case SpecialToken:
		return "special character"
	case MathToken:
		return "math"
	default:
		return "unknown"
	}
}

// Token is a lexical symbol with its position in the input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// specials maps escaped characters to their literal replacement in the
// output. The escaped backslash stands for a line break.
var specials = map[string]string{
	"\\": "<br/>",
	"{":  "{",
	"}":  "}",
	"$":  "$",
	"&":  "&amp;",
	"#":  "#",
	"%":  "%",
	"_":  "_",
}

// booleans are condition keywords accepted as atoms inside text.
var booleans = []string{"AND", "OR", "NOT", "TRUE", "FALSE"}

// sizes are text size commands, smallest to largest.
var sizes = []string{
	"tiny", "scriptsize", "footnotesize", "small", "normalsize",
	"large", "Large", "LARGE", "huge", "Huge",
}

// fonts are font family, series and shape commands.
var fonts = []string{
	"rmfamily", "sffamily", "ttfamily",
	"upshape", "itshape", "slshape", "scshape",
	"bfseries", "mdseries", "lfseries", "normalfont",
	"textrm", "textsf", "texttt",
	"textup", "textit", "textsl", "textsc",
	"textbf", "textmd", "uppercase", "lowercase",
}
