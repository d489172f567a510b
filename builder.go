package pseudocode

import (
	"html"
	"strconv"
	"strings"
)

// commandLabels maps statement keywords to their display label. State
// has no label, its text stands alone on the line.
var commandLabels = map[string]string{
	"state":   "",
	"require": "Require:",
	"ensure":  "Ensure:",
	"print":   "print",
	"return":  "return",
}

// builder walks the parse tree and emits HTML. All cursor state lives
// here, one builder per render call, so concurrent renders never share
// anything.
type builder struct {
	conf *config
	out  strings.Builder

	depth    int             // block nesting depth
	openLine bool            // a line element is open
	buf      strings.Builder // pending literal text, coalesced until flushed
	style    string          // class applied to pending text, empty for plain
	line     int             // line counter, reset per algorithmic environment
	caption  int             // caption ordinal, monotonic across the render
}

func newBuilder(conf *config) *builder {
	return &builder{conf: conf}
}

// build renders the whole document. Nothing is returned on failure,
// the output is all-or-nothing.
func (b *builder) build(root *Node) (string, *Error) {
	b.out.WriteString(`<div class="ps-root">`)

	for _, child := range root.Children {
		var err *Error
		switch child.Kind {
		case AlgorithmKind:
			err = b.algorithm(child)
		case AlgorithmicKind:
			err = b.algorithmic(child)
		default:
			err = internalError("unexpected %s node at document root", child.Kind)
		}

		if err != nil {
			return "", err
		}
	}

	b.out.WriteString(`</div>`)

	return b.out.String(), nil
}

func (b *builder) algorithm(node *Node) *Error {
	b.out.WriteString(`<div class="ps-algorithm">`)

	for _, child := range node.Children {
		var err *Error
		switch child.Kind {
		case CaptionKind:
			err = b.captionLine(child)
		case AlgorithmicKind:
			err = b.algorithmic(child)
		default:
			err = internalError("unexpected %s node in algorithm environment", child.Kind)
		}

		if err != nil {
			return err
		}
	}

	b.out.WriteString(`</div>`)

	return nil
}

func (b *builder) algorithmic(node *Node) *Error {
	class := "ps-algorithmic"
	if b.conf.lineNumber {
		class += " ps-linenum-enabled"
		b.line = 0
	}

	b.out.WriteString(`<div class="` + class + `">`)

	for _, child := range node.Children {
		var err *Error
		switch child.Kind {
		case CommandKind:
			err = b.statement(child)
		case BlockKind:
			err = b.block(child)
		default:
			err = internalError("unexpected %s node in algorithmic environment", child.Kind)
		}

		if err != nil {
			return err
		}
	}

	b.endLine()
	b.out.WriteString(`</div>`)

	return nil
}

// captionLine emits the "Algorithm N" caption heading. The ordinal
// advances with every caption emitted during the render.
func (b *builder) captionLine(node *Node) *Error {
	b.caption++

	b.out.WriteString(`<p class="ps-line ps-caption"><span class="ps-keyword">Algorithm ` + strconv.Itoa(b.caption) + ` </span>`)

	if err := b.text(node.Children[0]); err != nil {
		return err
	}

	b.flush()
	b.out.WriteString(`</p>`)

	return nil
}

// block emits one indentation level. An empty block emits nothing.
func (b *builder) block(node *Node) *Error {
	if len(node.Children) == 0 {
		return nil
	}

	b.beginBlock()

	for _, child := range node.Children {
		if err := b.statement(child); err != nil {
			return err
		}
	}

	b.endLine()
	b.endBlock()

	return nil
}

func (b *builder) statement(node *Node) *Error {
	switch node.Kind {
	case IfKind:
		return b.ifClause(node)
	case LoopKind:
		return b.loop(node)
	case FunctionKind:
		return b.function(node)
	case CommandKind:
		return b.command(node)
	case CommentKind:
		return b.comment(node)
	case CallKind:
		return b.call(node)
	default:
		return internalError("unexpected %s node in block", node.Kind)
	}
}

// ifClause renders every condition branch as an "if ... then" line;
// elif branches are intentionally indistinguishable from the first.
func (b *builder) ifClause(node *Node) *Error {
	for _, branch := range node.Branches() {
		b.beginLine()
		b.keyword("if ")

		if err := b.text(branch.Children[0]); err != nil {
			return err
		}

		b.keyword(" then")

		if err := b.block(branch.Children[1]); err != nil {
			return err
		}
	}

	if els := node.Else(); els != nil {
		b.beginLine()
		b.keyword("else")

		if err := b.block(els); err != nil {
			return err
		}
	}

	b.beginLine()
	b.keyword("end if")

	return nil
}

func (b *builder) loop(node *Node) *Error {
	b.beginLine()
	b.keyword(node.Data + " ")

	if err := b.text(node.Children[0]); err != nil {
		return err
	}

	b.keyword(" do")

	if err := b.block(node.Children[1]); err != nil {
		return err
	}

	b.beginLine()
	b.keyword("end " + node.Data)

	return nil
}

func (b *builder) function(node *Node) *Error {
	b.beginLine()
	b.keyword(node.Data + " ")
	b.funcname(node.Parameters["name"])
	b.literal("(")

	if err := b.text(node.Children[0]); err != nil {
		return err
	}

	b.literal(")")

	if err := b.block(node.Children[1]); err != nil {
		return err
	}

	b.beginLine()
	b.keyword("end " + node.Data)

	return nil
}

func (b *builder) command(node *Node) *Error {
	b.beginLine()

	if label := commandLabels[node.Data]; label != "" {
		b.keyword(label + " ")
	}

	if len(node.Children) > 0 {
		return b.text(node.Children[0])
	}

	return nil
}

// comment renders inline on the current line.
func (b *builder) comment(node *Node) *Error {
	b.flush()
	b.out.WriteString(`<span class="ps-comment">`)

	if err := b.text(node.Children[0]); err != nil {
		return err
	}

	b.flush()
	b.out.WriteString(`</span>`)

	return nil
}

// call renders inline on the current line, no new line is opened.
func (b *builder) call(node *Node) *Error {
	b.funcname(node.Parameters["name"])
	b.literal("(")

	if err := b.text(node.Children[0]); err != nil {
		return err
	}

	b.literal(")")

	return nil
}

// text renders a text group. Size and font switches change the class
// applied to the following literal runs and are scoped to their group.
func (b *builder) text(node *Node) *Error {
	for _, child := range node.Children {
		switch child.Kind {
		case OrdinaryKind:
			b.literal(child.Data)
		case SpecialKind:
			b.literalRaw(specials[child.Data])
		case MathKind:
			markup, err := b.conf.math(child.Data)
			if err != nil {
				return internalError("math renderer failed: %v", err)
			}

			b.splice(markup)
		case BoolKind:
			b.keyword(strings.ToLower(child.Data))
		case SizeKind, FontKind:
			b.setStyle("ps-" + child.Data)
		case TextKind, CondKind:
			saved := b.style
			if err := b.text(child); err != nil {
				return err
			}

			b.setStyle(saved)
		default:
			return internalError("unexpected %s node in text", child.Kind)
		}
	}

	return nil
}

// beginBlock opens one nested container; the margin repeats per level,
// so the effective left margin is the indent size times the depth.
func (b *builder) beginBlock() {
	b.endLine()
	b.depth++
	b.out.WriteString(`<div class="ps-block" style="margin-left:` + strconv.FormatFloat(b.conf.indent, 'f', -1, 64) + `em;">`)
}

func (b *builder) endBlock() {
	b.endLine()
	b.depth--
	b.out.WriteString(`</div>`)
}

// beginLine opens a logical line, closing a previously open one. Lines
// at depth zero are pre-condition lines and take no number.
func (b *builder) beginLine() {
	b.endLine()
	b.openLine = true

	if b.depth == 0 {
		b.out.WriteString(`<p class="ps-line">`)
		return
	}

	b.out.WriteString(`<p class="ps-line ps-code">`)

	if b.conf.lineNumber {
		b.line++
		b.out.WriteString(`<span class="ps-linenum">` + strconv.Itoa(b.line) + html.EscapeString(b.conf.lineNumberPunc) + `</span> `)
	}
}

func (b *builder) endLine() {
	if !b.openLine {
		return
	}

	b.flush()
	b.out.WriteString(`</p>`)
	b.openLine = false
}

// keyword emits a keyword run.
func (b *builder) keyword(text string) {
	b.flush()
	b.out.WriteString(`<span class="ps-keyword">` + html.EscapeString(text) + `</span>`)
}

// funcname emits a function name run.
func (b *builder) funcname(name string) {
	b.flush()
	b.out.WriteString(`<span class="ps-funcname">` + html.EscapeString(name) + `</span>`)
}

// literal buffers plain text; adjacent runs coalesce until a flush.
func (b *builder) literal(text string) {
	b.buf.WriteString(html.EscapeString(text))
}

// literalRaw buffers text that is already valid markup, used for the
// special escape substitutions.
func (b *builder) literalRaw(markup string) {
	b.buf.WriteString(markup)
}

// splice writes pre-rendered markup verbatim.
func (b *builder) splice(markup string) {
	b.flush()
	b.out.WriteString(markup)
}

// setStyle switches the class applied to buffered text, flushing what
// was written under the previous one.
func (b *builder) setStyle(style string) {
	if style == b.style {
		return
	}

	b.flush()
	b.style = style
}

// flush writes the buffered text, wrapped in a styled span when a size
// or font switch is active.
func (b *builder) flush() {
	if b.buf.Len() == 0 {
		return
	}

	if b.style == "" {
		b.out.WriteString(b.buf.String())
	} else {
		b.out.WriteString(`<span class="` + b.style + `">` + b.buf.String() + `</span>`)
	}

	b.buf.Reset()
}
