package pseudocode

import (
	"strings"
)

// environment names accepted at the top level.
const (
	envAlgorithm   = "algorithm"
	envAlgorithmic = "algorithmic"
)

// Parser is a predictive recursive-descent parser over the token
// stream, one method per grammar production. Every production either
// returns a node, reports "not present" with a nil node, or fails the
// whole parse with a positioned error.
type Parser struct {
	lexer *Lexer
	input string
}

func NewParser(input string) *Parser {
	return &Parser{lexer: NewLexer(input), input: input}
}

// Parse consumes the whole input and returns the document root. Any
// content after the last environment is an error.
func (p *Parser) Parse() (*Node, error) {
	root := &Node{Kind: DocumentKind}

	for {
		if _, ok := p.lexer.Accept(CommandToken, "begin"); !ok {
			break
		}

		node, err := p.environment(envAlgorithm, envAlgorithmic)
		if err != nil {
			return nil, err
		}

		root.Children = append(root.Children, node)
	}

	if _, err := p.lexer.Expect(EOFToken); err != nil {
		return nil, err
	}

	return root, nil
}

// environment parses one begin/end delimited environment after the
// begin command itself has been consumed. The closing tag must repeat
// the opening name exactly.
func (p *Parser) environment(allowed ...string) (*Node, *Error) {
	if _, err := p.lexer.Expect(OpenToken); err != nil {
		return nil, err
	}

	at := p.lexer.Current().Pos
	name, err := p.lexer.Expect(TextToken)
	if err != nil {
		return nil, err
	}

	known := false
	for _, candidate := range allowed {
		known = known || name == candidate
	}

	if !known {
		return nil, syntaxError(p.input, at, "unknown environment %q, expected %s", name, strings.Join(allowed, " or "))
	}

	if _, err := p.lexer.Expect(CloseToken); err != nil {
		return nil, err
	}

	var node *Node
	switch name {
	case envAlgorithm:
		node, err = p.algorithm()
	case envAlgorithmic:
		node, err = p.algorithmic()
	}

	if err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(CommandToken, "end"); err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(OpenToken); err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(TextToken, name); err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(CloseToken); err != nil {
		return nil, err
	}

	return node, nil
}

// algorithm parses the algorithm environment body: any mix of nested
// algorithmic environments and captions.
func (p *Parser) algorithm() (*Node, *Error) {
	node := &Node{Kind: AlgorithmKind}

	for {
		if _, ok := p.lexer.Accept(CommandToken, "begin"); ok {
			child, err := p.environment(envAlgorithmic)
			if err != nil {
				return nil, err
			}

			node.Children = append(node.Children, child)
			continue
		}

		if _, ok := p.lexer.Accept(CommandToken, "caption"); ok {
			child, err := p.caption()
			if err != nil {
				return nil, err
			}

			node.Children = append(node.Children, child)
			continue
		}

		return node, nil
	}
}

// algorithmic parses the algorithmic environment body: Require/Ensure
// commands interleaved with statement blocks.
func (p *Parser) algorithmic() (*Node, *Error) {
	node := &Node{Kind: AlgorithmicKind}

	for {
		if keyword, ok := p.lexer.Accept(CommandToken, "REQUIRE", "ENSURE"); ok {
			child, err := p.command(keyword)
			if err != nil {
				return nil, err
			}

			node.Children = append(node.Children, child)
			continue
		}

		block, err := p.block()
		if err != nil {
			return nil, err
		}

		if block == nil {
			return node, nil
		}

		node.Children = append(node.Children, block)
	}
}

func (p *Parser) caption() (*Node, *Error) {
	text, err := p.group(TextKind)
	if err != nil {
		return nil, err
	}

	return &Node{Kind: CaptionKind, Children: []*Node{text}}, nil
}

// block parses a maximal run of statements. An empty run yields nil;
// callers decide whether an absent block is allowed.
func (p *Parser) block() (*Node, *Error) {
	block := &Node{Kind: BlockKind}

	for {
		statement, err := p.statement()
		if err != nil {
			return nil, err
		}

		if statement == nil {
			break
		}

		block.Children = append(block.Children, statement)
	}

	if len(block.Children) == 0 {
		return nil, nil
	}

	return block, nil
}

func (p *Parser) statement() (*Node, *Error) {
	if _, ok := p.lexer.Accept(CommandToken, "IF"); ok {
		return p.ifClause()
	}

	if _, ok := p.lexer.Accept(CommandToken, "FOR"); ok {
		return p.loop("for", "ENDFOR")
	}

	if _, ok := p.lexer.Accept(CommandToken, "WHILE"); ok {
		return p.loop("while", "ENDWHILE")
	}

	if _, ok := p.lexer.Accept(CommandToken, "FUNCTION"); ok {
		return p.function("function", "ENDFUNCTION")
	}

	if _, ok := p.lexer.Accept(CommandToken, "PROCEDURE"); ok {
		return p.function("procedure", "ENDPROCEDURE")
	}

	if keyword, ok := p.lexer.Accept(CommandToken, "STATE", "PRINT", "RETURN"); ok {
		return p.command(keyword)
	}

	if _, ok := p.lexer.Accept(CommandToken, "COMMENT"); ok {
		return p.comment()
	}

	if _, ok := p.lexer.Accept(CommandToken, "CALL"); ok {
		return p.call()
	}

	return nil, nil
}

// ifClause parses IF{cond} block, any number of ELIF{cond} block pairs,
// an optional ELSE block and the closing ENDIF. Each pair becomes one
// branch child; the else block becomes a trailing single-child branch.
func (p *Parser) ifClause() (*Node, *Error) {
	node := &Node{Kind: IfKind}

	branch, err := p.branch()
	if err != nil {
		return nil, err
	}

	node.Children = append(node.Children, branch)

	for {
		if _, ok := p.lexer.Accept(CommandToken, "ELIF"); !ok {
			break
		}

		branch, err := p.branch()
		if err != nil {
			return nil, err
		}

		node.Children = append(node.Children, branch)
	}

	if _, ok := p.lexer.Accept(CommandToken, "ELSE"); ok {
		block, err := p.block()
		if err != nil {
			return nil, err
		}

		node.Children = append(node.Children, &Node{Kind: BranchKind, Children: []*Node{blockOrEmpty(block)}})
	}

	if _, err := p.lexer.Expect(CommandToken, "ENDIF"); err != nil {
		return nil, err
	}

	return node, nil
}

// branch parses one {cond} block pair of an if clause.
func (p *Parser) branch() (*Node, *Error) {
	cond, err := p.group(CondKind)
	if err != nil {
		return nil, err
	}

	block, err := p.block()
	if err != nil {
		return nil, err
	}

	return &Node{Kind: BranchKind, Children: []*Node{cond, blockOrEmpty(block)}}, nil
}

// loop parses the remainder of a for or while statement. The closing
// keyword must match the opening kind, ENDFOR closes only FOR.
func (p *Parser) loop(kind, closing string) (*Node, *Error) {
	cond, err := p.group(CondKind)
	if err != nil {
		return nil, err
	}

	block, err := p.block()
	if err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(CommandToken, closing); err != nil {
		return nil, err
	}

	return &Node{Kind: LoopKind, Data: kind, Children: []*Node{cond, blockOrEmpty(block)}}, nil
}

// function parses the remainder of a function or procedure definition:
// {name}{params} block and the matching closing keyword. The node
// always carries exactly two children, the params text and the body
// block.
func (p *Parser) function(kind, closing string) (*Node, *Error) {
	if _, err := p.lexer.Expect(OpenToken); err != nil {
		return nil, err
	}

	name, err := p.lexer.Expect(TextToken)
	if err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(CloseToken); err != nil {
		return nil, err
	}

	params, err := p.group(TextKind)
	if err != nil {
		return nil, err
	}

	block, err := p.block()
	if err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(CommandToken, closing); err != nil {
		return nil, err
	}

	node := &Node{
		Kind:       FunctionKind,
		Data:       kind,
		Parameters: map[string]string{"name": strings.TrimSpace(name)},
		Children:   []*Node{params, blockOrEmpty(block)},
	}

	return node, nil
}

// command parses the free text following a single-keyword statement.
// Text is consumed greedily until neither a symbol nor a brace group
// can be taken.
func (p *Parser) command(keyword string) (*Node, *Error) {
	node := &Node{Kind: CommandKind, Data: strings.ToLower(keyword)}

	text, err := p.text(TextKind)
	if err != nil {
		return nil, err
	}

	if text != nil {
		node.Children = append(node.Children, text)
	}

	return node, nil
}

func (p *Parser) comment() (*Node, *Error) {
	text, err := p.group(TextKind)
	if err != nil {
		return nil, err
	}

	return &Node{Kind: CommentKind, Children: []*Node{text}}, nil
}

func (p *Parser) call() (*Node, *Error) {
	if _, err := p.lexer.Expect(OpenToken); err != nil {
		return nil, err
	}

	name, err := p.lexer.Expect(TextToken)
	if err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(CloseToken); err != nil {
		return nil, err
	}

	args, err := p.group(TextKind)
	if err != nil {
		return nil, err
	}

	node := &Node{
		Kind:       CallKind,
		Parameters: map[string]string{"name": strings.TrimSpace(name)},
		Children:   []*Node{args},
	}

	return node, nil
}

// group parses a mandatory brace-delimited text group. The group node
// is returned even when empty so parents keep their child layout.
func (p *Parser) group(kind Kind) (*Node, *Error) {
	if _, err := p.lexer.Expect(OpenToken); err != nil {
		return nil, err
	}

	text, err := p.text(kind)
	if err != nil {
		return nil, err
	}

	if _, err := p.lexer.Expect(CloseToken); err != nil {
		return nil, err
	}

	if text == nil {
		text = &Node{Kind: kind}
	}

	return text, nil
}

// text parses a run of symbols and nested brace groups. A brace group
// becomes a nested text child, preserving the original grouping. An
// empty run yields nil.
func (p *Parser) text(kind Kind) (*Node, *Error) {
	node := &Node{Kind: kind}

	for {
		symbol, err := p.symbol()
		if err != nil {
			return nil, err
		}

		if symbol != nil {
			node.Children = append(node.Children, symbol)
			continue
		}

		if _, ok := p.lexer.Accept(OpenToken); ok {
			sub, err := p.text(TextKind)
			if err != nil {
				return nil, err
			}

			if _, err := p.lexer.Expect(CloseToken); err != nil {
				return nil, err
			}

			if sub == nil {
				sub = &Node{Kind: TextKind}
			}

			node.Children = append(node.Children, sub)
			continue
		}

		break
	}

	if len(node.Children) == 0 {
		return nil, nil
	}

	return node, nil
}

// symbol parses one text atom. A nil node means there is no symbol at
// the cursor, which is how text runs terminate, not an error.
func (p *Parser) symbol() (*Node, *Error) {
	if text, ok := p.lexer.Accept(TextToken); ok {
		return &Node{Kind: OrdinaryKind, Data: text}, nil
	}

	if math, ok := p.lexer.Accept(MathToken); ok {
		return &Node{Kind: MathKind, Data: math}, nil
	}

	if special, ok := p.lexer.Accept(SpecialToken); ok {
		return &Node{Kind: SpecialKind, Data: special}, nil
	}

	if keyword, ok := p.lexer.Accept(CommandToken, booleans...); ok {
		return &Node{Kind: BoolKind, Data: keyword}, nil
	}

	if keyword, ok := p.lexer.Accept(CommandToken, sizes...); ok {
		return &Node{Kind: SizeKind, Data: keyword}, nil
	}

	if keyword, ok := p.lexer.Accept(CommandToken, fonts...); ok {
		return &Node{Kind: FontKind, Data: keyword}, nil
	}

	return nil, nil
}

// blockOrEmpty substitutes an empty block node for an absent block in
// positions where the parent keeps a fixed child layout.
func blockOrEmpty(block *Node) *Node {
	if block == nil {
		return &Node{Kind: BlockKind}
	}

	return block
}
