package pseudocode

// Kind identifies the grammatical construct a Node represents.
type Kind int

const (
	DocumentKind    Kind = iota // root, children are top level environments
	AlgorithmKind               // algorithm environment
	AlgorithmicKind             // algorithmic environment
	CaptionKind                 // caption, one text child
	BlockKind                   // statement sequence, the unit of indentation
	FunctionKind                // function or procedure (Data), children are params text and body block
	IfKind                      // children are BranchKind nodes
	BranchKind                  // condition and block children; block only for the else branch
	LoopKind                    // for or while (Data), children are condition and body block
	CommandKind                 // single keyword statement (Data), optional text child
	CommentKind                 // one text child
	CallKind                    // call, Parameters carry the name, optional argument text child
	CondKind                    // condition text group of an if or loop head
	TextKind                    // text group, children are atoms or nested groups
	OrdinaryKind                // literal text run (Data)
	MathKind                    // math source without delimiters (Data)
	SpecialKind                 // escaped character (Data)
	BoolKind                    // boolean keyword (Data)
	SizeKind                    // size switch keyword (Data)
	FontKind                    // font switch keyword (Data)
)

func (k Kind) String() string {
	switch k {
	case DocumentKind:
		return "document"
	case AlgorithmKind:
		return "algorithm"
	case AlgorithmicKind:
		return "algorithmic"
	case CaptionKind:
		return "caption"
	case BlockKind:
		return "block"
	case FunctionKind:
		return "function"
	case IfKind:
		return "if"
	case BranchKind:
		return "branch"
	case LoopKind:
		return "loop"
	case CommandKind:
		return "command"
	case CommentKind:
		return "comment"
	case CallKind:
		return "call"
	case CondKind:
		return "cond"
	case TextKind:
		return "text"
	case OrdinaryKind:
		return "ordinary"
	case MathKind:
		return "math"
	case SpecialKind:
		return "special"
	case BoolKind:
		return "bool"
	case SizeKind:
		return "size"
	case FontKind:
		return "font"
	default:
		return "unknown"
	}
}

// Node is one vertex of the parse tree. A node is owned by its parent
// and is not modified once its subtree has been parsed.
type Node struct {
	Kind       Kind              `json:"kind"`
	Data       string            `json:"data,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Children   []*Node           `json:"children,omitempty"`
}

// Branches returns the condition branches of an if node, not counting
// the else branch.
func (n *Node) Branches() (branches []*Node) {
	for _, child := range n.Children {
		if child.Kind == BranchKind && len(child.Children) == 2 {
			branches = append(branches, child)
		}
	}

	return
}

// Else returns the else branch block of an if node, or nil.
func (n *Node) Else() *Node {
	for _, child := range n.Children {
		if child.Kind == BranchKind && len(child.Children) == 1 {
			return child.Children[0]
		}
	}

	return nil
}

// String extracts the plain text of a subtree, ignoring markup
// structure.
func String(node *Node) (out string) {
	switch node.Kind {
	case OrdinaryKind, MathKind, SpecialKind, BoolKind:
		return node.Data
	}

	for _, child := range node.Children {
		out += String(child)
	}

	return
}
