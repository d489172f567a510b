package pseudocode_test

import (
	"strings"
	"testing"

	"github.com/eolymp/go-pseudocode"
	"github.com/google/go-cmp/cmp"
)

func TestParser(t *testing.T) {
	doc := func(children ...*pseudocode.Node) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.DocumentKind, Children: children}
	}

	algorithm := func(children ...*pseudocode.Node) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.AlgorithmKind, Children: children}
	}

	algorithmic := func(children ...*pseudocode.Node) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.AlgorithmicKind, Children: children}
	}

	block := func(children ...*pseudocode.Node) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.BlockKind, Children: children}
	}

	branch := func(children ...*pseudocode.Node) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.BranchKind, Children: children}
	}

	text := func(children ...*pseudocode.Node) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.TextKind, Children: children}
	}

	cond := func(children ...*pseudocode.Node) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.CondKind, Children: children}
	}

	ordinary := func(data string) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.OrdinaryKind, Data: data}
	}

	math := func(data string) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.MathKind, Data: data}
	}

	command := func(keyword string, children ...*pseudocode.Node) *pseudocode.Node {
		return &pseudocode.Node{Kind: pseudocode.CommandKind, Data: keyword, Children: children}
	}

	tt := []struct {
		name   string
		input  string
		output *pseudocode.Node
	}{
		{
			name:   "empty document",
			input:  "  ",
			output: doc(),
		},
		{
			name:  "single state",
			input: "\\begin{algorithmic}\\STATE compute\\end{algorithmic}",
			output: doc(algorithmic(block(
				command("state", text(ordinary("compute"))),
			))),
		},
		{
			name:  "state with brace group keeps grouping",
			input: "\\begin{algorithmic}\\STATE{positive}\\end{algorithmic}",
			output: doc(algorithmic(block(
				command("state", text(text(ordinary("positive")))),
			))),
		},
		{
			name:  "require before block",
			input: "\\begin{algorithmic}\\REQUIRE $n>0$\\STATE go\\end{algorithmic}",
			output: doc(algorithmic(
				command("require", text(math("n>0"))),
				block(command("state", text(ordinary("go")))),
			)),
		},
		{
			name:  "if with math condition",
			input: "\\begin{algorithmic}\\IF{$x>0$}\\STATE{positive}\\ENDIF\\end{algorithmic}",
			output: doc(algorithmic(block(
				&pseudocode.Node{Kind: pseudocode.IfKind, Children: []*pseudocode.Node{
					branch(
						cond(math("x>0")),
						block(command("state", text(text(ordinary("positive"))))),
					),
				}},
			))),
		},
		{
			name:  "while loop",
			input: "\\begin{algorithmic}\\WHILE{$i<n$}\\STATE next\\ENDWHILE\\end{algorithmic}",
			output: doc(algorithmic(block(
				&pseudocode.Node{Kind: pseudocode.LoopKind, Data: "while", Children: []*pseudocode.Node{
					cond(math("i<n")),
					block(command("state", text(ordinary("next")))),
				}},
			))),
		},
		{
			name:  "empty loop body",
			input: "\\begin{algorithmic}\\FOR{$i$}\\ENDFOR\\end{algorithmic}",
			output: doc(algorithmic(block(
				&pseudocode.Node{Kind: pseudocode.LoopKind, Data: "for", Children: []*pseudocode.Node{
					cond(math("i")),
					block(),
				}},
			))),
		},
		{
			name:  "procedure has params and body children",
			input: "\\begin{algorithmic}\\PROCEDURE{Euclid}{$a, b$}\\RETURN $b$\\ENDPROCEDURE\\end{algorithmic}",
			output: doc(algorithmic(block(
				&pseudocode.Node{
					Kind:       pseudocode.FunctionKind,
					Data:       "procedure",
					Parameters: map[string]string{"name": "Euclid"},
					Children: []*pseudocode.Node{
						text(math("a, b")),
						block(command("return", text(math("b")))),
					},
				},
			))),
		},
		{
			name:  "call",
			input: "\\begin{algorithmic}\\STATE\\CALL{Sort}{$A$}\\end{algorithmic}",
			output: doc(algorithmic(block(
				command("state"),
				&pseudocode.Node{
					Kind:       pseudocode.CallKind,
					Parameters: map[string]string{"name": "Sort"},
					Children:   []*pseudocode.Node{text(math("A"))},
				},
			))),
		},
		{
			name:  "comment",
			input: "\\begin{algorithmic}\\COMMENT{slow path}\\end{algorithmic}",
			output: doc(algorithmic(block(
				&pseudocode.Node{Kind: pseudocode.CommentKind, Children: []*pseudocode.Node{
					text(ordinary("slow path")),
				}},
			))),
		},
		{
			name:  "boolean atoms in condition",
			input: "\\begin{algorithmic}\\IF{$a$ \\AND \\NOT $b$}\\STATE x\\ENDIF\\end{algorithmic}",
			output: doc(algorithmic(block(
				&pseudocode.Node{Kind: pseudocode.IfKind, Children: []*pseudocode.Node{
					branch(
						cond(
							math("a"),
							&pseudocode.Node{Kind: pseudocode.BoolKind, Data: "AND"},
							&pseudocode.Node{Kind: pseudocode.BoolKind, Data: "NOT"},
							math("b"),
						),
						block(command("state", text(ordinary("x")))),
					),
				}},
			))),
		},
		{
			name:  "algorithm with caption",
			input: "\\begin{algorithm}\\caption{Euclid}\\begin{algorithmic}\\STATE x\\end{algorithmic}\\end{algorithm}",
			output: doc(algorithm(
				&pseudocode.Node{Kind: pseudocode.CaptionKind, Children: []*pseudocode.Node{
					text(ordinary("Euclid")),
				}},
				algorithmic(block(command("state", text(ordinary("x"))))),
			)),
		},
		{
			name: "two environments",
			input: "\\begin{algorithmic}\\STATE a\\end{algorithmic}" +
				"\\begin{algorithmic}\\STATE b\\end{algorithmic}",
			output: doc(
				algorithmic(block(command("state", text(ordinary("a"))))),
				algorithmic(block(command("state", text(ordinary("b"))))),
			),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pseudocode.Parse(tc.input)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}

			if diff := cmp.Diff(tc.output, got); diff != "" {
				t.Errorf("tree does not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParserBranchCounts(t *testing.T) {
	tt := []struct {
		name     string
		input    string
		branches int
		hasElse  bool
	}{
		{
			name:     "plain if",
			input:    "\\begin{algorithmic}\\IF{$c$}\\STATE x\\ENDIF\\end{algorithmic}",
			branches: 1,
		},
		{
			name:     "if with two elifs and else",
			input:    "\\begin{algorithmic}\\IF{$a$}\\STATE x\\ELIF{$b$}\\STATE y\\ELIF{$c$}\\STATE z\\ELSE\\STATE w\\ENDIF\\end{algorithmic}",
			branches: 3,
			hasElse:  true,
		},
		{
			name:     "if with else only",
			input:    "\\begin{algorithmic}\\IF{$a$}\\STATE x\\ELSE\\STATE y\\ENDIF\\end{algorithmic}",
			branches: 1,
			hasElse:  true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			root, err := pseudocode.Parse(tc.input)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}

			clause := root.Children[0].Children[0].Children[0]
			if clause.Kind != pseudocode.IfKind {
				t.Fatalf("expected if node, got %s", clause.Kind)
			}

			if got := len(clause.Branches()); got != tc.branches {
				t.Errorf("expected %d condition branches, got %d", tc.branches, got)
			}

			if got := clause.Else() != nil; got != tc.hasElse {
				t.Errorf("expected hasElse=%v, got %v", tc.hasElse, got)
			}
		})
	}
}

func TestParserErrors(t *testing.T) {
	tt := []struct {
		name    string
		input   string
		kind    pseudocode.ErrorKind
		message string
	}{
		{
			name:    "cross matched loop keywords",
			input:   "\\begin{algorithmic}\\FOR{$i$}\\STATE x\\ENDWHILE\\end{algorithmic}",
			kind:    pseudocode.KindSyntax,
			message: "ENDFOR",
		},
		{
			name:    "cross matched function keywords",
			input:   "\\begin{algorithmic}\\FUNCTION{F}{$x$}\\STATE x\\ENDPROCEDURE\\end{algorithmic}",
			kind:    pseudocode.KindSyntax,
			message: "ENDFUNCTION",
		},
		{
			name:    "mismatched environment names",
			input:   "\\begin{algorithmic}\\STATE x\\end{algorithm}",
			kind:    pseudocode.KindSyntax,
			message: "algorithmic",
		},
		{
			name:    "unknown environment",
			input:   "\\begin{itemize}\\end{itemize}",
			kind:    pseudocode.KindSyntax,
			message: "unknown environment",
		},
		{
			name:    "unknown environment nested in algorithm",
			input:   "\\begin{algorithm}\\begin{algorithm}\\end{algorithm}\\end{algorithm}",
			kind:    pseudocode.KindSyntax,
			message: "unknown environment",
		},
		{
			name:    "trailing content",
			input:   "\\begin{algorithmic}\\STATE x\\end{algorithmic} trailing",
			kind:    pseudocode.KindSyntax,
			message: "end of input",
		},
		{
			name:    "closer is not a block constituent",
			input:   "\\begin{algorithmic}\\STATE a \\ENDWHILE\\end{algorithmic}",
			kind:    pseudocode.KindSyntax,
			message: "\"end\"",
		},
		{
			name:    "missing endif",
			input:   "\\begin{algorithmic}\\IF{$c$}\\STATE x\\end{algorithmic}",
			kind:    pseudocode.KindSyntax,
			message: "ENDIF",
		},
		{
			name:    "unrecognizable input",
			input:   "\\begin{algorithmic}\\STATE \\9\\end{algorithmic}",
			kind:    pseudocode.KindLexical,
			message: "unrecognizable",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pseudocode.Parse(tc.input)
			if err == nil {
				t.Fatal("expected an error")
			}

			perr, ok := err.(*pseudocode.Error)
			if !ok {
				t.Fatalf("expected *pseudocode.Error, got %T", err)
			}

			if perr.Kind != tc.kind {
				t.Errorf("expected %q error, got %q: %v", tc.kind, perr.Kind, err)
			}

			if !strings.Contains(perr.Message, tc.message) {
				t.Errorf("expected message to contain %q, got %q", tc.message, perr.Message)
			}

			if !strings.Contains(perr.Excerpt, "<<here>>") {
				t.Errorf("expected excerpt with failure marker, got %q", perr.Excerpt)
			}
		})
	}
}

func TestStringExtractsText(t *testing.T) {
	root, err := pseudocode.Parse("\\begin{algorithmic}\\STATE{half of $n$}\\end{algorithmic}")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	state := root.Children[0].Children[0].Children[0]
	if got := pseudocode.String(state); got != "half of n" {
		t.Errorf("expected %q, got %q", "half of n", got)
	}
}
