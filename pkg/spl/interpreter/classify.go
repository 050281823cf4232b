package interpreter

import (
	"strings"

	"github.com/drawscript/spl/pkg/errs"
	"github.com/drawscript/spl/pkg/spl/command"
	"github.com/drawscript/spl/pkg/spl/lexer"
)

// StatementKind is the syntactic class of one source line.
type StatementKind uint8

const (
	Blank StatementKind = iota
	EndMethod
	MethodDef
	MethodCall
	While
	EndWhile
	If
	EndIf
	Assignment
	Command
)

var statementKindNames = [...]string{
	Blank:      "blank",
	EndMethod:  "endmethod",
	MethodDef:  "method",
	MethodCall: "call",
	While:      "while",
	EndWhile:   "endwhile",
	If:         "if",
	EndIf:      "endif",
	Assignment: "assignment",
	Command:    "command",
}

func (k StatementKind) String() string {
	if int(k) < len(statementKindNames) {
		return statementKindNames[k]
	}
	return "unknown"
}

// Statement is a classified line. Only the fields relevant to Kind are set.
type Statement struct {
	Kind   StatementKind
	Text   string
	Tokens []lexer.Token

	// Name of the declared or called method.
	Name string
	// Formals of a method declaration.
	Formals []string
	// Args of a method call, one token group per argument.
	Args [][]lexer.Token

	// Word and Params of a plain command.
	Word   string
	Params []string

	// err is a syntax problem found while classifying; it is reported when
	// the statement is executed.
	err error
}

// Classify assigns line to exactly one StatementKind. Keywords are matched
// case-insensitively on the first word, in this order: endmethod, method
// header, method call, while, endwhile, if, endif, assignment, command.
func Classify(line string) Statement {
	s := Statement{Text: strings.TrimSpace(line)}
	s.Tokens = lexer.Tokenize(s.Text)
	if len(s.Tokens) == 0 {
		s.Kind = Blank
		return s
	}
	first := ""
	if s.Tokens[0].Kind == lexer.KindIdentifier {
		first = strings.ToLower(s.Tokens[0].Text)
	}
	switch {
	case first == "endmethod":
		s.Kind = EndMethod
	case first == "method":
		s.Kind = MethodDef
		s.Name, s.Formals, s.err = header(s.Tokens)
	case isCall(first, s.Tokens):
		s.Kind = MethodCall
		s.Name = s.Tokens[0].Text
		s.Args, s.err = arguments(s.Tokens[2:])
	case first == "while":
		s.Kind = While
	case first == "endwhile":
		s.Kind = EndWhile
	case first == "if":
		s.Kind = If
	case first == "endif":
		s.Kind = EndIf
	case hasAssign(s.Tokens):
		s.Kind = Assignment
	default:
		s.Kind = Command
		s.Word, s.Params = command.Split(s.Text)
	}
	return s
}

func isKeyword(w string) bool {
	switch w {
	case "method", "endmethod", "while", "endwhile", "if", "endif", "var":
		return true
	}
	return false
}

func isCall(first string, tokens []lexer.Token) bool {
	return first != "" && !isKeyword(first) && !command.IsCommand(first) &&
		len(tokens) > 1 && tokens[1].Is(lexer.KindOperator, "(") && !hasAssign(tokens)
}

func hasAssign(tokens []lexer.Token) bool {
	for _, t := range tokens {
		if t.Is(lexer.KindOperator, "=") {
			return true
		}
	}
	return false
}

// header parses `method name(a, b)`. Formals are every identifier after
// the name, so `method name a b` is accepted too.
func header(tokens []lexer.Token) (string, []string, error) {
	if len(tokens) < 2 || tokens[1].Kind != lexer.KindIdentifier {
		return "", nil, errs.MalformedStatement.New("method declaration requires a name")
	}
	name := tokens[1].Text
	if isKeyword(strings.ToLower(name)) || command.IsCommand(name) {
		return "", nil, errs.MalformedStatement.Errorf("'%s' cannot be used as a method name", name)
	}
	var formals []string
	for _, t := range lexer.Filter(tokens[2:], lexer.KindIdentifier) {
		formals = append(formals, t.Text)
	}
	return name, formals, nil
}

// arguments splits the tokens following `name(` on top-level commas up to
// the closing parenthesis.
func arguments(tokens []lexer.Token) ([][]lexer.Token, error) {
	var (
		args  [][]lexer.Token
		cur   []lexer.Token
		depth int
	)
	for i, t := range tokens {
		switch {
		case t.Is(lexer.KindOperator, "("):
			depth++
		case t.Is(lexer.KindOperator, ")"):
			if depth == 0 {
				if len(cur) > 0 || len(args) > 0 {
					args = append(args, cur)
				}
				if i != len(tokens)-1 {
					return nil, errs.MalformedStatement.New("unexpected text after method call")
				}
				for _, a := range args {
					if len(a) == 0 {
						return nil, errs.MalformedStatement.New("empty argument in method call")
					}
				}
				return args, nil
			}
			depth--
		case depth == 0 && t.Is(lexer.KindOperator, ","):
			args = append(args, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	return nil, errs.MalformedStatement.New("method call is missing ')'")
}
