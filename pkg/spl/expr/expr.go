// Package expr evaluates the two expression forms of the language:
// left-to-right integer arithmetic on the right-hand side of an
// assignment, and a single binary comparison used by if and while.
// Neither form has operator precedence: `a + b * c` is `(a + b) * c`.
package expr

import (
	"strconv"

	"github.com/drawscript/spl/pkg/errs"
	"github.com/drawscript/spl/pkg/spl/lexer"
)

// Scope resolves variable names to values.
type Scope interface {
	Get(name string) (int, error)
}

// Assigner is a Scope that can also store results.
type Assigner interface {
	Scope
	Set(name string, value int)
}

const varKeyword = "var"

// Resolve turns a single number or identifier token into its value.
func Resolve(s Scope, t lexer.Token) (int, error) {
	switch t.Kind {
	case lexer.KindNumber:
		v, err := strconv.Atoi(t.Text)
		if err != nil {
			return 0, errs.InvalidParameter.Wrapf(err, "invalid number '%s'", t.Text)
		}
		return v, nil
	case lexer.KindIdentifier:
		return s.Get(t.Text)
	default:
		return 0, errs.MalformedStatement.Errorf("unexpected operator '%s' where a value was expected", t.Text)
	}
}

// operand reads one operand starting at tokens[i], allowing a leading
// unary minus, and returns its value and the index after it.
func operand(s Scope, tokens []lexer.Token, i int) (int, int, error) {
	if i >= len(tokens) {
		return 0, i, errs.MalformedStatement.New("missing operand")
	}
	neg := false
	if tokens[i].Is(lexer.KindOperator, "-") {
		neg = true
		i++
		if i >= len(tokens) {
			return 0, i, errs.MalformedStatement.New("missing operand after '-'")
		}
	}
	v, err := Resolve(s, tokens[i])
	if err != nil {
		return 0, i, err
	}
	if neg {
		v = -v
	}
	return v, i + 1, nil
}

// Evaluate folds `operand (op operand)*` strictly left to right.
func Evaluate(s Scope, tokens []lexer.Token) (int, error) {
	result, i, err := operand(s, tokens, 0)
	if err != nil {
		return 0, err
	}
	for i < len(tokens) {
		op := tokens[i]
		if op.Kind != lexer.KindOperator {
			return 0, errs.MalformedStatement.Errorf("expected operator, found '%s'", op.Text)
		}
		var rhs int
		rhs, i, err = operand(s, tokens, i+1)
		if err != nil {
			return 0, err
		}
		result, err = apply(op.Text, result, rhs)
		if err != nil {
			return 0, err
		}
	}
	return result, nil
}

func apply(op string, a, b int) (int, error) {
	switch op {
	case "%":
		if b == 0 {
			return 0, errs.ArithmeticError.New("modulo by zero")
		}
		return a % b, nil
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "/":
		if b == 0 {
			return 0, errs.ArithmeticError.New("division by zero")
		}
		return a / b, nil
	case "*":
		return a * b, nil
	default:
		return 0, errs.MalformedStatement.Errorf("unsupported arithmetic operator '%s'", op)
	}
}

// Assign evaluates `[var] <identifier> = <expression>` and stores the
// result under the identifier, creating it if absent.
func Assign(s Assigner, tokens []lexer.Token) (string, int, error) {
	if len(tokens) > 0 && tokens[0].Kind == lexer.KindIdentifier && tokens[0].Text == varKeyword &&
		len(tokens) > 1 && tokens[1].Kind == lexer.KindIdentifier {
		tokens = tokens[1:]
	}
	if len(tokens) < 3 || tokens[0].Kind != lexer.KindIdentifier || !tokens[1].Is(lexer.KindOperator, "=") {
		return "", 0, errs.MalformedStatement.New("assignment must have the form 'name = expression'")
	}
	name := tokens[0].Text
	v, err := Evaluate(s, tokens[2:])
	if err != nil {
		return name, 0, err
	}
	s.Set(name, v)
	return name, v, nil
}

// Compare evaluates the comparison that follows the keyword at
// tokens[0], e.g. `while x < 20`. Tokens after the right operand are
// ignored. An unsupported comparison operator yields false.
func Compare(s Scope, tokens []lexer.Token) (bool, error) {
	left, i, err := operand(s, tokens, 1)
	if err != nil {
		return false, errs.Extend(err, "invalid condition")
	}
	if i >= len(tokens) {
		return false, errs.MalformedStatement.New("invalid condition: missing comparison operator")
	}
	op := tokens[i].Text
	right, _, err := operand(s, tokens, i+1)
	if err != nil {
		return false, errs.Extend(err, "invalid condition")
	}
	switch op {
	case "<":
		return left < right, nil
	case ">":
		return left > right, nil
	case "<=":
		return left <= right, nil
	case ">=":
		return left >= right, nil
	case "==":
		return left == right, nil
	case "!=":
		return left != right, nil
	default:
		return false, nil
	}
}
