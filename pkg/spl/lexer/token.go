package lexer

// Kind is the class of a token.
type Kind uint8

const (
	KindNumber Kind = iota
	KindIdentifier
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "NUMBER"
	case KindIdentifier:
		return "IDENTIFIER"
	case KindOperator:
		return "OPERATOR"
	default:
		return "UNKNOWN"
	}
}

// Token is an immutable (kind, text) pair.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) String() string {
	return t.Kind.String() + "(" + t.Text + ")"
}
