package lexer

import "unicode/utf8"

// Tokenize splits a single source line into tokens.
// It never fails: characters it does not understand become one-character
// operator tokens and validity is left to the consumer. Bytes that are not
// valid UTF-8 become U+FFFD.
func Tokenize(line string) []Token {
	var (
		tokens []Token
		i      = 0
	)
	for i < len(line) {
		ch := line[i]
		switch {
		case isSpace(ch):
			i++
		case isDigit(ch):
			start := i
			for i < len(line) && isDigit(line[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: KindNumber, Text: line[start:i]})
		case isIdentStart(ch):
			start := i
			for i < len(line) && isIdentPart(line[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: KindIdentifier, Text: line[start:i]})
		case isComparisonStart(ch) && i+1 < len(line) && line[i+1] == '=':
			tokens = append(tokens, Token{Kind: KindOperator, Text: line[i : i+2]})
			i += 2
		default:
			r, size := utf8.DecodeRuneInString(line[i:])
			tokens = append(tokens, Token{Kind: KindOperator, Text: string(r)})
			i += size
		}
	}
	return tokens
}

// Filter returns tokens of the given kinds preserving order.
func Filter(tokens []Token, kinds ...Kind) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		for _, k := range kinds {
			if t.Kind == k {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\v' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isComparisonStart(ch byte) bool {
	return ch == '<' || ch == '>' || ch == '=' || ch == '!'
}
