package spec

import "unicode"

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenNumeral
	tokenLess
	tokenGreater
	tokenOpenBracket
	tokenCloseBracket
	tokenOther
)

type token struct {
	kind tokenKind
	raw  string
}

// tokenize splits a spec into words, numerals, comparators and brackets.
// Whitespace only separates tokens. Characters outside the grammar become
// tokenOther so the parser can reject them with the kind-specific message.
func tokenize(input string) []token {
	var tokens []token
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		ch := runes[i]
		switch {
		case unicode.IsSpace(ch):
			i++
		case ch == '<':
			tokens = append(tokens, token{kind: tokenLess, raw: "<"})
			i++
		case ch == '>':
			tokens = append(tokens, token{kind: tokenGreater, raw: ">"})
			i++
		case ch == '[':
			tokens = append(tokens, token{kind: tokenOpenBracket, raw: "["})
			i++
		case ch == ']':
			tokens = append(tokens, token{kind: tokenCloseBracket, raw: "]"})
			i++
		case isDigit(ch) || ch == '.':
			start := i
			for i < len(runes) && (isDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumeral, raw: string(runes[start:i])})
		case unicode.IsLetter(ch):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenWord, raw: string(runes[start:i])})
		default:
			tokens = append(tokens, token{kind: tokenOther, raw: string(ch)})
			i++
		}
	}

	return tokens
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// validNumeral reports whether raw matches \d*\.?\d+: optional integer part,
// at most one decimal point, and at least one digit after it.
func validNumeral(raw string) bool {
	if raw == "" || raw[len(raw)-1] == '.' {
		return false
	}
	dots := 0
	for _, ch := range raw {
		if ch == '.' {
			dots++
		}
	}
	return dots <= 1
}

// tokenStream walks tokens with single-token lookahead.
type tokenStream struct {
	tokens []token
	pos    int
}

func (s *tokenStream) done() bool {
	return s.pos >= len(s.tokens)
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.done() || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.done() || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) word(values ...string) (string, bool) {
	if s.done() || s.tokens[s.pos].kind != tokenWord {
		return "", false
	}
	raw := s.tokens[s.pos].raw
	for _, value := range values {
		if raw == value {
			s.pos++
			return raw, true
		}
	}
	return "", false
}

func (s *tokenStream) numeral() (string, bool) {
	tok, ok := s.consume(tokenNumeral)
	if !ok || !validNumeral(tok.raw) {
		return "", false
	}
	return tok.raw, true
}
