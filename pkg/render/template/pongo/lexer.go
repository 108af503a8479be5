package pongo

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokRange
	tokDot
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokPipe
	tokColon
	tokComma
	tokCompare
	tokAssign
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits Liquid markup into expression tokens. Strings keep their
// contents without quotes; Liquid strings have no escape sequences.
func tokenize(markup string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(markup); {
		c := markup[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '"' || c == '\'':
			end := strings.IndexByte(markup[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string in %q", markup)
			}
			tokens = append(tokens, token{tokString, markup[i+1 : i+1+end]})
			i += end + 2
		case isDigit(c) || (c == '-' && i+1 < len(markup) && isDigit(markup[i+1])):
			j := i + 1
			for j < len(markup) && isDigit(markup[j]) {
				j++
			}
			if j+1 < len(markup) && markup[j] == '.' && isDigit(markup[j+1]) {
				j++
				for j < len(markup) && isDigit(markup[j]) {
					j++
				}
			}
			tokens = append(tokens, token{tokNumber, markup[i:j]})
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < len(markup) && isIdentPart(markup[j]) {
				j++
			}
			tokens = append(tokens, token{tokIdent, markup[i:j]})
			i = j
		case strings.HasPrefix(markup[i:], ".."):
			tokens = append(tokens, token{tokRange, ".."})
			i += 2
		case c == '=' && strings.HasPrefix(markup[i:], "=="),
			c == '!' && strings.HasPrefix(markup[i:], "!="),
			c == '<' && strings.HasPrefix(markup[i:], "<>"),
			c == '<' && strings.HasPrefix(markup[i:], "<="),
			c == '>' && strings.HasPrefix(markup[i:], ">="):
			tokens = append(tokens, token{tokCompare, markup[i : i+2]})
			i += 2
		case c == '<' || c == '>':
			tokens = append(tokens, token{tokCompare, string(c)})
			i++
		default:
			kind, ok := punctuation[c]
			if !ok {
				return nil, fmt.Errorf("unexpected character %q in %q", c, markup)
			}
			tokens = append(tokens, token{kind, string(c)})
			i++
		}
	}
	return tokens, nil
}

var punctuation = map[byte]tokenKind{
	'.': tokDot,
	'[': tokLBracket,
	']': tokRBracket,
	'(': tokLParen,
	')': tokRParen,
	'|': tokPipe,
	':': tokColon,
	',': tokComma,
	'=': tokAssign,
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-' || c == '?'
}
