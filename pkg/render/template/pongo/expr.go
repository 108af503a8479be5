package pongo

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
)

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// exprParser turns Liquid expression tokens into pongo2 expression text.
// Every lookup, comparison and filter becomes a call to one of the runtime
// helpers so Liquid semantics apply regardless of pongo2's own rules.
type exprParser struct {
	tokens []token
	pos    int
	lit    *literals
	markup string
}

func newExprParser(markup string, lit *literals) (*exprParser, error) {
	tokens, err := tokenize(markup)
	if err != nil {
		return nil, err
	}
	return &exprParser{tokens: tokens, lit: lit, markup: markup}, nil
}

func (p *exprParser) peek() token { return p.peekAt(0) }

func (p *exprParser) peekAt(n int) token {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n]
	}
	return token{kind: tokEOF}
}

func (p *exprParser) next() token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *exprParser) done() bool { return p.pos >= len(p.tokens) }

func (p *exprParser) expect(kind tokenKind, what string) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, p.errorf("expected %s", what)
	}
	return tok, nil
}

func (p *exprParser) isWord(word string) bool {
	tok := p.peek()
	return tok.kind == tokIdent && tok.text == word
}

func (p *exprParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s in %q", fmt.Sprintf(format, args...), p.markup)
}

func (p *exprParser) end() error {
	if !p.done() {
		return p.errorf("unexpected %q", p.peek().text)
	}
	return nil
}

// filtered parses a value followed by any number of filters.
func (p *exprParser) filtered() (string, error) {
	expr, err := p.primary()
	if err != nil {
		return "", err
	}
	for p.peek().kind == tokPipe {
		p.next()
		name, err := p.expect(tokIdent, "filter name")
		if err != nil {
			return "", err
		}
		args := []string{p.lit.quote(name.text), expr}
		if p.peek().kind == tokColon {
			p.next()
			for {
				if p.peek().kind == tokIdent && p.peekAt(1).kind == tokColon {
					p.pos += 2
				}
				arg, err := p.primary()
				if err != nil {
					return "", err
				}
				args = append(args, arg)
				if p.peek().kind != tokComma {
					break
				}
				p.next()
			}
		}
		expr = call("liquid_filter", args...)
	}
	return expr, nil
}

// primary parses a literal, a range or a variable path.
func (p *exprParser) primary() (string, error) {
	tok := p.next()
	var expr string
	switch tok.kind {
	case tokString:
		return p.lit.quote(tok.text), nil
	case tokNumber:
		return tok.text, nil
	case tokLParen:
		from, err := p.primary()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(tokRange, "'..'"); err != nil {
			return "", err
		}
		to, err := p.primary()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return "", err
		}
		return call("liquid_range", from, to), nil
	case tokLBracket:
		key, err := p.primary()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return "", err
		}
		expr = call("liquid_var", key)
	case tokIdent:
		expr = p.head(tok.text)
	case tokEOF:
		return "", p.errorf("missing value")
	default:
		return "", p.errorf("unexpected %q", tok.text)
	}
	return p.path(expr)
}

func (p *exprParser) head(name string) string {
	switch name {
	case "true", "false":
		return name
	case "nil", "null":
		return "nil"
	case "empty":
		return "liquid_empty"
	case "blank":
		return "liquid_blank"
	}
	if plainIdent.MatchString(name) && !slices.Contains(pongo2.TokenKeywords, name) {
		return name
	}
	return call("liquid_var", p.lit.quote(name))
}

func (p *exprParser) path(expr string) (string, error) {
	for {
		switch p.peek().kind {
		case tokDot:
			p.next()
			name, err := p.expect(tokIdent, "property name")
			if err != nil {
				return "", err
			}
			expr = call("liquid_get", expr, p.lit.quote(name.text))
		case tokLBracket:
			p.next()
			key, err := p.primary()
			if err != nil {
				return "", err
			}
			if _, err := p.expect(tokRBracket, "']'"); err != nil {
				return "", err
			}
			expr = call("liquid_get", expr, key)
		default:
			return expr, nil
		}
	}
}

// condition parses comparisons joined by and/or. Liquid evaluates the
// operators right to left with no precedence between them.
func (p *exprParser) condition() (string, error) {
	var clauses, ops []string
	for {
		left, err := p.primary()
		if err != nil {
			return "", err
		}
		clause := call("liquid_truthy", left)
		if tok := p.peek(); tok.kind == tokCompare || (tok.kind == tokIdent && tok.text == "contains") {
			p.next()
			right, err := p.primary()
			if err != nil {
				return "", err
			}
			op := tok.text
			if op == "<>" {
				op = "!="
			}
			clause = call("liquid_compare", p.lit.quote(op), left, right)
		}
		clauses = append(clauses, clause)
		if p.isWord("and") || p.isWord("or") {
			ops = append(ops, p.next().text)
			continue
		}
		break
	}
	expr := clauses[len(clauses)-1]
	for i := len(ops) - 1; i >= 0; i-- {
		expr = clauses[i] + " " + ops[i] + " (" + expr + ")"
	}
	return expr, nil
}

func call(name string, args ...string) string {
	return name + "(" + strings.Join(args, ", ") + ")"
}

// literals collects string constants pongo2 cannot express inline, which is
// any string holding a line break.
type literals struct {
	values []any
}

func (l *literals) quote(s string) string {
	if strings.ContainsAny(s, "\r\n") {
		l.values = append(l.values, s)
		return "liquid_literals." + strconv.Itoa(len(l.values)-1)
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
