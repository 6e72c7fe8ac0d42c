// Package expr implements a small, restricted arithmetic and boolean
// expression evaluator for the calculator-style commands. It understands
// numeric literals, named variables, + - * / %, parentheses, the six
// comparison operators, and and/or (also spelled &&/||). Nothing else:
// user input is never handed to a general-purpose evaluator.
package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Vars supplies values for identifiers in an expression. A nil map means
// any identifier is an error.
type Vars map[string]float64

// Eval parses and evaluates the expression with the given variables.
func Eval(input string, vars Vars) (float64, error) {
	p := &parser{toks: nil, vars: vars}
	if err := p.lex(input); err != nil {
		return 0, err
	}
	if len(p.toks) == 0 {
		return 0, fmt.Errorf("empty expression")
	}
	v, err := p.parseOr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.toks) {
		return 0, fmt.Errorf("unexpected %q", p.toks[p.pos].text)
	}
	return v, nil
}

// Format renders a result the way the shell prints it: integral values
// without a decimal point, everything else with %g.
func Format(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	num  float64
}

type parser struct {
	toks []token
	pos  int
	vars Vars
}

func (p *parser) lex(input string) error {
	s := input
	for len(s) > 0 {
		r := rune(s[0])
		switch {
		case unicode.IsSpace(r):
			s = s[1:]
		case r >= '0' && r <= '9' || r == '.':
			i := 0
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
				i++
			}
			n, err := strconv.ParseFloat(s[:i], 64)
			if err != nil {
				return fmt.Errorf("bad number %q", s[:i])
			}
			p.toks = append(p.toks, token{kind: tokNum, text: s[:i], num: n})
			s = s[i:]
		case unicode.IsLetter(r) || r == '_' || r == '$':
			i := 1
			for i < len(s) && (unicode.IsLetter(rune(s[i])) || unicode.IsDigit(rune(s[i])) || s[i] == '_') {
				i++
			}
			p.toks = append(p.toks, token{kind: tokIdent, text: s[:i]})
			s = s[i:]
		case r == '(':
			p.toks = append(p.toks, token{kind: tokLParen, text: "("})
			s = s[1:]
		case r == ')':
			p.toks = append(p.toks, token{kind: tokRParen, text: ")"})
			s = s[1:]
		default:
			op := ""
			for _, candidate := range []string{"==", "!=", "<=", ">=", "&&", "||", "+", "-", "*", "/", "%", "<", ">"} {
				if strings.HasPrefix(s, candidate) {
					op = candidate
					break
				}
			}
			if op == "" {
				return fmt.Errorf("unexpected character %q", r)
			}
			p.toks = append(p.toks, token{kind: tokOp, text: op})
			s = s[len(op):]
		}
	}
	return nil
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) acceptOp(ops ...string) (string, bool) {
	t, ok := p.peek()
	if !ok {
		return "", false
	}
	for _, op := range ops {
		if t.kind == tokOp && t.text == op {
			p.pos++
			return op, true
		}
		// "and"/"or" are identifiers to the lexer.
		if t.kind == tokIdent && t.text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseOr() (float64, error) {
	left, err := p.parseAnd()
	if err != nil {
		return 0, err
	}
	for {
		if _, ok := p.acceptOp("||", "or"); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return 0, err
		}
		left = boolVal(truthy(left) || truthy(right))
	}
}

func (p *parser) parseAnd() (float64, error) {
	left, err := p.parseCompare()
	if err != nil {
		return 0, err
	}
	for {
		if _, ok := p.acceptOp("&&", "and"); !ok {
			return left, nil
		}
		right, err := p.parseCompare()
		if err != nil {
			return 0, err
		}
		left = boolVal(truthy(left) && truthy(right))
	}
}

func (p *parser) parseCompare() (float64, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return 0, err
	}
	op, ok := p.acceptOp("==", "!=", "<=", ">=", "<", ">")
	if !ok {
		return left, nil
	}
	right, err := p.parseAddSub()
	if err != nil {
		return 0, err
	}
	switch op {
	case "==":
		return boolVal(left == right), nil
	case "!=":
		return boolVal(left != right), nil
	case "<":
		return boolVal(left < right), nil
	case "<=":
		return boolVal(left <= right), nil
	case ">":
		return boolVal(left > right), nil
	default:
		return boolVal(left >= right), nil
	}
}

func (p *parser) parseAddSub() (float64, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseMulDiv()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseMulDiv() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.acceptOp("*", "/", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		default:
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left = math.Mod(left, right)
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if _, ok := p.acceptOp("-"); ok {
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	t, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokNum:
		p.pos++
		return t.num, nil
	case tokIdent:
		p.pos++
		v, ok := p.vars[t.text]
		if !ok {
			return 0, fmt.Errorf("unknown variable %q", t.text)
		}
		return v, nil
	case tokLParen:
		p.pos++
		v, err := p.parseOr()
		if err != nil {
			return 0, err
		}
		if t, ok := p.peek(); !ok || t.kind != tokRParen {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected %q", t.text)
	}
}

func truthy(v float64) bool { return v != 0 }

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
