package function

import (
	"fmt"
	"strings"
)

// ============================================================
// Notation rewrite
// ============================================================

// Normalize rewrites user notation into the evaluator's syntax. The text
// is parsed with the usual arithmetic precedence and re-emitted fully
// parenthesized: `^` (or `**`) becomes pow(a, b) and groups to the right,
// unary minus binds looser than a power and may follow any operator, and
// cot(u)/ctg(u) become (1/tan(u)).
//
//	-x^2   -> (-pow(x, 2))
//	2^3^2  -> pow(2, pow(3, 2))
//	x^-1   -> pow(x, (-1))
//	2*-x   -> (2*(-x))
func Normalize(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fmt.Errorf("empty expression")
	}
	if err := checkBalanced(s); err != nil {
		return "", err
	}

	toks, err := tokenize(s)
	if err != nil {
		return "", err
	}
	p := &parser{toks: toks}
	out, err := p.expr()
	if err != nil {
		return "", err
	}
	if t := p.peek(); t.kind != tokEnd {
		return "", fmt.Errorf("unexpected %q at %d", t.text, t.pos)
	}
	return out, nil
}

// ValidateInput is the cheap pre-check applied to text typed into a
// function entry box before it is compiled.
func ValidateInput(text string) bool {
	if strings.Count(text, "(") != strings.Count(text, ")") {
		return false
	}
	if !strings.Contains(text, "x") && !strings.ContainsAny(text, "0123456789") {
		return false
	}
	return true
}

func checkBalanced(s string) error {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("unexpected ')' at %d", i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced parentheses")
	}
	return nil
}

// ============================================================
// Tokens
// ============================================================

type tokKind int

const (
	tokEnd tokKind = iota
	tokNumber
	tokIdent
	tokOp
	tokOpen
	tokClose
	tokComma
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isDigit(c) || c == '.':
			start, dots := i, 0
			for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
				if s[i] == '.' {
					dots++
				}
				i++
			}
			text := s[start:i]
			if dots > 1 || text == "." {
				return nil, fmt.Errorf("malformed number %q at %d", text, start)
			}
			if text[0] == '.' {
				text = "0" + text
			}
			toks = append(toks, token{tokNumber, text, start})
		case isIdentChar(c):
			start := i
			for i < len(s) && isIdentChar(s[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, s[start:i], start})
		case c == '*' && i+1 < len(s) && s[i+1] == '*':
			toks = append(toks, token{tokOp, "^", i})
			i += 2
		case strings.IndexByte("+-*/^", c) >= 0:
			toks = append(toks, token{tokOp, string(c), i})
			i++
		case c == '(':
			toks = append(toks, token{tokOpen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokClose, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q at %d", c, i)
		}
	}
	return append(toks, token{kind: tokEnd, pos: len(s)}), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c)
}

// ============================================================
// Parser
// ============================================================

// parser is a recursive-descent reader over
//
//	expr    = term (("+" | "-") term)*
//	term    = unary (("*" | "/") unary)*
//	unary   = ("-" | "+") unary | power
//	power   = primary ("^" unary)?
//	primary = number | ident | ident "(" expr ("," expr)* ")" | "(" expr ")"
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEnd {
		p.pos++
	}
	return t
}

func (p *parser) acceptOp(ops string) (string, bool) {
	t := p.peek()
	if t.kind == tokOp && strings.Contains(ops, t.text) {
		p.pos++
		return t.text, true
	}
	return "", false
}

func (p *parser) expr() (string, error) {
	left, err := p.term()
	if err != nil {
		return "", err
	}
	for {
		op, ok := p.acceptOp("+-")
		if !ok {
			return left, nil
		}
		right, err := p.term()
		if err != nil {
			return "", err
		}
		left = "(" + left + op + right + ")"
	}
}

func (p *parser) term() (string, error) {
	left, err := p.unary()
	if err != nil {
		return "", err
	}
	for {
		op, ok := p.acceptOp("*/")
		if !ok {
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return "", err
		}
		left = "(" + left + op + right + ")"
	}
}

func (p *parser) unary() (string, error) {
	if op, ok := p.acceptOp("+-"); ok {
		operand, err := p.unary()
		if err != nil {
			return "", err
		}
		if op == "+" {
			return operand, nil
		}
		return "(-" + operand + ")", nil
	}
	return p.power()
}

func (p *parser) power() (string, error) {
	base, err := p.primary()
	if err != nil {
		return "", err
	}
	if _, ok := p.acceptOp("^"); !ok {
		return base, nil
	}
	exp, err := p.unary()
	if err != nil {
		return "", err
	}
	return "pow(" + base + ", " + exp + ")", nil
}

func (p *parser) primary() (string, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.text, nil
	case tokIdent:
		if p.peek().kind != tokOpen {
			return t.text, nil
		}
		p.next()
		args, err := p.args()
		if err != nil {
			return "", err
		}
		if (t.text == "cot" || t.text == "ctg") && len(args) == 1 {
			return "(1/tan(" + args[0] + "))", nil
		}
		return t.text + "(" + strings.Join(args, ", ") + ")", nil
	case tokOpen:
		inner, err := p.expr()
		if err != nil {
			return "", err
		}
		if c := p.next(); c.kind != tokClose {
			return "", unexpected(c)
		}
		return inner, nil
	}
	return "", unexpected(t)
}

// args reads a call's argument list after the opening parenthesis.
func (p *parser) args() ([]string, error) {
	var args []string
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch t := p.next(); t.kind {
		case tokComma:
		case tokClose:
			return args, nil
		default:
			return nil, unexpected(t)
		}
	}
}

func unexpected(t token) error {
	if t.kind == tokEnd {
		return fmt.Errorf("unexpected end of expression")
	}
	return fmt.Errorf("unexpected %q at %d", t.text, t.pos)
}
