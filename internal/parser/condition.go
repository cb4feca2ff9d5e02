package parser

import (
	"fmt"
	"strings"

	"inlinable/internal/token"
)

// Conditions is the build configuration #if clauses are evaluated against.
type Conditions struct {
	Defines map[string]bool
	OS      string // GOOS-style или Swift-имя: linux, darwin, macOS, windows
	Arch    string // amd64/x86_64, arm64
}

// NewConditions builds Conditions from a list of defined flags.
func NewConditions(defines []string, os, arch string) Conditions {
	c := Conditions{Defines: make(map[string]bool, len(defines)), OS: os, Arch: arch}
	for _, d := range defines {
		c.Defines[d] = true
	}
	return c
}

// Eval вычисляет условие:
//
//	expr    := and ('||' and)*
//	and     := unary ('&&' unary)*
//	unary   := '!' unary | primary
//	primary := true | false | FLAG | name '(' args ')' | '(' expr ')'
func (c Conditions) Eval(toks []token.Token) (bool, error) {
	e := condEval{conds: c, toks: toks}
	v, err := e.or()
	if err != nil {
		return false, err
	}
	if e.pos < len(e.toks) {
		return false, fmt.Errorf("unexpected %q in condition", e.toks[e.pos].Text)
	}
	return v, nil
}

type condEval struct {
	conds Conditions
	toks  []token.Token
	pos   int
}

func (e *condEval) peek() (token.Token, bool) {
	if e.pos >= len(e.toks) {
		return token.Token{}, false
	}
	return e.toks[e.pos], true
}

func (e *condEval) atOp(op string) bool {
	tok, ok := e.peek()
	return ok && tok.IsOp(op)
}

func (e *condEval) or() (bool, error) {
	v, err := e.and()
	if err != nil {
		return false, err
	}
	for e.atOp("||") {
		e.pos++
		r, err := e.and()
		if err != nil {
			return false, err
		}
		v = v || r
	}
	return v, nil
}

func (e *condEval) and() (bool, error) {
	v, err := e.unary()
	if err != nil {
		return false, err
	}
	for e.atOp("&&") {
		e.pos++
		r, err := e.unary()
		if err != nil {
			return false, err
		}
		v = v && r
	}
	return v, nil
}

func (e *condEval) unary() (bool, error) {
	if tok, ok := e.peek(); ok && tok.Kind == token.Operator && strings.Trim(tok.Text, "!") == "" {
		// "!!" лексится одним оператором
		e.pos++
		v, err := e.unary()
		if len(tok.Text)%2 == 1 {
			v = !v
		}
		return v, err
	}
	return e.primary()
}

func (e *condEval) primary() (bool, error) {
	tok, ok := e.peek()
	if !ok {
		return false, fmt.Errorf("unexpected end of condition")
	}
	e.pos++
	switch tok.Kind {
	case token.KwTrue:
		return true, nil
	case token.KwFalse:
		return false, nil
	case token.LParen:
		v, err := e.or()
		if err != nil {
			return false, err
		}
		if next, ok := e.peek(); !ok || next.Kind != token.RParen {
			return false, fmt.Errorf("expected ')' in condition")
		}
		e.pos++
		return v, nil
	case token.Ident:
		if next, ok := e.peek(); ok && next.Kind == token.LParen {
			return e.call(tok.Text)
		}
		return e.conds.Defines[tok.Text], nil
	}
	return false, fmt.Errorf("unexpected %q in condition", tok.Text)
}

// call: os(x), arch(x), canImport(x), swift(>=N), compiler(>=N),
// targetEnvironment(x), hasFeature(x), hasAttribute(x).
func (e *condEval) call(name string) (bool, error) {
	e.pos++ // '('
	var arg strings.Builder
	for {
		tok, ok := e.peek()
		if !ok {
			return false, fmt.Errorf("unclosed '(' in %s(...)", name)
		}
		e.pos++
		if tok.Kind == token.RParen {
			break
		}
		arg.WriteString(tok.Text)
	}
	a := arg.String()
	switch name {
	case "os":
		return osMatches(e.conds.OS, a), nil
	case "arch":
		return archMatches(e.conds.Arch, a), nil
	case "swift", "compiler":
		if !strings.HasPrefix(a, ">=") && !strings.HasPrefix(a, "<") {
			return false, fmt.Errorf("expected '>=' or '<' in %s(...)", name)
		}
		return strings.HasPrefix(a, ">="), nil
	case "canImport", "targetEnvironment", "hasFeature", "hasAttribute", "_compiler_version":
		return false, nil
	}
	return false, fmt.Errorf("unknown condition %s(...)", name)
}

func osMatches(configured, name string) bool {
	if strings.EqualFold(configured, name) {
		return true
	}
	switch strings.ToLower(configured) {
	case "darwin", "macos":
		return strings.EqualFold(name, "macOS") || strings.EqualFold(name, "OSX")
	}
	return false
}

func archMatches(configured, name string) bool {
	if strings.EqualFold(configured, name) {
		return true
	}
	aliases := map[string]string{"amd64": "x86_64", "386": "i386", "arm": "arm"}
	return aliases[strings.ToLower(configured)] == name
}
