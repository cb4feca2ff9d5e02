package parser

import (
	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

// parseParams: '(' [label] name: Type [= default], ... ')'.
// Имя параметра: последний идентификатор перед ':'.
func (p *Parser) parseParams() []ast.Param {
	open := p.advance() // '('
	var params []ast.Param
	for !p.at(token.RParen) {
		if p.atOr(token.EOF, token.RBrace) {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed parameter list")
			return params
		}
		params = append(params, p.parseParam())
		if p.at(token.Comma) {
			p.advance()
		} else if !p.at(token.RParen) {
			p.err(diag.SynUnexpectedToken, "expected ',' or ')' in parameter list")
			p.skipUnit()
		}
	}
	p.advance() // ')'
	return params
}

func (p *Parser) parseParam() ast.Param {
	start := p.peek().Span.Start
	var param ast.Param
	// метки и имя
	for p.peek().Kind == token.Ident || isKeywordName(p.peek().Kind) {
		tok := p.advance()
		param.Name = p.intern(unescape(tok.Text))
	}
	if p.at(token.Colon) {
		p.advance()
		p.skipParamType()
	}
	if p.at(token.Operator) && p.peek().Text == "=" {
		p.advance()
		param.Default = p.parseExpr(exprStopArgument)
	}
	param.Span = p.spanFrom(start)
	return param
}

// skipParamType пропускает тип до ',', ')' или '='.
func (p *Parser) skipParamType() {
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Comma, token.RParen, token.EOF, token.RBrace:
			return
		case token.Operator:
			if tok.Text == "=" {
				return
			}
			if tok.Text == "<" {
				p.skipAngles()
				continue
			}
		}
		p.skipUnit()
	}
}

// Ключевые слова допустимы как метки аргументов: func f(in x: Int, for y: Int).
func isKeywordName(k token.Kind) bool {
	switch k {
	case token.KwInit, token.KwVar, token.KwLet, token.KwFunc, token.KwIf, token.KwElse,
		token.KwReturn, token.KwImport, token.KwClass, token.KwStruct, token.KwEnum:
		return true
	default:
		return false
	}
}
