package parser

import (
	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

// parseBlock: '{' elements '}'. Директивы #if внутри блока не видят
// незакрытые #if снаружи.
func (p *Parser) parseBlock() ast.NodeID {
	open := p.advance() // '{'
	savedDepth := p.ifDepth
	p.ifDepth = 0
	layout, _ := p.parseElements(ctxBody, p.owner)
	p.ifDepth = savedDepth
	if p.at(token.RBrace) {
		p.advance()
	} else {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '{'")
	}
	return p.arenas.NewNode(ast.NodeBlock, p.spanFrom(open.Span.Start), layout)
}

// parseStmt съедает один оператор до границы. Вложенные {...} становятся
// дочерними блоками.
func (p *Parser) parseStmt() ast.NodeID {
	start := p.peek().Span.Start
	var children []ast.NodeID
	for first := true; first || !p.atStmtBoundary(); first = false {
		children = p.consumeUnit(children)
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	return p.arenas.NewNode(ast.NodeStmt, p.spanFrom(start), children)
}

type exprStop uint8

const (
	// exprStopInitializer ends at a statement boundary or a top-level ','.
	exprStopInitializer exprStop = iota
	// exprStopArgument ends at a top-level ',' or ')'.
	exprStopArgument
)

// parseExpr returns NoNodeID for an empty expression.
func (p *Parser) parseExpr(stop exprStop) ast.NodeID {
	start := p.peek().Span.Start
	var children []ast.NodeID
	n := 0
	for !p.atExprEnd(stop, n == 0) {
		children = p.consumeUnit(children)
		n++
	}
	if n == 0 {
		p.err(diag.SynUnexpectedToken, "expected expression")
		return ast.NoNodeID
	}
	return p.arenas.NewNode(ast.NodeExpr, p.spanFrom(start), children)
}

func (p *Parser) atExprEnd(stop exprStop, first bool) bool {
	switch p.peek().Kind {
	case token.EOF, token.RBrace, token.Semicolon, token.Comma,
		token.PoundIf, token.PoundElseif, token.PoundElse, token.PoundEndif:
		return true
	case token.RParen:
		if stop == exprStopArgument {
			return true
		}
	}
	return stop == exprStopInitializer && !first && p.atStmtBoundary()
}

// consumeUnit съедает токен или сбалансированную группу.
func (p *Parser) consumeUnit(children []ast.NodeID) []ast.NodeID {
	switch p.peek().Kind {
	case token.LBrace:
		return append(children, p.parseBlock())
	case token.LParen:
		return p.parseGroup(token.RParen, children)
	case token.LBracket:
		return p.parseGroup(token.RBracket, children)
	default:
		p.advance()
		return children
	}
}

// parseGroup: (...) или [...]; замыкания внутри становятся детьми.
func (p *Parser) parseGroup(closer token.Kind, children []ast.NodeID) []ast.NodeID {
	open := p.advance()
	for {
		switch p.peek().Kind {
		case closer:
			p.advance()
			return children
		case token.EOF, token.RBrace:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '"+open.Text+"'")
			return children
		case token.RParen, token.RBracket:
			p.err(diag.SynUnexpectedToken, "unexpected '"+p.peek().Text+"'")
			p.advance()
		default:
			children = p.consumeUnit(children)
		}
	}
}

// atStmtBoundary: следующий токен начинает новый оператор.
func (p *Parser) atStmtBoundary() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.EOF, token.RBrace, token.Semicolon,
		token.PoundIf, token.PoundElseif, token.PoundElse, token.PoundEndif:
		return true
	}
	if !tok.StartsLine() || continuesLine(tok) {
		return false
	}
	if p.pos > 0 {
		switch p.toks[p.pos-1].Kind {
		case token.Operator, token.Comma, token.Dot, token.Colon, token.LParen, token.LBracket:
			return false
		}
	}
	return true
}

// continuesLine: токен в начале строки продолжает предыдущую.
func continuesLine(tok token.Token) bool {
	switch tok.Kind {
	case token.Dot, token.Operator, token.Colon, token.Comma, token.RParen, token.RBracket, token.KwElse:
		return true
	default:
		return false
	}
}

// skipToStmtEnd пропускает токены до границы оператора без построения узлов.
func (p *Parser) skipToStmtEnd() {
	for !p.atStmtBoundary() && !p.at(token.Comma) {
		p.skipUnit()
	}
}

func (p *Parser) skipUnit() {
	switch p.peek().Kind {
	case token.LParen, token.LBracket, token.LBrace:
		p.skipBalanced()
	default:
		p.advance()
	}
}

// skipBalanced пропускает группу со всеми вложенными скобками.
func (p *Parser) skipBalanced() {
	depth := 0
	for {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
		p.advance()
		if depth <= 0 {
			return
		}
	}
}

// skipAngles пропускает <...> с учётом вложенности (>> закрывает два).
func (p *Parser) skipAngles() {
	depth := 0
	for !p.at(token.EOF) && !p.at(token.LBrace) {
		tok := p.advance()
		if tok.Kind != token.Operator {
			continue
		}
		for _, ch := range tok.Text {
			switch ch {
			case '<':
				depth++
			case '>':
				depth--
			}
		}
		if depth <= 0 {
			return
		}
	}
}

// skipHeaderUntil пропускает хвост заголовка (generics, наследование,
// результат, throws, where) до kind. Заголовок обрывается на новой строке,
// если она не продолжает его.
func (p *Parser) skipHeaderUntil(kind token.Kind) {
	for !p.at(kind) {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF, token.RBrace, token.Semicolon,
			token.PoundIf, token.PoundElseif, token.PoundElse, token.PoundEndif:
			return
		}
		if tok.StartsLine() && !continuesHeader(tok) {
			return
		}
		if tok.Kind == token.Operator && tok.Text == "<" {
			p.skipAngles()
			continue
		}
		p.skipUnit()
	}
}

func continuesHeader(tok token.Token) bool {
	if continuesLine(tok) {
		return true
	}
	if tok.Kind == token.Ident {
		switch tok.Text {
		case "where", "throws", "rethrows", "async":
			return true
		}
	}
	return false
}

// skipTypeAnnotation пропускает тип после ':' до '=', '{' или конца оператора.
func (p *Parser) skipTypeAnnotation() {
	for {
		tok := p.peek()
		if tok.Kind == token.LBrace || tok.Kind == token.Comma || (tok.Kind == token.Operator && tok.Text == "=") {
			return
		}
		if p.atStmtBoundary() {
			return
		}
		if tok.Kind == token.Operator && tok.Text == "<" {
			p.skipAngles()
			continue
		}
		p.skipUnit()
	}
}
