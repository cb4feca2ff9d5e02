package parser

import (
	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/source"
	"inlinable/internal/token"
)

// parseDecl разбирает объявление с атрибутами и модификаторами.
// Вызывается только когда atDeclStart() == true.
func (p *Parser) parseDecl(parent ast.DeclID) ast.DeclID {
	start := p.peek().Span.Start
	decl := ast.Decl{
		Parent:   parent,
		Inactive: p.inactive > 0,
	}
	decl.Attrs = p.parseAttrs()
	decl.Modifiers = p.parseModifiers(&decl.Attrs)

	kw := p.advance()
	switch kw.Kind {
	case token.KwStruct:
		decl.Kind = ast.DeclStruct
	case token.KwClass:
		decl.Kind = ast.DeclClass
	case token.KwEnum:
		decl.Kind = ast.DeclEnum
	case token.KwActor:
		decl.Kind = ast.DeclActor
	case token.KwProtocol:
		decl.Kind = ast.DeclProtocol
	case token.KwExtension:
		decl.Kind = ast.DeclExtension
	case token.KwTypealias:
		decl.Kind = ast.DeclTypealias
	case token.KwInit:
		decl.Kind = ast.DeclInit
	case token.KwDeinit:
		decl.Kind = ast.DeclDeinit
	case token.KwFunc, token.KwSubscript:
		decl.Kind = ast.DeclFunc
	case token.KwVar:
		decl.Kind = ast.DeclVar
	case token.KwLet:
		decl.Kind = ast.DeclLet
	case token.KwImport:
		decl.Kind = ast.DeclImport
	}

	// Член создаётся до разбора тела, чтобы вложенные члены видели Parent.
	id := p.arenas.NewDecl(decl)

	switch decl.Kind {
	case ast.DeclStruct, ast.DeclClass, ast.DeclEnum, ast.DeclActor, ast.DeclProtocol:
		p.parseNominal(id)
	case ast.DeclExtension:
		p.parseExtension(id)
	case ast.DeclTypealias:
		p.parseTypealias(id)
	case ast.DeclInit, ast.DeclDeinit:
		d := p.arenas.Decls.Get(id)
		d.Name = p.intern(kw.Text)
		d.NameSpan = kw.Span
		p.parseFunction(id)
	case ast.DeclFunc:
		if kw.Kind == token.KwSubscript {
			d := p.arenas.Decls.Get(id)
			d.Name = p.intern(kw.Text)
			d.NameSpan = kw.Span
		} else {
			p.parseFuncName(id)
		}
		p.parseFunction(id)
	case ast.DeclVar, ast.DeclLet:
		p.parseStorage(id)
	case ast.DeclImport:
		p.skipToStmtEnd()
	}

	d := p.arenas.Decls.Get(id)
	d.Span = p.spanFrom(start)
	if d.HeaderEnd == 0 {
		d.HeaderEnd = d.Span.End
	}
	return id
}

// @name или @name(args); скобки принадлежат атрибуту только без пробела.
func (p *Parser) parseAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.At) {
		at := p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name after '@'")
		if !ok {
			continue
		}
		if p.at(token.LParen) && p.peek().Span.Start == name.Span.End {
			p.skipBalanced()
		}
		attrs = append(attrs, ast.Attr{
			Name: p.intern(name.Text),
			Span: p.spanFrom(at.Span.Start),
		})
	}
	return attrs
}

// parseModifiers съедает модификаторы; атрибуты между ними добавляются в
// attrs (public @inlinable func).
func (p *Parser) parseModifiers(attrs *[]ast.Attr) []source.StringID {
	var mods []source.StringID
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.Ident && modifierWords[tok.Text]:
			p.advance()
			mods = append(mods, p.intern(tok.Text))
			if p.at(token.LParen) {
				p.skipBalanced()
			}
		case tok.Kind == token.KwClass && isDeclKeyword(p.peekAt(1).Kind):
			// class func / class var
			p.advance()
			mods = append(mods, p.intern(tok.Text))
		case tok.Kind == token.At:
			*attrs = append(*attrs, p.parseAttrs()...)
		default:
			return mods
		}
	}
}

func (p *Parser) parseName(id ast.DeclID) bool {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected declaration name")
	if !ok {
		return false
	}
	d := p.arenas.Decls.Get(id)
	d.Name = p.intern(unescape(tok.Text))
	d.NameSpan = tok.Span
	return true
}

func (p *Parser) parseFuncName(id ast.DeclID) {
	if tok := p.peek(); tok.Kind == token.Operator {
		p.advance()
		d := p.arenas.Decls.Get(id)
		d.Name = p.intern(tok.Text)
		d.NameSpan = tok.Span
		return
	}
	p.parseName(id)
}

// struct/class/enum/actor/protocol Name<...>: Bases where ... { members }
func (p *Parser) parseNominal(id ast.DeclID) {
	p.parseName(id)
	p.skipHeaderUntil(token.LBrace)
	p.parseMemberBlock(id)
}

// extension A.B<...>: P where ... { members }; расширяемое имя: последний
// компонент пути.
func (p *Parser) parseExtension(id ast.DeclID) {
	var last token.Token
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected extended type name")
		if !ok {
			break
		}
		last = tok
		if !p.at(token.Dot) {
			break
		}
		p.advance()
	}
	if last.Kind == token.Ident {
		d := p.arenas.Decls.Get(id)
		d.TypeRef = p.intern(unescape(last.Text))
		d.TypeSpan = last.Span
		d.Name = d.TypeRef
		d.NameSpan = last.Span
	}
	p.skipHeaderUntil(token.LBrace)
	p.parseMemberBlock(id)
}

// typealias Name<...> = Target; TypeRef ставится только для простого
// (возможно, составного через точку) имени.
func (p *Parser) parseTypealias(id ast.DeclID) {
	p.parseName(id)
	if p.at(token.Operator) && p.peek().Text == "<" {
		p.skipAngles()
	}
	if !p.at(token.Operator) || p.peek().Text != "=" {
		p.err(diag.SynUnexpectedToken, "expected '=' in typealias")
		p.skipToStmtEnd()
		return
	}
	p.advance()
	first := p.pos
	p.skipToStmtEnd()
	d := p.arenas.Decls.Get(id)
	if ref, sp, ok := simpleTypeName(p.toks[first:p.pos]); ok {
		d.TypeRef = p.intern(ref)
		d.TypeSpan = sp
	}
}

// parseFunction: generics, params, effects, result, where, body.
func (p *Parser) parseFunction(id ast.DeclID) {
	if p.at(token.Operator) && (p.peek().Text == "?" || p.peek().Text == "!") {
		p.advance() // init?
	}
	if p.at(token.Operator) && p.peek().Text == "<" {
		p.skipAngles()
	}
	d := p.arenas.Decls.Get(id)
	if d.Kind != ast.DeclDeinit {
		if p.at(token.LParen) {
			params := p.parseParams()
			p.arenas.Decls.Get(id).Params = params
		} else {
			p.err(diag.SynUnexpectedToken, "expected parameter list")
		}
	}
	p.skipHeaderUntil(token.LBrace)
	if p.at(token.LBrace) {
		d = p.arenas.Decls.Get(id)
		d.HeaderEnd = p.peek().Span.Start
		body := p.parseBodyOf(id)
		p.arenas.Decls.Get(id).Body = body
	}
}

// var/let name: Type = init { accessors }
func (p *Parser) parseStorage(id ast.DeclID) {
	if p.at(token.LParen) {
		// кортежный паттерн: let (a, b) = ...
		p.skipBalanced()
	} else {
		p.parseName(id)
	}
	if p.at(token.Colon) {
		p.advance()
		first := p.pos
		p.skipTypeAnnotation()
		if ref, sp, ok := simpleTypeName(p.toks[first:p.pos]); ok {
			d := p.arenas.Decls.Get(id)
			d.TypeRef = p.intern(ref)
			d.TypeSpan = sp
		}
	}
	if p.at(token.Operator) && p.peek().Text == "=" {
		eq := p.advance()
		p.arenas.Decls.Get(id).HeaderEnd = eq.Span.Start
		value := p.parseExpr(exprStopInitializer)
		p.arenas.Decls.Get(id).Init = value
	}
	if p.at(token.LBrace) && !p.peek().StartsLine() {
		d := p.arenas.Decls.Get(id)
		if d.HeaderEnd == 0 {
			d.HeaderEnd = p.peek().Span.Start
		}
		body := p.parseBodyOf(id)
		p.arenas.Decls.Get(id).Body = body
	}
	// let a = 1, b = 2: остальные привязки не разбираем
	for p.at(token.Comma) {
		p.advance()
		p.skipToStmtEnd()
	}
}

// parseMemberBlock: '{' members '}'.
func (p *Parser) parseMemberBlock(id ast.DeclID) {
	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' to start member list")
	if !ok {
		return
	}
	p.arenas.Decls.Get(id).HeaderEnd = open.Span.Start
	layout, members := p.parseElements(ctxMembers, id)
	d := p.arenas.Decls.Get(id)
	d.Layout = layout
	d.Members = members
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close member list"); !ok {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '{'")
	}
}

// simpleTypeName: Ident(.Ident)* без прочих токенов; возвращает последний
// компонент.
func simpleTypeName(toks []token.Token) (string, source.Span, bool) {
	if len(toks) == 0 || len(toks)%2 == 0 {
		return "", source.Span{}, false
	}
	for i, tok := range toks {
		want := token.Ident
		if i%2 == 1 {
			want = token.Dot
		}
		if tok.Kind != want {
			return "", source.Span{}, false
		}
	}
	last := toks[len(toks)-1]
	return unescape(last.Text), last.Span, true
}

func unescape(name string) string {
	if len(name) >= 2 && name[0] == '`' && name[len(name)-1] == '`' {
		return name[1 : len(name)-1]
	}
	return name
}

// parseBodyOf parses a block whose local declarations belong to id.
func (p *Parser) parseBodyOf(id ast.DeclID) ast.NodeID {
	saved := p.owner
	p.owner = id
	body := p.parseBlock()
	p.owner = saved
	return body
}
