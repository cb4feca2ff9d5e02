package parser

import (
	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

// parseElements разбирает элементы до '}' (кроме верхнего уровня), EOF или
// директивы #elseif/#else/#endif. Возвращает синтаксический список и
// объявления для подъёма (активные, включая вложенные #if).
func (p *Parser) parseElements(ctx context, parent ast.DeclID) (layout []ast.NodeID, decls []ast.DeclID) {
	for {
		switch tok := p.peek(); {
		case tok.Kind == token.EOF:
			return layout, decls
		case tok.Kind == token.RBrace && ctx != ctxTop:
			return layout, decls
		case tok.Kind == token.PoundElseif || tok.Kind == token.PoundElse || tok.Kind == token.PoundEndif:
			if p.ifDepth > 0 {
				return layout, decls
			}
			p.report(diag.SynStrayDirective, diag.SevError, tok.Span, tok.Text+" without #if")
			p.advance()
			continue
		}
		node, hoisted := p.parseElement(ctx, parent)
		if node.IsValid() {
			layout = append(layout, node)
		}
		decls = append(decls, hoisted...)
	}
}

// parseElement разбирает один элемент. Всегда съедает хотя бы один токен.
func (p *Parser) parseElement(ctx context, parent ast.DeclID) (ast.NodeID, []ast.DeclID) {
	tok := p.peek()
	switch {
	case tok.Kind == token.PoundIf:
		return p.parseIfConfig(ctx, parent)
	case tok.Kind == token.RBrace:
		// лишняя '}' на верхнем уровне
		p.err(diag.SynUnexpectedToken, "unexpected '}'")
		p.advance()
		return ast.NoNodeID, nil
	case tok.Kind == token.Semicolon:
		p.advance()
		return ast.NoNodeID, nil
	case p.atDeclStart():
		id := p.parseDecl(parent)
		return p.arenas.NewDeclNode(id), []ast.DeclID{id}
	default:
		return p.parseStmt(), nil
	}
}

var modifierWords = map[string]bool{
	"public":      true,
	"private":     true,
	"fileprivate": true,
	"internal":    true,
	"package":     true,
	"open":        true,
	"static":      true,
	"final":       true,
	"mutating":    true,
	"nonmutating": true,
	"override":    true,
	"convenience": true,
	"required":    true,
	"lazy":        true,
	"weak":        true,
	"unowned":     true,
	"indirect":    true,
	"nonisolated": true,
	"dynamic":     true,
	"optional":    true,
	"consuming":   true,
	"borrowing":   true,
	"distributed": true,
	"prefix":      true,
	"postfix":     true,
	"infix":       true,
}

func isDeclKeyword(k token.Kind) bool {
	switch k {
	case token.KwStruct, token.KwClass, token.KwEnum, token.KwActor, token.KwProtocol,
		token.KwExtension, token.KwTypealias, token.KwInit, token.KwDeinit, token.KwFunc,
		token.KwVar, token.KwLet, token.KwImport, token.KwSubscript:
		return true
	default:
		return false
	}
}

// atDeclStart смотрит вперёд через атрибуты и модификаторы.
func (p *Parser) atDeclStart() bool {
	i := 0
	for {
		tok := p.peekAt(i)
		switch {
		case tok.Kind == token.At:
			i++
			if p.peekAt(i).Kind != token.Ident {
				return false
			}
			i++
			if p.peekAt(i).Kind == token.LParen && p.peekAt(i).Span.Start == p.peekAt(i-1).Span.End {
				i = p.skipBalancedAhead(i)
			}
		case tok.Kind == token.Ident && modifierWords[tok.Text]:
			i++
			if p.peekAt(i).Kind == token.LParen { // private(set)
				i = p.skipBalancedAhead(i)
			}
		default:
			return isDeclKeyword(tok.Kind)
		}
	}
}

// skipBalancedAhead пропускает (...) начиная с индекса i (на '(') и
// возвращает индекс после ')'.
func (p *Parser) skipBalancedAhead(i int) int {
	depth := 0
	for {
		tok := p.peekAt(i)
		switch tok.Kind {
		case token.EOF:
			return i
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
}
