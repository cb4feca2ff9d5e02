package parser

import (
	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

// parseIfConfig: #if cond ... (#elseif cond ...)* (#else ...)? #endif.
// Условия вычисляются сразу; берётся первая истинная ветка. Объявления
// взятой ветки возвращаются для подъёма в объемлющий список.
func (p *Parser) parseIfConfig(ctx context, parent ast.DeclID) (ast.NodeID, []ast.DeclID) {
	ifTok := p.peek()
	cfg := ast.IfConfig{Active: ast.NoClause}
	var hoisted []ast.DeclID
	sawElse := false

	p.ifDepth++
	for {
		dir := p.advance()
		clause := ast.Clause{Loc: dir.Span}
		if sawElse {
			p.report(diag.SynElseNotLast, diag.SevError, dir.Span, dir.Text+" after #else")
		}
		taken := true
		if dir.Kind == token.PoundElse {
			sawElse = true
		} else {
			clause.Cond, taken = p.parseCondition(dir)
		}

		active := taken && cfg.Active == ast.NoClause
		if active {
			cfg.Active = len(cfg.Clauses)
		} else {
			p.inactive++
		}
		elems, decls := p.parseElements(ctx, parent)
		if active {
			hoisted = decls
		} else {
			p.inactive--
		}
		clause.Elements = elems
		cfg.Clauses = append(cfg.Clauses, clause)

		if !p.atOr(token.PoundElseif, token.PoundElse) {
			break
		}
	}
	p.ifDepth--

	if p.at(token.PoundEndif) {
		cfg.EndLoc = p.advance().Span
	} else {
		p.report(diag.SynUnterminatedIfConf, diag.SevError, ifTok.Span, "expected #endif")
		end := p.lastSpan.End
		cfg.EndLoc = p.spanFrom(end)
	}
	return p.arenas.NewIfConfigNode(cfg, p.spanFrom(ifTok.Span.Start)), hoisted
}

// parseCondition читает условие до конца строки директивы и вычисляет его.
// Условие продолжается на следующих строках, пока открыта скобка или
// строка кончается на '&&', '||' или '!'. Некорректное условие
// диагностируется и считается ложным.
func (p *Parser) parseCondition(dir token.Token) (ast.NodeID, bool) {
	first := p.pos
	depth := 0
	for !p.at(token.EOF) && !p.atOr(token.PoundIf, token.PoundElseif, token.PoundElse, token.PoundEndif) {
		if p.peek().StartsLine() && depth <= 0 && !continuesCondition(p.toks[first:p.pos]) {
			break
		}
		switch p.advance().Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
	}
	toks := p.toks[first:p.pos]
	if len(toks) == 0 {
		p.report(diag.SynBadCondition, diag.SevError, dir.Span, "expected condition after "+dir.Text)
		return ast.NoNodeID, false
	}
	sp := toks[0].Span.Cover(toks[len(toks)-1].Span)
	node := p.arenas.NewNode(ast.NodeExpr, sp, nil)

	value, err := p.opts.Conditions.Eval(toks)
	if err != nil {
		p.report(diag.SynBadCondition, diag.SevError, sp, err.Error())
		return node, false
	}
	return node, value
}

// continuesCondition reports whether toks end with an operator that needs
// a right operand.
func continuesCondition(toks []token.Token) bool {
	if len(toks) == 0 {
		return false
	}
	last := toks[len(toks)-1]
	return last.IsOp("&&") || last.IsOp("||") || last.IsOp("!")
}
