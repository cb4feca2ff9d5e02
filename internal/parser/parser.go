package parser

import (
	"slices"

	"inlinable/internal/ast"
	"inlinable/internal/diag"
	"inlinable/internal/lexer"
	"inlinable/internal/source"
	"inlinable/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// Conditions decide which #if clauses are taken.
	Conditions Conditions
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Tokens int
}

// context: где разбираются элементы: верхний уровень, список членов типа
// или тело функции/замыкания.
type context uint8

const (
	ctxTop context = iota
	ctxMembers
	ctxBody
)

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	inactive int         // глубина вложенности в невзятые #if-ветки
	ifDepth  int         // открытые #if в текущем блоке
	owner    ast.DeclID  // объявление, чьё тело сейчас разбирается
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		toks:     lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter}),
		arenas:   arenas,
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	fileID := arenas.NewFile(file.Span())
	layout, decls := p.parseElements(ctxTop, ast.NoDeclID)
	f := arenas.Files.Get(fileID)
	f.Layout = layout
	f.Decls = decls
	return Result{File: fileID, Tokens: len(p.toks)}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt смотрит на n токенов вперёд; за концом: EOF.
func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance: съедает следующий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	p.lastSpan = tok.Span
	return tok
}

// spanFrom: от начала start до конца последнего съеденного токена.
func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.lastSpan.End
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.peek().Span, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.Strings.Intern(s)
}
