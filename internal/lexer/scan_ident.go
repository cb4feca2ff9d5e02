package lexer

import (
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) || lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// `name`: экранированный идентификатор, ключевым словом не бывает.
func (lx *Lexer) scanEscapedIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // `
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '`' {
			lx.cursor.Bump()
			return lx.emit(token.Ident, start)
		}
		if b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unterminated escaped identifier")
	return tok
}

// $0, $1 ... в замыканиях и $name.
func (lx *Lexer) scanDollarIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // $
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if len(tok.Text) == 1 {
		tok.Kind = token.Invalid
		lx.errLex(diag.LexUnknownChar, tok.Span, "expected identifier after '$'")
	}
	return tok
}

// #if, #elseif, #else, #endif и прочие #ident.
func (lx *Lexer) scanPound() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // #
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.PoundKeyword, start)
	if len(tok.Text) == 1 {
		tok.Kind = token.Invalid
		lx.errLex(diag.LexUnknownChar, tok.Span, "expected identifier after '#'")
		return tok
	}
	tok.Kind = token.LookupPound(tok.Text)
	return tok
}
