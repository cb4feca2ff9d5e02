package lexer

import (
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

func isOperatorByte(b byte) bool {
	switch b {
	case '/', '=', '-', '+', '!', '*', '%', '<', '>', '&', '|', '^', '~', '?':
		return true
	}
	return false
}

// scanOperatorOrPunct: пунктуация: одним байтом, операторы: жадно по
// операторным символам. "//" и "/*" внутри серии начинают комментарий и в
// оператор не входят. Операторы, начинающиеся с точки, продолжаются точками
// (..., ..<).
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	ch := lx.cursor.Peek()
	switch ch {
	case '(':
		lx.cursor.Bump()
		return lx.emit(token.LParen, start)
	case ')':
		lx.cursor.Bump()
		return lx.emit(token.RParen, start)
	case '{':
		lx.cursor.Bump()
		return lx.emit(token.LBrace, start)
	case '}':
		lx.cursor.Bump()
		return lx.emit(token.RBrace, start)
	case '[':
		lx.cursor.Bump()
		return lx.emit(token.LBracket, start)
	case ']':
		lx.cursor.Bump()
		return lx.emit(token.RBracket, start)
	case ',':
		lx.cursor.Bump()
		return lx.emit(token.Comma, start)
	case ':':
		lx.cursor.Bump()
		return lx.emit(token.Colon, start)
	case ';':
		lx.cursor.Bump()
		return lx.emit(token.Semicolon, start)
	case '@':
		lx.cursor.Bump()
		return lx.emit(token.At, start)
	case '\\':
		lx.cursor.Bump()
		return lx.emit(token.Backslash, start)
	case '.':
		if lx.cursor.PeekAt(1) != '.' {
			lx.cursor.Bump()
			return lx.emit(token.Dot, start)
		}
		for !lx.cursor.EOF() && (lx.cursor.Peek() == '.' || lx.atOperatorByte()) {
			lx.cursor.Bump()
		}
		return lx.emit(token.Operator, start)
	}

	if lx.atOperatorByte() {
		for !lx.cursor.EOF() && lx.atOperatorByte() {
			lx.cursor.Bump()
		}
		return lx.emit(token.Operator, start)
	}

	// неизвестный символ (целиком руна)
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character")
	return tok
}

func (lx *Lexer) atOperatorByte() bool {
	b := lx.cursor.Peek()
	if !isOperatorByte(b) {
		return false
	}
	if b == '/' {
		if n := lx.cursor.PeekAt(1); n == '/' || n == '*' {
			return false
		}
	}
	return true
}
