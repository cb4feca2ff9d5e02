package lexer

import (
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

// scanString читает "..." и """...""" целиком, включая интерполяции
// \( ... ) с вложенными скобками и строками.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	multiline := lx.cursor.HasPrefix(`"""`)
	if multiline {
		lx.cursor.Advance(3)
	} else {
		lx.cursor.Bump()
	}
	if !lx.scanStringBody(multiline) {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
		return tok
	}
	return lx.emit(token.StringLit, start)
}

// scanStringBody съедает содержимое после открывающих кавычек и закрывающие
// кавычки. false: строка не закрыта.
func (lx *Lexer) scanStringBody(multiline bool) bool {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case multiline && lx.cursor.HasPrefix(`"""`):
			lx.cursor.Advance(3)
			return true
		case !multiline && b == '"':
			lx.cursor.Bump()
			return true
		case !multiline && (b == '\n' || b == '\r'):
			return false
		case b == '\\' && lx.cursor.PeekAt(1) == '(':
			lx.cursor.Advance(2)
			if !lx.scanInterpolation() {
				return false
			}
		case b == '\\':
			lx.cursor.Advance(2)
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// scanInterpolation съедает выражение до парной ')'.
func (lx *Lexer) scanInterpolation() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '(':
			depth++
			lx.cursor.Bump()
		case ')':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case '"':
			multiline := lx.cursor.HasPrefix(`"""`)
			if multiline {
				lx.cursor.Advance(3)
			} else {
				lx.cursor.Bump()
			}
			if !lx.scanStringBody(multiline) {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}
