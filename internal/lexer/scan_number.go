package lexer

import (
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

// Поддержка: 0, 1_000, 0b..., 0o..., 0x..., 1.5, 1e-3, 1.0e+10.
// Точка входит в число только если за ней цифра, так что 1...5: это
// три токена.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Advance(2)
			n := 0
			for b := lx.cursor.Peek(); !lx.cursor.EOF() && (digit(b) || b == '_'); b = lx.cursor.Peek() {
				lx.cursor.Bump()
				n++
			}
			tok := lx.emit(kind, start)
			if n == 0 {
				tok.Kind = token.Invalid
				lx.errLex(diag.LexBadNumber, tok.Span, "expected digits after base prefix")
			}
			return tok
		}
	}

	lx.eatDecimalDigits()

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDecimalDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b2 := lx.cursor.Peek(); b2 == '+' || b2 == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.FloatLit
			lx.eatDecimalDigits()
		} else {
			// 1e: не экспонента; пусть 'e' станет идентификатором
			lx.cursor.Reset(mark)
		}
	}

	return lx.emit(kind, start)
}

func (lx *Lexer) eatDecimalDigits() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}
