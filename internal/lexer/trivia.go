package lexer

import (
	"inlinable/internal/diag"
	"inlinable/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - серии одинаковых пробельных символов коалесцируются в один кусок
// - \n, \r\n и \r различаются (текст сохраняется байт-в-байт)
// - //... и ///... до конца строки, перевод строки не входит
// - /* ... */ с вложенностью, /** ... */ как doc-комментарий
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		tv, ok := lx.scanTriviaPiece(true)
		if !ok {
			break
		}
		lx.hold = append(lx.hold, tv)
	}
}

// collectTrailingTrivia собирает trivia после токена до ближайшего перевода
// строки (не включая его). Блочный комментарий, переходящий на следующие
// строки, целиком остаётся trailing.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		tv, ok := lx.scanTriviaPiece(false)
		if !ok {
			break
		}
		out = append(out, tv)
	}
	return out
}

// atTrivia reports whether the cursor sits on the start of a trivia piece.
func (lx *Lexer) atTrivia() bool {
	start := lx.cursor.Mark()
	_, ok := lx.scanTriviaPiece(true)
	lx.cursor.Reset(start)
	return ok
}

func (lx *Lexer) scanTriviaPiece(allowNewline bool) (token.Trivia, bool) {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	switch b {
	case ' ':
		lx.eatRun(' ')
		return lx.trivia(token.TriviaSpace, start), true
	case '\t':
		lx.eatRun('\t')
		return lx.trivia(token.TriviaTab, start), true
	case '\v', '\f', 0:
		lx.eatRun(b)
		return lx.trivia(token.TriviaGarbage, start), true
	case '\n':
		if !allowNewline {
			return token.Trivia{}, false
		}
		lx.eatRun('\n')
		return lx.trivia(token.TriviaNewline, start), true
	case '\r':
		if !allowNewline {
			return token.Trivia{}, false
		}
		if lx.cursor.PeekAt(1) == '\n' {
			for lx.cursor.HasPrefix("\r\n") {
				lx.cursor.Advance(2)
			}
			return lx.trivia(token.TriviaCarriageReturnLineFeed, start), true
		}
		for lx.cursor.Peek() == '\r' && lx.cursor.PeekAt(1) != '\n' {
			lx.cursor.Bump()
		}
		return lx.trivia(token.TriviaCarriageReturn, start), true
	case '/':
		switch lx.cursor.PeekAt(1) {
		case '/':
			return lx.scanLineComment(start), true
		case '*':
			return lx.scanBlockComment(start), true
		}
	}
	return token.Trivia{}, false
}

func (lx *Lexer) eatRun(b byte) {
	for !lx.cursor.EOF() && lx.cursor.Peek() == b {
		lx.cursor.Bump()
	}
}

// //... или ///... (но ////: обычный комментарий)
func (lx *Lexer) scanLineComment(start Mark) token.Trivia {
	kind := token.TriviaLineComment
	if lx.cursor.HasPrefix("///") && !lx.cursor.HasPrefix("////") {
		kind = token.TriviaDocLineComment
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.trivia(kind, start)
}

// /* ... */ с вложенностью; /** ... */: doc, но /**/: обычный.
func (lx *Lexer) scanBlockComment(start Mark) token.Trivia {
	kind := token.TriviaBlockComment
	if lx.cursor.HasPrefix("/**") && !lx.cursor.HasPrefix("/**/") {
		kind = token.TriviaDocBlockComment
	}
	lx.cursor.Advance(2)
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch {
		case lx.cursor.HasPrefix("/*"):
			lx.cursor.Advance(2)
			depth++
		case lx.cursor.HasPrefix("*/"):
			lx.cursor.Advance(2)
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	tv := lx.trivia(kind, start)
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, tv.Span, "unterminated block comment")
	}
	return tv
}

func (lx *Lexer) trivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
