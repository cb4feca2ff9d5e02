package lexer

import (
	"inlinable/internal/source"
	"inlinable/internal/token"
)

// Tokenize lexes the whole file. The result always ends with EOF, and
// token.Render of the result reproduces the file content byte for byte.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// TokenizeText lexes a detached piece of text. Spans refer to a scratch
// file with ID 0 and are only meaningful relative to text.
func TokenizeText(text string) []token.Token {
	return Tokenize(&source.File{Path: "<text>", Content: []byte(text)}, Options{})
}

// TokenEnd returns the end offset of the token starting at off.
// Offsets inside trivia return off unchanged.
func TokenEnd(file *source.File, off uint32) uint32 {
	if int(off) >= len(file.Content) {
		return off
	}
	cur := NewCursor(file)
	cur.Off = off
	lx := &Lexer{file: file, cursor: cur}
	if lx.atTrivia() {
		return off
	}
	tok := lx.Next()
	return tok.Span.End
}
