package inlinable

import "inlinable/internal/token"

// StripLeadingComments filters trivia that precedes a token.
//
// Everything up to the last newline is dropped; that newline stays and the
// comments after it are removed. Without a newline only the comments go.
// The result is a new slice.
func StripLeadingComments(pieces []token.Trivia) []token.Trivia {
	from := 0
	for i := len(pieces) - 1; i >= 0; i-- {
		if pieces[i].Kind.IsNewline() {
			from = i
			break
		}
	}
	out := make([]token.Trivia, 0, len(pieces)-from)
	for _, tv := range pieces[from:] {
		if tv.Kind.IsComment() {
			continue
		}
		out = append(out, tv)
	}
	return out
}

// StripTrailingComments filters trivia that follows a token on its line.
//
// Block comments turn into one space so that `a/*c*/b` stays two tokens;
// line comments run to the end of the line and are simply deleted.
// The result is a new slice.
func StripTrailingComments(pieces []token.Trivia) []token.Trivia {
	out := make([]token.Trivia, 0, len(pieces))
	for _, tv := range pieces {
		switch tv.Kind {
		case token.TriviaBlockComment, token.TriviaDocBlockComment:
			out = append(out, token.Space(tv.Span))
		case token.TriviaLineComment, token.TriviaDocLineComment:
		default:
			out = append(out, tv)
		}
	}
	return out
}
