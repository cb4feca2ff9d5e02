package token

import (
	"strings"

	"inlinable/internal/source"
)

// TriviaKind classifies a piece of non-semantic text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaTab
	TriviaNewline                // \n (run)
	TriviaCarriageReturn         // \r (run)
	TriviaCarriageReturnLineFeed // \r\n (run)
	TriviaLineComment            // // ...
	TriviaBlockComment           // /* ... */
	TriviaDocLineComment         // /// ...
	TriviaDocBlockComment        // /** ... */
	TriviaGarbage                // anything else the lexer skipped (\v, \f, stray bytes)
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaTab:
		return "Tab"
	case TriviaNewline:
		return "Newline"
	case TriviaCarriageReturn:
		return "CarriageReturn"
	case TriviaCarriageReturnLineFeed:
		return "CarriageReturnLineFeed"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLineComment:
		return "DocLineComment"
	case TriviaDocBlockComment:
		return "DocBlockComment"
	case TriviaGarbage:
		return "Garbage"
	}
	return "Trivia(?)"
}

// IsNewline reports whether the piece ends a line.
func (k TriviaKind) IsNewline() bool {
	switch k {
	case TriviaNewline, TriviaCarriageReturn, TriviaCarriageReturnLineFeed:
		return true
	default:
		return false
	}
}

// IsComment reports whether the piece is any kind of comment.
func (k TriviaKind) IsComment() bool {
	switch k {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLineComment, TriviaDocBlockComment:
		return true
	default:
		return false
	}
}

// Trivia is one immutable piece of leading or trailing trivia.
// Synthesized pieces have an empty Span positioned where they replace text.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// Space returns a synthesized single-space piece anchored at sp.Start.
func Space(at source.Span) Trivia {
	return Trivia{
		Kind: TriviaSpace,
		Span: source.Span{File: at.File, Start: at.Start, End: at.Start},
		Text: " ",
	}
}

// ContainsNewline reports whether any piece in list is a newline.
func ContainsNewline(list []Trivia) bool {
	for _, tv := range list {
		if tv.Kind.IsNewline() {
			return true
		}
	}
	return false
}

// TriviaText concatenates the text of every piece.
func TriviaText(list []Trivia) string {
	var sb strings.Builder
	for _, tv := range list {
		sb.WriteString(tv.Text)
	}
	return sb.String()
}
