package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input. It owns the trailing trivia of the buffer.
	EOF

	// Ident represents an identifier token (plain, `escaped` or $N).
	Ident

	KwStruct      // struct
	KwClass       // class
	KwEnum        // enum
	KwActor       // actor
	KwProtocol    // protocol
	KwExtension   // extension
	KwTypealias   // typealias
	KwInit        // init
	KwDeinit      // deinit
	KwFunc        // func
	KwVar         // var
	KwLet         // let
	KwImport      // import
	KwSubscript   // subscript
	KwTrue        // true
	KwFalse       // false
	KwNil         // nil
	KwReturn      // return
	KwIf          // if
	KwElse        // else

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token ("..." or """...""").
	StringLit

	// Operator is any run of operator characters; Text carries the spelling.
	Operator

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // . (only when not part of a longer operator)
	At        // @
	Backslash // \

	// PoundIf starts a conditional compilation block.
	PoundIf // #if
	// PoundElseif starts a conditional clause.
	PoundElseif // #elseif
	// PoundElse starts the unconditional clause.
	PoundElse // #else
	// PoundEndif closes a conditional compilation block.
	PoundEndif // #endif
	// PoundKeyword is any other #identifier (#file, #selector, ...).
	PoundKeyword
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	KwStruct:     "KwStruct",
	KwClass:      "KwClass",
	KwEnum:       "KwEnum",
	KwActor:      "KwActor",
	KwProtocol:   "KwProtocol",
	KwExtension:  "KwExtension",
	KwTypealias:  "KwTypealias",
	KwInit:       "KwInit",
	KwDeinit:     "KwDeinit",
	KwFunc:       "KwFunc",
	KwVar:        "KwVar",
	KwLet:        "KwLet",
	KwImport:     "KwImport",
	KwSubscript:  "KwSubscript",
	KwTrue:       "KwTrue",
	KwFalse:      "KwFalse",
	KwNil:        "KwNil",
	KwReturn:     "KwReturn",
	KwIf:         "KwIf",
	KwElse:       "KwElse",
	IntLit:       "IntLit",
	FloatLit:     "FloatLit",
	StringLit:    "StringLit",
	Operator:     "Operator",
	LParen:       "LParen",
	RParen:       "RParen",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Comma:        "Comma",
	Colon:        "Colon",
	Semicolon:    "Semicolon",
	Dot:          "Dot",
	At:           "At",
	Backslash:    "Backslash",
	PoundIf:      "PoundIf",
	PoundElseif:  "PoundElseif",
	PoundElse:    "PoundElse",
	PoundEndif:   "PoundEndif",
	PoundKeyword: "PoundKeyword",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsDirective reports whether k is one of the #if/#elseif/#else/#endif directives.
func (k Kind) IsDirective() bool {
	switch k {
	case PoundIf, PoundElseif, PoundElse, PoundEndif:
		return true
	default:
		return false
	}
}
