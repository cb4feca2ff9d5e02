package token

var keywords = map[string]Kind{
	"struct":    KwStruct,
	"class":     KwClass,
	"enum":      KwEnum,
	"actor":     KwActor,
	"protocol":  KwProtocol,
	"extension": KwExtension,
	"typealias": KwTypealias,
	"init":      KwInit,
	"deinit":    KwDeinit,
	"func":      KwFunc,
	"var":       KwVar,
	"let":       KwLet,
	"import":    KwImport,
	"subscript": KwSubscript,
	"true":      KwTrue,
	"false":     KwFalse,
	"nil":       KwNil,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
}

var poundKeywords = map[string]Kind{
	"#if":     PoundIf,
	"#elseif": PoundElseif,
	"#else":   PoundElse,
	"#endif":  PoundEndif,
}

// LookupKeyword returns the keyword kind for ident. Keywords are case-sensitive;
// contextual words (public, static, mutating, ...) stay identifiers.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupPound maps "#name" to its directive kind, or PoundKeyword.
func LookupPound(text string) Kind {
	if k, ok := poundKeywords[text]; ok {
		return k
	}
	return PoundKeyword
}
