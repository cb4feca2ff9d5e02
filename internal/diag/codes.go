package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectBody         Code = 2004
	SynUnterminatedIfConf Code = 2100 // #if without #endif
	SynStrayDirective     Code = 2101 // #else/#elseif/#endif without #if
	SynElseNotLast        Code = 2102 // clause after #else
	SynBadCondition       Code = 2103

	// Семантические / запросы
	SemaInfo                Code = 3000
	SemaCircularReference   Code = 3001
	SemaUnknownExtendedType Code = 3002
	SemaExtendsNonNominal   Code = 3003

	// Ввод-вывод
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectBody:               "Expected declaration body",
	SynUnterminatedIfConf:       "Unterminated conditional compilation block",
	SynStrayDirective:           "Directive outside of a conditional compilation block",
	SynElseNotLast:              "Clause after #else",
	SynBadCondition:             "Malformed compilation condition",
	SemaInfo:                    "Semantic information",
	SemaCircularReference:       "Circular reference",
	SemaUnknownExtendedType:     "Extension of unknown type",
	SemaExtendsNonNominal:       "Extension of non-nominal type",
	IOLoadFileError:             "I/O error",
	IOCacheError:                "Disk cache error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
