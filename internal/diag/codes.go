package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadIndent          Code = 1004

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2002
	SynUnclosedBrace     Code = 2003
	SynUnclosedBracket   Code = 2004
	SynExpectExpression  Code = 2005
	SynExpectPattern     Code = 2006
	SynExpectType        Code = 2007
	SynMissingBody       Code = 2008
	SynExpectArrow       Code = 2009
	SynExpectThenElse    Code = 2010
	SynTrailingInput     Code = 2011
	SynBadDefinitionHead Code = 2012

	// Канонизация
	SemaInfo                 Code = 3000
	SemaShadowing            Code = 3001
	SemaSignatureDefMismatch Code = 3002
	SemaLookupNotInScope     Code = 3003
	SemaUnusedDef            Code = 3004
	SemaCircularDef          Code = 3005
	SemaInvalidOptionalValue Code = 3006
	SemaInvalidInt           Code = 3007
	SemaInvalidFloat         Code = 3008
	SemaInvalidStringEscape  Code = 3009
	SemaNoImplementation     Code = 3010

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проект
	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001
	ProjMissingPackage  Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnknownChar:           "Unknown character",
	LexUnterminatedString:    "Unterminated string literal",
	LexBadNumber:             "Malformed number literal",
	LexBadIndent:             "Tabs are not allowed for indentation",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynUnclosedParen:         "Unclosed parenthesis",
	SynUnclosedBrace:         "Unclosed brace",
	SynUnclosedBracket:       "Unclosed bracket",
	SynExpectExpression:      "Expected expression",
	SynExpectPattern:         "Expected pattern",
	SynExpectType:            "Expected type",
	SynMissingBody:           "Definitions must be followed by an expression",
	SynExpectArrow:           "Expected '->'",
	SynExpectThenElse:        "Expected 'then' or 'else'",
	SynTrailingInput:         "Unexpected input after expression",
	SynBadDefinitionHead:     "Invalid definition head",
	SemaInfo:                 "Canonicalization information",
	SemaShadowing:            "Name shadowed in the same scope",
	SemaSignatureDefMismatch: "Annotation does not match the definition",
	SemaLookupNotInScope:     "Name not in scope",
	SemaUnusedDef:            "Unused definition",
	SemaCircularDef:          "Circular definition",
	SemaInvalidOptionalValue: "Optional value outside of a function argument",
	SemaInvalidInt:           "Invalid integer literal",
	SemaInvalidFloat:         "Invalid float literal",
	SemaInvalidStringEscape:  "Invalid string escape",
	SemaNoImplementation:     "Annotation without implementation",
	IOLoadFileError:          "I/O load file error",
	IOCacheError:             "Cache error",
	ProjInfo:                 "Project information",
	ProjInvalidManifest:      "Invalid project manifest",
	ProjMissingPackage:       "Manifest has no package name",
	ObsInfo:                  "Observability information",
	ObsTimings:               "Pipeline timings",
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
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
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
