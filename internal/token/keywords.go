package token

var keywords = map[string]Kind{
	"when": KwWhen,
	"is":   KwIs,
	"if":   KwIf,
	"then": KwThen,
	"else": KwElse,
}

// LookupKeyword reports whether text is a keyword. Keywords are lower-case only.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
