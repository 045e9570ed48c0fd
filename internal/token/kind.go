package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident      // lower-case identifier
	UpperIdent // Tag, Type or Module name
	Underscore // _
	NumberLit  // 42, -1, 0x1F, 1.5e3
	StringLit  // "..."

	KwWhen // when
	KwIs   // is
	KwIf   // if
	KwThen // then
	KwElse // else

	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	SlashSl  // //
	Percent  // %
	Caret    // ^
	EqEq     // ==
	BangEq   // !=
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	AndAnd   // &&
	OrOr     // ||
	Bang     // !
	Assign   // =
	Colon    // :
	Question // ?
	Pipe     // |
	Arrow    // ->
	Lambda   // \
	Comma    // ,
	Dot      // .
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	UpperIdent: "UpperIdent",
	Underscore: "Underscore",
	NumberLit:  "NumberLit",
	StringLit:  "StringLit",
	KwWhen:     "KwWhen",
	KwIs:       "KwIs",
	KwIf:       "KwIf",
	KwThen:     "KwThen",
	KwElse:     "KwElse",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	SlashSl:    "SlashSlash",
	Percent:    "Percent",
	Caret:      "Caret",
	EqEq:       "EqEq",
	BangEq:     "BangEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	AndAnd:     "AndAnd",
	OrOr:       "OrOr",
	Bang:       "Bang",
	Assign:     "Assign",
	Colon:      "Colon",
	Question:   "Question",
	Pipe:       "Pipe",
	Arrow:      "Arrow",
	Lambda:     "Lambda",
	Comma:      "Comma",
	Dot:        "Dot",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
