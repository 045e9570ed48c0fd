// Package token defines the lexical vocabulary of the surface language.
package token

import (
	"canon/internal/source"
)

// Token is one significant lexeme. Comments and whitespace never become tokens;
// layout decisions use Region and SpaceBefore.
type Token struct {
	Kind   Kind
	Region source.Region
	Text   string
	// SpaceBefore is set when whitespace, a comment or a line break precedes the token.
	SpaceBefore bool
	// Prefix marks a `-` or `!` that applies to the following operand
	// rather than acting as an infix operator.
	Prefix bool
}

// EndsOperand reports whether the token can close an operand, which makes a
// following `-` an infix operator.
func (t Token) EndsOperand() bool {
	switch t.Kind {
	case Ident, UpperIdent, Underscore, NumberLit, StringLit, RParen, RBrace, RBracket:
		return true
	default:
		return false
	}
}

// IsBinaryOp reports whether the token is an infix operator.
func (t Token) IsBinaryOp() bool {
	_, ok := Precedence(t.Kind)
	return ok
}

// Precedence returns the binding power of an infix operator; higher binds tighter.
func Precedence(k Kind) (int, bool) {
	switch k {
	case OrOr:
		return 1, true
	case AndAnd:
		return 2, true
	case EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return 3, true
	case Plus, Minus:
		return 4, true
	case Star, Slash, SlashSl, Percent:
		return 5, true
	case Caret:
		return 6, true
	default:
		return 0, false
	}
}

// RightAssoc reports whether an operator groups to the right.
func RightAssoc(k Kind) bool { return k == Caret }

// Line is the 0-based line the token starts on.
func (t Token) Line() uint32 { return t.Region.StartLine }

// Col is the 0-based column the token starts at.
func (t Token) Col() uint32 { return t.Region.StartCol }
