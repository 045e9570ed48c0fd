// Package ast is the parsed, source-ordered tree the canonicalizer consumes.
// Literal text is kept raw; validation happens during canonicalization.
package ast

import "canon/internal/source"

// ExprKind enumerates surface expression kinds.
type ExprKind uint8

const (
	ExprMalformed ExprKind = iota
	ExprNum                // numeric literal, sign and base already split off
	ExprStr                // string literal, escapes not yet decoded
	ExprVar                // identifier, optionally module-qualified
	ExprTag                // Tag or Tag arg...
	ExprApply              // f a b
	ExprBinOp              // a + b
	ExprUnaryOp            // -a, !a
	ExprClosure            // \a, b -> body
	ExprDefs               // definitions followed by a body
	ExprWhen               // when cond is branches
	ExprIf                 // if c then a else b
	ExprRecord             // { a: 1, b, c ? 2 }
	ExprList               // [ a, b ]
	ExprAccess             // record.field
)

func (k ExprKind) String() string {
	switch k {
	case ExprNum:
		return "Num"
	case ExprStr:
		return "Str"
	case ExprVar:
		return "Var"
	case ExprTag:
		return "Tag"
	case ExprApply:
		return "Apply"
	case ExprBinOp:
		return "BinOp"
	case ExprUnaryOp:
		return "UnaryOp"
	case ExprClosure:
		return "Closure"
	case ExprDefs:
		return "Defs"
	case ExprWhen:
		return "When"
	case ExprIf:
		return "If"
	case ExprRecord:
		return "Record"
	case ExprList:
		return "List"
	case ExprAccess:
		return "Access"
	default:
		return "Malformed"
	}
}

// Expr is one node of the parsed tree.
type Expr struct {
	Kind   ExprKind
	Region source.Region
	Data   ExprData
}

// ExprData is the kind-specific payload of Expr.
type ExprData interface {
	exprData()
}

// NumData holds a numeric literal. Digits excludes sign and base prefix;
// Raw is the literal exactly as written.
type NumData struct {
	Base     Base
	Negative bool
	Digits   string
	Raw      string
}

func (NumData) exprData() {}

// IsFloat reports whether the literal is written as a float.
func (n NumData) IsFloat() bool {
	if n.Base != BaseDecimal {
		return false
	}
	for i := 0; i < len(n.Digits); i++ {
		switch n.Digits[i] {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}

// StrData holds the body of a string literal between the quotes.
type StrData struct {
	Raw string
}

func (StrData) exprData() {}

// VarData holds an identifier. Module is empty for unqualified names.
type VarData struct {
	Module string
	Name   string
}

func (VarData) exprData() {}

type TagData struct {
	Name string
	Args []*Expr
}

func (TagData) exprData() {}

type ApplyData struct {
	Fn   *Expr
	Args []*Expr
}

func (ApplyData) exprData() {}

type BinOpData struct {
	Op       string
	OpRegion source.Region
	Left     *Expr
	Right    *Expr
}

func (BinOpData) exprData() {}

type UnaryOpData struct {
	Op       string
	OpRegion source.Region
	Operand  *Expr
}

func (UnaryOpData) exprData() {}

type ClosureData struct {
	Params []*Pattern
	Body   *Expr
}

func (ClosureData) exprData() {}

// DefsData is a block: definitions (annotations and bodies, in source order)
// followed by the expression they scope over.
type DefsData struct {
	Defs []*Def
	Body *Expr
}

func (DefsData) exprData() {}

type WhenBranch struct {
	Patterns []*Pattern // alternatives: `A | B -> ...`
	Guard    *Expr      // nil without `if`
	Value    *Expr
	Region   source.Region
}

type WhenData struct {
	Cond     *Expr
	Branches []WhenBranch
}

func (WhenData) exprData() {}

type IfData struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

func (IfData) exprData() {}

// FieldKind distinguishes record field shapes.
type FieldKind uint8

const (
	FieldRequired FieldKind = iota // name: value
	FieldPunned                    // name
	FieldOptional                  // name ? value
)

type RecordField struct {
	Kind       FieldKind
	Name       string
	NameRegion source.Region
	Value      *Expr // nil for punned fields
	Region     source.Region
}

type RecordData struct {
	Fields []RecordField
}

func (RecordData) exprData() {}

type ListData struct {
	Elems []*Expr
}

func (ListData) exprData() {}

type AccessData struct {
	Record *Expr
	Field  string
}

func (AccessData) exprData() {}

// MalformedData marks a subtree the parser could not make sense of.
type MalformedData struct {
	Text string
}

func (MalformedData) exprData() {}
