package can

import (
	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/symbols"
)

// ExprKind enumerates canonical expression kinds.
type ExprKind uint8

const (
	ExprNum          ExprKind = iota // decimal integer, numeric type left to the solver
	ExprInt                          // hex/octal/binary integer
	ExprFloat                        // float literal
	ExprStr                          // decoded string
	ExprVar                          // lookup by symbol
	ExprList                         // [ a, b ]
	ExprCall                         // application, operators included
	ExprClosure                      // \params -> body
	ExprLetNonRec                    // one definition + body
	ExprLetRec                       // one recursive component + body
	ExprWhen                         // case analysis
	ExprIf                           // if/then/else
	ExprRecord                       // { a: e }
	ExprAccess                       // record.field
	ExprTag                          // Tag args...
	ExprRuntimeError                 // fails when evaluated
)

func (k ExprKind) String() string {
	switch k {
	case ExprNum:
		return "Num"
	case ExprInt:
		return "Int"
	case ExprFloat:
		return "Float"
	case ExprStr:
		return "Str"
	case ExprVar:
		return "Var"
	case ExprList:
		return "List"
	case ExprCall:
		return "Call"
	case ExprClosure:
		return "Closure"
	case ExprLetNonRec:
		return "LetNonRec"
	case ExprLetRec:
		return "LetRec"
	case ExprWhen:
		return "When"
	case ExprIf:
		return "If"
	case ExprRecord:
		return "Record"
	case ExprAccess:
		return "Access"
	case ExprTag:
		return "Tag"
	case ExprRuntimeError:
		return "RuntimeError"
	default:
		return "Unknown"
	}
}

// Expr is a canonical, scope-resolved expression.
type Expr struct {
	Kind   ExprKind
	Region source.Region
	Data   ExprData
}

// ExprData is sealed: only this package implements it.
type ExprData interface {
	exprData()
}

// NumData is a decimal integer literal.
type NumData struct {
	Value int64
}

func (NumData) exprData() {}

type IntData struct {
	Value int64
	Base  ast.Base
}

func (IntData) exprData() {}

type FloatData struct {
	Value float64
}

func (FloatData) exprData() {}

type StrData struct {
	Value string
}

func (StrData) exprData() {}

type VarData struct {
	Symbol symbols.Symbol
}

func (VarData) exprData() {}

type ListData struct {
	Elems []*Expr
}

func (ListData) exprData() {}

// CalledVia records the surface syntax of a call.
type CalledVia uint8

const (
	CalledViaSpace   CalledVia = iota // f a b
	CalledViaBinOp                    // a + b
	CalledViaUnaryOp                  // -a
)

func (c CalledVia) String() string {
	switch c {
	case CalledViaBinOp:
		return "binop"
	case CalledViaUnaryOp:
		return "unaryop"
	default:
		return "space"
	}
}

type CallData struct {
	Fn        *Expr
	Args      []*Expr
	CalledVia CalledVia
}

func (CallData) exprData() {}

// Recursion is the shape of a closure's references to its own name.
type Recursion uint8

const (
	NotRecursive  Recursion = iota // never names itself
	Recursive                      // names itself outside tail calls
	TailRecursive                  // only direct, saturated tail calls
)

func (r Recursion) String() string {
	switch r {
	case Recursive:
		return "Recursive"
	case TailRecursive:
		return "TailRecursive"
	default:
		return "NotRecursive"
	}
}

// ClosureData: Name is the symbol the closure is bound to, NoSymbol for
// anonymous closures. Captured lists the enclosing-block symbols the body
// refers to, in first-reference order.
type ClosureData struct {
	Name      symbols.Symbol
	Params    []*Pattern
	Body      *Expr
	Recursive Recursion
	Captured  []symbols.Symbol
}

func (ClosureData) exprData() {}

type LetNonRecData struct {
	Def  *Def
	Body *Expr
}

func (LetNonRecData) exprData() {}

// LetRecData holds one strongly connected component in source order.
type LetRecData struct {
	Defs []*Def
	Body *Expr
}

func (LetRecData) exprData() {}

type WhenBranch struct {
	Patterns []*Pattern
	Guard    *Expr // nil without `if`
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

type RecordField struct {
	Name   string
	Value  *Expr
	Region source.Region
}

type RecordData struct {
	Fields []RecordField
}

func (RecordData) exprData() {}

type AccessData struct {
	Record *Expr
	Field  string
}

func (AccessData) exprData() {}

type TagData struct {
	Name string
	Args []*Expr
}

func (TagData) exprData() {}

// RuntimeErrorData replaces an ill-formed subtree.
type RuntimeErrorData struct {
	Err diag.RuntimeError
}

func (RuntimeErrorData) exprData() {}

func runtimeError(err diag.RuntimeError, region source.Region) *Expr {
	return &Expr{Kind: ExprRuntimeError, Region: region, Data: RuntimeErrorData{Err: err}}
}

// RuntimeErr returns the payload of a RuntimeError node.
func (e *Expr) RuntimeErr() (diag.RuntimeError, bool) {
	if e == nil || e.Kind != ExprRuntimeError {
		return nil, false
	}
	return e.Data.(RuntimeErrorData).Err, true
}

// Closure returns the payload of a Closure node.
func (e *Expr) Closure() (ClosureData, bool) {
	if e == nil || e.Kind != ExprClosure {
		return ClosureData{}, false
	}
	return e.Data.(ClosureData), true
}
