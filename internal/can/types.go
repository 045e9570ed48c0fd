package can

import (
	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/symbols"
)

// Variable is a type variable handed to the solver.
type Variable uint32

// VarStore allocates type variables for one compilation unit. Variable 0 is
// never handed out.
type VarStore struct {
	next Variable
}

func NewVarStore() *VarStore { return &VarStore{next: 1} }

// Fresh returns an unused variable.
func (s *VarStore) Fresh() Variable {
	v := s.next
	s.next++
	return v
}

// Len counts allocated variables.
func (s *VarStore) Len() int { return int(s.next) - 1 }

// NamedVar is a lower-case type variable written in an annotation.
type NamedVar struct {
	Name string
	Var  Variable
}

type TypeKind uint8

const (
	TypeApply TypeKind = iota
	TypeFunction
	TypeVar
	TypeRecord
	TypeTagUnion
	TypeErroneous
)

func (k TypeKind) String() string {
	switch k {
	case TypeApply:
		return "Apply"
	case TypeFunction:
		return "Function"
	case TypeVar:
		return "Var"
	case TypeRecord:
		return "Record"
	case TypeTagUnion:
		return "TagUnion"
	default:
		return "Erroneous"
	}
}

// Type is a canonical annotation type.
type Type struct {
	Kind   TypeKind
	Region source.Region
	Data   TypeData
}

type TypeData interface {
	typeData()
}

// ApplyType names a builtin type (Symbol unset) or a user alias.
type ApplyType struct {
	Module string
	Name   string
	Symbol symbols.Symbol
	Args   []*Type
}

func (ApplyType) typeData() {}

type FunctionType struct {
	Args []*Type
	Ret  *Type
}

func (FunctionType) typeData() {}

type VarType struct {
	Name string
	Var  Variable
}

func (VarType) typeData() {}

type FieldType struct {
	Name string
	Type *Type
}

type RecordType struct {
	Fields []FieldType
}

func (RecordType) typeData() {}

type TagType struct {
	Name string
	Args []*Type
}

type TagUnionType struct {
	Tags []TagType
}

func (TagUnionType) typeData() {}

// ErroneousType stands in for a type that failed to resolve.
type ErroneousType struct {
	Err diag.Problem
}

func (ErroneousType) typeData() {}

// Annotation is a canonical type signature attached to a definition.
type Annotation struct {
	Signature *Type
	FreeVars  []NamedVar
	Region    source.Region
}

// Alias is an upper-case type definition of a block.
type Alias struct {
	Symbol symbols.Symbol
	Region source.Region
	Type   *Type
	Vars   []NamedVar
}

// builtinTypes resolve without a symbol.
var builtinTypes = map[string]struct{}{
	"Num": {}, "Int": {}, "Float": {}, "Frac": {},
	"I8": {}, "I16": {}, "I32": {}, "I64": {}, "I128": {},
	"U8": {}, "U16": {}, "U32": {}, "U64": {}, "U128": {},
	"F32": {}, "F64": {}, "Dec": {},
	"Str": {}, "Bool": {}, "List": {}, "Dict": {}, "Set": {}, "Result": {},
	"Integer": {}, "FloatingPoint": {},
}

// IsBuiltinType reports whether name is a prelude type.
func IsBuiltinType(name string) bool {
	_, ok := builtinTypes[name]
	return ok
}
