package ast

import "canon/internal/source"

type TypeKind uint8

const (
	TypeMalformed TypeKind = iota
	TypeApply              // Name args, Module.Name args
	TypeVar                // a
	TypeFunction           // a, b -> c
	TypeRecord             // { a : T }
	TypeTagUnion           // [ A, B T ]
)

func (k TypeKind) String() string {
	switch k {
	case TypeApply:
		return "Apply"
	case TypeVar:
		return "Var"
	case TypeFunction:
		return "Function"
	case TypeRecord:
		return "Record"
	case TypeTagUnion:
		return "TagUnion"
	default:
		return "Malformed"
	}
}

// TypeAnn is a type as written in an annotation.
type TypeAnn struct {
	Kind   TypeKind
	Region source.Region
	Module string     // TypeApply
	Name   string     // TypeApply, TypeVar
	Args   []*TypeAnn // TypeApply arguments, TypeFunction parameters
	Ret    *TypeAnn   // TypeFunction
	Fields []TypeField
	Tags   []TypeTag
}

type TypeField struct {
	Name   string
	Type   *TypeAnn
	Region source.Region
}

type TypeTag struct {
	Name   string
	Args   []*TypeAnn
	Region source.Region
}
