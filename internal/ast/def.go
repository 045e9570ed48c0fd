package ast

import "canon/internal/source"

// DefKind separates type signatures from value definitions.
type DefKind uint8

const (
	DefBody       DefKind = iota // pattern = expr
	DefAnnotation                // name : Type
)

func (k DefKind) String() string {
	if k == DefAnnotation {
		return "Annotation"
	}
	return "Body"
}

// Def is one item of a block. Annotations carry Type and no Expr, bodies
// carry Expr and no Type.
type Def struct {
	Kind    DefKind
	Pattern *Pattern
	Type    *TypeAnn
	Expr    *Expr
	Region  source.Region
}

// Name returns the identifier a def binds, if its pattern is a single name.
func (d *Def) Name() (string, bool) {
	return d.Pattern.IdentName()
}
