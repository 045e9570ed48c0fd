package can

import (
	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/symbols"
)

// blockItem is one binding of a block after annotations were paired with
// the definitions they describe. body is nil for a signature without a
// definition; ann is nil for an unannotated definition.
type blockItem struct {
	body  *ast.Def
	ann   *ast.Def
	alias bool
}

// pattern is what the item binds.
func (it *blockItem) pattern() *ast.Pattern {
	if it.body != nil {
		return it.body.Pattern
	}
	return it.ann.Pattern
}

// pairAnnotations walks the items of a block in order. A lower-case
// signature describes the definition on the very next line when that
// definition binds the same name; a definition of another name there is
// reported and both are dropped. Upper-case signatures are aliases.
func (c *canonicalizer) pairAnnotations(defs []*ast.Def) []blockItem {
	items := make([]blockItem, 0, len(defs))
	for i := 0; i < len(defs); i++ {
		def := defs[i]
		if def.Kind == ast.DefBody {
			items = append(items, blockItem{body: def})
			continue
		}
		name, isIdent := def.Name()
		if !isIdent {
			items = append(items, blockItem{ann: def, alias: true})
			continue
		}
		if i+1 < len(defs) && adjacent(def, defs[i+1]) {
			next := defs[i+1]
			nextName, nextIdent := next.Name()
			switch {
			case nextIdent && nextName == name:
				items = append(items, blockItem{body: next, ann: def})
				i++
				continue
			case nextIdent:
				c.report(&diag.SignatureDefMismatch{
					AnnotationName:   name,
					DefName:          nextName,
					AnnotationRegion: def.Region,
					DefRegion:        next.Pattern.Region,
				})
				i++
				continue
			}
		}
		items = append(items, blockItem{ann: def})
	}
	return items
}

// adjacent: ann is a signature and next a definition starting on the
// following line.
func adjacent(ann, next *ast.Def) bool {
	return next.Kind == ast.DefBody && ann.Region.EndLine+1 == next.Region.StartLine
}

// typeScope collects the type variables of one signature.
type typeScope struct {
	vars []NamedVar
}

func (ts *typeScope) lookup(name string) (Variable, bool) {
	for _, v := range ts.vars {
		if v.Name == name {
			return v.Var, true
		}
	}
	return 0, false
}

func (c *canonicalizer) annotation(def *ast.Def) *Annotation {
	ts := &typeScope{}
	sig := c.typeAnn(def.Type, ts)
	return &Annotation{Signature: sig, FreeVars: ts.vars, Region: def.Region}
}

// typeAnn resolves names in a written type. Aliases count as references of
// whatever is being tracked.
func (c *canonicalizer) typeAnn(t *ast.TypeAnn, ts *typeScope) *Type {
	switch t.Kind {
	case ast.TypeVar:
		v, ok := ts.lookup(t.Name)
		if !ok {
			v = c.vars.Fresh()
			nv := NamedVar{Name: t.Name, Var: v}
			ts.vars = append(ts.vars, nv)
			c.freeVars = append(c.freeVars, nv)
		}
		return &Type{Kind: TypeVar, Region: t.Region, Data: VarType{Name: t.Name, Var: v}}
	case ast.TypeFunction:
		return &Type{Kind: TypeFunction, Region: t.Region, Data: FunctionType{
			Args: c.typeAnns(t.Args, ts),
			Ret:  c.typeAnn(t.Ret, ts),
		}}
	case ast.TypeRecord:
		fields := make([]FieldType, 0, len(t.Fields))
		for _, f := range t.Fields {
			fields = append(fields, FieldType{Name: f.Name, Type: c.typeAnn(f.Type, ts)})
		}
		return &Type{Kind: TypeRecord, Region: t.Region, Data: RecordType{Fields: fields}}
	case ast.TypeTagUnion:
		tags := make([]TagType, 0, len(t.Tags))
		for _, tag := range t.Tags {
			tags = append(tags, TagType{Name: tag.Name, Args: c.typeAnns(tag.Args, ts)})
		}
		return &Type{Kind: TypeTagUnion, Region: t.Region, Data: TagUnionType{Tags: tags}}
	case ast.TypeApply:
		return c.typeApply(t, ts)
	default:
		p := &diag.LookupNotInScope{Name: t.Name, At: t.Region}
		return &Type{Kind: TypeErroneous, Region: t.Region, Data: ErroneousType{Err: p}}
	}
}

func (c *canonicalizer) typeAnns(in []*ast.TypeAnn, ts *typeScope) []*Type {
	if len(in) == 0 {
		return nil
	}
	out := make([]*Type, len(in))
	for i, t := range in {
		out[i] = c.typeAnn(t, ts)
	}
	return out
}

func (c *canonicalizer) typeApply(t *ast.TypeAnn, ts *typeScope) *Type {
	data := ApplyType{Module: t.Module, Name: t.Name, Args: c.typeAnns(t.Args, ts)}
	switch {
	case t.Module != "":
		if _, ok := c.in.LookupModule(t.Module); !ok {
			return c.unknownType(t.Module+"."+t.Name, t)
		}
	case IsBuiltinType(t.Name):
	default:
		sym, ok := c.scope.Lookup(t.Name)
		if !ok || c.kindOf(sym) != symbols.SymbolAlias {
			return c.unknownType(t.Name, t)
		}
		c.lookup(sym)
		data.Symbol = sym
	}
	return &Type{Kind: TypeApply, Region: t.Region, Data: data}
}

func (c *canonicalizer) unknownType(name string, t *ast.TypeAnn) *Type {
	p := c.notInScope(name, t.Region)
	return &Type{Kind: TypeErroneous, Region: t.Region, Data: ErroneousType{Err: p}}
}

func (c *canonicalizer) kindOf(sym symbols.Symbol) symbols.SymbolKind {
	if info := c.in.Info(sym); info != nil {
		return info.Kind
	}
	return symbols.SymbolInvalid
}
