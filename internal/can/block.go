package can

import (
	"strconv"

	"canon/internal/ast"
	"canon/internal/dag"
	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/symbols"
	"canon/internal/trace"
)

// binding is a value item of a block between binding and ordering.
type binding struct {
	item    blockItem
	pattern *Pattern
	refs    *References // pattern defaults only, until the def is built
	def     *Def
}

type aliasBinding struct {
	ann  *ast.Def
	sym  symbols.Symbol
	refs *References
}

// block canonicalizes a group of definitions and the expression they scope
// over. All names of the block are bound before any right-hand side is
// looked at, so definitions may refer to each other in any order; the
// dependency graph then decides how they nest.
func (c *canonicalizer) block(d ast.DefsData, region source.Region) *Expr {
	_, span := trace.Start(c.ctx, trace.ScopeBlock, "block")
	release := c.scope.Push(symbols.FrameBlock)
	defer release()

	items := c.pairAnnotations(d.Defs)

	var aliases []*aliasBinding
	for _, it := range items {
		if !it.alias {
			continue
		}
		tag := it.ann.Pattern.Data.(ast.TagPattern)
		sym := c.bind(tag.Name, it.ann.Pattern.Region, symbols.SymbolAlias)
		aliases = append(aliases, &aliasBinding{ann: it.ann, sym: sym})
	}

	var values []*binding
	for _, it := range items {
		if it.alias {
			continue
		}
		kind := symbols.SymbolValue
		if it.body == nil {
			kind = symbols.SymbolAnnotation
		}
		done := c.track()
		pat := c.pattern(it.pattern(), &binder{kind: kind})
		values = append(values, &binding{item: it, pattern: pat, refs: done()})
	}

	for _, a := range aliases {
		done := c.track()
		ts := &typeScope{}
		typ := c.typeAnn(a.ann.Type, ts)
		a.refs = done()
		c.aliases = append(c.aliases, Alias{Symbol: a.sym, Region: a.ann.Region, Type: typ, Vars: ts.vars})
	}
	for _, v := range values {
		v.def = c.def(v)
	}

	comps := dag.Order(dependencyGraph(values))

	done := c.track()
	body := c.expr(d.Body)
	bodyRefs := done()

	// the first cycle through a plain value cuts the block short: what
	// depends on it can never be evaluated
	var (
		cut    *Expr
		placed []dag.Component
	)
	for _, comp := range comps {
		if comp.Recursive && !allClosures(values, comp) {
			p := c.circular(values, comp)
			if cut == nil {
				cut = runtimeError(p, region)
			}
			continue
		}
		if cut == nil {
			placed = append(placed, comp)
		}
	}

	result := body
	if cut != nil {
		result = cut
	}
	for k := len(placed) - 1; k >= 0; k-- {
		result = c.let(values, placed[k], result, region)
	}

	c.reportUnused(items, values, aliases, bodyRefs)
	span.WithExtra("defs", strconv.Itoa(len(values))).End("")
	return result
}

func (c *canonicalizer) def(v *binding) *Def {
	it := v.item
	done := c.track()
	var ann *Annotation
	if it.ann != nil {
		ann = c.annotation(it.ann)
	}

	def := &Def{
		Pattern:       v.pattern,
		PatternRegion: v.pattern.Region,
		Annotation:    ann,
	}
	if it.body != nil {
		def.Expr = c.rhs(it.body.Expr, v.pattern)
		def.ExprRegion = it.body.Expr.Region
		def.Region = it.body.Region
		if it.ann != nil {
			def.Region = it.ann.Region.Cover(it.body.Region)
		}
	} else {
		syms := v.pattern.Symbols()
		missing := &diag.NoImplementation{At: it.ann.Region}
		if len(syms) > 0 {
			missing.Symbol = syms[0]
		}
		def.Expr = runtimeError(missing, it.ann.Region)
		def.ExprRegion = it.ann.Region
		def.Region = it.ann.Region
	}
	refs := done()
	refs.Merge(v.refs)
	def.References = refs
	return def
}

// rhs canonicalizes the right-hand side of a definition; a closure bound
// to a plain name learns that name.
func (c *canonicalizer) rhs(e *ast.Expr, pat *Pattern) *Expr {
	release := c.scope.Push(symbols.FrameDef)
	defer release()
	if cl, ok := e.Data.(ast.ClosureData); ok && pat.Kind == PatIdentifier {
		return c.closure(cl, e.Region, pat.Data.(IdentifierPattern).Symbol)
	}
	return c.expr(e)
}

// dependencyGraph: an edge i -> j when definition i refers to a symbol
// bound by j.
func dependencyGraph(values []*binding) *dag.Graph {
	owner := make(map[symbols.Symbol]int)
	for i, v := range values {
		for _, sym := range v.pattern.Symbols() {
			owner[sym] = i
		}
	}
	g := dag.NewGraph(len(values))
	for i, v := range values {
		for _, sym := range v.def.References.Lookups() {
			if j, ok := owner[sym]; ok {
				g.AddEdge(dag.Node(i), dag.Node(j))
			}
		}
	}
	return g
}

func allClosures(values []*binding, comp dag.Component) bool {
	for _, n := range comp.Nodes {
		if values[n].def.Expr.Kind != ExprClosure {
			return false
		}
	}
	return true
}

func (c *canonicalizer) let(values []*binding, comp dag.Component, body *Expr, region source.Region) *Expr {
	if !comp.Recursive {
		def := values[comp.Nodes[0]].def
		return &Expr{Kind: ExprLetNonRec, Region: region, Data: LetNonRecData{Def: def, Body: body}}
	}
	defs := make([]*Def, 0, len(comp.Nodes))
	for _, n := range comp.Nodes {
		def := values[n].def
		if len(comp.Nodes) > 1 {
			// calls through another member are never tail calls of this one
			cl := def.Expr.Data.(ClosureData)
			if cl.Recursive != TailRecursive {
				cl.Recursive = Recursive
				def.Expr.Data = cl
			}
		}
		defs = append(defs, def)
	}
	return &Expr{Kind: ExprLetRec, Region: region, Data: LetRecData{Defs: defs, Body: body}}
}

func (c *canonicalizer) circular(values []*binding, comp dag.Component) *diag.CircularDef {
	p := &diag.CircularDef{}
	for _, n := range comp.Nodes {
		def := values[n].def
		p.Symbols = append(p.Symbols, def.Symbols()...)
		p.Regions = append(p.Regions, diag.RegionPair{Pattern: def.PatternRegion, Expr: def.ExprRegion})
	}
	for _, n := range comp.Nodes {
		def := values[n].def
		def.Expr = runtimeError(p, def.ExprRegion)
	}
	c.report(p)
	return p
}

// reportUnused flags block bindings nothing refers to. A definition's
// references to its own symbols do not count; symbols replaced by a later
// binding of the same name were already reported as shadowed.
func (c *canonicalizer) reportUnused(items []blockItem, values []*binding, aliases []*aliasBinding, bodyRefs *References) {
	used := NewReferences()
	used.Merge(bodyRefs)
	for _, v := range values {
		own := make(map[symbols.Symbol]struct{})
		for _, sym := range v.def.Symbols() {
			own[sym] = struct{}{}
		}
		for _, sym := range v.def.References.Lookups() {
			if _, self := own[sym]; !self {
				used.AddLookup(sym)
			}
		}
	}
	for _, a := range aliases {
		for _, sym := range a.refs.Lookups() {
			if sym != a.sym {
				used.AddLookup(sym)
			}
		}
	}

	// items are in source order; aliases and values interleave there
	var vi, ai int
	for _, it := range items {
		var syms []symbols.Symbol
		if it.alias {
			syms = []symbols.Symbol{aliases[ai].sym}
			ai++
		} else {
			syms = values[vi].def.Symbols()
			vi++
		}
		for _, sym := range syms {
			if used.Has(sym) {
				continue
			}
			if _, ok := c.shadowed[sym]; ok {
				continue
			}
			at := source.Region{}
			if info := c.in.Info(sym); info != nil {
				at = info.Region
			}
			c.report(&diag.UnusedDef{Symbol: sym, At: at})
		}
	}
}
