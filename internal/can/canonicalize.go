// Package can turns the parsed tree into a canonical, scope-resolved tree.
//
// Names become symbols, literals are validated, the definitions of every
// block are ordered by dependency and split into recursive and
// non-recursive lets, closures get their recursion shape, and annotations
// are attached to the definitions they describe. Ill-formed input never
// stops the pass: the offending subtree becomes a RuntimeError node and a
// problem is recorded.
package can

import (
	"context"
	"fmt"
	"strconv"

	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/symbols"
	"canon/internal/trace"
)

// Canonicalize runs the pass over root. ctx only carries the tracer.
func Canonicalize(ctx context.Context, env Env, root *ast.Expr) *Output {
	if env.Interner == nil || !env.Home.IsValid() {
		panic(fmt.Errorf("can: env without interner or home module"))
	}
	ctx, span := trace.Start(ctx, trace.ScopePass, "canonicalize")

	c := &canonicalizer{
		ctx:      ctx,
		in:       env.Interner,
		scope:    symbols.NewScope(env.Interner, env.Home),
		bag:      diag.NewBag(),
		extra:    env.Reporter,
		vars:     NewVarStore(),
		refs:     []*References{NewReferences()},
		shadowed: make(map[symbols.Symbol]struct{}),
	}
	expr := c.expr(root)

	out := &Output{
		Expr:       expr,
		Problems:   c.bag.Items(),
		Interner:   env.Interner,
		Home:       env.Home,
		Vars:       c.vars,
		FreeVars:   c.freeVars,
		Aliases:    c.aliases,
		References: c.refs[0],
	}
	span.WithExtra("problems", strconv.Itoa(len(out.Problems))).End("")
	return out
}

type canonicalizer struct {
	ctx   context.Context
	in    *symbols.Interner
	scope *symbols.Scope
	bag   *diag.Bag
	extra diag.Reporter
	vars  *VarStore

	// refs is the tracking stack; the top collects what is referenced now.
	refs []*References
	// shadowed symbols were replaced in their own frame and are never unused.
	shadowed map[symbols.Symbol]struct{}

	freeVars []NamedVar
	aliases  []Alias
}

func (c *canonicalizer) report(p diag.Problem) {
	c.bag.Report(p)
	if c.extra != nil {
		c.extra.Report(p)
	}
}

// track opens a reference set; done merges it into the enclosing one and
// returns it.
func (c *canonicalizer) track() (done func() *References) {
	refs := NewReferences()
	c.refs = append(c.refs, refs)
	depth := len(c.refs)
	return func() *References {
		if len(c.refs) != depth || c.refs[depth-1] != refs {
			panic(fmt.Errorf("can: reference tracking released out of order"))
		}
		c.refs = c.refs[:depth-1]
		c.refs[depth-2].Merge(refs)
		return refs
	}
}

func (c *canonicalizer) lookup(sym symbols.Symbol) { c.refs[len(c.refs)-1].AddLookup(sym) }

func (c *canonicalizer) call(sym symbols.Symbol) { c.refs[len(c.refs)-1].AddCall(sym) }

// bind mints a symbol in the current frame, reporting same-frame rebinding.
func (c *canonicalizer) bind(name string, region source.Region, kind symbols.SymbolKind) symbols.Symbol {
	sym, shadow := c.scope.Bind(name, region, kind)
	if shadow != nil {
		c.shadowed[shadow.Original] = struct{}{}
		c.report(&diag.Shadowing{
			Name:           name,
			Original:       shadow.Original,
			OriginalRegion: shadow.OriginalRegion,
			ShadowRegion:   region,
		})
	}
	return sym
}

func (c *canonicalizer) notInScope(name string, region source.Region) *diag.LookupNotInScope {
	p := &diag.LookupNotInScope{Name: name, At: region, InScope: c.scope.Names()}
	c.report(p)
	return p
}

func (c *canonicalizer) expr(e *ast.Expr) *Expr {
	switch data := e.Data.(type) {
	case ast.NumData:
		return c.number(data, e.Region)
	case ast.StrData:
		return c.str(data.Raw, e.Region)
	case ast.VarData:
		return c.variable(data, e.Region)
	case ast.TagData:
		return &Expr{Kind: ExprTag, Region: e.Region, Data: TagData{Name: data.Name, Args: c.exprs(data.Args)}}
	case ast.ApplyData:
		fn := c.expr(data.Fn)
		if fn.Kind == ExprVar {
			c.call(fn.Data.(VarData).Symbol)
		}
		return &Expr{Kind: ExprCall, Region: e.Region, Data: CallData{Fn: fn, Args: c.exprs(data.Args), CalledVia: CalledViaSpace}}
	case ast.BinOpData:
		return c.operator(data.Op, data.OpRegion, e.Region, CalledViaBinOp, data.Left, data.Right)
	case ast.UnaryOpData:
		return c.operator(data.Op, data.OpRegion, e.Region, CalledViaUnaryOp, data.Operand)
	case ast.ClosureData:
		return c.closure(data, e.Region, symbols.NoSymbol)
	case ast.DefsData:
		return c.block(data, e.Region)
	case ast.WhenData:
		return c.when(data, e.Region)
	case ast.IfData:
		return &Expr{Kind: ExprIf, Region: e.Region, Data: IfData{
			Cond: c.expr(data.Cond),
			Then: c.expr(data.Then),
			Else: c.expr(data.Else),
		}}
	case ast.RecordData:
		return c.record(data, e.Region)
	case ast.ListData:
		return &Expr{Kind: ExprList, Region: e.Region, Data: ListData{Elems: c.exprs(data.Elems)}}
	case ast.AccessData:
		return &Expr{Kind: ExprAccess, Region: e.Region, Data: AccessData{Record: c.expr(data.Record), Field: data.Field}}
	default:
		// the parser never hands over malformed nodes
		panic(fmt.Errorf("can: unexpected %s expression at %s", e.Kind, e.Region))
	}
}

func (c *canonicalizer) exprs(in []*ast.Expr) []*Expr {
	if len(in) == 0 {
		return nil
	}
	out := make([]*Expr, len(in))
	for i, e := range in {
		out[i] = c.expr(e)
	}
	return out
}

func (c *canonicalizer) variable(v ast.VarData, region source.Region) *Expr {
	if v.Module != "" {
		sym, ok := c.in.Builtin(v.Module, v.Name)
		if !ok {
			return runtimeError(c.notInScope(v.Module+"."+v.Name, region), region)
		}
		c.lookup(sym)
		return &Expr{Kind: ExprVar, Region: region, Data: VarData{Symbol: sym}}
	}
	sym, ok := c.scope.Lookup(v.Name)
	if !ok {
		return runtimeError(c.notInScope(v.Name, region), region)
	}
	c.lookup(sym)
	return &Expr{Kind: ExprVar, Region: region, Data: VarData{Symbol: sym}}
}

// operator desugars `a op b` and `op a` into calls of builtin functions.
func (c *canonicalizer) operator(op string, opRegion, region source.Region, via CalledVia, operands ...*ast.Expr) *Expr {
	var (
		sym symbols.Symbol
		ok  bool
	)
	if via == CalledViaBinOp {
		sym, ok = c.in.BinaryOp(op)
	} else {
		sym, ok = c.in.UnaryOp(op)
	}
	if !ok {
		panic(fmt.Errorf("can: operator %q has no builtin", op))
	}
	c.call(sym)
	fn := &Expr{Kind: ExprVar, Region: opRegion, Data: VarData{Symbol: sym}}
	return &Expr{Kind: ExprCall, Region: region, Data: CallData{Fn: fn, Args: c.exprs(operands), CalledVia: via}}
}

func (c *canonicalizer) record(r ast.RecordData, region source.Region) *Expr {
	var invalid diag.RuntimeError
	fields := make([]RecordField, 0, len(r.Fields))
	for _, f := range r.Fields {
		switch f.Kind {
		case ast.FieldOptional:
			p := &diag.InvalidOptionalValue{FieldName: f.Name, RecordRegion: region, FieldRegion: f.Region}
			c.report(p)
			if invalid == nil {
				invalid = p
			}
		case ast.FieldPunned:
			value := c.variable(ast.VarData{Name: f.Name}, f.NameRegion)
			fields = append(fields, RecordField{Name: f.Name, Value: value, Region: f.Region})
		default:
			fields = append(fields, RecordField{Name: f.Name, Value: c.expr(f.Value), Region: f.Region})
		}
	}
	if invalid != nil {
		return runtimeError(invalid, region)
	}
	return &Expr{Kind: ExprRecord, Region: region, Data: RecordData{Fields: fields}}
}

func (c *canonicalizer) when(w ast.WhenData, region source.Region) *Expr {
	cond := c.expr(w.Cond)
	branches := make([]WhenBranch, 0, len(w.Branches))
	for _, br := range w.Branches {
		branches = append(branches, c.branch(br))
	}
	return &Expr{Kind: ExprWhen, Region: region, Data: WhenData{Cond: cond, Branches: branches}}
}

func (c *canonicalizer) branch(br ast.WhenBranch) WhenBranch {
	release := c.scope.Push(symbols.FrameBranch)
	defer release()

	// alternatives bind the same names to the same symbols
	b := &binder{kind: symbols.SymbolParam, names: make(map[string]symbols.Symbol)}
	out := WhenBranch{Region: br.Region}
	for i, pat := range br.Patterns {
		b.reuse = i > 0
		out.Patterns = append(out.Patterns, c.pattern(pat, b))
	}
	if br.Guard != nil {
		out.Guard = c.expr(br.Guard)
	}
	out.Value = c.expr(br.Value)
	return out
}

// closure canonicalizes `\params -> body`; name is the symbol the closure
// is being bound to, if any.
func (c *canonicalizer) closure(cl ast.ClosureData, region source.Region, name symbols.Symbol) *Expr {
	release := c.scope.Push(symbols.FrameClosure)
	defer release()
	depth := c.scope.Depth()

	done := c.track()
	b := &binder{kind: symbols.SymbolParam}
	params := make([]*Pattern, 0, len(cl.Params))
	for _, p := range cl.Params {
		params = append(params, c.pattern(p, b))
	}
	body := c.expr(cl.Body)
	refs := done()

	data := ClosureData{
		Name:     name,
		Params:   params,
		Body:     body,
		Captured: c.captures(refs, depth, name),
	}
	if name.IsValid() {
		data.Recursive = classifyRecursion(name, params, body)
	}
	return &Expr{Kind: ExprClosure, Region: region, Data: data}
}

// captures keeps the home-module symbols bound outside the closure frame.
func (c *canonicalizer) captures(refs *References, depth uint32, self symbols.Symbol) []symbols.Symbol {
	var out []symbols.Symbol
	for _, sym := range refs.Lookups() {
		if sym.Module != c.scope.Home() || sym == self {
			continue
		}
		info := c.in.Info(sym)
		if info == nil || info.Kind == symbols.SymbolAlias || info.Depth >= depth {
			continue
		}
		out = append(out, sym)
	}
	return out
}
