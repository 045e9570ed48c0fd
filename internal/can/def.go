package can

import (
	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/symbols"
)

// Def binds a pattern to a canonical expression. References holds every
// symbol the right-hand side (and its annotation) refers to.
type Def struct {
	Pattern       *Pattern
	PatternRegion source.Region
	Expr          *Expr
	ExprRegion    source.Region
	Region        source.Region
	Annotation    *Annotation
	References    *References
}

// Symbols lists the symbols the def binds.
func (d *Def) Symbols() []symbols.Symbol {
	return d.Pattern.Symbols()
}

// Env configures one canonicalization. Interner must have Home registered.
type Env struct {
	Interner *symbols.Interner
	Home     symbols.ModuleID
	// Reporter, when set, also receives every problem as it is found.
	Reporter diag.Reporter
}

// NewEnv creates an interner and registers home in it.
func NewEnv(home string) Env {
	in := symbols.NewInterner(source.NewInterner())
	return Env{Interner: in, Home: in.RegisterModule(home)}
}

// Output is the result of canonicalizing one unit.
type Output struct {
	Expr     *Expr
	Problems []diag.Problem
	Interner *symbols.Interner
	Home     symbols.ModuleID
	Vars     *VarStore
	FreeVars []NamedVar
	Aliases  []Alias
	// References of the whole unit.
	References *References
}

// SymbolName maps a symbol back to its surface name.
func (o *Output) SymbolName(sym symbols.Symbol) string {
	return o.Interner.SymbolName(sym)
}

// Diagnostics renders the problems of the unit located in file.
func (o *Output) Diagnostics(file source.FileID, max int) *diag.Diagnostics {
	return diag.RenderAll(o.Problems, o.Interner, file, max)
}
