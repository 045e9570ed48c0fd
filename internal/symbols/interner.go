package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"canon/internal/source"
)

type module struct {
	name    source.StringID
	symbols *arena
	exposed map[source.StringID]Symbol
}

// Interner owns every symbol of one compilation unit. It is not safe for
// concurrent use; independent units need independent interners.
type Interner struct {
	strings *source.Interner
	modules []module // index 0 reserved for NoModuleID
	byName  map[source.StringID]ModuleID
}

// NewInterner creates an interner with the builtin modules registered.
// A nil strings table gets a fresh one.
func NewInterner(strings *source.Interner) *Interner {
	if strings == nil {
		strings = source.NewInterner()
	}
	in := &Interner{
		strings: strings,
		modules: make([]module, 1, 8),
		byName:  make(map[source.StringID]ModuleID),
	}
	registerPrelude(in)
	return in
}

// Strings exposes the identifier table shared by all modules.
func (in *Interner) Strings() *source.Interner { return in.strings }

// RegisterModule returns the module with the given name, creating it on first use.
func (in *Interner) RegisterModule(name string) ModuleID {
	id := in.strings.Intern(name)
	if mod, ok := in.byName[id]; ok {
		return mod
	}
	n, err := safecast.Conv[uint32](len(in.modules))
	if err != nil {
		panic(fmt.Errorf("modules overflow: %w", err))
	}
	mod := ModuleID(n)
	in.modules = append(in.modules, module{
		name:    id,
		symbols: newArena(0),
		exposed: make(map[source.StringID]Symbol),
	})
	in.byName[id] = mod
	return mod
}

// LookupModule finds a registered module by name.
func (in *Interner) LookupModule(name string) (ModuleID, bool) {
	id, ok := in.strings.Find(name)
	if !ok {
		return NoModuleID, false
	}
	mod, ok := in.byName[id]
	return mod, ok
}

// ModuleName returns the display name of a module.
func (in *Interner) ModuleName(mod ModuleID) string {
	m := in.module(mod)
	if m == nil {
		return ""
	}
	return in.strings.MustLookup(m.name)
}

// NewSymbol mints a fresh symbol in mod.
func (in *Interner) NewSymbol(mod ModuleID, name string, kind SymbolKind, region source.Region, depth uint32) Symbol {
	m := in.module(mod)
	if m == nil {
		panic(fmt.Errorf("symbols: unknown module %d", mod))
	}
	idx := m.symbols.add(SymbolInfo{
		Name:   in.strings.Intern(name),
		Kind:   kind,
		Region: region,
		Depth:  depth,
	})
	return Symbol{Module: mod, Index: idx}
}

// Expose makes sym reachable as Module.name.
func (in *Interner) Expose(sym Symbol) {
	info := in.Info(sym)
	if info == nil {
		panic(fmt.Errorf("symbols: expose of unknown symbol %s", sym))
	}
	in.modules[sym.Module].exposed[info.Name] = sym
}

// Builtin resolves a qualified name such as Num.add.
func (in *Interner) Builtin(moduleName, name string) (Symbol, bool) {
	mod, ok := in.LookupModule(moduleName)
	if !ok {
		return NoSymbol, false
	}
	id, ok := in.strings.Find(name)
	if !ok {
		return NoSymbol, false
	}
	sym, ok := in.modules[mod].exposed[id]
	return sym, ok
}

// Info returns what is known about sym, or nil for a symbol this interner never minted.
func (in *Interner) Info(sym Symbol) *SymbolInfo {
	m := in.module(sym.Module)
	if m == nil {
		return nil
	}
	return m.symbols.get(sym.Index)
}

// SymbolName maps a symbol back to its surface name.
func (in *Interner) SymbolName(sym Symbol) string {
	info := in.Info(sym)
	if info == nil {
		return sym.String()
	}
	return in.strings.MustLookup(info.Name)
}

// QualifiedName renders Module.name.
func (in *Interner) QualifiedName(sym Symbol) string {
	return in.ModuleName(sym.Module) + "." + in.SymbolName(sym)
}

// Len counts the symbols minted in mod.
func (in *Interner) Len(mod ModuleID) int {
	m := in.module(mod)
	if m == nil {
		return 0
	}
	return m.symbols.Len()
}

func (in *Interner) module(mod ModuleID) *module {
	if !mod.IsValid() || int(mod) >= len(in.modules) {
		return nil
	}
	return &in.modules[mod]
}
