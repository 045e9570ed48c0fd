package symbols

import "fmt"

// ModuleID identifies a module registered in an Interner.
type ModuleID uint32

const (
	// NoModuleID marks the absence of a module.
	NoModuleID ModuleID = 0
)

// IsValid reports whether the module ID refers to a registered module.
func (id ModuleID) IsValid() bool { return id != NoModuleID }

// Symbol identifies one binding occurrence: a module plus a dense index
// into that module's symbol arena. Symbols are never reused.
type Symbol struct {
	Module ModuleID
	Index  uint32
}

// NoSymbol marks the absence of a symbol.
var NoSymbol = Symbol{}

// IsValid reports whether the symbol was minted by an Interner.
func (s Symbol) IsValid() bool { return s.Module.IsValid() && s.Index != 0 }

// Less orders symbols by module, then by creation order.
func (s Symbol) Less(other Symbol) bool {
	if s.Module != other.Module {
		return s.Module < other.Module
	}
	return s.Index < other.Index
}

func (s Symbol) String() string {
	return fmt.Sprintf("#%d.%d", s.Module, s.Index)
}
