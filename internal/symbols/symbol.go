package symbols

import "canon/internal/source"

// SymbolKind classifies what introduced a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolValue              // value definition in a block
	SymbolAnnotation         // standalone type signature
	SymbolAlias              // upper-case type alias
	SymbolParam              // closure argument or branch pattern
	SymbolBuiltin            // exposed by a builtin module
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolValue:
		return "value"
	case SymbolAnnotation:
		return "annotation"
	case SymbolAlias:
		return "alias"
	case SymbolParam:
		return "param"
	case SymbolBuiltin:
		return "builtin"
	default:
		return "invalid"
	}
}

// SymbolInfo is what the interner remembers about a symbol.
type SymbolInfo struct {
	Name   source.StringID
	Kind   SymbolKind
	Region source.Region
	// Depth of the frame that bound the symbol; builtins and module-level names have depth 0.
	Depth uint32
}
