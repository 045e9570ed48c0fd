package symbols

import "canon/internal/source"

// Builtin module names.
const (
	ModNum  = "Num"
	ModBool = "Bool"
	ModStr  = "Str"
	ModList = "List"
)

var prelude = []struct {
	module string
	names  []string
}{
	{ModNum, []string{
		"add", "sub", "mul", "div", "divFloor", "rem", "pow", "neg", "abs",
		"isLt", "isLte", "isGt", "isGte", "toFloat", "maxInt", "minInt",
	}},
	{ModBool, []string{"isEq", "isNotEq", "and", "or", "not"}},
	{ModStr, []string{"concat", "isEmpty", "len"}},
	{ModList, []string{"map", "len", "get", "set", "append", "walk"}},
}

func registerPrelude(in *Interner) {
	for _, entry := range prelude {
		mod := in.RegisterModule(entry.module)
		for _, name := range entry.names {
			in.Expose(in.NewSymbol(mod, name, SymbolBuiltin, source.Region{}, 0))
		}
	}
}

// binaryOps maps an operator to the builtin function it desugars to.
var binaryOps = map[string][2]string{
	"+":  {ModNum, "add"},
	"-":  {ModNum, "sub"},
	"*":  {ModNum, "mul"},
	"/":  {ModNum, "div"},
	"//": {ModNum, "divFloor"},
	"%":  {ModNum, "rem"},
	"^":  {ModNum, "pow"},
	"<":  {ModNum, "isLt"},
	"<=": {ModNum, "isLte"},
	">":  {ModNum, "isGt"},
	">=": {ModNum, "isGte"},
	"==": {ModBool, "isEq"},
	"!=": {ModBool, "isNotEq"},
	"&&": {ModBool, "and"},
	"||": {ModBool, "or"},
}

var unaryOps = map[string][2]string{
	"-": {ModNum, "neg"},
	"!": {ModBool, "not"},
}

// BinaryOp returns the builtin symbol an infix operator calls.
func (in *Interner) BinaryOp(op string) (Symbol, bool) {
	target, ok := binaryOps[op]
	if !ok {
		return NoSymbol, false
	}
	return in.Builtin(target[0], target[1])
}

// UnaryOp returns the builtin symbol a prefix operator calls.
func (in *Interner) UnaryOp(op string) (Symbol, bool) {
	target, ok := unaryOps[op]
	if !ok {
		return NoSymbol, false
	}
	return in.Builtin(target[0], target[1])
}
