package can

import "canon/internal/symbols"

// classifyRecursion decides how a closure bound to self refers to itself.
// It is tail recursive when every reference is a saturated call in tail
// position whose arguments do not mention self again.
func classifyRecursion(self symbols.Symbol, params []*Pattern, body *Expr) Recursion {
	total := countRefs(self, body)
	for _, p := range params {
		total += countPatternRefs(self, p)
	}
	switch {
	case total == 0:
		return NotRecursive
	case tailCalls(self, len(params), body) == total:
		return TailRecursive
	default:
		return Recursive
	}
}

func tailCalls(self symbols.Symbol, arity int, e *Expr) int {
	switch data := e.Data.(type) {
	case CallData:
		if data.CalledVia != CalledViaSpace || len(data.Args) != arity {
			return 0
		}
		fn, ok := data.Fn.Data.(VarData)
		if !ok || fn.Symbol != self {
			return 0
		}
		for _, arg := range data.Args {
			if countRefs(self, arg) > 0 {
				return 0
			}
		}
		return 1
	case LetNonRecData:
		return tailCalls(self, arity, data.Body)
	case LetRecData:
		return tailCalls(self, arity, data.Body)
	case WhenData:
		n := 0
		for _, br := range data.Branches {
			n += tailCalls(self, arity, br.Value)
		}
		return n
	case IfData:
		return tailCalls(self, arity, data.Then) + tailCalls(self, arity, data.Else)
	default:
		return 0
	}
}

// countRefs counts every occurrence of self below e, nested closures included.
func countRefs(self symbols.Symbol, e *Expr) int {
	if e == nil {
		return 0
	}
	switch data := e.Data.(type) {
	case VarData:
		if data.Symbol == self {
			return 1
		}
		return 0
	case ListData:
		return countAll(self, data.Elems)
	case CallData:
		return countRefs(self, data.Fn) + countAll(self, data.Args)
	case ClosureData:
		n := countRefs(self, data.Body)
		for _, p := range data.Params {
			n += countPatternRefs(self, p)
		}
		return n
	case LetNonRecData:
		return countDef(self, data.Def) + countRefs(self, data.Body)
	case LetRecData:
		n := countRefs(self, data.Body)
		for _, def := range data.Defs {
			n += countDef(self, def)
		}
		return n
	case WhenData:
		n := countRefs(self, data.Cond)
		for _, br := range data.Branches {
			for _, p := range br.Patterns {
				n += countPatternRefs(self, p)
			}
			n += countRefs(self, br.Guard) + countRefs(self, br.Value)
		}
		return n
	case IfData:
		return countRefs(self, data.Cond) + countRefs(self, data.Then) + countRefs(self, data.Else)
	case RecordData:
		n := 0
		for _, f := range data.Fields {
			n += countRefs(self, f.Value)
		}
		return n
	case AccessData:
		return countRefs(self, data.Record)
	case TagData:
		return countAll(self, data.Args)
	default:
		return 0
	}
}

func countAll(self symbols.Symbol, es []*Expr) int {
	n := 0
	for _, e := range es {
		n += countRefs(self, e)
	}
	return n
}

func countDef(self symbols.Symbol, def *Def) int {
	return countPatternRefs(self, def.Pattern) + countRefs(self, def.Expr)
}

// countPatternRefs looks into the defaults of record patterns.
func countPatternRefs(self symbols.Symbol, p *Pattern) int {
	switch data := p.Data.(type) {
	case TagPattern:
		n := 0
		for _, arg := range data.Args {
			n += countPatternRefs(self, arg)
		}
		return n
	case RecordPattern:
		n := 0
		for _, f := range data.Fields {
			switch f.Kind {
			case DestructGuard:
				n += countPatternRefs(self, f.Guard)
			case DestructOptional:
				n += countRefs(self, f.Default)
			}
		}
		return n
	default:
		return 0
	}
}
