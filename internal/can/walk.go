package can

// Walk visits e and every expression below it depth first, definitions
// before the body they scope over. fn returning false skips the children.
func Walk(e *Expr, fn func(*Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch data := e.Data.(type) {
	case TagData:
		walkAll(data.Args, fn)
	case ListData:
		walkAll(data.Elems, fn)
	case CallData:
		Walk(data.Fn, fn)
		walkAll(data.Args, fn)
	case ClosureData:
		for _, p := range data.Params {
			walkPattern(p, fn)
		}
		Walk(data.Body, fn)
	case LetNonRecData:
		walkPattern(data.Def.Pattern, fn)
		Walk(data.Def.Expr, fn)
		Walk(data.Body, fn)
	case LetRecData:
		for _, def := range data.Defs {
			walkPattern(def.Pattern, fn)
			Walk(def.Expr, fn)
		}
		Walk(data.Body, fn)
	case WhenData:
		Walk(data.Cond, fn)
		for _, br := range data.Branches {
			for _, p := range br.Patterns {
				walkPattern(p, fn)
			}
			Walk(br.Guard, fn)
			Walk(br.Value, fn)
		}
	case IfData:
		Walk(data.Cond, fn)
		Walk(data.Then, fn)
		Walk(data.Else, fn)
	case RecordData:
		for _, f := range data.Fields {
			Walk(f.Value, fn)
		}
	case AccessData:
		Walk(data.Record, fn)
	}
}

func walkAll(es []*Expr, fn func(*Expr) bool) {
	for _, e := range es {
		Walk(e, fn)
	}
}

// walkPattern reaches the default expressions of record patterns.
func walkPattern(p *Pattern, fn func(*Expr) bool) {
	switch data := p.Data.(type) {
	case TagPattern:
		for _, arg := range data.Args {
			walkPattern(arg, fn)
		}
	case RecordPattern:
		for _, f := range data.Fields {
			switch f.Kind {
			case DestructGuard:
				walkPattern(f.Guard, fn)
			case DestructOptional:
				Walk(f.Default, fn)
			}
		}
	}
}

// Defs lists every definition of the tree in walk order.
func Defs(e *Expr) []*Def {
	var out []*Def
	Walk(e, func(e *Expr) bool {
		switch data := e.Data.(type) {
		case LetNonRecData:
			out = append(out, data.Def)
		case LetRecData:
			out = append(out, data.Defs...)
		}
		return true
	})
	return out
}
