package can

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"canon/internal/diag"
	"canon/internal/symbols"
)

// Printer dumps a canonical tree as indented text, one node per line.
type Printer struct {
	w      io.Writer
	names  *symbols.Interner
	indent int
	err    error
}

func NewPrinter(w io.Writer, names *symbols.Interner) *Printer {
	return &Printer{w: w, names: names}
}

// Dump writes out's expression followed by its aliases.
func Dump(w io.Writer, out *Output) error {
	p := NewPrinter(w, out.Interner)
	for _, a := range out.Aliases {
		p.line("alias %s : %s", p.sym(a.Symbol), p.typeStr(a.Type))
	}
	p.PrintExpr(out.Expr)
	return p.err
}

func (p *Printer) PrintExpr(e *Expr) {
	switch data := e.Data.(type) {
	case NumData:
		p.line("Num %d", data.Value)
	case IntData:
		p.line("Int %d (%s)", data.Value, data.Base)
	case FloatData:
		p.line("Float %s", strconv.FormatFloat(data.Value, 'g', -1, 64))
	case StrData:
		p.line("Str %q", data.Value)
	case VarData:
		p.line("Var %s", p.sym(data.Symbol))
	case TagData:
		p.line("Tag %s", data.Name)
		p.nested(data.Args...)
	case ListData:
		p.line("List")
		p.nested(data.Elems...)
	case CallData:
		p.line("Call (%s)", data.CalledVia)
		p.nested(data.Fn)
		p.nested(data.Args...)
	case ClosureData:
		name := "_"
		if data.Name.IsValid() {
			name = p.sym(data.Name)
		}
		p.line("Closure %s %s%s", name, data.Recursive, p.captured(data.Captured))
		p.indent++
		for _, param := range data.Params {
			p.line("param %s", p.patternStr(param))
		}
		p.PrintExpr(data.Body)
		p.indent--
	case LetNonRecData:
		p.line("LetNonRec")
		p.indent++
		p.printDef(data.Def)
		p.indent--
		p.nested(data.Body)
	case LetRecData:
		p.line("LetRec")
		p.indent++
		for _, def := range data.Defs {
			p.printDef(def)
		}
		p.indent--
		p.nested(data.Body)
	case WhenData:
		p.line("When")
		p.nested(data.Cond)
		p.indent++
		for _, br := range data.Branches {
			alts := make([]string, 0, len(br.Patterns))
			for _, pat := range br.Patterns {
				alts = append(alts, p.patternStr(pat))
			}
			p.line("branch %s", strings.Join(alts, " | "))
			if br.Guard != nil {
				p.indent++
				p.line("if")
				p.nested(br.Guard)
				p.indent--
			}
			p.nested(br.Value)
		}
		p.indent--
	case IfData:
		p.line("If")
		p.nested(data.Cond, data.Then, data.Else)
	case RecordData:
		p.line("Record")
		p.indent++
		for _, f := range data.Fields {
			p.line("%s:", f.Name)
			p.nested(f.Value)
		}
		p.indent--
	case AccessData:
		p.line("Access .%s", data.Field)
		p.nested(data.Record)
	case RuntimeErrorData:
		p.line("RuntimeError %s", errorStr(data.Err))
	default:
		p.line("<%s>", e.Kind)
	}
}

func (p *Printer) printDef(def *Def) {
	p.line("def %s", p.patternStr(def.Pattern))
	p.indent++
	if def.Annotation != nil {
		p.line(": %s", p.typeStr(def.Annotation.Signature))
	}
	p.PrintExpr(def.Expr)
	p.indent--
}

func (p *Printer) nested(es ...*Expr) {
	p.indent++
	for _, e := range es {
		p.PrintExpr(e)
	}
	p.indent--
}

func (p *Printer) captured(syms []symbols.Symbol) string {
	if len(syms) == 0 {
		return ""
	}
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = p.sym(s)
	}
	return " captures [" + strings.Join(names, ", ") + "]"
}

func (p *Printer) patternStr(pat *Pattern) string {
	switch data := pat.Data.(type) {
	case IdentifierPattern:
		return p.sym(data.Symbol)
	case UnderscorePattern:
		return "_"
	case IntPattern:
		return strconv.FormatInt(data.Value, 10)
	case FloatPattern:
		return strconv.FormatFloat(data.Value, 'g', -1, 64)
	case StrPattern:
		return strconv.Quote(data.Value)
	case TagPattern:
		if len(data.Args) == 0 {
			return data.Name
		}
		parts := []string{data.Name}
		for _, arg := range data.Args {
			parts = append(parts, p.patternStr(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case RecordPattern:
		parts := make([]string, 0, len(data.Fields))
		for _, f := range data.Fields {
			switch f.Kind {
			case DestructGuard:
				parts = append(parts, f.Label+": "+p.patternStr(f.Guard))
			case DestructOptional:
				parts = append(parts, p.sym(f.Symbol)+" ?")
			default:
				parts = append(parts, p.sym(f.Symbol))
			}
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case MalformedPattern:
		return "<malformed " + errorStr(data.Err) + ">"
	default:
		return "?"
	}
}

func (p *Printer) typeStr(t *Type) string {
	switch data := t.Data.(type) {
	case ApplyType:
		name := data.Name
		if data.Module != "" {
			name = data.Module + "." + name
		}
		if len(data.Args) == 0 {
			return name
		}
		parts := []string{name}
		for _, arg := range data.Args {
			parts = append(parts, p.typeStr(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case FunctionType:
		args := make([]string, len(data.Args))
		for i, a := range data.Args {
			args[i] = p.typeStr(a)
		}
		return "(" + strings.Join(args, ", ") + " -> " + p.typeStr(data.Ret) + ")"
	case VarType:
		return fmt.Sprintf("%s'%d", data.Name, data.Var)
	case RecordType:
		parts := make([]string, len(data.Fields))
		for i, f := range data.Fields {
			parts[i] = f.Name + " : " + p.typeStr(f.Type)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case TagUnionType:
		parts := make([]string, len(data.Tags))
		for i, tag := range data.Tags {
			s := tag.Name
			for _, arg := range tag.Args {
				s += " " + p.typeStr(arg)
			}
			parts[i] = s
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	default:
		return "<error>"
	}
}

// sym prints a symbol as name#index; builtins carry their module.
func (p *Printer) sym(s symbols.Symbol) string {
	if p.names == nil {
		return s.String()
	}
	info := p.names.Info(s)
	if info != nil && info.Kind == symbols.SymbolBuiltin {
		return p.names.QualifiedName(s)
	}
	return fmt.Sprintf("%s#%d", p.names.SymbolName(s), s.Index)
}

func (p *Printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func errorStr(p diag.Problem) string {
	return p.Code().ID() + " (" + p.Code().Title() + ")"
}
