package can

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// yamlNode is the YAML shape of one expression: the printer's line as
// kind + label, with nested expressions as children.
type yamlNode struct {
	Kind     string      `yaml:"kind"`
	Region   string      `yaml:"region"`
	Label    string      `yaml:"label,omitempty"`
	Defs     []yamlDef   `yaml:"defs,omitempty"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

type yamlDef struct {
	Pattern    string    `yaml:"pattern"`
	Annotation string    `yaml:"annotation,omitempty"`
	Refs       []string  `yaml:"refs,omitempty"`
	Expr       *yamlNode `yaml:"expr"`
}

type yamlProblem struct {
	Code    string `yaml:"code"`
	Region  string `yaml:"region"`
	Message string `yaml:"message"`
}

type yamlOutput struct {
	Module   string        `yaml:"module"`
	Aliases  []string      `yaml:"aliases,omitempty"`
	Expr     *yamlNode     `yaml:"expr"`
	Problems []yamlProblem `yaml:"problems,omitempty"`
}

// DumpYAML writes out as a YAML document.
func DumpYAML(w io.Writer, out *Output) error {
	p := NewPrinter(io.Discard, out.Interner)
	doc := yamlOutput{
		Module: out.Interner.ModuleName(out.Home),
		Expr:   p.yamlExpr(out.Expr),
	}
	for _, a := range out.Aliases {
		doc.Aliases = append(doc.Aliases, p.sym(a.Symbol)+" : "+p.typeStr(a.Type))
	}
	diags := out.Diagnostics(0, 0)
	for _, d := range diags.Items() {
		doc.Problems = append(doc.Problems, yamlProblem{Code: d.Code.ID(), Region: d.Primary.String(), Message: d.Message})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode canonical tree: %w", err)
	}
	return enc.Close()
}

func (p *Printer) yamlExpr(e *Expr) *yamlNode {
	n := &yamlNode{Kind: e.Kind.String(), Region: e.Region.String()}
	kids := func(es ...*Expr) {
		for _, c := range es {
			n.Children = append(n.Children, p.yamlExpr(c))
		}
	}
	switch data := e.Data.(type) {
	case NumData:
		n.Label = strconv.FormatInt(data.Value, 10)
	case IntData:
		n.Label = strconv.FormatInt(data.Value, 10) + " " + data.Base.String()
	case FloatData:
		n.Label = strconv.FormatFloat(data.Value, 'g', -1, 64)
	case StrData:
		n.Label = strconv.Quote(data.Value)
	case VarData:
		n.Label = p.sym(data.Symbol)
	case TagData:
		n.Label = data.Name
		kids(data.Args...)
	case ListData:
		kids(data.Elems...)
	case CallData:
		n.Label = data.CalledVia.String()
		kids(data.Fn)
		kids(data.Args...)
	case ClosureData:
		n.Label = data.Recursive.String() + p.captured(data.Captured)
		if data.Name.IsValid() {
			n.Label = p.sym(data.Name) + " " + n.Label
		}
		kids(data.Body)
	case LetNonRecData:
		n.Defs = []yamlDef{p.yamlDef(data.Def)}
		kids(data.Body)
	case LetRecData:
		for _, def := range data.Defs {
			n.Defs = append(n.Defs, p.yamlDef(def))
		}
		kids(data.Body)
	case WhenData:
		kids(data.Cond)
		for _, br := range data.Branches {
			if br.Guard != nil {
				kids(br.Guard)
			}
			kids(br.Value)
		}
	case IfData:
		kids(data.Cond, data.Then, data.Else)
	case RecordData:
		for _, f := range data.Fields {
			child := p.yamlExpr(f.Value)
			child.Label = f.Name + ": " + child.Label
			n.Children = append(n.Children, child)
		}
	case AccessData:
		n.Label = "." + data.Field
		kids(data.Record)
	case RuntimeErrorData:
		n.Label = errorStr(data.Err)
	}
	return n
}

func (p *Printer) yamlDef(def *Def) yamlDef {
	out := yamlDef{Pattern: p.patternStr(def.Pattern), Expr: p.yamlExpr(def.Expr)}
	if def.Annotation != nil {
		out.Annotation = p.typeStr(def.Annotation.Signature)
	}
	for _, sym := range def.References.Lookups() {
		out.Refs = append(out.Refs, p.sym(sym))
	}
	return out
}
