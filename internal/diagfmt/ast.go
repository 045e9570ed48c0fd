package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"canon/internal/ast"
	"canon/internal/source"
)

// ASTNodeOutput is the dump form of one parsed node.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Region   source.Region   `json:"region"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// BuildAST converts the parsed tree into dump nodes.
func BuildAST(e *ast.Expr) ASTNodeOutput {
	return exprNode(e)
}

// FormatASTPretty prints the tree with box-drawing guides.
func FormatASTPretty(w io.Writer, e *ast.Expr) error {
	if e == nil {
		return fmt.Errorf("no tree to print")
	}
	root := exprNode(e)
	fmt.Fprintln(w, nodeLabel(&root))
	printChildren(w, root.Children, "")
	return nil
}

// FormatASTJSON prints the tree as indented JSON.
func FormatASTJSON(w io.Writer, e *ast.Expr) error {
	if e == nil {
		return fmt.Errorf("no tree to print")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exprNode(e))
}

func printChildren(w io.Writer, nodes []ASTNodeOutput, prefix string) {
	for i := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(&nodes[i]))
		printChildren(w, nodes[i].Children, prefix+next)
	}
}

func nodeLabel(n *ASTNodeOutput) string {
	var b strings.Builder
	b.WriteString(n.Type)
	if n.Kind != "" {
		b.WriteString(" " + n.Kind)
	}
	if n.Text != "" {
		b.WriteString(" " + n.Text)
	}
	b.WriteString(" @" + n.Region.String())
	return b.String()
}

func exprNode(e *ast.Expr) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Expr", Kind: e.Kind.String(), Region: e.Region}
	switch d := e.Data.(type) {
	case ast.NumData:
		n.Text = d.Raw
	case ast.StrData:
		n.Text = fmt.Sprintf("%q", d.Raw)
	case ast.VarData:
		n.Text = d.Name
		if d.Module != "" {
			n.Text = d.Module + "." + d.Name
		}
	case ast.TagData:
		n.Text = d.Name
		n.Children = exprNodes(d.Args)
	case ast.ApplyData:
		n.Children = append([]ASTNodeOutput{exprNode(d.Fn)}, exprNodes(d.Args)...)
	case ast.BinOpData:
		n.Text = d.Op
		n.Children = []ASTNodeOutput{exprNode(d.Left), exprNode(d.Right)}
	case ast.UnaryOpData:
		n.Text = d.Op
		n.Children = []ASTNodeOutput{exprNode(d.Operand)}
	case ast.ClosureData:
		n.Children = append(patternNodes(d.Params), exprNode(d.Body))
	case ast.DefsData:
		for _, def := range d.Defs {
			n.Children = append(n.Children, defNode(def))
		}
		n.Children = append(n.Children, exprNode(d.Body))
	case ast.WhenData:
		n.Children = append(n.Children, exprNode(d.Cond))
		for _, br := range d.Branches {
			bn := ASTNodeOutput{Type: "Branch", Region: br.Region, Children: patternNodes(br.Patterns)}
			if br.Guard != nil {
				guard := exprNode(br.Guard)
				bn.Children = append(bn.Children, ASTNodeOutput{Type: "Guard", Region: br.Guard.Region, Children: []ASTNodeOutput{guard}})
			}
			bn.Children = append(bn.Children, exprNode(br.Value))
			n.Children = append(n.Children, bn)
		}
	case ast.IfData:
		n.Children = []ASTNodeOutput{exprNode(d.Cond), exprNode(d.Then), exprNode(d.Else)}
	case ast.RecordData:
		for _, f := range d.Fields {
			fn := ASTNodeOutput{Type: "Field", Kind: fieldKind(f.Kind), Region: f.Region, Text: f.Name}
			if f.Value != nil {
				fn.Children = []ASTNodeOutput{exprNode(f.Value)}
			}
			n.Children = append(n.Children, fn)
		}
	case ast.ListData:
		n.Children = exprNodes(d.Elems)
	case ast.AccessData:
		n.Text = "." + d.Field
		n.Children = []ASTNodeOutput{exprNode(d.Record)}
	case ast.MalformedData:
		n.Text = fmt.Sprintf("%q", d.Text)
	}
	return n
}

func exprNodes(es []*ast.Expr) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(es))
	for _, e := range es {
		out = append(out, exprNode(e))
	}
	return out
}

func defNode(d *ast.Def) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Def", Kind: d.Kind.String(), Region: d.Region}
	n.Children = append(n.Children, patternNode(d.Pattern))
	if d.Type != nil {
		n.Children = append(n.Children, typeNode(d.Type))
	}
	if d.Expr != nil {
		n.Children = append(n.Children, exprNode(d.Expr))
	}
	return n
}

func patternNodes(ps []*ast.Pattern) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(ps))
	for _, p := range ps {
		out = append(out, patternNode(p))
	}
	return out
}

func patternNode(p *ast.Pattern) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Pattern", Kind: p.Kind.String(), Region: p.Region}
	switch d := p.Data.(type) {
	case ast.IdentPattern:
		n.Text = d.Name
	case ast.NumPattern:
		n.Text = d.Num.Raw
	case ast.StrPattern:
		n.Text = fmt.Sprintf("%q", d.Raw)
	case ast.TagPattern:
		n.Text = d.Name
		n.Children = patternNodes(d.Args)
	case ast.RecordPattern:
		for _, f := range d.Fields {
			fn := ASTNodeOutput{Type: "Field", Kind: fieldKind(f.Kind), Region: f.Region, Text: f.Name}
			if f.Guard != nil {
				fn.Children = append(fn.Children, patternNode(f.Guard))
			}
			if f.Default != nil {
				fn.Children = append(fn.Children, exprNode(f.Default))
			}
			n.Children = append(n.Children, fn)
		}
	case ast.MalformedPattern:
		n.Text = fmt.Sprintf("%q", d.Text)
	}
	return n
}

func typeNode(t *ast.TypeAnn) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Type", Kind: t.Kind.String(), Region: t.Region, Text: t.Name}
	if t.Module != "" {
		n.Text = t.Module + "." + t.Name
	}
	for _, a := range t.Args {
		n.Children = append(n.Children, typeNode(a))
	}
	if t.Ret != nil {
		n.Children = append(n.Children, typeNode(t.Ret))
	}
	for _, f := range t.Fields {
		n.Children = append(n.Children, ASTNodeOutput{Type: "Field", Region: f.Region, Text: f.Name, Children: []ASTNodeOutput{typeNode(f.Type)}})
	}
	for _, tag := range t.Tags {
		tn := ASTNodeOutput{Type: "Tag", Region: tag.Region, Text: tag.Name}
		for _, a := range tag.Args {
			tn.Children = append(tn.Children, typeNode(a))
		}
		n.Children = append(n.Children, tn)
	}
	return n
}

func fieldKind(k ast.FieldKind) string {
	switch k {
	case ast.FieldPunned:
		return "Punned"
	case ast.FieldOptional:
		return "Optional"
	default:
		return "Required"
	}
}
