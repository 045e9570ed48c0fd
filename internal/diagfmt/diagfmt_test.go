package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"canon/internal/diag"
	"canon/internal/parser"
	"canon/internal/source"
)

func sample(t *testing.T) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSetWithBase("/home/user/project")
	id := fs.AddVirtual("/home/user/project/src/main.roc", []byte("x = 1\n\nx + y\n"))
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaLookupNotInScope,
		Message:  "`y` is not in scope",
		File:     id,
		Primary:  source.Region{StartLine: 2, EndLine: 2, StartCol: 4, EndCol: 5},
	}
	d = d.WithNote(d.Primary, "did you mean `x`?")
	return fs, []diag.Diagnostic{d}
}

func TestPrettyPlain(t *testing.T) {
	fs, items := sample(t)
	var buf bytes.Buffer
	Pretty(&buf, items, fs, PrettyOpts{Context: 1, PathMode: PathModeRelative, ShowNotes: true})
	want := strings.Join([]string{
		"error[SEM3003]: `y` is not in scope",
		" --> src/main.roc:3:5",
		"  |",
		"2 | ",
		"3 | x + y",
		"  |     ^",
		"  = note: did you mean `x`?",
		"3 | x + y",
		"  |     ^",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("pretty output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyHidesNotesByDefault(t *testing.T) {
	fs, items := sample(t)
	var buf bytes.Buffer
	Pretty(&buf, items, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()
	if strings.Contains(out, "note:") || !strings.Contains(out, "--> main.roc:3:5") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, items := sample(t)
	var buf bytes.Buffer
	Pretty(&buf, items, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes:\n%q", buf.String())
	}
}

func TestPrettyWithoutSource(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("gone.roc", nil)
	items := []diag.Diagnostic{{Severity: diag.SevError, Code: diag.IOLoadFileError, Message: "failed to load file", File: id}}
	var buf bytes.Buffer
	Pretty(&buf, items, fs, PrettyOpts{})
	if buf.String() != "error[IO4001]: failed to load file\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	fs, items := sample(t)
	var buf bytes.Buffer
	if err := JSON(&buf, items, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "SEM3003" || out.Diagnostics[0].Severity != "ERROR" {
		t.Fatalf("unexpected output %+v", out)
	}
	loc := out.Diagnostics[0].Location
	if loc.File != "main.roc" || loc.StartLine != 3 || loc.StartCol != 5 || loc.EndCol != 6 {
		t.Fatalf("unexpected location %+v", loc)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Fatalf("notes must be omitted without IncludeNotes")
	}

	withNotes := BuildDiagnosticsOutput(items, fs, JSONOpts{IncludeNotes: true})
	if len(withNotes.Diagnostics[0].Notes) != 1 {
		t.Fatalf("notes missing")
	}
	if capped := BuildDiagnosticsOutput(append(items, items...), fs, JSONOpts{Max: 1}); capped.Count != 1 {
		t.Fatalf("Max not applied: %d", capped.Count)
	}
}

func TestASTDump(t *testing.T) {
	res := parser.ParseSource("t.roc", "f = \\x -> x + 1\n\nf 2\n")
	if len(res.Errors) != 0 {
		t.Fatalf("parse: %v", res.Errors)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.Expr); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Expr Defs", "├─ Def Body", "Pattern Ident f", "Expr BinOp +", "└─ Expr Apply"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump misses %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatASTJSON(&buf, res.Expr); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var node ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &node); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if node.Kind != "Defs" || len(node.Children) != 2 {
		t.Fatalf("unexpected root %+v", node)
	}
}

func TestTokensDump(t *testing.T) {
	res := parser.ParseSource("t.roc", "x = -1\n\nx\n")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, res.Tokens); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(res.Tokens) {
		t.Fatalf("lines = %d, tokens = %d", len(lines), len(res.Tokens))
	}
	if !strings.HasPrefix(lines[0], "  1: ") || !strings.Contains(lines[0], `"x"`) {
		t.Fatalf("first line %q", lines[0])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, res.Tokens); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var toks []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &toks); err != nil || len(toks) != len(res.Tokens) {
		t.Fatalf("decode: %v (%d tokens)", err, len(toks))
	}
}
