package driver

import (
	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/parser"
	"canon/internal/source"
)

type ParseResult struct {
	FileSet     *source.FileSet
	File        *source.File
	Expr        *ast.Expr
	Diagnostics *diag.Diagnostics
}

// Parse reads and parses one file. Expr is nil when there are errors.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	res := parser.ParseFile(file)
	return &ParseResult{
		FileSet:     fs,
		File:        file,
		Expr:        res.Expr,
		Diagnostics: syntaxDiagnostics(res.Errors, fileID, maxDiagnostics),
	}, nil
}

func syntaxDiagnostics(errs []parser.Error, file source.FileID, max int) *diag.Diagnostics {
	list := diag.NewDiagnostics(max)
	for _, e := range errs {
		if !list.Add(e.Diagnostic(file)) {
			break
		}
	}
	return list
}
