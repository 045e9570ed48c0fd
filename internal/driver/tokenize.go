package driver

import (
	"canon/internal/diag"
	"canon/internal/lexer"
	"canon/internal/source"
	"canon/internal/token"
)

type TokenizeResult struct {
	FileSet     *source.FileSet
	File        *source.File
	Tokens      []token.Token
	Diagnostics *diag.Diagnostics
}

// listReporter adapts a diagnostics list to lexer.Reporter.
type listReporter struct {
	list *diag.Diagnostics
	file source.FileID
}

func (r *listReporter) Report(code diag.Code, region source.Region, msg string) {
	r.list.Add(diag.Diagnostic{Severity: diag.SevError, Code: code, Message: msg, File: r.file, Primary: region})
}

// Tokenize lexes one file; lexical errors become diagnostics.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	list := diag.NewDiagnostics(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: &listReporter{list: list, file: fileID}})

	return &TokenizeResult{
		FileSet:     fs,
		File:        file,
		Tokens:      tokens,
		Diagnostics: list,
	}, nil
}
