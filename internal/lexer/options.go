package lexer

import (
	"canon/internal/diag"
	"canon/internal/source"
)

// Reporter receives lexical errors. The lexer keeps going after reporting.
type Reporter interface {
	Report(code diag.Code, region source.Region, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil: ошибки игнорируются
}

func (lx *Lexer) report(code diag.Code, region source.Region, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, region, msg)
	}
}
