package driver

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"canon/internal/can"
	"canon/internal/diag"
	"canon/internal/observ"
	"canon/internal/parser"
	"canon/internal/source"
	"canon/internal/trace"
	"canon/internal/version"
)

// Result is the outcome for one file.
type Result struct {
	Path   string
	FileID source.FileID
	// Diagnostics are sorted, filtered and capped per Options.
	Diagnostics *diag.Diagnostics
	// Output is nil on syntax errors, load errors and cache hits.
	Output *can.Output
	// IR is the rendered canonical tree when Options.EmitIR is set.
	IR     string
	Cached bool
	Timing *observ.Report
}

// HasErrors reports whether the file failed.
func (r *Result) HasErrors() bool {
	return r.Diagnostics != nil && r.Diagnostics.HasErrors()
}

// CanonicalizeFile loads path and runs the whole pipeline on it.
func CanonicalizeFile(ctx context.Context, path string, opts Options) (*source.FileSet, *Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := processFile(ctx, fs.Get(id), opts)
	return fs, &res, nil
}

// CanonicalizeSource runs the pipeline on an in-memory file.
func CanonicalizeSource(ctx context.Context, name, src string, opts Options) (*source.FileSet, *Result) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	res := processFile(ctx, fs.Get(id), opts)
	return fs, &res
}

func processFile(ctx context.Context, file *source.File, opts Options) Result {
	start := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "file")
	span.WithExtra("path", file.Path)

	ph := &phases{path: file.Path, timer: observ.NewTimer(), observer: opts.PhaseObserver}
	res := Result{Path: file.Path, FileID: file.ID}
	all := diag.NewDiagnostics(0)

	if opts.Cache != nil {
		key := unitKey(file, opts)
		ph.run("cache", func() string {
			var payload DiskPayload
			hit, err := opts.Cache.Get(key, &payload)
			switch {
			case err != nil:
				all.Add(cacheDiagnostic(file.ID, "read", err))
				return "unreadable"
			case !hit:
				return "miss"
			}
			res.Cached = true
			res.IR = payload.IR
			all = fromDiskDiagnostics(payload.Diagnostics, file.ID)
			return "hit"
		})
	}

	if !res.Cached {
		emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
		var parsed parser.Result
		ph.run("parse", func() string {
			parsed = parser.ParseFile(file)
			return strconv.Itoa(len(parsed.Tokens)) + " tokens"
		})
		all.Merge(syntaxDiagnostics(parsed.Errors, file.ID, 0))

		if parsed.Expr != nil {
			emit(opts.Progress, Event{File: file.Path, Stage: StageCanonicalize, Status: StatusWorking})
			ph.run("canonicalize", func() string {
				res.Output = can.Canonicalize(ctx, can.NewEnv(opts.home()), parsed.Expr)
				return strconv.Itoa(len(res.Output.Problems)) + " problems"
			})
			all.Merge(res.Output.Diagnostics(file.ID, 0))
			if opts.EmitIR != IRNone {
				ph.run("emit", func() string {
					ir, err := renderIR(res.Output, opts.EmitIR)
					if err != nil {
						return err.Error()
					}
					res.IR = ir
					return string(opts.EmitIR)
				})
			}
		}
		all.Sort()
		all.Dedup()

		if opts.Cache != nil {
			payload := &DiskPayload{
				Schema:      diskCacheSchemaVersion,
				Version:     version.Number,
				Path:        file.Path,
				ContentHash: file.Hash,
				Diagnostics: toDiskDiagnostics(all.Items()),
				IR:          res.IR,
			}
			if err := opts.Cache.Put(unitKey(file, opts), payload); err != nil {
				all.Add(cacheDiagnostic(file.ID, "write", err))
			}
		}
	}

	res.Diagnostics = finish(all, opts)
	if opts.EnableTimings {
		report := ph.timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(res.Diagnostics, file.ID, timingPayload{Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	}

	status := StatusDone
	switch {
	case res.HasErrors():
		status = StatusError
	case res.Cached:
		status = StatusCached
	}
	span.WithExtra("diagnostics", strconv.Itoa(res.Diagnostics.Len())).End(string(status))
	emit(opts.Progress, Event{File: file.Path, Stage: StageCanonicalize, Status: status, Elapsed: time.Since(start)})
	return res
}

// finish applies the per-run view: warnings dropped or promoted, then the cap.
func finish(all *diag.Diagnostics, opts Options) *diag.Diagnostics {
	if opts.IgnoreWarnings {
		all.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	}
	if opts.WarningsAsErrors {
		all.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	out := diag.NewDiagnostics(opts.MaxDiagnostics)
	for _, d := range all.Items() {
		if !out.Add(d) {
			break
		}
	}
	return out
}

func renderIR(out *can.Output, format IRFormat) (string, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case IRText:
		err = can.Dump(&buf, out)
	case IRYAML:
		err = can.DumpYAML(&buf, out)
	default:
		return "", fmt.Errorf("unknown IR format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render IR: %w", err)
	}
	return buf.String(), nil
}

func cacheDiagnostic(file source.FileID, op string, err error) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.IOCacheError,
		Message:  fmt.Sprintf("cache %s failed: %v", op, err),
		File:     file,
	}
}
