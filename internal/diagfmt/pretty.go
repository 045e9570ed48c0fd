package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"canon/internal/diag"
	"canon/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	bold, gutter, caret   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		bold:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.bold, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics the way compilers print them to a terminal:
//
//	error[SEM3003]: Nothing is named `y` in this scope.
//	  --> main.roc:3:5
//	   |
//	 3 | x + y
//	   |     ^
func Pretty(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	label := strings.ToLower(d.Severity.String())
	fmt.Fprintf(w, "%s%s\n", p.severity(d.Severity).Sprintf("%s[%s]", label, d.Code.ID()), p.bold.Sprint(": "+firstLine(d.Message)))

	var file *source.File
	if fs != nil && int(d.File) < fs.Len() {
		file = fs.Get(d.File)
	}
	located := file != nil && hasSource(d.Code)

	width := len(strconv.Itoa(int(d.Primary.EndLine) + 1))
	pad := strings.Repeat(" ", width)
	if located {
		fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, p.gutter.Sprint("-->"), displayPath(fs, d.File, opts.PathMode), d.Primary.StartLine+1, d.Primary.StartCol+1)
		fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))
		snippet(w, file, d.Primary, width, opts.Context, p)
	}
	for _, extra := range restLines(d.Message) {
		fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("="), extra)
	}
	if !opts.ShowNotes && d.Code != diag.ObsTimings {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "%s %s %s%s\n", pad, p.gutter.Sprint("="), p.note.Sprint("note: "), n.Msg)
		if file != nil && !n.Region.IsZero() {
			snippet(w, file, n.Region, width, 0, p)
		}
	}
}

// snippet prints the lines of r (capped at the first one plus context) and
// underlines the region.
func snippet(w io.Writer, file *source.File, r source.Region, width, context int, p palette) {
	first := int(r.StartLine) - context
	if first < 0 {
		first = 0
	}
	for ln := first; ln <= int(r.StartLine); ln++ {
		text := file.Line(uint32(ln))
		fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", width, ln+1), p.gutter.Sprint("|"), text)
	}
	line := file.Line(r.StartLine)
	start := min(int(r.StartCol), len(line))
	end := len(line)
	if r.EndLine == r.StartLine {
		end = min(int(r.EndCol), len(line))
	}
	lead := runewidth.StringWidth(line[:start])
	span := max(runewidth.StringWidth(line[start:max(start, end)]), 1)
	fmt.Fprintf(w, "%s %s %s%s\n", strings.Repeat(" ", width), p.gutter.Sprint("|"), strings.Repeat(" ", lead), p.caret.Sprint(strings.Repeat("^", span)))
}

// hasSource: lexer, parser and canonicalizer findings point into the file.
func hasSource(code diag.Code) bool {
	return code >= diag.LexInfo && code < diag.IOLoadFileError
}

func firstLine(msg string) string {
	first, _, _ := strings.Cut(msg, "\n")
	return first
}

func restLines(msg string) []string {
	_, rest, ok := strings.Cut(msg, "\n")
	if !ok {
		return nil
	}
	var out []string
	for _, l := range strings.Split(rest, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, strings.TrimSpace(l))
		}
	}
	return out
}
