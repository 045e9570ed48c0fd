package diag

import (
	"fmt"
	"sort"
)

// Diagnostics is a capped list of rendered diagnostics, the unit the
// driver and formatters exchange.
type Diagnostics struct {
	items []Diagnostic
	max   int
}

// NewDiagnostics creates a list holding at most max entries; max <= 0 means unlimited.
func NewDiagnostics(max int) *Diagnostics {
	capacity := max
	if capacity <= 0 || capacity > 64 {
		capacity = 64
	}
	return &Diagnostics{items: make([]Diagnostic, 0, capacity), max: max}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (l *Diagnostics) Add(d Diagnostic) bool {
	if l.max > 0 && len(l.items) >= l.max {
		return false
	}
	l.items = append(l.items, d)
	return true
}

func (l *Diagnostics) Cap() int {
	return l.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (l *Diagnostics) HasErrors() bool {
	for i := range l.items {
		if l.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (l *Diagnostics) HasWarnings() bool {
	for i := range l.items {
		if l.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (l *Diagnostics) Len() int {
	return len(l.items)
}

// Items returns the backing slice; callers must not modify it.
func (l *Diagnostics) Items() []Diagnostic {
	return l.items
}

// Merge appends other, growing the cap when needed.
func (l *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	if l.max > 0 && len(l.items)+len(other.items) > l.max {
		l.max = len(l.items) + len(other.items)
	}
	l.items = append(l.items, other.items...)
}

// Filter keeps the diagnostics for which keep returns true.
func (l *Diagnostics) Filter(keep func(Diagnostic) bool) {
	out := l.items[:0]
	for _, d := range l.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	l.items = out
}

// Transform rewrites every diagnostic in place.
func (l *Diagnostics) Transform(fn func(Diagnostic) Diagnostic) {
	for i := range l.items {
		l.items[i] = fn(l.items[i])
	}
}

// Sort orders by file, start, end, severity (desc), code.
func (l *Diagnostics) Sort() {
	sort.SliceStable(l.items, func(i, j int) bool {
		di, dj := l.items[i], l.items[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Primary.Start() != dj.Primary.Start() {
			return di.Primary.Before(dj.Primary)
		}
		if di.Primary.End() != dj.Primary.End() {
			return di.Primary.Before(dj.Primary)
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated Code+File+Primary entries, keeping the first.
func (l *Diagnostics) Dedup() {
	seen := make(map[string]bool, len(l.items))
	out := make([]Diagnostic, 0, len(l.items))
	for _, d := range l.items {
		key := fmt.Sprintf("%s:%d:%s", d.Code.ID(), d.File, d.Primary)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	l.items = out
}
