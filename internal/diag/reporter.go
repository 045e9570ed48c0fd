package diag

// Reporter receives problems from the canonicalizer.
// Реализации: *Bag, NopReporter, MultiReporter.
type Reporter interface {
	Report(p Problem)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Problem) {}

// MultiReporter fans a problem out to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) Report(p Problem) {
	for _, r := range m {
		if r != nil {
			r.Report(p)
		}
	}
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Problem)

func (f ReporterFunc) Report(p Problem) { f(p) }
