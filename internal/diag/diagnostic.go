package diag

import "canon/internal/source"

// Note is a secondary location attached to a diagnostic.
type Note struct {
	Region source.Region
	Msg    string
}

// Diagnostic is a rendered finding, ready for formatting.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     source.FileID
	Primary  source.Region
	Notes    []Note
}

// WithNote returns a copy of d with an extra note.
func (d Diagnostic) WithNote(region source.Region, msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Region: region, Msg: msg})
	return d
}
