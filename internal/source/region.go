package source

import "fmt"

// Region is a 0-based source range. EndCol is exclusive.
// Regions carry no file: a canonicalization unit always covers a single file.
type Region struct {
	StartLine uint32
	EndLine   uint32
	StartCol  uint32
	EndCol    uint32
}

// NewRegion builds a region from two positions.
func NewRegion(start, end Position) Region {
	return Region{StartLine: start.Line, EndLine: end.Line, StartCol: start.Col, EndCol: end.Col}
}

// Start returns the first position of the region.
func (r Region) Start() Position { return Position{Line: r.StartLine, Col: r.StartCol} }

// End returns the position just past the region.
func (r Region) End() Position { return Position{Line: r.EndLine, Col: r.EndCol} }

func (r Region) IsZero() bool {
	return r == Region{}
}

// Before reports whether r starts before other in source order.
func (r Region) Before(other Region) bool {
	if r.StartLine != other.StartLine {
		return r.StartLine < other.StartLine
	}
	if r.StartCol != other.StartCol {
		return r.StartCol < other.StartCol
	}
	if r.EndLine != other.EndLine {
		return r.EndLine < other.EndLine
	}
	return r.EndCol < other.EndCol
}

// Cover returns the smallest region containing both r and other.
func (r Region) Cover(other Region) Region {
	if other.IsZero() {
		return r
	}
	if r.IsZero() {
		return other
	}
	out := r
	if other.Start().before(r.Start()) {
		out.StartLine, out.StartCol = other.StartLine, other.StartCol
	}
	if r.End().before(other.End()) {
		out.EndLine, out.EndCol = other.EndLine, other.EndCol
	}
	return out
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p Position) bool {
	return !p.before(r.Start()) && p.before(r.End())
}

// String renders the region 1-based, the way editors show it.
func (r Region) String() string {
	if r.StartLine == r.EndLine {
		return fmt.Sprintf("%d:%d-%d", r.StartLine+1, r.StartCol+1, r.EndCol+1)
	}
	return fmt.Sprintf("%d:%d-%d:%d", r.StartLine+1, r.StartCol+1, r.EndLine+1, r.EndCol+1)
}

// Tuple returns the raw (start_line, end_line, start_col, end_col) quadruple.
func (r Region) Tuple() [4]uint32 {
	return [4]uint32{r.StartLine, r.EndLine, r.StartCol, r.EndCol}
}

func (p Position) before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}
