package diag

// Bag accumulates problems in the order they are reported. One Bag belongs
// to one compilation unit.
type Bag struct {
	items []Problem
}

func NewBag() *Bag {
	return &Bag{items: make([]Problem, 0, 8)}
}

// Report appends p; nil problems are ignored.
func (b *Bag) Report(p Problem) {
	if p == nil {
		return
	}
	b.items = append(b.items, p)
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice проблем.
func (b *Bag) Items() []Problem {
	return b.items
}

// HasErrors reports whether any problem renders as an error.
func (b *Bag) HasErrors() bool {
	for _, p := range b.items {
		if SeverityOf(p) >= SevError {
			return true
		}
	}
	return false
}

// Count returns how many problems carry the given code.
func (b *Bag) Count(code Code) int {
	n := 0
	for _, p := range b.items {
		if p.Code() == code {
			n++
		}
	}
	return n
}
