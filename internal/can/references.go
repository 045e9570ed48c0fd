package can

import "canon/internal/symbols"

// References is an insertion-ordered record of looked-up and called symbols.
// Every called symbol is also a lookup.
type References struct {
	lookups []symbols.Symbol
	calls   []symbols.Symbol
	seen    map[symbols.Symbol]refFlags
}

type refFlags uint8

const (
	refLookup refFlags = 1 << iota
	refCall
)

func NewReferences() *References {
	return &References{seen: make(map[symbols.Symbol]refFlags)}
}

func (r *References) AddLookup(sym symbols.Symbol) {
	if r.seen[sym]&refLookup != 0 {
		return
	}
	r.seen[sym] |= refLookup
	r.lookups = append(r.lookups, sym)
}

func (r *References) AddCall(sym symbols.Symbol) {
	r.AddLookup(sym)
	if r.seen[sym]&refCall != 0 {
		return
	}
	r.seen[sym] |= refCall
	r.calls = append(r.calls, sym)
}

// Has reports whether sym was referenced in any way.
func (r *References) Has(sym symbols.Symbol) bool {
	return r != nil && r.seen[sym]&refLookup != 0
}

// Called reports whether sym was called directly.
func (r *References) Called(sym symbols.Symbol) bool {
	return r != nil && r.seen[sym]&refCall != 0
}

func (r *References) Lookups() []symbols.Symbol { return r.lookups }

func (r *References) Calls() []symbols.Symbol { return r.calls }

func (r *References) Len() int { return len(r.lookups) }

// Merge adds everything other references, keeping first-seen order.
func (r *References) Merge(other *References) {
	if other == nil {
		return
	}
	for _, sym := range other.lookups {
		r.AddLookup(sym)
	}
	for _, sym := range other.calls {
		r.AddCall(sym)
	}
}
