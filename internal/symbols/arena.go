package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// arena stores the symbols minted for one module. Index 0 is reserved so
// that the zero Symbol never resolves.
type arena struct {
	data []SymbolInfo
}

func newArena(capacity uint32) *arena {
	if capacity == 0 {
		capacity = 64
	}
	return &arena{data: make([]SymbolInfo, 1, capacity+1)}
}

func (a *arena) add(info SymbolInfo) uint32 {
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	a.data = append(a.data, info)
	return idx
}

func (a *arena) get(idx uint32) *SymbolInfo {
	if idx == 0 || int(idx) >= len(a.data) {
		return nil
	}
	return &a.data[idx]
}

// Len reports number of stored symbols excluding the sentinel.
func (a *arena) Len() int { return len(a.data) - 1 }
