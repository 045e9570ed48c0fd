package symbols

import (
	"fmt"
	"sort"

	"canon/internal/source"
)

// FrameKind enumerates the lexical constructs that open a frame.
type FrameKind uint8

const (
	FrameInvalid FrameKind = iota
	FrameModule            // outermost, never popped
	FrameBlock             // definitions of one block
	FrameDef               // right-hand side of a definition
	FrameClosure           // closure parameters and body
	FrameBranch            // one when-branch
)

func (k FrameKind) String() string {
	switch k {
	case FrameModule:
		return "module"
	case FrameBlock:
		return "block"
	case FrameDef:
		return "def"
	case FrameClosure:
		return "closure"
	case FrameBranch:
		return "branch"
	default:
		return "invalid"
	}
}

// Frame maps names to the symbols bound in one lexical level.
type Frame struct {
	Kind   FrameKind
	Depth  uint32
	parent *Frame // lookup fall-through only
	names  map[source.StringID]Symbol
}

// Shadow describes a same-frame rebinding detected by Bind.
type Shadow struct {
	Original       Symbol
	OriginalRegion source.Region
}

// Scope is the frame stack of one compilation unit.
type Scope struct {
	interner *Interner
	home     ModuleID
	top      *Frame
}

// NewScope creates a scope holding only the module frame of home.
func NewScope(in *Interner, home ModuleID) *Scope {
	if !home.IsValid() {
		panic(fmt.Errorf("symbols: scope for invalid module"))
	}
	return &Scope{
		interner: in,
		home:     home,
		top:      &Frame{Kind: FrameModule, names: make(map[source.StringID]Symbol)},
	}
}

func (s *Scope) Interner() *Interner { return s.interner }

func (s *Scope) Home() ModuleID { return s.home }

// Top returns the innermost frame.
func (s *Scope) Top() *Frame { return s.top }

// Depth of the innermost frame; the module frame has depth 0.
func (s *Scope) Depth() uint32 { return s.top.Depth }

// Push opens a frame and returns the function that closes it. The release
// is idempotent and must run in LIFO order; callers defer it.
func (s *Scope) Push(kind FrameKind) func() {
	if kind == FrameModule || kind == FrameInvalid {
		panic(fmt.Errorf("symbols: cannot push %s frame", kind))
	}
	frame := &Frame{
		Kind:   kind,
		Depth:  s.top.Depth + 1,
		parent: s.top,
		names:  make(map[source.StringID]Symbol),
	}
	s.top = frame
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.pop(frame)
	}
}

func (s *Scope) pop(frame *Frame) {
	if frame.parent == nil {
		panic(fmt.Errorf("symbols: module frame popped"))
	}
	if s.top != frame {
		panic(fmt.Errorf("symbols: %s frame at depth %d released out of order", frame.Kind, frame.Depth))
	}
	s.top = frame.parent
}

// Bind mints a fresh symbol for name in the innermost frame. If the frame
// already binds name, the previous binding is returned as a Shadow; the new
// symbol replaces it either way. Bindings of outer frames are shadowed silently.
func (s *Scope) Bind(name string, region source.Region, kind SymbolKind) (Symbol, *Shadow) {
	id := s.interner.strings.Intern(name)
	var shadow *Shadow
	if prev, ok := s.top.names[id]; ok {
		shadow = &Shadow{Original: prev}
		if info := s.interner.Info(prev); info != nil {
			shadow.OriginalRegion = info.Region
		}
	}
	sym := s.interner.NewSymbol(s.home, name, kind, region, s.top.Depth)
	s.top.names[id] = sym
	return sym, shadow
}

// Lookup searches frames innermost to outermost.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	id, ok := s.interner.strings.Find(name)
	if !ok {
		return NoSymbol, false
	}
	for f := s.top; f != nil; f = f.parent {
		if sym, ok := f.names[id]; ok {
			return sym, true
		}
	}
	return NoSymbol, false
}

// Names lists every visible name, sorted.
func (s *Scope) Names() []string {
	seen := make(map[source.StringID]struct{})
	out := make([]string, 0, 8)
	for f := s.top; f != nil; f = f.parent {
		for id := range f.names {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, s.interner.strings.MustLookup(id))
		}
	}
	sort.Strings(out)
	return out
}
