package source

// FileID is the index of a file inside its FileSet.
type FileID uint32

// FileFlags describe how a file entered the set.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // из памяти: тесты, stdin
	FileHadBOM                               // BOM был срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// Has reports whether every bit of f is set.
func (fl FileFlags) Has(f FileFlags) bool { return fl&f == f }

// File is one loaded source. Content is already normalized.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// Position is a 0-based line/column pair; columns count bytes.
type Position struct {
	Line uint32
	Col  uint32
}
