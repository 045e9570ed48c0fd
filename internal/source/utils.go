package source

import (
	"bytes"
	"path/filepath"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
)

// normalize strips a leading BOM and turns every \r\n into \n; a lone \r
// stays. The flags record what was changed.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, crlf) {
		content = bytes.ReplaceAll(content, crlf, []byte{'\n'})
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// lineIndex lists the offset of every '\n'; line n starts one byte after
// entry n-1.
func lineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) // #nosec G115 -- bounded by the file size
		off++
	}
}

// cleanPath gives every path one spelling so lookups match across platforms.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
