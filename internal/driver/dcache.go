package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"canon/internal/diag"
	"canon/internal/project"
	"canon/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps the outcome of canonicalizing a file, keyed by unitKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what survives between runs: the diagnostics of a file
// before per-run filtering, plus the rendered IR when one was requested.
type DiskPayload struct {
	Schema      uint16
	Version     string
	Path        string
	ContentHash project.Digest
	Diagnostics []DiskDiagnostic
	IR          string
}

type DiskDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  [4]uint32
	Notes    []DiskNote
}

type DiskNote struct {
	Region [4]uint32
	Msg    string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог "units": один файл на единицу канонизации
	return filepath.Join(c.dir, "units", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached payload.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, чтобы параллельный запуск не увидел его наполовину удалённым
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func toDiskDiagnostics(items []diag.Diagnostic) []DiskDiagnostic {
	out := make([]DiskDiagnostic, len(items))
	for i, d := range items {
		out[i] = DiskDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  d.Primary.Tuple(),
		}
		for _, n := range d.Notes {
			out[i].Notes = append(out[i].Notes, DiskNote{Region: n.Region.Tuple(), Msg: n.Msg})
		}
	}
	return out
}

// fromDiskDiagnostics rebuilds diagnostics for file; ids are not stable
// between runs, so the file is re-attached here.
func fromDiskDiagnostics(items []DiskDiagnostic, file source.FileID) *diag.Diagnostics {
	out := diag.NewDiagnostics(0)
	for _, d := range items {
		rd := diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			File:     file,
			Primary:  regionOf(d.Primary),
		}
		for _, n := range d.Notes {
			rd.Notes = append(rd.Notes, diag.Note{Region: regionOf(n.Region), Msg: n.Msg})
		}
		out.Add(rd)
	}
	return out
}

func regionOf(t [4]uint32) source.Region {
	return source.Region{StartLine: t[0], EndLine: t[1], StartCol: t[2], EndCol: t[3]}
}
