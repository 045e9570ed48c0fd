package driver

import (
	"context"
	"path/filepath"
	"testing"

	"canon/internal/diag"
	"canon/internal/project"
	"canon/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "canon"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := project.StringDigest("unit")

	var missing DiskPayload
	if hit, err := c.Get(key, &missing); hit || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", hit, err)
	}

	in := []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.SemaUnusedDef,
		Message:  "`x` is not used anywhere in your code.",
		Primary:  source.Region{StartLine: 1, EndLine: 1, StartCol: 2, EndCol: 3},
		Notes:    []diag.Note{{Region: source.Region{EndCol: 4}, Msg: "here"}},
	}}
	payload := &DiskPayload{Schema: diskCacheSchemaVersion, Path: "a.roc", Diagnostics: toDiskDiagnostics(in), IR: "Num 1\n"}
	if err := c.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	hit, err := c.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v", hit, err)
	}
	got := fromDiskDiagnostics(out.Diagnostics, 7).Items()
	if len(got) != 1 || got[0].File != 7 || got[0].Primary != in[0].Primary || got[0].Code != in[0].Code {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got[0].Notes[0].Msg != "here" || out.IR != "Num 1\n" {
		t.Fatalf("round trip lost data: %+v", out)
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if hit, _ := c.Get(key, &out); hit {
		t.Fatalf("entry survived DropAll")
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll on missing dir: %v", err)
	}
}

func TestCachedRunMatchesFreshRun(t *testing.T) {
	c, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "canon"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	path := writeSource(t, t.TempDir(), "u.roc", "x = 1\ny = 2\n\ny\n")
	opts := Options{Cache: c, EmitIR: IRText}

	_, first, err := CanonicalizeFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	_, second, err := CanonicalizeFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags = %v, %v", first.Cached, second.Cached)
	}
	if second.Output != nil || second.IR != first.IR {
		t.Fatalf("cached result differs")
	}
	a, b := first.Diagnostics.Items(), second.Diagnostics.Items()
	if len(a) != len(b) || len(a) != 1 || a[0].Message != b[0].Message || a[0].Primary != b[0].Primary {
		t.Fatalf("diagnostics differ: %+v vs %+v", a, b)
	}

	// a different home module is a different unit
	_, third, _ := CanonicalizeFile(context.Background(), path, Options{Cache: c, EmitIR: IRText, Home: "Other"})
	if third.Cached {
		t.Fatalf("home module must be part of the key")
	}
}
