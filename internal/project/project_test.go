package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"canon/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	writeFile(t, filepath.Join(nested, "main.roc"), "x = 1\nx\n")

	for _, start := range []string{nested, filepath.Join(nested, "main.roc")} {
		path, ok, err := FindManifest(start)
		if err != nil || !ok {
			t.Fatalf("FindManifest(%s) = %q, %v, %v", start, path, ok, err)
		}
		if path != filepath.Join(root, ManifestName) {
			t.Fatalf("FindManifest(%s) = %q", start, path)
		}
	}
	dir, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || dir != root {
		t.Fatalf("FindProjectRoot = %q, %v, %v", dir, ok, err)
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[canon]
home = "Main"
max_diagnostics = 20
warnings_as_errors = true
jobs = 3
`)
	m, ok, err := LoadManifest(root)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: %v, %v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("Root = %q, want %q", m.Root, root)
	}
	c := m.Config.Canon
	if m.Config.HomeModule() != "Main" || c.MaxDiagnostics != 20 || !c.WarningsAsErrors || c.Jobs != 3 {
		t.Fatalf("unexpected config %+v", m.Config)
	}
}

func TestHomeDefaultsToPackageName(t *testing.T) {
	cfg := Config{Package: PackageConfig{Name: " demo "}}
	if got := cfg.HomeModule(); got != "demo" {
		t.Fatalf("HomeModule() = %q", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		code diag.Code
	}{
		{"no package", "[canon]\njobs = 1\n", diag.ProjMissingPackage},
		{"empty name", "[package]\nname = \"  \"\n", diag.ProjMissingPackage},
		{"bad toml", "[package\nname = 1\n", diag.ProjInvalidManifest},
		{"unknown key", "[package]\nname = \"a\"\n[canon]\nhomes = \"x\"\n", diag.ProjInvalidManifest},
		{"negative jobs", "[package]\nname = \"a\"\n[canon]\njobs = -1\n", diag.ProjInvalidManifest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tc.body)
			_, err := LoadConfig(path)
			var me *ManifestError
			if !errors.As(err, &me) {
				t.Fatalf("LoadConfig error = %v, want *ManifestError", err)
			}
			if me.Code != tc.code {
				t.Fatalf("code = %s, want %s", me.Code.ID(), tc.code.ID())
			}
		})
	}
}

func TestNoManifest(t *testing.T) {
	// t.TempDir lives under the system temp dir, which carries no canon.toml.
	_, ok, err := LoadManifest(t.TempDir())
	if err != nil || ok {
		t.Fatalf("LoadManifest on empty tree = %v, %v", ok, err)
	}
}

func TestCombineOrderMatters(t *testing.T) {
	a, b := StringDigest("a"), StringDigest("b")
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("Combine must depend on order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatalf("Combine must be deterministic")
	}
	if !(Digest{}).IsZero() || a.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}
