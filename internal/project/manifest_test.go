package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "gaia.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write gaia.toml: %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"

[analysis]
max-iterations = 500
jobs = 4
cache = true
`)

	m, ok, err := LoadManifest(dir)
	if err != nil || !ok {
		t.Fatalf("LoadManifest = (%v, %v)", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("name = %q, want demo", m.Config.Package.Name)
	}
	if m.Config.Analysis.MaxIterations != 500 || m.Config.Analysis.Jobs != 4 || !m.Config.Analysis.Cache {
		t.Fatalf("analysis = %+v", m.Config.Analysis)
	}
	if m.Root != dir {
		t.Fatalf("Root = %q, want %q", m.Root, dir)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest = (%v, %v)", ok, err)
	}
	if m.Root != dir {
		t.Fatalf("Root = %q, want %q", m.Root, dir)
	}
}

func TestLoadManifestMissingName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\n")

	_, ok, err := LoadManifest(dir)
	if !ok {
		t.Fatal("manifest file exists, ok should be true")
	}
	if err == nil {
		t.Fatal("missing [package].name should fail")
	}
}

func TestLoadManifestAbsent(t *testing.T) {
	// An isolated temp dir has no gaia.toml anywhere above it only if
	// we stub the walk; instead verify the direct miss path.
	if _, ok, _ := FindManifest(filepath.Join(os.TempDir(), "definitely-missing-gaia")); ok {
		t.Skip("unexpected gaia.toml above the temp root")
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a := HashBytes([]byte("a"))
	b := HashBytes([]byte("b"))
	c := HashBytes([]byte("content"))
	if Combine(c, a, b) == Combine(c, b, a) {
		t.Fatal("dependency order must affect the aggregate hash")
	}
	if Combine(c) == c {
		t.Fatal("aggregate hash must differ from raw content hash")
	}
}
