package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/ndtf"
)

// runApp runs the CLI with an explicit empty config so user files are ignored.
func runApp(t *testing.T, dir string, args ...string) error {
	t.Helper()

	cfg := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(cfg, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	full := append([]string{"ndtf", "--config", cfg, "--log-level", "off"}, args...)
	return newApp().Run(context.Background(), full)
}

func TestCreateSetConvert(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "volume.ndtf")
	dst := filepath.Join(dir, "volume16.ndtf")

	if err := runApp(t, dir, "create", "--size", "4x3x2", "--format", "RGBA8888", "--fill", "10,20,30,255", src); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := runApp(t, dir, "set", "--at", "3,2,1", "--value", "255,0,0,255", src); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := runApp(t, dir, "--codec", "zstd", "convert", "--format", "RGBA16161616", "--compress", src, dst); err != nil {
		t.Fatalf("convert: %v", err)
	}

	f, stored, err := ndtf.LoadWithOptions(dst, &ndtf.ReadOptions{Compressor: ndtf.ZstdCompressor{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored != ndtf.FormatRGBA16161616 || !f.Compressed() || f.Dimensions() != 3 {
		t.Fatalf("stored=%s compressed=%t dims=%d", stored, f.Compressed(), f.Dimensions())
	}

	vals, ok := ndtf.TexelValues[uint16](f, ndtf.Coord3D(3, 2, 1))
	if !ok || vals[0] != 65535 || vals[1] != 0 {
		t.Fatalf("set texel = %v", vals)
	}
	vals, ok = ndtf.TexelValues[uint16](f, ndtf.Coord3D(0, 0, 0))
	if !ok || vals[0] != 10*257 || vals[2] != 30*257 {
		t.Fatalf("filled texel = %v", vals)
	}

	if err := runApp(t, dir, "--codec", "zstd", "info", "--json", "--verify", dst); err != nil {
		t.Fatalf("info: %v", err)
	}
	if err := runApp(t, dir, "info", "--verify", dst); err == nil {
		t.Fatalf("info --verify with mismatched codec should fail")
	}
}

func TestDDSCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "stack.ndtf")
	dds := filepath.Join(dir, "plane.dds")
	back := filepath.Join(dir, "plane.ndtf")

	if err := runApp(t, dir, "create", "--size", "4x4x3", "--format", "R8", "--fill", "77", src); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := runApp(t, dir, "export-dds", "--plane", "2", src, dds); err != nil {
		t.Fatalf("export-dds: %v", err)
	}
	if err := runApp(t, dir, "import-dds", "--format", "R8", dds, back); err != nil {
		t.Fatalf("import-dds: %v", err)
	}

	f, _, err := ndtf.Load(back)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Format() != ndtf.FormatR8 || f.Dimensions() != 2 {
		t.Fatalf("format=%s dims=%d", f.Format(), f.Dimensions())
	}
	if texel := f.Texel2D(3, 3); len(texel) != 1 || texel[0] != 77 {
		t.Fatalf("texel = %v", texel)
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "bad.ndtf")

	cases := [][]string{
		{"create", "--size", "4", out},
		{"create", "--size", "4x4", "--format", "NONE", out},
		{"create", "--size", "4x4", "--fill", "1,2", out},
		{"--codec", "brotli", "info", out},
		{"get", "--at", "0,0", filepath.Join(dir, "missing.ndtf")},
	}
	for _, args := range cases {
		if err := runApp(t, dir, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
