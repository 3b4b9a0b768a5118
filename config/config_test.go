package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "distil.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[decode]
strip-debugging = true
instruction-objects = true

[output]
format = "cbor"
dir = "out"
pretty = true
`)

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Decode.StripDebugging || !c.Decode.UseInstructionObjects {
		t.Fatalf("decode %+v", c.Decode)
	}
	if c.Output.Format != "cbor" || c.Output.Dir != "out" || !c.Output.Pretty {
		t.Fatalf("output %+v", c.Output)
	}
	if c.Output.Overwrite != OverwriteAsk {
		t.Fatalf("default overwrite lost: %q", c.Output.Overwrite)
	}
	if c.Path != path {
		t.Fatalf("path %q", c.Path)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("missing file loaded")
	}
	path := writeConfig(t, dir, "[output\nformat=")
	if _, err := Load(path); err == nil {
		t.Fatalf("broken toml loaded")
	}
	path = writeConfig(t, dir, "[output]\noverwrite = \"sometimes\"\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("bad overwrite accepted")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\nformat = \"listing\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatal(err)
	}
	if c.Output.Format != "listing" {
		t.Fatalf("format %q", c.Output.Format)
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Output.Format != "json" || c.Decode.StripDebugging {
		t.Fatalf("defaults %+v", c)
	}
}
