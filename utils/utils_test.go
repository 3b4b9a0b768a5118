package utils

import (
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	cases := []struct {
		in, dir, ext, want string
	}{
		{"a/b/init.luac", "", ".json", "a/b/init.json"},
		{"init.out", "", ".json", "init.out.json"},
		{"x.luac.luac", "", ".cbor", "x.luac.cbor"},
		{"a/b/init.luac", "out", ".db", filepath.Join("out", "init.db")},
	}
	for _, c := range cases {
		if got := OutputPath(c.in, c.dir, c.ext); got != c.want {
			t.Fatalf("%s: got %s, want %s", c.in, got, c.want)
		}
	}
}

func TestCache(t *testing.T) {
	c := NewCache[int](2)
	c.Set([]byte("a"), 1)
	c.Set([]byte("b"), 2)
	if v, ok := c.Get([]byte("a")); !ok || v != 1 {
		t.Fatalf("a: %d %v", v, ok)
	}
	c.Set([]byte("c"), 3)
	if _, ok := c.Get([]byte("b")); ok {
		t.Fatalf("b should be evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("len %d", c.Len())
	}
}

func TestMd5(t *testing.T) {
	if Md5([]byte("")) != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Fatalf("md5 %s", Md5(nil))
	}
}

func TestExist(t *testing.T) {
	dir := t.TempDir()
	if !Exist(dir) {
		t.Fatalf("temp dir missing")
	}
	if Exist(filepath.Join(dir, "nope")) {
		t.Fatalf("missing file reported")
	}
}
