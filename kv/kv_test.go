package kv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirStoreRoundtrip(t *testing.T) {
	s, err := NewDirStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	type rec struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if !s.Save("things", rec{Name: "a", Count: 3}) {
		t.Fatal("Save failed")
	}
	var got rec
	if !s.Load("things", &got) {
		t.Fatal("Load failed")
	}
	if got.Name != "a" || got.Count != 3 {
		t.Errorf("got %+v, want {a 3}", got)
	}
}

func TestDirStoreLoadAbsent(t *testing.T) {
	var warned bool
	s, err := NewDirStore(t.TempDir(), func(string) { warned = true })
	if err != nil {
		t.Fatal(err)
	}
	got := 42
	if s.Load("missing", &got) {
		t.Error("Load of an absent key must report false")
	}
	if got != 42 {
		t.Errorf("out = %d, an absent key must leave the default untouched", got)
	}
	if warned {
		t.Error("an absent key is the first-run case and must not warn")
	}
}

func TestDirStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	var warnings []string
	s, err := NewDirStore(dir, func(msg string) { warnings = append(warnings, msg) })
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := 42
	if s.Load("broken", &got) {
		t.Error("Load of a corrupt blob must report false")
	}
	if got != 42 {
		t.Errorf("out = %d, a corrupt blob must leave the default untouched", got)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one", warnings)
	}
}

func TestDirStoreRemoveAndClear(t *testing.T) {
	s, err := NewDirStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Save("a", 1)
	s.Save("b", 2)

	s.Remove("a")
	var n int
	if s.Load("a", &n) {
		t.Error("a removed key must not load")
	}
	s.Remove("a") // removing twice is fine

	s.Clear("b", "never-existed")
	if s.Load("b", &n) {
		t.Error("a cleared key must not load")
	}
}

func TestDirStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewDirStore(dir, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data directory was not created: %v", err)
	}
}
