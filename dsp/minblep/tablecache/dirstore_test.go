package tablecache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirStoreRoundTrip(t *testing.T) {
	s := NewDirStore(filepath.Join(t.TempDir(), "nested", "cache"))

	key := "minblep(126000,48000,21,0.475,0.05)"

	ok, err := s.Exists(key)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Fatal("empty store reports entry")
	}

	if _, err := s.Load(key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}

	data := []byte("snapshot-bytes")
	if err := s.AtomicStore(key, data); err != nil {
		t.Fatalf("AtomicStore() error = %v", err)
	}

	ok, err = s.Exists(key)
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v after store", ok, err)
	}

	got, err := s.Load(key)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("Load() = %q, want %q", got, data)
	}
}

func TestDirStoreRepublish(t *testing.T) {
	s := NewDirStore(t.TempDir())

	if err := s.AtomicStore("k", []byte("one")); err != nil {
		t.Fatalf("AtomicStore() error = %v", err)
	}
	if err := s.AtomicStore("k", []byte("two")); err != nil {
		t.Fatalf("AtomicStore() error = %v", err)
	}

	got, err := s.Load("k")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != "two" {
		t.Fatalf("Load() = %q, want %q", got, "two")
	}
}

func TestDirStoreInterruptedPublishInvisible(t *testing.T) {
	dir := t.TempDir()
	s := NewDirStore(dir)

	// Simulate a writer that died between the temporary write and the
	// rename: a pending file exists but the key was never published.
	if err := os.WriteFile(filepath.Join(dir, ".pending-123"), []byte("partial"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ok, err := s.Exists("k")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Fatal("interrupted publish visible at the key")
	}
	if _, err := s.Load("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestDirStoreLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	s := NewDirStore(dir)

	if err := s.AtomicStore("k", []byte("doc")); err != nil {
		t.Fatalf("AtomicStore() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".pending-") {
			t.Fatalf("temporary file %s left behind", e.Name())
		}
	}
}

func TestDefaultDirStore(t *testing.T) {
	s, err := DefaultDirStore()
	if err != nil {
		t.Skipf("no user cache dir: %v", err)
	}
	if s.Dir() == "" {
		t.Fatal("empty store directory")
	}
	if filepath.Base(s.Dir()) != "algo-minblep" {
		t.Fatalf("dir = %s, want algo-minblep leaf", s.Dir())
	}
}
