package wordindex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildOrLoad_WritesThenReadsCache(t *testing.T) {
	dir := t.TempDir()
	words := []string{"cat", "cot", "cut", "dog"}

	first := BuildOrLoad(dir, "en", words)
	if !first.Exists("CAT") {
		t.Fatalf("expected CAT to exist after first build")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one cache file, got %d", len(entries))
	}

	second := BuildOrLoad(dir, "en", words)
	if !second.Exists("CAT") || second.Size() != first.Size() {
		t.Fatalf("second BuildOrLoad should answer identically to the first")
	}
}

func TestBuildOrLoad_CorruptCacheFallsBackToBuild(t *testing.T) {
	dir := t.TempDir()
	words := []string{"cat", "cot"}
	path := filepath.Join(dir, CacheFileName("en", words))
	if err := os.WriteFile(path, []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ix := BuildOrLoad(dir, "en", words)
	if !ix.Exists("CAT") {
		t.Fatalf("expected a fallback build to still answer queries correctly")
	}
}

func TestBuildOrLoad_EmptyCacheDirSkipsDisk(t *testing.T) {
	ix := BuildOrLoad("", "en", []string{"cat", "dog"})
	if !ix.Exists("CAT") {
		t.Fatalf("expected an in-memory build with no cache dir")
	}
}
