package wordindex

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// BuildOrLoad returns the Index for words, consulting cacheDir first. A
// cache hit is keyed by wordlistName and ContentHash(words), so editing the
// source wordlist invalidates its own entry without touching any other
// cached index. A miss, a corrupt blob, or an empty cacheDir all fall back
// to BuildIndex; a successful fresh build is written back to cacheDir on a
// best-effort basis, since a cache write failure is never fatal to the
// caller.
func BuildOrLoad(cacheDir, wordlistName string, words []string) *Index {
	if cacheDir == "" {
		return BuildIndex(words)
	}

	path := filepath.Join(cacheDir, CacheFileName(wordlistName, words))
	if f, err := os.Open(path); err == nil {
		ix, err := Load(f)
		f.Close()
		if err == nil {
			log.Debug("wordindex: loaded index from cache", "path", path)
			return ix
		}
		log.Debug("wordindex: cache entry unreadable, rebuilding", "path", path, "err", err)
	}

	ix := BuildIndex(words)

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		log.Debug("wordindex: could not create cache dir", "dir", cacheDir, "err", err)
		return ix
	}
	f, err := os.Create(path)
	if err != nil {
		log.Debug("wordindex: could not write cache entry", "path", path, "err", err)
		return ix
	}
	defer f.Close()
	if err := Save(ix, f); err != nil {
		log.Debug("wordindex: could not serialize index to cache", "path", path, "err", err)
	}
	return ix
}
