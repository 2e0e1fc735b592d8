// Package answers manages the small JSON reference files the loop consults:
// the card display catalog, the seeded task answer codes, and the daily
// combo answer. The files are shared with external tooling, so their JSON
// shapes are fixed. Writers within this process serialize per path and
// replace files atomically; across processes the semantics are
// last-writer-wins.
package answers

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const answersFileMode = 0o644

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.Mutex{}
)

func lockForPath(path string) *sync.Mutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.Mutex{}
	pathLockMap[path] = mu
	return mu
}

// writeFileAtomic replaces path via a temp file and rename, so a crashed
// write never leaves a half-written answers file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".answers-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp answers file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp answers file: %w", err)
	}
	if err := tempFile.Chmod(answersFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp answers file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp answers file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace answers file: %w", err)
	}
	cleanup = false
	return nil
}
