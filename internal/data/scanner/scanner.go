package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/penwyp/go-horti/internal/util"
)

// IdentityScanner discovers identities, one per directory under the user
// directory.
type IdentityScanner struct {
	baseDir string
}

// NewIdentityScanner creates a new IdentityScanner instance
func NewIdentityScanner(baseDir string) *IdentityScanner {
	return &IdentityScanner{baseDir: baseDir}
}

// Scan returns the identities under the base directory in lexical order.
// Entries that are not directories, including broken symlinks, are skipped.
func (s *IdentityScanner) Scan() ([]string, error) {
	start := time.Now()
	util.LogDebug(fmt.Sprintf("Start scanning user directory: %s", s.baseDir))

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list user directory %s: %w", s.baseDir, err)
	}

	identities := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !s.isDir(entry) {
			util.LogDebug(fmt.Sprintf("Skip non-directory entry: %s", entry.Name()))
			continue
		}
		identities = append(identities, entry.Name())
	}

	util.LogDebug(fmt.Sprintf("User directory scan completed: duration %v, %d entries, %d identities",
		time.Since(start), len(entries), len(identities)))
	return identities, nil
}

func (s *IdentityScanner) isDir(entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(s.baseDir, entry.Name()))
	return err == nil && info.IsDir()
}
