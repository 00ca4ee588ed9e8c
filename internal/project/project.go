package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Directory names that identify a project root.
const (
	ModulesDir = "modules"
	DataDir    = "data"
)

// ErrNotFound is returned by Resolve when no ancestor of the start
// directory qualifies as a project root.
var ErrNotFound = errors.New("project root not found")

// Resolve returns the first directory, starting at start and walking up
// toward the filesystem root, that contains both a modules/ and a data/
// child directory. It has no side effects and always terminates at the
// filesystem root.
func Resolve(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if isRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Init creates the modules/ and data/ directories under dir, making dir a
// project root. Pre-existing directories are not an error. Returns the
// directory names it ensured, in creation order.
func Init(dir string) ([]string, error) {
	created := make([]string, 0, 2)
	for _, sub := range []string{ModulesDir, DataDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return created, fmt.Errorf("creating %s/: %w", sub, err)
		}
		created = append(created, sub)
	}
	return created, nil
}

// ModulesPath returns the modules/ directory of root.
func ModulesPath(root string) string {
	return filepath.Join(root, ModulesDir)
}

// DataPath returns the data/ directory of root.
func DataPath(root string) string {
	return filepath.Join(root, DataDir)
}

// CodeDir returns the code directory of the named module.
func CodeDir(root, name string) string {
	return filepath.Join(root, ModulesDir, name)
}

// ModuleDataDir returns the data directory of the named module.
func ModuleDataDir(root, name string) string {
	return filepath.Join(root, DataDir, name)
}

func isRoot(dir string) bool {
	return isDir(filepath.Join(dir, ModulesDir)) && isDir(filepath.Join(dir, DataDir))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
