package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/datalab-labs/datalab/internal/project"
	"github.com/datalab-labs/datalab/internal/scaffold"
)

// namePattern keeps module names safe for use as a directory segment.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_-]*$`)

var (
	// ErrModuleNotFound is returned when a named module has neither a
	// code nor a data directory.
	ErrModuleNotFound = errors.New("module not found")

	// ErrInvalidName is returned for names that could escape the
	// modules/ or data/ directories.
	ErrInvalidName = errors.New("invalid module name")
)

// ValidateName rejects names unusable as a single directory segment.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must match pattern [a-zA-Z0-9_][a-zA-Z0-9_-]*", ErrInvalidName, name)
	}
	return nil
}

// Create makes modules/<name>/ and data/<name>/ under root and renders
// the scaffold template set into the code directory, overwriting any
// files already there. Pre-existing directories are not an error.
func Create(root, name string) (*CreateResult, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	codeDir := project.CodeDir(root, name)
	dataDir := project.ModuleDataDir(root, name)

	for _, dir := range []string{codeDir, dataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	files, err := scaffold.Generate(codeDir, name)
	if err != nil {
		return nil, fmt.Errorf("generating module files: %w", err)
	}

	return &CreateResult{CodeDir: codeDir, DataDir: dataDir, Files: files}, nil
}

// List enumerates the immediate subdirectories of modules/ and, for each,
// the file count and total size of the corresponding data/<name>/ tree.
// Entries come back sorted lexicographically by name. An empty registry
// returns an empty slice.
func List(root string) ([]ModuleInfo, error) {
	entries, err := os.ReadDir(project.ModulesPath(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading modules directory: %w", err)
	}

	var infos []ModuleInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		count, total, err := dataUsage(project.ModuleDataDir(root, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("scanning data for %s: %w", entry.Name(), err)
		}
		infos = append(infos, ModuleInfo{Name: entry.Name(), FileCount: count, TotalBytes: total})
	}
	return infos, nil
}

// Remove deletes modules/<name>/ and data/<name>/ after the confirm
// callback approves. Each directory is deleted independently; a module
// with only one side present is still removable.
func Remove(root, name string, confirm ConfirmFunc) (*RemoveResult, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	codeDir := project.CodeDir(root, name)
	dataDir := project.ModuleDataDir(root, name)

	if !exists(codeDir) && !exists(dataDir) {
		return nil, fmt.Errorf("module %q: %w", name, ErrModuleNotFound)
	}

	ok, err := confirm(fmt.Sprintf("Remove module %q and its data? (y/N): ", name))
	if err != nil {
		return nil, fmt.Errorf("reading confirmation: %w", err)
	}
	if !ok {
		return &RemoveResult{Cancelled: true}, nil
	}

	result := &RemoveResult{}
	for _, dir := range []string{codeDir, dataDir} {
		if !exists(dir) {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return result, fmt.Errorf("removing %s: %w", dir, err)
		}
		result.Removed = append(result.Removed, dir)
	}
	return result, nil
}

// dataUsage walks dir and returns the number of regular files and their
// total size. A missing directory counts as empty.
func dataUsage(dir string) (int, int64, error) {
	if !exists(dir) {
		return 0, 0, nil
	}

	var count int
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		count++
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return count, total, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
