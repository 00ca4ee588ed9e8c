package backup

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/datalab-labs/datalab/internal/project"
	"github.com/datalab-labs/datalab/internal/registry"
)

// allModulesScope is the archive name sentinel for a whole-registry backup.
const allModulesScope = "all_modules"

var (
	// ErrTargetDirInvalid is returned when the target does not exist or
	// is not a directory.
	ErrTargetDirInvalid = errors.New("target directory invalid")

	// ErrConflictingFilters is returned when both filter flags are set.
	ErrConflictingFilters = errors.New("cannot use both the data and code filters together")

	// ErrNoModules is returned for an all-modules backup over an empty
	// registry.
	ErrNoModules = errors.New("no modules to back up")
)

// Request describes one backup invocation.
type Request struct {
	TargetDir string
	Module    string // empty means all modules
	DataOnly  bool
	CodeOnly  bool
}

// ModuleCount is the per-module file count in a Report.
type ModuleCount struct {
	Name  string
	Files int
}

// Report summarizes a completed backup. When Empty is true the archive
// contained no files and was deleted; ArchivePath is then empty.
type Report struct {
	ArchivePath       string
	FileCount         int
	TotalBytes        int64 // uncompressed
	ArchiveBytes      int64 // compressed artifact size on disk
	PerModule         []ModuleCount
	ModulesWithFiles  int
	ModulesConsidered int
	Empty             bool
}

// Builder creates filtered, timestamped zip archives of modules. Now can
// be overridden in tests to pin the archive timestamp.
type Builder struct {
	Now func() time.Time
}

// Build validates req against root and writes the archive into the target
// directory. Validation short-circuits before any file is created, and a
// construction failure never leaves a partial archive behind.
func (b *Builder) Build(root string, req Request) (*Report, error) {
	info, err := os.Stat(req.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s does not exist", ErrTargetDirInvalid, req.TargetDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrTargetDirInvalid, req.TargetDir)
	}
	if req.DataOnly && req.CodeOnly {
		return nil, ErrConflictingFilters
	}

	modulesDir := project.ModulesPath(root)
	if _, err := os.Stat(modulesDir); err != nil {
		return nil, fmt.Errorf("%w: missing %s", project.ErrNotFound, modulesDir)
	}

	names, err := b.selectModules(root, req.Module)
	if err != nil {
		return nil, err
	}

	scope := req.Module
	if scope == "" {
		scope = allModulesScope
	}
	archivePath := filepath.Join(req.TargetDir, b.archiveName(scope, req))

	report, err := writeArchive(archivePath, root, names, req)
	if err != nil {
		// The writer has been closed by the time writeArchive returns,
		// so removal here cannot race an open handle.
		_ = os.Remove(archivePath)
		return nil, fmt.Errorf("building archive: %w", err)
	}

	if report.FileCount == 0 {
		_ = os.Remove(archivePath)
		report.ArchivePath = ""
		report.Empty = true
		return report, nil
	}

	stat, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("inspecting archive: %w", err)
	}
	report.ArchiveBytes = stat.Size()
	return report, nil
}

// selectModules resolves the archive scope to concrete module names.
// The name is validated before any path is built from it, so traversal
// sequences never reach the filesystem.
func (b *Builder) selectModules(root, module string) ([]string, error) {
	if module != "" {
		if err := registry.ValidateName(module); err != nil {
			return nil, err
		}
		if _, err := os.Stat(project.CodeDir(root, module)); err != nil {
			return nil, fmt.Errorf("module %q: %w", module, registry.ErrModuleNotFound)
		}
		return []string{module}, nil
	}

	entries, err := os.ReadDir(project.ModulesPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading modules directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoModules
	}
	return names, nil
}

// archiveName builds <scope>_backup<suffix>_<YYYYMMDD_HHMMSS>.zip.
func (b *Builder) archiveName(scope string, req Request) string {
	suffix := ""
	switch {
	case req.DataOnly:
		suffix = "_data"
	case req.CodeOnly:
		suffix = "_code"
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return fmt.Sprintf("%s_backup%s_%s.zip", scope, suffix, now().Format("20060102_150405"))
}

// writeArchive creates the zip file and adds every selected file. Both
// the zip writer and the file handle are released on every exit path.
func writeArchive(archivePath, root string, names []string, req Request) (report *Report, err error) {
	f, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", archivePath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(f)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	report = &Report{
		ArchivePath:       archivePath,
		ModulesConsidered: len(names),
	}

	for _, name := range names {
		var count int
		if !req.DataOnly {
			n, size, err := addTree(zw, project.CodeDir(root, name), path.Join(project.ModulesDir, name))
			if err != nil {
				return nil, err
			}
			count += n
			report.TotalBytes += size
		}
		if !req.CodeOnly {
			n, size, err := addTree(zw, project.ModuleDataDir(root, name), path.Join(project.DataDir, name))
			if err != nil {
				return nil, err
			}
			count += n
			report.TotalBytes += size
		}

		report.PerModule = append(report.PerModule, ModuleCount{Name: name, Files: count})
		report.FileCount += count
		if count > 0 {
			report.ModulesWithFiles++
		}
	}

	return report, nil
}

// addTree walks dir and adds every regular file to the archive under
// prefix, with forward-slash internal paths. A missing directory
// contributes nothing.
func addTree(zw *zip.Writer, dir, prefix string) (int, int64, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, 0, nil
	}

	var count int
	var total int64
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", p, err)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("building header for %s: %w", p, err)
		}
		header.Name = path.Join(prefix, filepath.ToSlash(rel))
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("adding %s: %w", header.Name, err)
		}

		src, err := os.Open(p)
		if err != nil {
			return err
		}
		_, copyErr := io.Copy(w, src)
		if closeErr := src.Close(); copyErr == nil {
			copyErr = closeErr
		}
		if copyErr != nil {
			return fmt.Errorf("writing %s: %w", header.Name, copyErr)
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
