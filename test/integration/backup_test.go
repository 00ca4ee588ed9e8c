//go:build integration

package integration_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/datalab-labs/datalab/internal/backup"
	"github.com/datalab-labs/datalab/internal/project"
	"github.com/datalab-labs/datalab/internal/registry"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

// TestFullFlowBackupAllModules backs up a populated registry and verifies
// the archive contents match the on-disk layout.
func TestFullFlowBackupAllModules(t *testing.T) {
	root := setupProject(t)
	target := t.TempDir()

	for _, name := range []string{"alpha", "beta"} {
		if _, err := registry.Create(root, name); err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
	}
	writeFile(t, filepath.Join(project.ModuleDataDir(root, "alpha"), "raw.csv"), "1,2\n")

	b := &backup.Builder{Now: fixedClock}
	report, err := b.Build(root, backup.Request{TargetDir: target})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if report.Empty {
		t.Fatal("expected a non-empty archive")
	}
	want := filepath.Join(target, "all_modules_backup_20260314_092653.zip")
	if report.ArchivePath != want {
		t.Errorf("archive path = %s, want %s", report.ArchivePath, want)
	}
	assertFileExists(t, report.ArchivePath)

	// 3 scripts per module, plus one data file under alpha.
	names := zipEntryNames(t, report.ArchivePath)
	wantNames := []string{
		"data/alpha/raw.csv",
		"modules/alpha/analyze.sh",
		"modules/alpha/load_data.sh",
		"modules/alpha/run.sh",
		"modules/beta/analyze.sh",
		"modules/beta/load_data.sh",
		"modules/beta/run.sh",
	}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("archive entries = %v, want %v", names, wantNames)
	}
	if report.FileCount != 7 {
		t.Errorf("FileCount = %d, want 7", report.FileCount)
	}
	if report.ModulesWithFiles != 2 || report.ModulesConsidered != 2 {
		t.Errorf("module counts = %d/%d, want 2/2", report.ModulesWithFiles, report.ModulesConsidered)
	}
}

// TestFullFlowBackupModuleDataOnly verifies a module-scoped, data-only
// backup carries the filter suffix and skips the scripts.
func TestFullFlowBackupModuleDataOnly(t *testing.T) {
	root := setupProject(t)
	target := t.TempDir()

	if _, err := registry.Create(root, "alpha"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	writeFile(t, filepath.Join(project.ModuleDataDir(root, "alpha"), "raw.csv"), "1,2\n")

	b := &backup.Builder{Now: fixedClock}
	report, err := b.Build(root, backup.Request{TargetDir: target, Module: "alpha", DataOnly: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := filepath.Join(target, "alpha_backup_data_20260314_092653.zip")
	if report.ArchivePath != want {
		t.Errorf("archive path = %s, want %s", report.ArchivePath, want)
	}
	names := zipEntryNames(t, report.ArchivePath)
	if !reflect.DeepEqual(names, []string{"data/alpha/raw.csv"}) {
		t.Errorf("archive entries = %v, want only the data file", names)
	}
}

// TestFullFlowBackupEmptyArchiveRemoved verifies that a backup selecting no
// files deletes the archive it started instead of leaving it behind.
func TestFullFlowBackupEmptyArchiveRemoved(t *testing.T) {
	root := setupProject(t)
	target := t.TempDir()

	if _, err := registry.Create(root, "bare"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	b := &backup.Builder{Now: fixedClock}
	report, err := b.Build(root, backup.Request{TargetDir: target, Module: "bare", DataOnly: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !report.Empty {
		t.Fatal("expected an empty report")
	}
	if report.ArchivePath != "" {
		t.Errorf("expected no archive path, got %s", report.ArchivePath)
	}
	assertFileNotExists(t, filepath.Join(target, "bare_backup_data_20260314_092653.zip"))
}

// TestFullFlowBackupUnknownModule verifies validation runs before any
// archive is created.
func TestFullFlowBackupUnknownModule(t *testing.T) {
	root := setupProject(t)
	target := t.TempDir()

	b := &backup.Builder{Now: fixedClock}
	_, err := b.Build(root, backup.Request{TargetDir: target, Module: "ghost"})
	if !errors.Is(err, registry.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
	assertFileNotExists(t, filepath.Join(target, "ghost_backup_20260314_092653.zip"))
}
