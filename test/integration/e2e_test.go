//go:build integration

package integration_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/datalab-labs/datalab/internal/manifest"
	"github.com/datalab-labs/datalab/internal/project"
	"github.com/datalab-labs/datalab/internal/registry"
	"github.com/datalab-labs/datalab/internal/scaffold"
)

// TestFullFlowSetupAndModules tests the complete lifecycle:
// init project -> write manifest -> create modules -> list -> remove.
func TestFullFlowSetupAndModules(t *testing.T) {
	root := t.TempDir()

	// Step 1: Initialize the project layout.
	created, err := project.Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created directories, got %d: %v", len(created), created)
	}
	assertDirExists(t, project.ModulesPath(root))
	assertDirExists(t, project.DataPath(root))

	// Step 2: Write and validate the project manifest.
	if err := manifest.Write(root, manifest.NewProject("lab-e2e")); err != nil {
		t.Fatalf("Write manifest: %v", err)
	}
	result, err := manifest.ValidateFile(manifest.Path(root))
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected a fresh manifest to validate, got issues: %v", result.Issues)
	}

	// Step 3: Create two modules.
	for _, name := range []string{"ingest", "cleanup"} {
		res, err := registry.Create(root, name)
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		assertDirExists(t, res.CodeDir)
		assertDirExists(t, res.DataDir)
		assertFileExists(t, filepath.Join(res.CodeDir, scaffold.EntryFile))
	}

	// Step 4: Put data in one module and list.
	writeFile(t, filepath.Join(project.ModuleDataDir(root, "ingest"), "input.csv"), "a,b\n1,2\n")

	modules, err := registry.List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(modules))
	}
	// ReadDir order is lexicographic.
	if modules[0].Name != "cleanup" || modules[1].Name != "ingest" {
		t.Errorf("unexpected listing order: %v", modules)
	}
	if modules[1].FileCount != 1 {
		t.Errorf("expected 1 data file for ingest, got %d", modules[1].FileCount)
	}
	if modules[0].FileCount != 0 {
		t.Errorf("expected no data files for cleanup, got %d", modules[0].FileCount)
	}

	// Step 5: Remove one module after confirmation.
	res, err := registry.Remove(root, "cleanup", func(string) (bool, error) { return true, nil })
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if res.Cancelled {
		t.Fatal("expected removal to proceed")
	}
	assertFileNotExists(t, project.CodeDir(root, "cleanup"))
	assertFileNotExists(t, project.ModuleDataDir(root, "cleanup"))
	assertDirExists(t, project.CodeDir(root, "ingest"))
}

// TestFullFlowResolveFromNestedDir verifies that the project root is found
// from anywhere inside the tree, matching how commands resolve their context.
func TestFullFlowResolveFromNestedDir(t *testing.T) {
	root := setupProject(t)
	if _, err := registry.Create(root, "deep"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	nested := filepath.Join(project.CodeDir(root, "deep"), "sub", "dir")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("creating nested dir: %v", err)
	}

	found, err := project.Resolve(nested)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if found != root {
		t.Errorf("expected root %s, got %s", root, found)
	}

	// Outside the project there is nothing to find.
	if _, err := project.Resolve(t.TempDir()); !errors.Is(err, project.ErrNotFound) {
		t.Errorf("expected ErrNotFound outside the project, got %v", err)
	}
}

// TestFullFlowRecreateKeepsData verifies that recreating an existing module
// regenerates the scripts without touching its data directory.
func TestFullFlowRecreateKeepsData(t *testing.T) {
	root := setupProject(t)
	if _, err := registry.Create(root, "stats"); err != nil {
		t.Fatalf("Create (first): %v", err)
	}

	dataFile := filepath.Join(project.ModuleDataDir(root, "stats"), "kept.txt")
	writeFile(t, dataFile, "keep me\n")

	// Hand-edit the entry script, then recreate.
	entry := filepath.Join(project.CodeDir(root, "stats"), scaffold.EntryFile)
	writeScript(t, entry, "#!/bin/sh\nedited\n")

	if _, err := registry.Create(root, "stats"); err != nil {
		t.Fatalf("Create (recreate): %v", err)
	}

	// Scripts are regenerated, data survives.
	assertFileContains(t, entry, "run()")
	assertFileExists(t, dataFile)
	assertFileContains(t, dataFile, "keep me")
}

// TestFullFlowManifestRejectsBadVersion verifies schema validation catches
// a hand-edited manifest with an invalid version string.
func TestFullFlowManifestRejectsBadVersion(t *testing.T) {
	root := setupProject(t)
	writeFile(t, manifest.Path(root), "name: broken\nversion: not-semver\n")

	result, err := manifest.ValidateFile(manifest.Path(root))
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if result.Valid {
		t.Fatal("expected validation to fail for a non-semver version")
	}
	if len(result.Issues) == 0 {
		t.Fatal("expected at least one validation issue")
	}
}
