package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/manifest"
	"github.com/datalab-labs/datalab/internal/project"
	"github.com/datalab-labs/datalab/internal/registry"
	"github.com/datalab-labs/datalab/internal/scaffold"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the current project",
	Long: `Run diagnostic checks: project root resolution, module scaffold
completeness, and ` + manifest.FileName + ` schema validation.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	root, err := resolveRoot()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ok: project root at %s\n", root)

	problems := 0
	problems += checkModules(out, root)
	problems += checkManifest(out, root)

	if problems > 0 {
		return fmt.Errorf("doctor found %d problem(s)", problems)
	}
	fmt.Fprintln(out, "\nAll checks passed.")
	return nil
}

// checkModules verifies every module's code directory still contains the
// full generated file set.
func checkModules(out io.Writer, root string) int {
	infos, err := registry.List(root)
	if err != nil {
		fmt.Fprintf(out, "fail: listing modules: %v\n", err)
		return 1
	}

	expected, err := scaffold.Files()
	if err != nil {
		fmt.Fprintf(out, "fail: reading template set: %v\n", err)
		return 1
	}

	problems := 0
	for _, info := range infos {
		missing := 0
		for _, name := range expected {
			if _, err := os.Stat(filepath.Join(project.CodeDir(root, info.Name), name)); err != nil {
				missing++
			}
		}
		if missing > 0 {
			fmt.Fprintf(out, "fail: module %s is missing %d generated file(s)\n", info.Name, missing)
			problems++
			continue
		}
		fmt.Fprintf(out, "ok: module %s\n", info.Name)
	}
	return problems
}

// checkManifest validates lab.yaml against the embedded schema. A missing
// manifest is only a note: older projects predate it.
func checkManifest(out io.Writer, root string) int {
	if _, err := manifest.Read(root); errors.Is(err, manifest.ErrNotFound) {
		fmt.Fprintf(out, "note: no %s (run setup to create one)\n", manifest.FileName)
		return 0
	}

	result, err := manifest.ValidateFile(manifest.Path(root))
	if err != nil {
		fmt.Fprintf(out, "fail: validating %s: %v\n", manifest.FileName, err)
		return 1
	}
	if !result.Valid {
		fmt.Fprintf(out, "fail: %s is invalid:\n", manifest.FileName)
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Message)
		}
		return 1
	}
	fmt.Fprintf(out, "ok: %s\n", manifest.FileName)
	return 0
}
