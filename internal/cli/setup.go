package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/branding"
	"github.com/datalab-labs/datalab/internal/manifest"
	"github.com/datalab-labs/datalab/internal/project"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initialize the project structure",
	Long: `Create the modules/ and data/ directories that mark the current
directory as a ` + branding.DisplayName() + ` project root, plus a ` + manifest.FileName + `
project manifest.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	created, err := project.Init(cwd)
	if err != nil {
		return fmt.Errorf("initializing project: %w", err)
	}
	for _, dir := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s/\n", dir)
	}

	// Write the manifest only on first setup so re-running setup never
	// clobbers user edits. A manifest that exists but cannot be read is
	// a real problem, not a first run.
	switch _, err := manifest.Read(cwd); {
	case errors.Is(err, manifest.ErrNotFound):
		p := manifest.NewProject(filepath.Base(cwd))
		if err := manifest.Write(cwd, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", manifest.FileName)
	case err != nil:
		return fmt.Errorf("checking existing %s: %w", manifest.FileName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nProject initialized. Use `%s add <name>` to create a module.\n", branding.CLIName())
	return nil
}
