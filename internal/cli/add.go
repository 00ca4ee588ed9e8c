package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/project"
	"github.com/datalab-labs/datalab/internal/registry"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new module",
	Long: `Create modules/<name>/ and data/<name>/ and generate the module's
code files (run.sh, load_data.sh, analyze.sh) from templates.

Creating an existing module again regenerates its code files; data files
are never touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	root, err := resolveRoot()
	if err != nil {
		return err
	}

	result, err := registry.Create(root, name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Module %q created:\n", name)
	fmt.Fprintf(out, "  %s%c\n", filepath.Join(project.ModulesDir, name), filepath.Separator)
	fmt.Fprintf(out, "  %s%c\n", filepath.Join(project.DataDir, name), filepath.Separator)
	fmt.Fprintf(out, "  Files: %s\n", strings.Join(result.Files, ", "))
	return nil
}
