package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a module",
	Long: `Execute modules/<name>/run.sh in an in-process shell interpreter.

Loading the script runs its top-level statements; the script must define
a run function, which is then invoked. Script errors are reported but
never crash the process.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	name := args[0]

	root, err := resolveRoot()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Running %s...\n", name)

	r := &runner.Runner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	result, err := r.Run(context.Background(), root, name)
	if err != nil {
		return err
	}

	if !result.OK {
		return fmt.Errorf("module %q failed: %v", name, result.Reason)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Module %q finished\n", name)
	return nil
}
