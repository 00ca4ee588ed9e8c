package cli

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/config"
	"github.com/datalab-labs/datalab/internal/registry"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a module and its data",
	Long: `Delete modules/<name>/ and data/<name>/ after confirmation.

The prompt accepts "y" (case-insensitive) to proceed; any other answer
cancels. Pass --yes or set remove.assume_yes to skip the prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	root, err := resolveRoot()
	if err != nil {
		return err
	}

	confirm := stdinConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
	if removeYes || config.GetBool(config.KeyAssumeYes) {
		confirm = func(string) (bool, error) { return true, nil }
	}

	result, err := registry.Remove(root, name, confirm)
	if err != nil {
		return err
	}

	if result.Cancelled {
		fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
		return nil
	}
	for _, dir := range result.Removed {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			rel = dir
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s%c\n", rel, filepath.Separator)
	}
	return nil
}

// stdinConfirm builds a ConfirmFunc that prompts on out and reads one
// line from in. Only the single character "y", case-insensitive,
// confirms; surrounding whitespace is an answer of its own and declines.
func stdinConfirm(in io.Reader, out io.Writer) registry.ConfirmFunc {
	return func(prompt string) (bool, error) {
		fmt.Fprint(out, prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			// EOF with no input counts as a decline, not an error.
			return false, nil
		}
		return strings.EqualFold(strings.TrimRight(line, "\r\n"), "y"), nil
	}
}
