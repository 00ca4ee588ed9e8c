package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datalab-labs/datalab/internal/branding"
	"github.com/datalab-labs/datalab/internal/registry"
	"github.com/datalab-labs/datalab/internal/sizes"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modules",
	Long:  `List every module with the file count and total size of its data directory.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	infos, err := registry.List(root)
	if err != nil {
		return err
	}

	if listJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(infos) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No modules yet. Use `%s add <name>` to create one.\n", branding.CLIName())
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Available modules (%d):\n", len(infos))
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tFILES\tSIZE")
	for _, info := range infos {
		if info.FileCount == 0 {
			fmt.Fprintf(w, "%s\t-\tno data\n", info.Name)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", info.Name, info.FileCount, sizes.Human(info.TotalBytes))
	}
	return w.Flush()
}
